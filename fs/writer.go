// Package fs exports department timetables as files.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/timetable"
)

// DepartmentPath returns the file name for a department code, e.g. CSC.md.
// Codes containing anything but letters and digits are EINVALID so they
// cannot escape the output directory.
func DepartmentPath(code, ext string) (string, error) {
	if code == "" {
		return "", timetable.Errorf(timetable.EINVALID, "department code required")
	}
	for _, r := range code {
		if !('A' <= r && r <= 'Z' || 'a' <= r && r <= 'z' || '0' <= r && r <= '9') {
			return "", timetable.Errorf(timetable.EINVALID, "invalid department code %q", code)
		}
	}
	return strings.ToUpper(code) + ext, nil
}

// Writer writes encoded departments into a directory, one file each.
type Writer struct {
	baseDir string
	enc     timetable.Encoder
}

// NewWriter creates a new Writer that writes to baseDir using enc.
func NewWriter(baseDir string, enc timetable.Encoder) *Writer {
	return &Writer{baseDir: baseDir, enc: enc}
}

// WriteDepartment encodes a department's courses to <baseDir>/<CODE><ext>
// and returns the path written. The file is replaced atomically.
func (w *Writer) WriteDepartment(ctx context.Context, dept *timetable.Department, courses []*timetable.Course) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, err := DepartmentPath(dept.Code, w.enc.Ext())
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(w.baseDir, "."+name+".*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return "", err
	}
	if err := w.enc.Encode(tmp, dept, courses); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, name)
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}
