package mock

import (
	"io"

	"github.com/fwojciec/timetable"
)

var _ timetable.Encoder = (*Encoder)(nil)

// Encoder is a mock implementation of timetable.Encoder.
type Encoder struct {
	EncodeFn func(w io.Writer, dept *timetable.Department, courses []*timetable.Course) error
	ExtFn    func() string
}

func (e *Encoder) Encode(w io.Writer, dept *timetable.Department, courses []*timetable.Course) error {
	return e.EncodeFn(w, dept, courses)
}

func (e *Encoder) Ext() string {
	return e.ExtFn()
}
