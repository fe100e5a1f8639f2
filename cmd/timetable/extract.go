package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/timetable"
	"github.com/fwojciec/timetable/etree"
	"github.com/fwojciec/timetable/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	page, err := c.load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	dept := strings.ToUpper(c.Dept)
	courses, err := deps.Extractor.Extract(dept, page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", timetable.ErrorMessage(err))
		return err
	}

	if len(courses) == 0 {
		fmt.Fprintln(deps.Stderr, "No courses found.")
		return nil
	}

	d := &timetable.Department{Code: dept, SourceURL: c.Source}
	switch c.Format {
	case "markdown":
		err = fs.NewMarkdownEncoder(deps.Converter).Encode(deps.Stdout, d, courses)
	case "xml":
		err = etree.NewEncoder(2).Encode(deps.Stdout, d, courses)
	default:
		_, err = fmt.Fprintln(deps.Stdout, timetable.FormatCourses(courses))
	}
	return err
}

// load reads the page from a URL or a local file.
func (c *ExtractCmd) load(deps *Dependencies) (string, error) {
	if isURL(c.Source) {
		return deps.Fetcher.Fetch(deps.Ctx, c.Source)
	}

	b, err := os.ReadFile(c.Source)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
