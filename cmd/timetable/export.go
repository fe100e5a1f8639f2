package main

import (
	"fmt"

	"github.com/fwojciec/timetable"
	"github.com/fwojciec/timetable/etree"
	"github.com/fwojciec/timetable/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	dept, err := findDepartment(deps, c.Code)
	if err != nil {
		return err
	}

	courses, err := deps.Courses.FindCourses(deps.Ctx, timetable.CourseFilter{DepartmentID: &dept.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", timetable.ErrorMessage(err))
		return err
	}

	var enc timetable.Encoder
	switch c.Format {
	case "xml":
		enc = etree.NewEncoder(2)
	default:
		enc = fs.NewMarkdownEncoder(deps.Converter)
	}

	path, err := fs.NewWriter(c.Out, enc).WriteDepartment(deps.Ctx, dept, courses)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", timetable.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d courses to %s\n", len(courses), path)
	return nil
}
