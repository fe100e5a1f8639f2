package main

import (
	"fmt"

	"github.com/fwojciec/timetable"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	depts, err := deps.Departments.FindDepartments(deps.Ctx, timetable.DepartmentFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", timetable.ErrorMessage(err))
		return err
	}

	if len(depts) == 0 {
		fmt.Fprintln(deps.Stdout, "No departments found. Use 'timetable add' or 'timetable discover' to register one.")
		return nil
	}

	for _, d := range depts {
		fetched := "never"
		if !d.FetchedAt.IsZero() {
			fetched = d.FetchedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d courses  fetched %s  %s\n", d.Code, d.Name, d.CourseCount, fetched, d.SourceURL)
	}

	return nil
}
