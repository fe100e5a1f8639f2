package main

import (
	"fmt"

	"github.com/fwojciec/timetable"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return timetable.Errorf(timetable.EINVALID, "use --force to confirm deletion")
	}

	dept, err := findDepartment(deps, c.Code)
	if err != nil {
		return err
	}

	if err := deps.Departments.DeleteDepartment(deps.Ctx, dept.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", timetable.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted department %s and %d courses\n", dept.Code, dept.CourseCount)
	return nil
}
