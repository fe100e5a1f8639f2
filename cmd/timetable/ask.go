package main

import (
	"fmt"

	"github.com/fwojciec/timetable"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	dept, err := findDepartment(deps, c.Code)
	if err != nil {
		return err
	}

	answer, err := deps.Asker.Ask(deps.Ctx, dept.ID, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", timetable.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
