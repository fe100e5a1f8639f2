package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/timetable"
	"github.com/fwojciec/timetable/crawl"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	depts, err := c.departments(deps)
	if err != nil {
		return err
	}

	if len(depts) == 0 {
		fmt.Fprintln(deps.Stdout, "No departments registered. Use 'timetable add' or 'timetable discover' first.")
		return nil
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Syncing %d departments\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s: %d courses\n", event.Completed, event.Total, event.Department, event.Courses)
		case crawl.ProgressUnchanged:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s: unchanged\n", event.Completed, event.Total, event.Department)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s (%s): %v\n", event.Department, crawl.TruncateURL(event.URL, 60), event.Error)
		case crawl.ProgressFinished:
			// Summary printed after harvest completes
		}
	}

	result, err := deps.Harvester.Harvest(deps.Ctx, depts, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error syncing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d departments, %d courses, %d sections (%s); %d unchanged, %d failed\n",
		result.Saved, result.Courses, result.Sections, crawl.FormatBytes(result.Bytes), result.Unchanged, result.Failed)

	if result.Failed > 0 {
		return timetable.Errorf(timetable.EINTERNAL, "%d departments failed to sync", result.Failed)
	}
	return nil
}

// departments returns the departments named on the command line, or all
// registered departments when none are named.
func (c *SyncCmd) departments(deps *Dependencies) ([]*timetable.Department, error) {
	if len(c.Codes) == 0 {
		depts, err := deps.Departments.FindDepartments(deps.Ctx, timetable.DepartmentFilter{})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", timetable.ErrorMessage(err))
			return nil, err
		}
		return depts, nil
	}

	depts := make([]*timetable.Department, 0, len(c.Codes))
	for _, code := range c.Codes {
		d, err := findDepartment(deps, strings.ToUpper(code))
		if err != nil {
			return nil, err
		}
		depts = append(depts, d)
	}
	return depts, nil
}
