package main

import (
	"fmt"

	"github.com/fwojciec/timetable"
	"github.com/fwojciec/timetable/crawl"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	logRetry := func(format string, args ...any) {
		fmt.Fprintf(deps.Stderr, format+"\n", args...)
	}

	depts, err := crawl.Discover(deps.Ctx, c.URL, deps.Fetcher, deps.Selector, crawl.WithLogger(logRetry))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if len(depts) == 0 {
		fmt.Fprintln(deps.Stdout, "No departments found.")
		return nil
	}

	if c.Preview {
		for _, d := range depts {
			fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", d.Code, d.Name, d.SourceURL)
		}
		return nil
	}

	var added, existing int
	for _, d := range depts {
		err := deps.Departments.CreateDepartment(deps.Ctx, d)
		switch {
		case timetable.ErrorCode(err) == timetable.ECONFLICT:
			existing++
		case err != nil:
			fmt.Fprintf(deps.Stderr, "error: %s\n", timetable.ErrorMessage(err))
			return err
		default:
			added++
			fmt.Fprintf(deps.Stdout, "  + %s  %s\n", d.Code, d.Name)
		}
	}

	fmt.Fprintf(deps.Stdout, "Added %d departments (%d already registered)\n", added, existing)
	return nil
}
