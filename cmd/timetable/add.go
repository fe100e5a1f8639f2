package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/timetable"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		fmt.Fprintf(deps.Stderr, "error: %q is not an http(s) URL\n", c.URL)
		return timetable.Errorf(timetable.EINVALID, "invalid URL %q", c.URL)
	}

	dept := &timetable.Department{
		Code:      strings.ToUpper(c.Code),
		Name:      c.Name,
		SourceURL: c.URL,
	}

	if err := deps.Departments.CreateDepartment(deps.Ctx, dept); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", timetable.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added department %s (%s). Run 'timetable sync %s' to fetch its courses.\n", dept.Code, dept.ID, dept.Code)
	return nil
}
