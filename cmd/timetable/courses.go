package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/timetable"
)

// Run executes the courses command.
func (c *CoursesCmd) Run(deps *Dependencies) error {
	dept, err := findDepartment(deps, c.Code)
	if err != nil {
		return err
	}

	filter := timetable.CourseFilter{DepartmentID: &dept.ID}
	if c.Category != "" {
		category, err := parseCategory(c.Category)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", timetable.ErrorMessage(err))
			return err
		}
		filter.Category = &category
	}

	courses, err := deps.Courses.FindCourses(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", timetable.ErrorMessage(err))
		return err
	}

	if len(courses) == 0 {
		fmt.Fprintf(deps.Stdout, "No courses stored for %s. Use 'timetable sync %s' to fetch them.\n", dept.Code, dept.Code)
		return nil
	}

	fmt.Fprintln(deps.Stdout, timetable.FormatCourses(courses))
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	abbr := strings.ToUpper(c.Abbr)
	courses, err := deps.Courses.FindCourses(deps.Ctx, timetable.CourseFilter{Abbr: &abbr})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", timetable.ErrorMessage(err))
		return err
	}

	if len(courses) == 0 {
		fmt.Fprintf(deps.Stderr, "error: course %q not found\n", abbr)
		return timetable.Errorf(timetable.ENOTFOUND, "course %q not found", abbr)
	}

	fmt.Fprintln(deps.Stdout, timetable.FormatCourses(courses))
	return nil
}

// parseCategory matches a category name case-insensitively.
func parseCategory(s string) (timetable.Category, error) {
	for _, c := range timetable.Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", timetable.Errorf(timetable.EINVALID, "unknown category %q", s)
}
