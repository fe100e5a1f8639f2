package timetable

import (
	"context"
	"slices"
)

// Category is a breadth-requirement tag inferred from a course's name.
type Category string

// Category constants. A course may carry any combination of them.
const (
	CategorySSc Category = "SSc"
	CategorySCI Category = "SCI"
	CategoryHUM Category = "HUM"
)

// Categories lists the recognized categories in marker-test order.
var Categories = []Category{CategorySSc, CategorySCI, CategoryHUM}

// Course represents one course offering extracted from a timetable page.
// Code, SemesterPrefix and Semester together identify the course within a
// single page.
type Course struct {
	ID           string `json:"id"`
	DepartmentID string `json:"departmentId"`

	Department     string `json:"department"`
	Code           string `json:"code"`           // e.g. CSC108
	SemesterPrefix string `json:"semesterPrefix"` // term length, e.g. H1 or Y5
	Semester       string `json:"semester"`       // F, S or Y
	Campus         string `json:"campus"`

	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Exclusions    string     `json:"exclusions"`
	Prerequisites string     `json:"prerequisites"`
	Corequisites  string     `json:"corequisites"`
	Categories    []Category `json:"categories"`

	Sections []*Section `json:"sections"`

	Position int `json:"position"`
}

// Abbr returns the full course identifier, e.g. CSC108H1F.
func (c *Course) Abbr() string {
	return c.Code + c.SemesterPrefix + c.Semester
}

// AddCategory adds a category unless the course already carries it.
func (c *Course) AddCategory(category Category) {
	if c.HasCategory(category) {
		return
	}
	c.Categories = append(c.Categories, category)
}

// HasCategory reports whether the course carries the category.
func (c *Course) HasCategory(category Category) bool {
	return slices.Contains(c.Categories, category)
}

// Validate returns an error if the course contains invalid fields.
func (c *Course) Validate() error {
	if c.Code == "" {
		return Errorf(EINVALID, "course code required")
	}
	if c.Semester == "" {
		return Errorf(EINVALID, "course semester required")
	}
	return nil
}

// Section is one lecture, tutorial or practical of a course.
type Section struct {
	Name       string      `json:"name"`
	Instructor string      `json:"instructor"`
	Location   string      `json:"location"`
	ParsedTime SectionTime `json:"parsedTime"`
}

// SectionTime holds a section's weekly meetings in the order they were listed.
type SectionTime struct {
	MeetTimes []TimeSpan `json:"meetTimes"`
}

// TimeSpan is a single weekly meeting.
type TimeSpan struct {
	Day   Day   `json:"day"`
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// NewTimeSpan returns a span with no day and unknown start and end.
func NewTimeSpan() TimeSpan {
	return TimeSpan{Day: DayUnknown, Start: ClockUnknown, End: ClockUnknown}
}

// CourseExtractor turns the raw text of a timetable page into courses.
type CourseExtractor interface {
	// Extract returns the courses found in page, in page order.
	// Malformed blocks and rows are skipped rather than reported.
	Extract(department, page string) ([]*Course, error)
}

// CourseService represents a service for managing extracted courses.
type CourseService interface {
	// ReplaceCourses atomically replaces every course of a department.
	// Returns ENOTFOUND if the department does not exist.
	ReplaceCourses(ctx context.Context, departmentID string, courses []*Course) error

	// FindCourseByID retrieves a course with its sections.
	// Returns ENOTFOUND if the course does not exist.
	FindCourseByID(ctx context.Context, id string) (*Course, error)

	// FindCourses retrieves courses matching the filter, in page order.
	FindCourses(ctx context.Context, filter CourseFilter) ([]*Course, error)
}

// CourseFilter represents a filter for FindCourses.
type CourseFilter struct {
	DepartmentID *string   `json:"departmentId"`
	Code         *string   `json:"code"`
	Abbr         *string   `json:"abbr"`
	Category     *Category `json:"category"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
