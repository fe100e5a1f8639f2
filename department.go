package timetable

import (
	"context"
	"time"
)

// Department represents one department's timetable page.
type Department struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	SourceURL   string    `json:"sourceUrl"`
	ContentHash string    `json:"contentHash"`
	CourseCount int       `json:"courseCount"`
	FetchedAt   time.Time `json:"fetchedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the department contains invalid fields.
func (d *Department) Validate() error {
	if d.Code == "" {
		return Errorf(EINVALID, "department code required")
	}
	if d.SourceURL == "" {
		return Errorf(EINVALID, "department source URL required")
	}
	return nil
}

// DepartmentService represents a service for managing departments.
type DepartmentService interface {
	// CreateDepartment creates a new department.
	// Returns ECONFLICT if a department with the same code exists.
	CreateDepartment(ctx context.Context, dept *Department) error

	// FindDepartmentByID retrieves a department by ID.
	// Returns ENOTFOUND if department does not exist.
	FindDepartmentByID(ctx context.Context, id string) (*Department, error)

	// FindDepartments retrieves departments matching the filter.
	FindDepartments(ctx context.Context, filter DepartmentFilter) ([]*Department, error)

	// UpdateDepartment updates an existing department.
	// Returns ENOTFOUND if department does not exist.
	UpdateDepartment(ctx context.Context, id string, upd DepartmentUpdate) (*Department, error)

	// DeleteDepartment permanently removes a department and all its courses.
	// Returns ENOTFOUND if department does not exist.
	DeleteDepartment(ctx context.Context, id string) error
}

// DepartmentFilter represents a filter for FindDepartments.
type DepartmentFilter struct {
	ID   *string `json:"id"`
	Code *string `json:"code"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DepartmentUpdate represents fields that can be updated on a department.
type DepartmentUpdate struct {
	Name        *string    `json:"name"`
	SourceURL   *string    `json:"sourceUrl"`
	ContentHash *string    `json:"contentHash"`
	CourseCount *int       `json:"courseCount"`
	FetchedAt   *time.Time `json:"fetchedAt"`
}

// DepartmentSelector finds department timetable links on an index page.
type DepartmentSelector interface {
	// SelectDepartments returns the departments linked from html.
	// Relative links are resolved against baseURL.
	SelectDepartments(html string, baseURL string) ([]*Department, error)
}
