package mock

import (
	"context"

	"github.com/fwojciec/timetable"
)

var _ timetable.DepartmentService = (*DepartmentService)(nil)

// DepartmentService is a mock implementation of timetable.DepartmentService.
type DepartmentService struct {
	CreateDepartmentFn   func(ctx context.Context, dept *timetable.Department) error
	FindDepartmentByIDFn func(ctx context.Context, id string) (*timetable.Department, error)
	FindDepartmentsFn    func(ctx context.Context, filter timetable.DepartmentFilter) ([]*timetable.Department, error)
	UpdateDepartmentFn   func(ctx context.Context, id string, upd timetable.DepartmentUpdate) (*timetable.Department, error)
	DeleteDepartmentFn   func(ctx context.Context, id string) error
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, dept *timetable.Department) error {
	return s.CreateDepartmentFn(ctx, dept)
}

func (s *DepartmentService) FindDepartmentByID(ctx context.Context, id string) (*timetable.Department, error) {
	return s.FindDepartmentByIDFn(ctx, id)
}

func (s *DepartmentService) FindDepartments(ctx context.Context, filter timetable.DepartmentFilter) ([]*timetable.Department, error) {
	return s.FindDepartmentsFn(ctx, filter)
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, id string, upd timetable.DepartmentUpdate) (*timetable.Department, error) {
	return s.UpdateDepartmentFn(ctx, id, upd)
}

func (s *DepartmentService) DeleteDepartment(ctx context.Context, id string) error {
	return s.DeleteDepartmentFn(ctx, id)
}

var _ timetable.DepartmentSelector = (*DepartmentSelector)(nil)

// DepartmentSelector is a mock implementation of timetable.DepartmentSelector.
type DepartmentSelector struct {
	SelectDepartmentsFn func(html string, baseURL string) ([]*timetable.Department, error)
}

func (s *DepartmentSelector) SelectDepartments(html string, baseURL string) ([]*timetable.Department, error) {
	return s.SelectDepartmentsFn(html, baseURL)
}
