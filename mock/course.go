package mock

import (
	"context"

	"github.com/fwojciec/timetable"
)

var _ timetable.CourseService = (*CourseService)(nil)

// CourseService is a mock implementation of timetable.CourseService.
type CourseService struct {
	ReplaceCoursesFn func(ctx context.Context, departmentID string, courses []*timetable.Course) error
	FindCourseByIDFn func(ctx context.Context, id string) (*timetable.Course, error)
	FindCoursesFn    func(ctx context.Context, filter timetable.CourseFilter) ([]*timetable.Course, error)
}

func (s *CourseService) ReplaceCourses(ctx context.Context, departmentID string, courses []*timetable.Course) error {
	return s.ReplaceCoursesFn(ctx, departmentID, courses)
}

func (s *CourseService) FindCourseByID(ctx context.Context, id string) (*timetable.Course, error) {
	return s.FindCourseByIDFn(ctx, id)
}

func (s *CourseService) FindCourses(ctx context.Context, filter timetable.CourseFilter) ([]*timetable.Course, error) {
	return s.FindCoursesFn(ctx, filter)
}

var _ timetable.CourseExtractor = (*CourseExtractor)(nil)

// CourseExtractor is a mock implementation of timetable.CourseExtractor.
type CourseExtractor struct {
	ExtractFn func(department, page string) ([]*timetable.Course, error)
}

func (e *CourseExtractor) Extract(department, page string) ([]*timetable.Course, error) {
	return e.ExtractFn(department, page)
}
