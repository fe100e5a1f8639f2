package timetable

import "context"

// Asker provides natural language question answering over a department's timetable.
type Asker interface {
	// Ask answers a question using the stored courses of a department.
	// Returns ENOTFOUND if the department has no courses.
	Ask(ctx context.Context, departmentID string, question string) (string, error)
}
