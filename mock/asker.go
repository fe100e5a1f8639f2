package mock

import (
	"context"

	"github.com/fwojciec/timetable"
)

var _ timetable.Asker = (*Asker)(nil)

// Asker is a mock implementation of timetable.Asker.
type Asker struct {
	AskFn func(ctx context.Context, departmentID, question string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, departmentID, question string) (string, error) {
	return a.AskFn(ctx, departmentID, question)
}
