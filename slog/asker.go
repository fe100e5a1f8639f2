package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/timetable"
)

// Ensure LoggingAsker implements timetable.Asker.
var _ timetable.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with logging.
type LoggingAsker struct {
	next   timetable.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next timetable.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the question size and outcome.
func (a *LoggingAsker) Ask(ctx context.Context, departmentID, question string) (answer string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("ask",
			"department_id", departmentID,
			"question_len", len(question),
			"answer_len", len(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, departmentID, question)
}
