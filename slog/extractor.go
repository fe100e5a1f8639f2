package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/timetable"
)

// Ensure LoggingExtractor implements timetable.CourseExtractor.
var _ timetable.CourseExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a CourseExtractor. It logs one record per page and,
// at debug level, one record per course with its section names.
type LoggingExtractor struct {
	next   timetable.CourseExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next timetable.CourseExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(department, page string) (courses []*timetable.Course, err error) {
	defer func(begin time.Time) {
		var sections int
		for _, c := range courses {
			sections += len(c.Sections)
			e.logger.Debug("course",
				"department", department,
				"abbr", c.Abbr(),
				"sections", sectionNames(c),
			)
		}
		e.logger.Info("extract",
			"department", department,
			"bytes", len(page),
			"courses", len(courses),
			"sections", sections,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(department, page)
}

func sectionNames(c *timetable.Course) []string {
	names := make([]string, len(c.Sections))
	for i, s := range c.Sections {
		names[i] = s.Name
	}
	return names
}
