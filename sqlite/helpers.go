package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/timetable"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// parseOptionalRFC3339 is like parseRFC3339 but maps "" to the zero time.
func parseOptionalRFC3339(value, fieldName string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return parseRFC3339(value, fieldName)
}

// formatOptionalRFC3339 formats t, or returns "" for the zero time.
func formatOptionalRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
// SQLite requires a LIMIT before OFFSET, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// joinCategories stores categories as a comma-separated list.
func joinCategories(categories []timetable.Category) string {
	parts := make([]string, len(categories))
	for i, c := range categories {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}

// splitCategories reverses joinCategories.
func splitCategories(s string) []timetable.Category {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	categories := make([]timetable.Category, len(parts))
	for i, p := range parts {
		categories[i] = timetable.Category(p)
	}
	return categories
}
