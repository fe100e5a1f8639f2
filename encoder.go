package timetable

import "io"

// Encoder serializes a department's courses.
type Encoder interface {
	// Encode writes dept and its courses, in the given order, to w.
	Encode(w io.Writer, dept *Department, courses []*Course) error

	// Ext returns the file extension for encoded output, e.g. ".md".
	Ext() string
}
