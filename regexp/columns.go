package regexp

import "strings"

// Columns holds the zero-based cell index of each field in a section row.
//
// A field whose label is missing from the header keeps index 0 and so
// shares the first column, usually Section. Callers get no error for it.
type Columns struct {
	Section    int
	Instructor int
	Day        int
	Start      int
	End        int
	Room       int
}

// MapColumns reads the header row of a section table. Unrecognized labels
// take up a position but are otherwise ignored; a label that appears twice
// maps to its later position.
func MapColumns(header string) Columns {
	var cols Columns
	labels := strings.Split(StripTags(strings.ReplaceAll(header, headerEnd, lineDelimiter)), lineDelimiter)
	for i, label := range labels {
		switch strings.TrimSpace(label) {
		case "Section":
			cols.Section = i
		case "Instructor":
			cols.Instructor = i
		case "Day":
			cols.Day = i
		case "Start":
			cols.Start = i
		case "End":
			cols.End = i
		case "Room":
			cols.Room = i
		}
	}
	return cols
}
