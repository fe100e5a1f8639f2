package regexp

import (
	"strings"

	"github.com/fwojciec/timetable"
)

// minCells is the fewest cells a data row can have. Shorter fragments are
// table padding or truncated rows.
const minCells = 4

// AssembleSection builds a section from one table row. It reports false when
// the row has fewer than minCells cells.
//
// The Day cell decides how many meetings the section has. Start, End and
// Room values are matched to meetings by position: missing values leave the
// meeting's defaults in place and surplus values are dropped.
//
// Each cell fills at most one field. When columns collide, the field listed
// first in Columns takes the cell.
func AssembleSection(row string, cols Columns) (*timetable.Section, bool) {
	cells := strings.Split(row, cellEnd)
	if len(cells) < minCells {
		return nil, false
	}

	var meetCount int
	if cols.Day < len(cells) {
		meetCount = len(splitLines(cells[cols.Day]))
	}
	meets := make([]timetable.TimeSpan, meetCount)
	for j := range meets {
		meets[j] = timetable.NewTimeSpan()
	}

	section := &timetable.Section{}
	for i, cell := range cells {
		switch i {
		case cols.Section:
			section.Name = StripTags(cell)
		case cols.Instructor:
			section.Instructor = StripTags(lineBreakRegex.ReplaceAllString(cell, " "))
		case cols.Day:
			for j, token := range splitLinesStripped(cell) {
				meets[j].Day = timetable.ParseDay(token)
			}
		case cols.Start:
			for j, c := range parseClocks(cell, meetCount) {
				meets[j].Start = c
			}
		case cols.End:
			for j, c := range parseClocks(cell, meetCount) {
				meets[j].End = c
			}
		case cols.Room:
			section.Location = joinRooms(cell)
		}
	}

	section.ParsedTime.MeetTimes = meets
	return section, true
}

// parseClocks parses at most n line-separated times from cell. Tokens that
// do not parse yield timetable.ClockUnknown.
func parseClocks(cell string, n int) []timetable.Clock {
	tokens := splitLinesStripped(cell)
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	clocks := make([]timetable.Clock, len(tokens))
	for i, token := range tokens {
		clocks[i], _ = timetable.ParseClock(token)
	}
	return clocks
}

// joinRooms removes spaces inside each room name and joins the rooms with
// a single space.
func joinRooms(cell string) string {
	rooms := splitLinesStripped(cell)
	for i, room := range rooms {
		rooms[i] = strings.ReplaceAll(room, " ", "")
	}
	return strings.Join(rooms, " ")
}
