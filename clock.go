package timetable

import (
	"fmt"
	"strings"
	"time"
)

// Day is a day of the week on which a section meets.
type Day int

// Day constants. DayUnknown is the value of unrecognized tokens.
const (
	DayUnknown Day = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// String returns the English name of the day, or "" for DayUnknown.
func (d Day) String() string {
	if d < DayUnknown || d > Sunday {
		return ""
	}
	return dayNames[d]
}

var dayTokens = map[string]Day{
	"MO": Monday, "MON": Monday, "MONDAY": Monday,
	"TU": Tuesday, "TUE": Tuesday, "TUES": Tuesday, "TUESDAY": Tuesday,
	"WE": Wednesday, "WED": Wednesday, "WEDNESDAY": Wednesday,
	"TH": Thursday, "THU": Thursday, "THUR": Thursday, "THURS": Thursday, "THURSDAY": Thursday,
	"FR": Friday, "FRI": Friday, "FRIDAY": Friday,
	"SA": Saturday, "SAT": Saturday, "SATURDAY": Saturday,
	"SU": Sunday, "SUN": Sunday, "SUNDAY": Sunday,
}

// ParseDay maps a day abbreviation such as "MO" or "Wed" to a Day.
// Unrecognized tokens map to DayUnknown.
func ParseDay(token string) Day {
	return dayTokens[strings.ToUpper(strings.TrimSpace(token))]
}

// Clock is a time of day encoded as a quarter-hour index: 10:00 is 40,
// 14:30 is 58. Minutes are truncated to the quarter hour.
type Clock uint8

// ClockUnknown marks a time that was missing or could not be parsed.
const ClockUnknown Clock = 0xFF

// MaxClock is the last valid quarter-hour index (23:45).
const MaxClock Clock = 24*4 - 1

// ParseClock parses an "HH:MM" token. On failure it returns ClockUnknown and false.
func ParseClock(token string) (Clock, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(token))
	if err != nil {
		return ClockUnknown, false
	}
	return Clock(t.Hour()*4 + t.Minute()/15), true
}

// Valid reports whether c encodes a time of day.
func (c Clock) Valid() bool {
	return c <= MaxClock
}

// Hour returns the hour component of a valid clock.
func (c Clock) Hour() int { return int(c) / 4 }

// Minute returns the minute component of a valid clock.
func (c Clock) Minute() int { return int(c) % 4 * 15 }

// String formats the clock as "HH:MM", or "--:--" when unknown.
func (c Clock) String() string {
	if !c.Valid() {
		return "--:--"
	}
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}
