package timetable

import (
	"fmt"
	"strings"
)

// FormatCourses renders courses as plain text for display or LLM context.
// Courses are separated by blank lines.
func FormatCourses(courses []*Course) string {
	if len(courses) == 0 {
		return ""
	}

	parts := make([]string, 0, len(courses))
	for _, c := range courses {
		parts = append(parts, FormatCourse(c))
	}
	return strings.Join(parts, "\n\n")
}

// FormatCourse renders a single course header followed by one line per section.
func FormatCourse(c *Course) string {
	var b strings.Builder

	b.WriteString("## " + c.Abbr())
	if c.Name != "" {
		b.WriteString(" " + c.Name)
	}
	if len(c.Categories) > 0 {
		cats := make([]string, len(c.Categories))
		for i, cat := range c.Categories {
			cats[i] = string(cat)
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(cats, ", "))
	}

	writeField(&b, "", c.Description)
	writeField(&b, "Exclusions: ", c.Exclusions)
	writeField(&b, "Prerequisites: ", c.Prerequisites)
	writeField(&b, "Corequisites: ", c.Corequisites)

	for _, s := range c.Sections {
		b.WriteString("\n" + FormatSection(s))
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString("\n" + label + value)
}

// FormatSection renders a section as "NAME  INSTRUCTOR  MEETINGS  LOCATION",
// omitting empty columns.
func FormatSection(s *Section) string {
	fields := []string{"- " + s.Name}
	if s.Instructor != "" {
		fields = append(fields, s.Instructor)
	}
	if meets := FormatMeetTimes(s.ParsedTime.MeetTimes); meets != "" {
		fields = append(fields, meets)
	}
	if s.Location != "" {
		fields = append(fields, s.Location)
	}
	return strings.Join(fields, "  ")
}

// FormatMeetTimes renders spans as "Monday 10:00-11:00, Wednesday 14:00-15:00".
// Spans without a recognized day print "?" in its place.
func FormatMeetTimes(spans []TimeSpan) string {
	parts := make([]string, 0, len(spans))
	for _, span := range spans {
		day := span.Day.String()
		if day == "" {
			day = "?"
		}
		parts = append(parts, fmt.Sprintf("%s %s-%s", day, span.Start, span.End))
	}
	return strings.Join(parts, ", ")
}
