package regexp

import (
	"regexp"
	"strings"

	"github.com/fwojciec/timetable"
)

// circleRegex matches a parenthesized annotation with its surrounding spaces.
var circleRegex = regexp.MustCompile(`[ ]*\([^)]*\)[ ]*`)

// Detail labels. The label is removed by length, including the separator.
const (
	exclusionLabel    = "Exclusion: "
	prerequisiteLabel = "Prerequisites: "
	corequisiteLabel  = "Corequisites: "
)

// Detail holds the fields parsed from a course tooltip.
type Detail struct {
	Description   string
	Exclusions    string
	Prerequisites string
	Corequisites  string
}

// NormalizeName decodes a raw course title and returns the display name with
// parenthesized annotations removed, together with the categories whose
// markers appear anywhere in the decoded title.
func NormalizeName(raw string) (string, []timetable.Category) {
	name := entityFixes.Replace(Decode(raw))

	var categories []timetable.Category
	for _, category := range timetable.Categories {
		if strings.Contains(name, string(category)) {
			categories = append(categories, category)
		}
	}

	name = StripTags(circleRegex.ReplaceAllString(name, ""))
	return strings.Trim(name, " "), categories
}

// ParseDetail splits a tooltip into lines. The first line is the description;
// later lines starting with Exclusion, Prerequisite or Corequisite set the
// matching field, the last such line winning. Other lines are ignored.
func ParseDetail(raw string) Detail {
	lines := splitLinesStripped(raw)

	d := Detail{Description: Decode(lines[0])}
	for _, line := range lines[1:] {
		switch {
		case strings.HasPrefix(line, "Exclusion"):
			d.Exclusions = cutLabel(line, exclusionLabel)
		case strings.HasPrefix(line, "Prerequisite"):
			d.Prerequisites = cutLabel(line, prerequisiteLabel)
		case strings.HasPrefix(line, "Corequisite"):
			d.Corequisites = cutLabel(line, corequisiteLabel)
		}
	}
	return d
}

// cutLabel drops len(label) bytes from the start of line.
func cutLabel(line, label string) string {
	if len(line) <= len(label) {
		return ""
	}
	return line[len(label):]
}
