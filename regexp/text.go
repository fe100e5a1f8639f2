package regexp

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Markers of the timetable markup. The pages are not well-formed, so rows and
// cells are located by their closing tags.
const (
	rowEnd    = "</tr>"
	cellEnd   = "</td>"
	headerEnd = "</th>"

	// lineDelimiter replaces line breaks before splitting. It never occurs
	// in the timetable text itself.
	lineDelimiter = "|"
)

var (
	tagRegex       = regexp.MustCompile(`<[^>]*>`)
	lineBreakRegex = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// entityFixes maps tokens the source emits in place of accented characters.
var entityFixes = strings.NewReplacer("<esp233>", "é")

// StripTags removes every markup tag from s. Text without tags is returned unchanged.
func StripTags(s string) string {
	return tagRegex.ReplaceAllString(s, "")
}

// Decode resolves HTML entities in s.
func Decode(s string) string {
	return html.UnescapeString(s)
}

// splitLines splits s on line-break tags. The result always has at least one element.
func splitLines(s string) []string {
	return strings.Split(lineBreakRegex.ReplaceAllString(s, lineDelimiter), lineDelimiter)
}

// splitLinesStripped splits s on line-break tags and strips markup from each line.
func splitLinesStripped(s string) []string {
	lines := splitLines(s)
	for i, line := range lines {
		lines[i] = StripTags(line)
	}
	return lines
}
