package regexp

import (
	"iter"
	"regexp"
)

// courseRegex matches one course: the identifying span with its tooltip, the
// display title, and everything up to the end of the course's section table.
// All repetitions are non-greedy so a block stops at the first closing table
// tag instead of running into the next course.
var courseRegex = regexp.MustCompile(
	`<span id='(?P<code>[A-Z]{3}[0-9]{3})(?P<prefix>[HY][0-9])(?P<semester>[FSY])'` +
		`.*?title='(?P<detail>[^']*)'` +
		`.*?[A-Z]{3}[0-9]{3}[HY][0-9][FSY] - (?P<name>.*?)</span>` +
		`(?P<content>.*?)(?:</table>|$)`)

var (
	codeGroup     = courseRegex.SubexpIndex("code")
	prefixGroup   = courseRegex.SubexpIndex("prefix")
	semesterGroup = courseRegex.SubexpIndex("semester")
	detailGroup   = courseRegex.SubexpIndex("detail")
	nameGroup     = courseRegex.SubexpIndex("name")
	contentGroup  = courseRegex.SubexpIndex("content")
)

// Block is the raw text of one course on a timetable page.
type Block struct {
	Code     string // e.g. CSC108
	Prefix   string // term length, e.g. H5
	Semester string // F, S or Y
	Detail   string // tooltip text with description and requisites
	Name     string // display title, still encoded
	Content  string // section table markup
}

// Segment yields the course blocks of page in page order. The page must not
// contain line breaks. A page without courses yields nothing.
func Segment(page string) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		rest := page
		for {
			loc := courseRegex.FindStringSubmatchIndex(rest)
			if loc == nil {
				return
			}
			if !yield(newBlock(rest, loc)) {
				return
			}
			rest = rest[loc[1]:]
		}
	}
}

func newBlock(s string, loc []int) Block {
	group := func(i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return s[loc[2*i]:loc[2*i+1]]
	}
	return Block{
		Code:     group(codeGroup),
		Prefix:   group(prefixGroup),
		Semester: group(semesterGroup),
		Detail:   group(detailGroup),
		Name:     group(nameGroup),
		Content:  group(contentGroup),
	}
}
