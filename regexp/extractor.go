// Package regexp implements timetable.CourseExtractor with anchored,
// non-greedy regular expressions over the raw page text.
//
// Timetable pages are not well-formed HTML and only a few patterns in them
// matter, so the extractor does not build a DOM. Go's RE2 engine matches in
// time linear in the input and compiled patterns are safe for concurrent
// use, so one Extractor may serve many pages at once.
package regexp

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/timetable"
)

// DefaultCampus is the campus recorded on extracted courses.
const DefaultCampus = "UTM"

// Ensure Extractor implements timetable.CourseExtractor at compile time.
var _ timetable.CourseExtractor = (*Extractor)(nil)

var newlines = strings.NewReplacer("\n", "", "\r", "")

// Extractor extracts courses from timetable pages.
type Extractor struct {
	campus string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCampus sets the campus recorded on each course.
func WithCampus(campus string) Option {
	return func(e *Extractor) {
		e.campus = campus
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{campus: DefaultCampus}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the courses on page in page order. Blocks that do not look
// like courses and rows with too few cells are skipped. The only error is
// EINVALID for a page that is not valid UTF-8.
func (e *Extractor) Extract(department, page string) ([]*timetable.Course, error) {
	if !utf8.ValidString(page) {
		return nil, timetable.Errorf(timetable.EINVALID, "page is not valid UTF-8 text")
	}

	courses := []*timetable.Course{}
	for block := range Segment(newlines.Replace(page)) {
		course := e.course(department, block)
		course.Position = len(courses)
		courses = append(courses, course)
	}
	return courses, nil
}

func (e *Extractor) course(department string, b Block) *timetable.Course {
	name, categories := NormalizeName(b.Name)
	detail := ParseDetail(b.Detail)

	course := &timetable.Course{
		Department:     department,
		Code:           b.Code,
		SemesterPrefix: b.Prefix,
		Semester:       b.Semester,
		Campus:         e.campus,
		Name:           name,
		Description:    detail.Description,
		Exclusions:     detail.Exclusions,
		Prerequisites:  detail.Prerequisites,
		Corequisites:   detail.Corequisites,
		Sections:       []*timetable.Section{},
	}

	for _, category := range categories {
		course.AddCategory(category)
	}

	rows := strings.Split(b.Content, rowEnd)
	cols := MapColumns(rows[0])
	for _, row := range rows[1:] {
		if section, ok := AssembleSection(row, cols); ok {
			course.Sections = append(course.Sections, section)
		}
	}
	return course
}
