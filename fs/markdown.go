package fs

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/fwojciec/timetable"
)

var _ timetable.Encoder = (*MarkdownEncoder)(nil)

var departmentTemplate = template.Must(template.New("department").Parse(`<h1>{{.Code}}{{with .Name}} {{.}}{{end}}</h1>
{{range .Courses}}<h2>{{.Abbr}}{{with .Name}} {{.}}{{end}}</h2>
{{with .Categories}}<p><em>{{.}}</em></p>
{{end}}{{with .Description}}<p>{{.}}</p>
{{end}}{{with .Requirements}}<ul>
{{range .}}<li><strong>{{.Label}}:</strong> {{.Value}}</li>
{{end}}</ul>
{{end}}{{with .Rows}}<table>
<thead><tr><th>Section</th><th>Instructor</th><th>Day</th><th>Start</th><th>End</th><th>Room</th></tr></thead>
<tbody>
{{range .}}<tr><td>{{.Section}}</td><td>{{.Instructor}}</td><td>{{.Day}}</td><td>{{.Start}}</td><td>{{.End}}</td><td>{{.Room}}</td></tr>
{{end}}</tbody>
</table>
{{end}}{{end}}`))

type departmentView struct {
	Code    string
	Name    string
	Courses []courseView
}

type courseView struct {
	Abbr         string
	Name         string
	Categories   string
	Description  string
	Requirements []requirementView
	Rows         []rowView
}

type requirementView struct {
	Label string
	Value string
}

// rowView is one table row. A section with several meetings spans several
// rows; only the first carries the section name, instructor and room.
type rowView struct {
	Section    string
	Instructor string
	Day        string
	Start      string
	End        string
	Room       string
}

// MarkdownEncoder renders a department as an HTML timetable and converts it
// to Markdown with YAML frontmatter.
type MarkdownEncoder struct {
	conv timetable.Converter
}

// NewMarkdownEncoder returns a MarkdownEncoder using conv for HTML to Markdown.
func NewMarkdownEncoder(conv timetable.Converter) *MarkdownEncoder {
	return &MarkdownEncoder{conv: conv}
}

// Ext returns ".md".
func (e *MarkdownEncoder) Ext() string { return ".md" }

// Encode writes the frontmatter followed by the converted timetable.
func (e *MarkdownEncoder) Encode(w io.Writer, dept *timetable.Department, courses []*timetable.Course) error {
	html, err := RenderHTML(dept, courses)
	if err != nil {
		return err
	}

	md, err := e.conv.Convert(html)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, FormatFrontmatter(dept, len(courses))+md)
	return err
}

// RenderHTML renders a department's courses as an HTML document with one
// heading and section table per course.
func RenderHTML(dept *timetable.Department, courses []*timetable.Course) (string, error) {
	view := departmentView{Code: dept.Code, Name: dept.Name}
	for _, c := range courses {
		view.Courses = append(view.Courses, newCourseView(c))
	}

	var buf bytes.Buffer
	if err := departmentTemplate.Execute(&buf, view); err != nil {
		return "", timetable.Errorf(timetable.EINTERNAL, "render %s: %v", dept.Code, err)
	}
	return buf.String(), nil
}

func newCourseView(c *timetable.Course) courseView {
	v := courseView{
		Abbr:        c.Abbr(),
		Name:        c.Name,
		Description: c.Description,
	}

	cats := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		cats[i] = string(cat)
	}
	v.Categories = strings.Join(cats, ", ")

	for _, r := range []requirementView{
		{"Exclusions", c.Exclusions},
		{"Prerequisites", c.Prerequisites},
		{"Corequisites", c.Corequisites},
	} {
		if r.Value != "" {
			v.Requirements = append(v.Requirements, r)
		}
	}

	for _, s := range c.Sections {
		first := rowView{Section: s.Name, Instructor: s.Instructor, Room: s.Location}
		if len(s.ParsedTime.MeetTimes) == 0 {
			v.Rows = append(v.Rows, first)
			continue
		}
		for i, span := range s.ParsedTime.MeetTimes {
			row := rowView{}
			if i == 0 {
				row = first
			}
			row.Day = span.Day.String()
			row.Start = span.Start.String()
			row.End = span.End.String()
			v.Rows = append(v.Rows, row)
		}
	}

	return v
}

// FormatFrontmatter returns the YAML frontmatter block for a department file.
func FormatFrontmatter(dept *timetable.Department, courses int) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("department: ")
	b.WriteString(dept.Code)
	if dept.Name != "" {
		b.WriteString("\nname: ")
		b.WriteString(dept.Name)
	}
	b.WriteString("\nsource: ")
	b.WriteString(dept.SourceURL)
	if !dept.FetchedAt.IsZero() {
		b.WriteString("\nfetched: ")
		b.WriteString(dept.FetchedAt.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "\ncourses: %d", courses)
	b.WriteString("\n---\n\n")
	return b.String()
}
