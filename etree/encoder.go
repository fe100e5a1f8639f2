// Package etree exports department timetables as XML using
// github.com/beevik/etree.
package etree

import (
	"io"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/timetable"
)

var _ timetable.Encoder = (*Encoder)(nil)

// Encoder writes a department's courses as an indented XML document:
//
//	<timetable department="CSC">
//	  <course abbr="CSC108H5F" code="CSC108" prefix="H5" semester="F">
//	    <name>...</name>
//	    <section name="LEC0101">
//	      <meet day="Monday" start="10:00" end="11:00"/>
//	    </section>
//	  </course>
//	</timetable>
//
// Unknown days and times are left out of <meet>.
type Encoder struct {
	indent int
}

// NewEncoder returns an Encoder indenting by indent spaces.
func NewEncoder(indent int) *Encoder {
	return &Encoder{indent: indent}
}

// Ext returns ".xml".
func (e *Encoder) Ext() string { return ".xml" }

// Encode writes the XML document to w.
func (e *Encoder) Encode(w io.Writer, dept *timetable.Department, courses []*timetable.Course) error {
	doc := BuildDocument(dept, courses)
	doc.Indent(e.indent)
	_, err := doc.WriteTo(w)
	return err
}

// BuildDocument returns the XML document for a department's courses.
func BuildDocument(dept *timetable.Department, courses []*timetable.Course) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("timetable")
	root.CreateAttr("department", dept.Code)
	setAttr(root, "name", dept.Name)
	setAttr(root, "source", dept.SourceURL)
	if !dept.FetchedAt.IsZero() {
		root.CreateAttr("fetched", dept.FetchedAt.UTC().Format(time.RFC3339))
	}

	for _, c := range courses {
		addCourse(root, c)
	}
	return doc
}

func addCourse(parent *etree.Element, c *timetable.Course) {
	el := parent.CreateElement("course")
	el.CreateAttr("abbr", c.Abbr())
	el.CreateAttr("code", c.Code)
	el.CreateAttr("prefix", c.SemesterPrefix)
	el.CreateAttr("semester", c.Semester)
	setAttr(el, "campus", c.Campus)

	setText(el, "name", c.Name)
	for _, cat := range c.Categories {
		el.CreateElement("category").SetText(string(cat))
	}
	setText(el, "description", c.Description)
	setText(el, "exclusions", c.Exclusions)
	setText(el, "prerequisites", c.Prerequisites)
	setText(el, "corequisites", c.Corequisites)

	for _, s := range c.Sections {
		sec := el.CreateElement("section")
		sec.CreateAttr("name", s.Name)
		setText(sec, "instructor", s.Instructor)
		setText(sec, "location", s.Location)
		for _, span := range s.ParsedTime.MeetTimes {
			meet := sec.CreateElement("meet")
			setAttr(meet, "day", span.Day.String())
			if span.Start.Valid() {
				meet.CreateAttr("start", span.Start.String())
			}
			if span.End.Valid() {
				meet.CreateAttr("end", span.End.String())
			}
		}
	}
}

func setAttr(el *etree.Element, key, value string) {
	if value != "" {
		el.CreateAttr(key, value)
	}
}

func setText(parent *etree.Element, tag, text string) {
	if text != "" {
		parent.CreateElement(tag).SetText(text)
	}
}
