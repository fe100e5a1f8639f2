// Package htmltomarkdown renders timetable HTML as Markdown using
// github.com/JohannesKaufmann/html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/timetable"
)

var _ timetable.Converter = (*Converter)(nil)

// Converter turns rendered timetable HTML into Markdown. Section tables
// become pipe tables. It is safe for concurrent use.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter with the table plugin enabled.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert returns the Markdown for html with a single trailing newline.
// Blank input is EINVALID.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", timetable.Errorf(timetable.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", timetable.Errorf(timetable.EINTERNAL, "convert HTML: %v", err)
	}

	return strings.TrimRight(md, "\n") + "\n", nil
}
