// Package goquery finds department timetable links on an index page using
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/timetable"
)

var _ timetable.DepartmentSelector = (*DepartmentSelector)(nil)

// DefaultParam is the query parameter naming the department in a
// timetable link, as in "?dept=CSC".
const DefaultParam = "dept"

// DefaultSelector matches every anchor on the page.
const DefaultSelector = "a[href]"

// DepartmentSelector extracts departments from anchors whose href carries
// the department query parameter.
type DepartmentSelector struct {
	param    string
	selector string
}

// Option configures a DepartmentSelector.
type Option func(*DepartmentSelector)

// WithParam sets the department query parameter name.
func WithParam(name string) Option {
	return func(s *DepartmentSelector) {
		s.param = name
	}
}

// WithSelector restricts the anchors considered to those matching a CSS selector.
func WithSelector(css string) Option {
	return func(s *DepartmentSelector) {
		s.selector = css
	}
}

// NewDepartmentSelector returns a DepartmentSelector with the given options.
func NewDepartmentSelector(opts ...Option) *DepartmentSelector {
	s := &DepartmentSelector{
		param:    DefaultParam,
		selector: DefaultSelector,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectDepartments returns one department per distinct code in document
// order. Links to other hosts are ignored. Codes are upper-cased; the name is
// the link text with whitespace collapsed, or the code when the text is empty.
func (s *DepartmentSelector) SelectDepartments(html string, baseURL string) ([]*timetable.Department, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, timetable.Errorf(timetable.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, timetable.Errorf(timetable.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	depts := []*timetable.Department{}

	doc.Find(s.selector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == nil || resolved.Host != base.Host {
			return
		}

		code := strings.ToUpper(strings.TrimSpace(resolved.Query().Get(s.param)))
		if code == "" || seen[code] {
			return
		}
		seen[code] = true

		name := strings.Join(strings.Fields(sel.Text()), " ")
		if name == "" {
			name = code
		}

		depts = append(depts, &timetable.Department{
			Code:      code,
			Name:      name,
			SourceURL: resolved.String(),
		})
	})

	return depts, nil
}

// resolveURL resolves href against base with the fragment stripped.
// Returns nil if href cannot be parsed.
func resolveURL(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
