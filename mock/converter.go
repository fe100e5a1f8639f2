package mock

import "github.com/fwojciec/timetable"

var _ timetable.Converter = (*Converter)(nil)

// Converter is a mock implementation of timetable.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
