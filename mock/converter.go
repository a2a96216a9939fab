package mock

import "github.com/fwojciec/triplify"

var _ triplify.Converter = (*Converter)(nil)

// Converter is a mock implementation of triplify.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
