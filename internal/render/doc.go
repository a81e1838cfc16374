// Package render draws [fusion.Figure] values.
//
// The models never call into this package; the CLI picks one or more sinks:
//
//   - [Terminal]: Braille canvas for equal-aspect figures, asciigraph for
//     line profiles
//   - [SVG]: one file per figure in an output directory
//   - [Multi]: fan-out to several sinks
package render

import "github.com/san-kum/fusionsketch/internal/fusion"

// Sink consumes figures. Implementations must not modify the figure.
type Sink interface {
	Render(fig fusion.Figure) error
}

// Multi renders to each sink in order and stops at the first error.
type Multi []Sink

func (m Multi) Render(fig fusion.Figure) error {
	for _, s := range m {
		if err := s.Render(fig); err != nil {
			return err
		}
	}
	return nil
}
