package fusion

import "gonum.org/v1/gonum/floats"

type Point struct {
	X float64
	Y float64
}

type Points []Point

// Xs returns the x coordinates in order.
func (p Points) Xs() []float64 {
	xs := make([]float64, len(p))
	for i, pt := range p {
		xs[i] = pt.X
	}
	return xs
}

// Ys returns the y coordinates in order.
func (p Points) Ys() []float64 {
	ys := make([]float64, len(p))
	for i, pt := range p {
		ys[i] = pt.Y
	}
	return ys
}

// Bounds returns the bounding box of the points. An empty set yields zeros.
func (p Points) Bounds() (minX, maxX, minY, maxY float64) {
	if len(p) == 0 {
		return 0, 0, 0, 0
	}
	xs, ys := p.Xs(), p.Ys()
	return floats.Min(xs), floats.Max(xs), floats.Min(ys), floats.Max(ys)
}

type Style int

const (
	StyleLine Style = iota
	StyleDashed
	StyleMarker
)

type Series struct {
	Name   string
	Style  Style
	Color  string
	Width  float64
	Alpha  float64
	Points Points

	// NoLegend hides the entry for series that continue an earlier one.
	NoLegend bool
}

// RefLine is a horizontal reference line drawn across the whole x range.
type RefLine struct {
	Name  string
	Y     float64
	Color string
}

type Figure struct {
	Title       string
	XLabel      string
	YLabel      string
	Square      bool
	EqualAspect bool
	Legend      bool
	Grid        bool
	Series      []Series
	RefLines    []RefLine
}

// Bounds returns the bounding box over every series, widened in y to
// include the reference lines.
func (f Figure) Bounds() (minX, maxX, minY, maxY float64) {
	var all Points
	for _, s := range f.Series {
		all = append(all, s.Points...)
	}
	minX, maxX, minY, maxY = all.Bounds()
	for i, ref := range f.RefLines {
		if len(all) == 0 && i == 0 {
			minY, maxY = ref.Y, ref.Y
			continue
		}
		if ref.Y < minY {
			minY = ref.Y
		}
		if ref.Y > maxY {
			maxY = ref.Y
		}
	}
	return minX, maxX, minY, maxY
}

// Len returns the total number of points across all series.
func (f Figure) Len() int {
	n := 0
	for _, s := range f.Series {
		n += len(s.Points)
	}
	return n
}
