package fusion

import "gonum.org/v1/gonum/floats"

// Linspace returns n values uniformly spaced over [lo, hi], both ends
// included. n <= 0 yields an empty slice and n == 1 yields [lo].
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{lo}
	}
	dst := floats.Span(make([]float64, n), lo, hi)
	dst[n-1] = hi
	return dst
}
