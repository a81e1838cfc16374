// Package fusion provides the shared primitives for the desktop reactor
// sketch models.
//
// The package defines the value types exchanged between the numeric models
// and the output sinks:
//
//   - [Point] and [Points]: ordered (x, y) samples
//   - [Series]: one named curve with its plot style
//   - [Figure]: a titled set of series and reference lines
//   - [Linspace]: inclusive uniform sampling of a closed interval
//
// Model errors are reported as [*ParamError] values wrapping
// [ErrDivisionUndefined], so callers can test them with errors.Is.
//
// # Example
//
//	theta := fusion.Linspace(0, 2*math.Pi, 100)
//	ring := make(fusion.Points, len(theta))
//	for i, t := range theta {
//	    ring[i] = fusion.Point{X: r * math.Cos(t), Y: r * math.Sin(t)}
//	}
package fusion
