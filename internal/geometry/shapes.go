package geometry

import (
	"math"

	"github.com/san-kum/fusionsketch/internal/fusion"
)

// CoilArc samples a shell arc of the given radius over [-halfAngle, halfAngle].
func CoilArc(ballRadius, halfAngle float64, sampleCount int) fusion.Points {
	return arc(ballRadius, -halfAngle, halfAngle, sampleCount)
}

// PlasmaRing samples a full revolution; the first and last points coincide.
func PlasmaRing(plasmaRadius float64, sampleCount int) fusion.Points {
	return arc(plasmaRadius, 0, 2*math.Pi, sampleCount)
}

// ShellOutline is the great circle of the reactor shell.
func ShellOutline(ballRadius float64, sampleCount int) fusion.Points {
	return arc(ballRadius, 0, 2*math.Pi, sampleCount)
}

// CoilSet returns coilCount copies of the base arc spaced evenly around the
// shell. The first coil is CoilArc itself.
func CoilSet(ballRadius, halfAngle float64, coilCount, sampleCount int) []fusion.Points {
	if coilCount <= 0 {
		return nil
	}
	base := CoilArc(ballRadius, halfAngle, sampleCount)
	coils := make([]fusion.Points, coilCount)
	coils[0] = base
	for k := 1; k < coilCount; k++ {
		coils[k] = rotate(base, float64(k)*2*math.Pi/float64(coilCount))
	}
	return coils
}

// FieldLines sweeps every radius in [0.9, 1.1]·plasmaRadius for each angle in
// [-π, π], lifting each point by ballRadius·sin(t/2). Points are ordered
// angle-major.
func FieldLines(plasmaRadius, ballRadius float64, angularSamples, radialSamples int) fusion.Points {
	angles := fusion.Linspace(-math.Pi, math.Pi, angularSamples)
	radii := fusion.Linspace(0.9*plasmaRadius, 1.1*plasmaRadius, radialSamples)

	pts := make(fusion.Points, 0, len(angles)*len(radii))
	for _, t := range angles {
		sin, cos := math.Sincos(t)
		bulge := ballRadius * math.Sin(0.5*t)
		for _, r := range radii {
			pts = append(pts, fusion.Point{X: r * cos, Y: r*sin + bulge})
		}
	}
	return pts
}

func arc(radius, from, to float64, n int) fusion.Points {
	theta := fusion.Linspace(from, to, n)
	pts := make(fusion.Points, len(theta))
	for i, th := range theta {
		pts[i] = fusion.Point{X: radius * math.Cos(th), Y: radius * math.Sin(th)}
	}
	return pts
}

func rotate(pts fusion.Points, angle float64) fusion.Points {
	sin, cos := math.Sincos(angle)
	out := make(fusion.Points, len(pts))
	for i, p := range pts {
		out[i] = fusion.Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
	}
	return out
}
