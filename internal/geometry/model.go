package geometry

import (
	"fmt"
	"math"

	"github.com/san-kum/fusionsketch/internal/config"
	"github.com/san-kum/fusionsketch/internal/fusion"
)

// Model holds every point set of one reactor sketch.
type Model struct {
	Coils           []fusion.Points
	Plasma          fusion.Points
	Field           fusion.Points
	Shell           fusion.Points
	Faces           int
	CoilArea        float64
	AngularVelocity float64
	FieldTesla      float64
}

// Build evaluates the geometry for a reactor configuration.
func Build(cfg *config.Config) *Model {
	g := cfg.Geometry
	halfAngle := g.CoilHalfAngle * math.Pi / 180

	return &Model{
		Coils:           CoilSet(g.BallRadius, halfAngle, g.CoilCount, g.CoilSamples),
		Plasma:          PlasmaRing(g.PlasmaRadius, g.PlasmaSamples),
		Field:           FieldLines(g.PlasmaRadius, g.BallRadius, g.FieldAngular, g.FieldRadial),
		Shell:           ShellOutline(g.BallRadius, g.ShellSamples),
		Faces:           FaceCount(g.Pentagons, g.Hexagons),
		CoilArea:        CoilFootprint(g.BallRadius, halfAngle, g.CoilWidth),
		AngularVelocity: AngularVelocity(cfg.Reactor.RPM),
		FieldTesla:      cfg.Reactor.FieldTesla,
	}
}

// FaceCount is the number of shell panels of a truncated icosahedron style
// ball: 12 pentagons and 20 hexagons give 32.
func FaceCount(pentagons, hexagons int) int {
	return pentagons + hexagons
}

// CoilFootprint is the shell area one coil band covers: its arc length on the
// ball times the band width, in m².
func CoilFootprint(ballRadius, halfAngle, width float64) float64 {
	return 2 * halfAngle * ballRadius * width
}

// AngularVelocity converts revolutions per minute to rad/s.
func AngularVelocity(rpm float64) float64 {
	return rpm * 2 * math.Pi / 60
}

// Title formats the figure title from heat load and spin rate.
func Title(powerW, rpm float64) string {
	return fmt.Sprintf("Soccer Ball Reactor - %s kW @ %.0f RPM", trimFloat(powerW/1000), rpm)
}

// Figure lays the point sets out as a square, equal-aspect plot. Each coil is
// its own series but only the first one carries a legend entry. The shell is
// drawn only when sampled.
func (m *Model) Figure(title string) fusion.Figure {
	series := make([]fusion.Series, 0, len(m.Coils)+3)
	if len(m.Shell) > 0 {
		series = append(series, fusion.Series{
			Name: "Shell", Style: fusion.StyleDashed, Color: "#888888", Width: 1, Alpha: 0.4, Points: m.Shell,
		})
	}
	for i, c := range m.Coils {
		series = append(series, fusion.Series{
			Name: "Coils", Style: fusion.StyleLine, Color: "#00bfbf", Width: 4, Alpha: 1, Points: c, NoLegend: i > 0,
		})
	}
	series = append(series,
		fusion.Series{Name: "Plasma", Style: fusion.StyleLine, Color: "#ff0000", Width: 3, Alpha: 1, Points: m.Plasma},
		fusion.Series{Name: "B-field", Style: fusion.StyleLine, Color: "#0000ff", Width: 1, Alpha: 0.6, Points: m.Field},
	)

	return fusion.Figure{
		Title:       title,
		XLabel:      "x (m)",
		YLabel:      "y (m)",
		Square:      true,
		EqualAspect: true,
		Legend:      true,
		Series:      series,
	}
}

func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
