package coolant

import (
	"fmt"

	"github.com/san-kum/fusionsketch/internal/config"
	"github.com/san-kum/fusionsketch/internal/fusion"
)

// Result is the full loop estimate for one configuration.
type Result struct {
	Power       float64
	Inlet       float64
	MaxSafe     float64
	Rise        float64
	Outlet      float64
	TotalLength float64
	Velocity    float64
	Status      Status
	Profile     fusion.Points
}

// Evaluate runs every loop formula in order and stops at the first
// undefined one.
func Evaluate(cfg *config.Config) (*Result, error) {
	c := cfg.Coolant
	power := cfg.Reactor.Power

	rise, err := TemperatureRise(power, c.MassFlow, c.SpecificHeat)
	if err != nil {
		return nil, err
	}
	outlet := OutletTemperature(c.InletTemp, rise)
	total := TotalChannelLength(c.ChannelLength, cfg.Geometry.CoilCount, c.ChannelsPerCoil)

	velocity, err := FlowVelocity(c.MassFlow, c.Density, c.Diameter)
	if err != nil {
		return nil, err
	}

	profile, err := TemperatureProfile(c.InletTemp, rise, total, c.ProfileSamples)
	if err != nil {
		return nil, err
	}

	return &Result{
		Power:       power,
		Inlet:       c.InletTemp,
		MaxSafe:     c.MaxTemp,
		Rise:        rise,
		Outlet:      outlet,
		TotalLength: total,
		Velocity:    velocity,
		Status:      Classify(outlet, c.MaxTemp),
		Profile:     profile,
	}, nil
}

// Summary is the one-line console report.
func (r *Result) Summary() string {
	word := "OK"
	if r.Status == Unsafe {
		word = "UNSAFE"
	}
	return fmt.Sprintf("Cooling %s. Rise = %.1f K. Velocity = %.2f m/s.", word, r.Rise, r.Velocity)
}

const ProfileTitle = "Supercritical CO2 Cooling Profile"

func (r *Result) Figure() fusion.Figure {
	return fusion.Figure{
		Title:  ProfileTitle,
		XLabel: "Flow path (m)",
		YLabel: "Temp (K)",
		Legend: true,
		Grid:   true,
		Series: []fusion.Series{
			{Name: "CO2 temp", Style: fusion.StyleLine, Color: "#00bfbf", Width: 2, Alpha: 1, Points: r.Profile},
		},
		RefLines: []fusion.RefLine{
			{Name: fmt.Sprintf("Max safe (%.0f K)", r.MaxSafe), Y: r.MaxSafe, Color: "#ff0000"},
		},
	}
}
