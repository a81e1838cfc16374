package coolant

import (
	"math"

	"github.com/san-kum/fusionsketch/internal/fusion"
)

// positive reports whether v is a usable divisor: NaN and values <= 0 are not.
func positive(v float64) bool {
	return v > 0
}

// TemperatureRise is the coolant temperature increase P / (ṁ·cp) in kelvin.
func TemperatureRise(power, massFlow, specificHeat float64) (float64, error) {
	if !positive(massFlow) {
		return 0, fusion.DivisionUndefined("mass_flow", massFlow)
	}
	if !positive(specificHeat) {
		return 0, fusion.DivisionUndefined("specific_heat", specificHeat)
	}
	return power / (massFlow * specificHeat), nil
}

func OutletTemperature(inlet, rise float64) float64 {
	return inlet + rise
}

func TotalChannelLength(lengthPerCoil float64, coilCount, channelsPerCoil int) float64 {
	return lengthPerCoil * float64(coilCount) * float64(channelsPerCoil)
}

// FlowVelocity is the mean velocity ṁ / (ρ·A) through one circular channel.
func FlowVelocity(massFlow, density, diameter float64) (float64, error) {
	if !positive(density) {
		return 0, fusion.DivisionUndefined("density", density)
	}
	if !positive(diameter) {
		return 0, fusion.DivisionUndefined("channel_diameter", diameter)
	}
	r := diameter / 2
	return massFlow / (density * math.Pi * r * r), nil
}

// TemperatureProfile interpolates linearly from inlet to inlet+rise along the
// flow path. Each point is (distance, temperature).
func TemperatureProfile(inlet, rise, totalLength float64, sampleCount int) (fusion.Points, error) {
	if !positive(totalLength) || math.IsInf(totalLength, 1) {
		return nil, fusion.DivisionUndefined("total_length", totalLength)
	}
	dist := fusion.Linspace(0, totalLength, sampleCount)
	pts := make(fusion.Points, len(dist))
	for i, d := range dist {
		pts[i] = fusion.Point{X: d, Y: inlet + rise*(d/totalLength)}
	}
	return pts, nil
}
