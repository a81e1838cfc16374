// Package coolant estimates a single-pass supercritical CO2 cooling loop as
// a lumped control volume.
//
// The formulas are pure and validate their divisors: a zero or negative
// mass flow, specific heat, density, diameter or flow-path length yields a
// [*fusion.ParamError] wrapping [fusion.ErrDivisionUndefined].
//
//	rise, err := coolant.TemperatureRise(10000, 2.2, 850) // ≈ 5.35 K
//	outlet := coolant.OutletTemperature(193, rise)
//	status := coolant.Classify(outlet, 250)              // SAFE
package coolant
