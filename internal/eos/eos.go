// Package eos provides the equation of state used to derive density from
// salinity and temperature when the simulation did not write a density
// snapshot directly.
package eos

// Reference state for the quadratic fit below.
const (
	RhoRef  = 1000.0 // kg/m^3
	TempRef = 15.0   // degrees C
	SaltRef = 0.0    // psu
)

// Fit coefficients for fresh-to-brackish water near the reference state.
const (
	alphaT  = -2.14e-1 // kg/m^3 per degree C
	alphaT2 = -4.58e-3 // kg/m^3 per (degree C)^2
	betaS   = 7.80e-1  // kg/m^3 per psu
)

// Density evaluates the quadratic equation of state at one point.
func Density(salt, temp float64) float64 {
	dt := temp - TempRef
	ds := salt - SaltRef
	return RhoRef + alphaT*dt + alphaT2*dt*dt + betaS*ds
}
