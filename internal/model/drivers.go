package model

import "github.com/san-kum/aviasim/internal/dynamo"

const (
	DriverMin = 0.1
	DriverMax = 1.0

	CouplingMin = 0.05
	CouplingMax = 0.95

	// RateLimit bounds every component of dX/dt.
	RateLimit = 0.5
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Driver evaluates F(t) = a + b*t for p = (a, b), clamped to [0.1, 1.0].
func Driver(t float64, p dynamo.Pair) float64 {
	return clamp(p[0]+p[1]*t, DriverMin, DriverMax)
}

// Drivers evaluates all five drivers at time t.
func Drivers(t float64, params [dynamo.NumDrivers]dynamo.Pair) [dynamo.NumDrivers]float64 {
	var out [dynamo.NumDrivers]float64
	for i, p := range params {
		out[i] = Driver(t, p)
	}
	return out
}

// CanonicalDrivers are the fitted exogenous trends. They describe the modeled
// system and are never randomized.
var CanonicalDrivers = [dynamo.NumDrivers]dynamo.Pair{
	{0.63, 0.37},  // F1 average service life before write-off
	{1.00, -0.23}, // F2 share of foreign-registered aircraft
	{1.00, -0.33}, // F3 average pilot flight experience
	{0.51, 0.46},  // F4 aviation fuel cost
	{0.60, 0.40},  // F5 number of regulatory acts
}
