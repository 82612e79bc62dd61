package model

import "github.com/san-kum/aviasim/internal/dynamo"

// Aviation is the coupled 8-indicator safety model driven by five exogenous
// trends. Parameters are fixed at construction; the value is safe to share.
type Aviation struct {
	drivers   [dynamo.NumDrivers]dynamo.Pair
	couplings [dynamo.NumCouplings]dynamo.Pair
}

func NewAviation(drivers [dynamo.NumDrivers]dynamo.Pair, couplings [dynamo.NumCouplings]dynamo.Pair) *Aviation {
	return &Aviation{drivers: drivers, couplings: couplings}
}

func NewCanonicalAviation() *Aviation {
	return NewAviation(CanonicalDrivers, CanonicalCouplings)
}

func (a *Aviation) StateDim() int { return dynamo.NumIndicators }

func (a *Aviation) DriverParams() [dynamo.NumDrivers]dynamo.Pair { return a.drivers }

func (a *Aviation) CouplingParams() [dynamo.NumCouplings]dynamo.Pair { return a.couplings }

// Derive assembles dX/dt at time t. Each component is clamped to
// [-RateLimit, RateLimit].
func (a *Aviation) Derive(x dynamo.State, t float64) dynamo.State {
	F := Drivers(t, a.drivers)
	f := Couplings(x, a.couplings)
	F1, F2, F3, F4, F5 := F[0], F[1], F[2], F[3], F[4]

	dx := dynamo.State{
		F3 - f[0]*f[1]*f[2],
		(F1+F2+F4)*f[3]*f[4]*f[5] - (F3+F5)*f[6],
		F4*f[7] - (F3+F5)*f[8],
		F2*f[9]*f[10] - (F3+F5)*f[11],
		f[12] - F5,
		F2*f[13] - F5,
		F2*f[14]*f[15]*f[16] - (F3 + F5),
		F5 - f[17],
	}
	for i := range dx {
		dx[i] = clamp(dx[i], -RateLimit, RateLimit)
	}
	return dx
}

func (a *Aviation) DefaultState() dynamo.State {
	return dynamo.State{0.5, 0.6, 0.4, 0.55, 0.3, 0.35, 0.45, 0.25}
}
