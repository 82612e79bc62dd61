package dynamo

import (
	"fmt"
	"math"
)

// Dimensions of the aviation-safety model.
const (
	NumIndicators = 8
	NumDrivers    = 5
	NumCouplings  = 18
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MaxAbs returns the largest absolute component.
func (s State) MaxAbs() float64 {
	m := 0.0
	for _, v := range s {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// Pair is an affine coefficient pair. Drivers read it as (intercept, slope)
// over time, couplings as (slope, intercept) over one state component.
type Pair [2]float64

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(sys System, x State, t float64, dt float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	// StepAdaptive attempts one step of size dt. It returns the proposed
	// state and the next step size; a non-nil error of ErrStepRejected
	// means the proposal must be discarded and retried with the new size.
	StepAdaptive(sys System, x State, t, dt float64, tol Tolerance) (State, float64, error)
}

type Tolerance struct {
	Rel float64
	Abs float64
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnSample(i int, x State, t float64)
}

// Config drives one integration over the normalized horizon [0, 1].
type Config struct {
	Samples         int
	Tolerance       Tolerance
	MaxSteps        int
	MinDt           float64
	Substeps        int
	DivergenceLimit float64
}

func DefaultConfig() Config {
	return Config{
		Samples:         50,
		Tolerance:       Tolerance{Rel: 1e-6, Abs: 1e-9},
		MaxSteps:        100000,
		MinDt:           1e-12,
		Substeps:        10,
		DivergenceLimit: 10,
	}
}

func (c Config) Validate() error {
	if c.Samples < 2 {
		return fmt.Errorf("samples must be at least 2, got %d", c.Samples)
	}
	if c.Tolerance.Rel <= 0 || c.Tolerance.Abs <= 0 {
		return fmt.Errorf("tolerances must be positive, got rel=%g abs=%g", c.Tolerance.Rel, c.Tolerance.Abs)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be positive, got %d", c.MaxSteps)
	}
	if c.Substeps <= 0 {
		return fmt.Errorf("substeps must be positive, got %d", c.Substeps)
	}
	if c.DivergenceLimit <= 0 {
		return fmt.Errorf("divergence limit must be positive, got %g", c.DivergenceLimit)
	}
	return nil
}

// Grid returns n evenly spaced points over [0, 1] with exact endpoints.
func Grid(n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{0}
	}
	g := make([]float64, n)
	for i := range g {
		g[i] = float64(i) / float64(n-1)
	}
	g[n-1] = 1
	return g
}

// Trajectory is an immutable sampled solution: States[i] is the state at Times[i].
type Trajectory struct {
	Times  []float64
	States []State
}

func (tr *Trajectory) Len() int { return len(tr.States) }

// Column extracts the time series of indicator i.
func (tr *Trajectory) Column(i int) []float64 {
	col := make([]float64, len(tr.States))
	for k, s := range tr.States {
		col[k] = s[i]
	}
	return col
}

// Matrix copies the states into plain rows.
func (tr *Trajectory) Matrix() [][]float64 {
	rows := make([][]float64, len(tr.States))
	for i, s := range tr.States {
		rows[i] = s.Clone()
	}
	return rows
}

type Result struct {
	Trajectory
	Metrics       map[string]float64
	StepsTaken    int
	StepsRejected int
}
