package scenario

import (
	"github.com/san-kum/aviasim/internal/dynamo"
	"github.com/san-kum/aviasim/internal/model"
)

// Scenario is the full input for one run. Builders return fresh values;
// nothing downstream mutates them.
type Scenario struct {
	Initial      [dynamo.NumIndicators]float64    `json:"initial" yaml:"initial"`
	Drivers      [dynamo.NumDrivers]dynamo.Pair   `json:"drivers" yaml:"drivers"`
	Couplings    [dynamo.NumCouplings]dynamo.Pair `json:"couplings" yaml:"couplings"`
	Restrictions [dynamo.NumIndicators]float64    `json:"restrictions" yaml:"restrictions"`
}

// Canonical initial state and restrictions used by fixed mode.
var (
	CanonicalInitial      = [dynamo.NumIndicators]float64{0.5, 0.6, 0.4, 0.55, 0.3, 0.35, 0.45, 0.25}
	CanonicalRestrictions = [dynamo.NumIndicators]float64{0.9, 0.95, 0.85, 0.9, 0.7, 0.75, 0.8, 0.6}
)

func Canonical() *Scenario {
	return &Scenario{
		Initial:      CanonicalInitial,
		Drivers:      model.CanonicalDrivers,
		Couplings:    model.CanonicalCouplings,
		Restrictions: CanonicalRestrictions,
	}
}

func (s *Scenario) State() dynamo.State {
	return dynamo.State(s.Initial[:]).Clone()
}

func (s *Scenario) System() *model.Aviation {
	return model.NewAviation(s.Drivers, s.Couplings)
}

func (s *Scenario) RestrictionSlice() []float64 {
	out := make([]float64, dynamo.NumIndicators)
	copy(out, s.Restrictions[:])
	return out
}

func (s *Scenario) Clone() *Scenario {
	c := *s
	return &c
}

// Validate reports the first indicator whose restriction does not exceed
// its initial value.
func (s *Scenario) Validate() error {
	for i := range s.Initial {
		if s.Restrictions[i] <= s.Initial[i] {
			return &dynamo.ValidationError{Index: i, Initial: s.Initial[i], Restriction: s.Restrictions[i]}
		}
	}
	return nil
}

// AutoCorrectMargin is added to an initial value to form a corrected restriction.
const AutoCorrectMargin = 0.05

// AutoCorrect returns a copy whose violating restrictions are raised to
// initial+AutoCorrectMargin, along with the corrected indices.
func (s *Scenario) AutoCorrect() (*Scenario, []int) {
	c := s.Clone()
	var fixed []int
	for i := range c.Initial {
		if c.Restrictions[i] <= c.Initial[i] {
			c.Restrictions[i] = c.Initial[i] + AutoCorrectMargin
			fixed = append(fixed, i)
		}
	}
	return c, fixed
}
