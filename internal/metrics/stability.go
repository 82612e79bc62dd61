package metrics

import "github.com/san-kum/aviasim/internal/dynamo"

// Stability is the fraction of samples whose components all lie within
// [lo, hi].
type Stability struct {
	name       string
	lo, hi     float64
	violations int
	samples    int
}

func NewStability(lo, hi float64) *Stability {
	return &Stability{
		name: "stability",
		lo:   lo,
		hi:   hi,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x dynamo.State, t float64) {
	s.samples++
	for _, val := range x {
		if val < s.lo || val > s.hi {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
