package metrics

import "github.com/san-kum/aviasim/internal/dynamo"

func breached(x dynamo.State, restrictions []float64) bool {
	for i, v := range x {
		if i < len(restrictions) && v > restrictions[i] {
			return true
		}
	}
	return false
}

// Breach counts samples in which at least one indicator exceeds its
// restriction.
type Breach struct {
	restrictions []float64
	count        int
}

func NewBreach(restrictions []float64) *Breach {
	return &Breach{restrictions: append([]float64(nil), restrictions...)}
}

func (b *Breach) Name() string { return "restriction_breaches" }

func (b *Breach) Observe(x dynamo.State, t float64) {
	if breached(x, b.restrictions) {
		b.count++
	}
}

func (b *Breach) Value() float64 { return float64(b.count) }

func (b *Breach) Reset() { b.count = 0 }

// FirstBreach is the normalized time of the first sample that breaches a
// restriction, or -1 if none does.
type FirstBreach struct {
	restrictions []float64
	first        float64
}

func NewFirstBreach(restrictions []float64) *FirstBreach {
	return &FirstBreach{restrictions: append([]float64(nil), restrictions...), first: -1}
}

func (f *FirstBreach) Name() string { return "first_breach_time" }

func (f *FirstBreach) Observe(x dynamo.State, t float64) {
	if f.first < 0 && breached(x, f.restrictions) {
		f.first = t
	}
}

func (f *FirstBreach) Value() float64 { return f.first }

func (f *FirstBreach) Reset() { f.first = -1 }
