package metrics

import (
	"math"

	"github.com/san-kum/aviasim/internal/dynamo"
)

// Activity is the mean absolute change per sample, summed over indicators.
type Activity struct {
	name    string
	prev    dynamo.State
	sum     float64
	samples int
}

func NewActivity() *Activity {
	return &Activity{
		name: "activity",
	}
}

func (a *Activity) Name() string {
	return a.name
}

func (a *Activity) Observe(x dynamo.State, t float64) {
	if a.prev != nil {
		for i, val := range x {
			a.sum += math.Abs(val - a.prev[i])
		}
		a.samples++
	}
	a.prev = x.Clone()
}

func (a *Activity) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

func (a *Activity) Reset() {
	a.prev = nil
	a.sum = 0
	a.samples = 0
}
