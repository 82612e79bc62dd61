package normalize

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// Smooth applies a centered moving average of the given odd width; an even
// width is widened by one. Near the ends the window shrinks symmetrically so
// point i < window/2 averages the first 2i+1 samples, and likewise at the
// tail. Series shorter than the window are returned unchanged.
func Smooth(series []float64, window int) []float64 {
	out := make([]float64, len(series))
	copy(out, series)
	if window <= 1 || len(series) < window {
		return out
	}
	if window%2 == 0 {
		window++
		if len(series) < window {
			return out
		}
	}

	n := len(series)
	half := window / 2
	for i := range series {
		r := half
		if i < r {
			r = i
		}
		if n-1-i < r {
			r = n - 1 - i
		}
		w := series[i-r : i+r+1]
		out[i] = floats.Sum(w) / float64(len(w))
	}
	return out
}

// MinCubicPoints is the fewest samples Cubic will interpolate.
const MinCubicPoints = 4

// Cubic resamples series, sampled at increasing times t, onto n evenly
// spaced points spanning [t[0], t[len(t)-1]] with a not-a-knot cubic
// spline. With fewer than MinCubicPoints samples, mismatched lengths, n < 2
// or a failed fit, copies of the inputs are returned unchanged.
func Cubic(t, series []float64, n int) ([]float64, []float64) {
	if len(t) < MinCubicPoints || len(t) != len(series) || n < 2 {
		return identity(t, series)
	}

	var spline interp.NotAKnotCubic
	if err := spline.Fit(t, series); err != nil {
		return identity(t, series)
	}

	ts := make([]float64, n)
	floats.Span(ts, t[0], t[len(t)-1])
	ys := make([]float64, n)
	for i, x := range ts {
		ys[i] = spline.Predict(x)
	}
	return ts, ys
}

func identity(t, series []float64) ([]float64, []float64) {
	tc := make([]float64, len(t))
	copy(tc, t)
	sc := make([]float64, len(series))
	copy(sc, series)
	return tc, sc
}
