// Package normalize turns raw trajectory and driver samples into values that
// are safe to draw. Every function is pure: inputs are never modified and a
// new slice is always returned, even when no change is needed.
package normalize

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Band is a closed interval [Lo, Hi].
type Band struct {
	Lo, Hi float64
}

func (b Band) Mid() float64 { return (b.Lo + b.Hi) / 2 }

func (b Band) Contains(min, max float64) bool { return min >= b.Lo && max <= b.Hi }

var (
	// Unit is the semantic range of every indicator.
	Unit = Band{0, 1}
	// Gentle tolerates small integration overshoot.
	Gentle = Band{-0.1, 1.1}
	// PlotBand is where out-of-range time series are remapped.
	PlotBand = Band{0.1, 0.9}
	// RadarBand is both trigger and target for radar vectors.
	RadarBand = Band{0.05, 0.95}
)

type Mode int

const (
	HardClip Mode = iota
	GentleClip
	Rescale
	RestrictionAware
)

func (m Mode) String() string {
	switch m {
	case HardClip:
		return "hard"
	case GentleClip:
		return "gentle"
	case Rescale:
		return "rescale"
	case RestrictionAware:
		return "restriction"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hard", "hard_clip":
		return HardClip, nil
	case "gentle", "gentle_clip":
		return GentleClip, nil
	case "rescale":
		return Rescale, nil
	case "restriction", "restriction_aware", "radar":
		return RestrictionAware, nil
	}
	return HardClip, fmt.Errorf("unknown normalization mode: %s", s)
}

// ForDisplay applies one normalization policy:
//
//   - HardClip clamps into [0, 1].
//   - GentleClip clamps into [-0.1, 1.1].
//   - Rescale leaves series inside [0, 1] untouched and remaps any other
//     series into [0.1, 0.9].
//   - RestrictionAware caps each value at its restriction and remaps into
//     [0.05, 0.95]; with nil restrictions it rescales only when the series
//     leaves [0.05, 0.95].
func ForDisplay(series []float64, mode Mode, restrictions []float64) []float64 {
	switch mode {
	case GentleClip:
		return Clip(series, Gentle)
	case Rescale:
		return RescaleInto(series, Unit, PlotBand)
	case RestrictionAware:
		if restrictions == nil {
			return RescaleInto(series, RadarBand, RadarBand)
		}
		return CapAndRescale(series, restrictions)
	default:
		return Clip(series, Unit)
	}
}

func Clip(series []float64, b Band) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = math.Max(b.Lo, math.Min(b.Hi, v))
	}
	return out
}

// Floor raises every value below min to min.
func Floor(series []float64, min float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = math.Max(min, v)
	}
	return out
}

// RescaleInto affinely maps series into target when its observed range
// leaves trigger. A constant out-of-range series maps to target's midpoint.
func RescaleInto(series []float64, trigger, target Band) []float64 {
	out := make([]float64, len(series))
	if len(series) == 0 {
		return out
	}
	lo, hi := floats.Min(series), floats.Max(series)
	if trigger.Contains(lo, hi) {
		copy(out, series)
		return out
	}
	if hi-lo <= 0 {
		for i := range out {
			out[i] = target.Mid()
		}
		return out
	}
	return Clip(affine(series, lo, hi, target), target)
}

// CapAndRescale caps values[i] at restrictions[i] and remaps the capped
// vector into RadarBand using its own range. A constant capped vector is
// only clamped into RadarBand. Extra values without a restriction are not
// capped.
func CapAndRescale(values, restrictions []float64) []float64 {
	capped := make([]float64, len(values))
	for i, v := range values {
		if i < len(restrictions) {
			v = math.Min(v, restrictions[i])
		}
		capped[i] = v
	}
	if len(capped) == 0 {
		return capped
	}
	lo, hi := floats.Min(capped), floats.Max(capped)
	if hi-lo <= 0 {
		return Clip(capped, RadarBand)
	}
	return Clip(affine(capped, lo, hi, RadarBand), RadarBand)
}

func affine(series []float64, lo, hi float64, target Band) []float64 {
	out := make([]float64, len(series))
	span := target.Hi - target.Lo
	for i, v := range series {
		out[i] = target.Lo + span*(v-lo)/(hi-lo)
	}
	return out
}
