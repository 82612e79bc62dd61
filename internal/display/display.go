// Package display prepares a finished run for rendering: bounded and
// rescaled indicator series, smooth driver curves and radar frames.
package display

import (
	"fmt"

	"github.com/san-kum/aviasim/internal/dynamo"
	"github.com/san-kum/aviasim/internal/model"
	"github.com/san-kum/aviasim/internal/normalize"
	"github.com/san-kum/aviasim/internal/scenario"
)

// PlotFloor lifts near-zero values so rescaled lines stay visible.
const PlotFloor = 0.01

type Options struct {
	// Window is the moving-average width for plotted indicators; 0 or 1
	// disables smoothing.
	Window int
	// SmoothPoints is the resolution of interpolated driver curves.
	SmoothPoints int
	// Clip selects HardClip or GentleClip for the bounded series.
	Clip normalize.Mode
	// Floor, when positive, clamps the raw trajectory into [Floor, 1]
	// before any other processing.
	Floor float64
}

func DefaultOptions() Options {
	return Options{Window: 5, SmoothPoints: 1000, Clip: normalize.HardClip}
}

type Series struct {
	Symbol string
	Name   string
	Values []float64
}

type Curve struct {
	Symbol string
	Legend string
	T      []float64
	Y      []float64
}

type RadarFrame struct {
	Index        int
	Time         float64
	Title        string
	Values       []float64
	Initial      []float64
	Restrictions []float64
}

type Panel struct {
	Times []float64
	// Bounded holds each indicator clipped for tables and export.
	Bounded []Series
	// Plotted holds each indicator floored, smoothed and rescaled for charts.
	Plotted []Series
	Drivers []Curve
	Radar   []RadarFrame
}

// Build derives every display series from one scenario and its trajectory.
// Neither argument is modified.
func Build(sc *scenario.Scenario, traj *dynamo.Trajectory, opts Options) *Panel {
	p := &Panel{Times: append([]float64(nil), traj.Times...)}

	columns := make([][]float64, dynamo.NumIndicators)
	for i := range columns {
		col := traj.Column(i)
		if opts.Floor > 0 {
			col = normalize.Clip(col, normalize.Band{Lo: opts.Floor, Hi: 1})
		}
		columns[i] = col
	}

	for i, col := range columns {
		sym, name := model.IndicatorSymbol(i), model.IndicatorNames[i]

		bounded := normalize.ForDisplay(col, opts.Clip, nil)
		p.Bounded = append(p.Bounded, Series{Symbol: sym, Name: name, Values: bounded})

		plotted := normalize.Floor(col, PlotFloor)
		if opts.Window > 1 {
			plotted = normalize.Smooth(plotted, opts.Window)
		}
		plotted = normalize.ForDisplay(plotted, normalize.Rescale, nil)
		p.Plotted = append(p.Plotted, Series{Symbol: sym, Name: name, Values: plotted})
	}

	for i, params := range sc.Drivers {
		y := make([]float64, len(traj.Times))
		for k, t := range traj.Times {
			y[k] = model.Driver(t, params)
		}
		ts, ys := normalize.Cubic(traj.Times, y, opts.SmoothPoints)
		p.Drivers = append(p.Drivers, Curve{
			Symbol: model.DriverSymbol(i),
			Legend: fmt.Sprintf("%s: %s", model.DriverSymbol(i), model.DriverFormula(params)),
			T:      ts,
			Y:      ys,
		})
	}

	restrictions := sc.RestrictionSlice()
	initial := normalize.CapAndRescale(sc.Initial[:], restrictions)
	bandRestrictions := normalize.Clip(restrictions, normalize.Unit)
	for _, idx := range SnapshotIndices(traj.Len()) {
		state := make([]float64, dynamo.NumIndicators)
		for i := range state {
			state[i] = columns[i][idx]
		}
		t := traj.Times[idx]
		p.Radar = append(p.Radar, RadarFrame{
			Index:        idx,
			Time:         t,
			Title:        frameTitle(idx, t),
			Values:       normalize.CapAndRescale(state, restrictions),
			Initial:      initial,
			Restrictions: bandRestrictions,
		})
	}
	return p
}

// SnapshotIndices picks the radar sample indices: start, quarter, half,
// three quarters and end of an n-sample trajectory.
func SnapshotIndices(n int) []int {
	if n <= 0 {
		return nil
	}
	return []int{0, n / 4, n / 2, 3 * n / 4, n - 1}
}

func frameTitle(idx int, t float64) string {
	if idx == 0 {
		return fmt.Sprintf("indicators at start (%.0f)", model.Year(0))
	}
	return fmt.Sprintf("indicators at t=%.2f (%.0f)", t, model.Year(t))
}
