package render

import (
	"image/color"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

var gridColor = color.Gray{Y: 200}

// Labeler annotates a line after it is added to a plot.
type Labeler interface {
	Label(p *plot.Plot, name string, pts plotter.XYs) error
}

// NoLabels leaves lines to the legend.
type NoLabels struct{}

func (NoLabels) Label(*plot.Plot, string, plotter.XYs) error { return nil }

// MidpointLabels writes each line's name next to its middle sample.
type MidpointLabels struct {
	// Short keeps only the text before the first colon, so "X1: Passengers"
	// becomes "X1".
	Short bool
}

func (m MidpointLabels) Label(p *plot.Plot, name string, pts plotter.XYs) error {
	if len(pts) == 0 {
		return nil
	}
	if m.Short {
		name, _, _ = strings.Cut(name, ":")
	}
	mid := pts[len(pts)/2]
	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{mid},
		Labels: []string{name},
	})
	if err != nil {
		return err
	}
	p.Add(l)
	return nil
}
