package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/aviasim/internal/display"
	"github.com/san-kum/aviasim/internal/model"
)

var palette = []asciigraph.AnsiColor{
	asciigraph.Red,
	asciigraph.Orange,
	asciigraph.Yellow,
	asciigraph.Green,
	asciigraph.Cyan,
	asciigraph.Blue,
	asciigraph.Magenta,
	asciigraph.White,
}

type ChartOptions struct {
	Width  int
	Height int
}

func DefaultChartOptions() ChartOptions {
	return ChartOptions{Width: 80, Height: 15}
}

// Chart plots indicator series on a shared [0, 1] axis.
func Chart(series []display.Series, caption string, opts ChartOptions) string {
	if len(series) == 0 {
		return ""
	}
	data := make([][]float64, len(series))
	legends := make([]string, len(series))
	for i, s := range series {
		data[i] = s.Values
		legends[i] = s.Symbol
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors(len(series))...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption(caption),
	)
}

// DriverChart plots interpolated driver curves.
func DriverChart(curves []display.Curve, opts ChartOptions) string {
	if len(curves) == 0 {
		return ""
	}
	data := make([][]float64, len(curves))
	legends := make([]string, len(curves))
	for i, c := range curves {
		data[i] = c.Y
		legends[i] = c.Symbol
	}
	caption := fmt.Sprintf("drivers %d-%d", model.StartYear, model.EndYear)
	return asciigraph.PlotMany(data,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors(len(curves))...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption(caption),
	)
}

// SeriesChart plots a single indicator, the way one row of the run table
// expands when inspected.
func SeriesChart(s display.Series, opts ChartOptions) string {
	return asciigraph.Plot(s.Values,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("%s: %s", s.Symbol, s.Name)),
	)
}

func colors(n int) []asciigraph.AnsiColor {
	out := make([]asciigraph.AnsiColor, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}
