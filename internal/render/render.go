// Package render draws display panels as image files with gonum/plot.
package render

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/aviasim/internal/display"
	"github.com/san-kum/aviasim/internal/model"
)

type Renderer struct {
	Width   vg.Length
	Height  vg.Length
	DPI     int
	Format  string
	Labeler Labeler
}

type Option func(*Renderer)

func WithSize(width, height vg.Length) Option {
	return func(r *Renderer) { r.Width, r.Height = width, height }
}

func WithDPI(dpi int) Option {
	return func(r *Renderer) { r.DPI = dpi }
}

// WithFormat selects png, svg or pdf output.
func WithFormat(format string) Option {
	return func(r *Renderer) { r.Format = format }
}

func WithLabeler(l Labeler) Option {
	return func(r *Renderer) {
		if l != nil {
			r.Labeler = l
		}
	}
}

func New(opts ...Option) *Renderer {
	r := &Renderer{
		Width:   8 * vg.Inch,
		Height:  6 * vg.Inch,
		DPI:     150,
		Format:  "png",
		Labeler: NoLabels{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Indicators plots the rescaled X1..X8 series against calendar years.
func (r *Renderer) Indicators(panel *display.Panel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Aviation indicators"
	p.X.Label.Text = "year"
	p.Y.Label.Text = "normalized value"
	p.Y.Min, p.Y.Max = 0, 1
	stylePlot(p)
	p.X.Tick.Marker = yearTicker{}

	for i, s := range panel.Plotted {
		pts := make(plotter.XYs, len(panel.Times))
		for k, t := range panel.Times {
			pts[k].X = t
			pts[k].Y = s.Values[k]
		}
		if err := r.addLine(p, i, fmt.Sprintf("%s: %s", s.Symbol, s.Name), pts); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Drivers plots the interpolated F1..F5 curves.
func (r *Renderer) Drivers(panel *display.Panel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "External drivers"
	p.X.Label.Text = "year"
	p.Y.Label.Text = "driver value"
	stylePlot(p)
	p.X.Tick.Marker = yearTicker{}

	for i, c := range panel.Drivers {
		pts := make(plotter.XYs, len(c.T))
		for k := range c.T {
			pts[k].X = c.T[k]
			pts[k].Y = c.Y[k]
		}
		if err := r.addLine(p, i, c.Legend, pts); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Radar draws one frame as three closed polygons over eight spokes.
func (r *Renderer) Radar(frame display.RadarFrame) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = frame.Title
	p.HideAxes()
	p.X.Min, p.X.Max = -1.3, 1.3
	p.Y.Min, p.Y.Max = -1.3, 1.3

	if err := addRadarGrid(p, len(frame.Values)); err != nil {
		return nil, err
	}

	polygons := []struct {
		name   string
		values []float64
	}{
		{"current", frame.Values},
		{"restrictions", frame.Restrictions},
		{"initial", frame.Initial},
	}
	for i, poly := range polygons {
		line, err := plotter.NewLine(radarPoints(poly.values))
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = plotutil.Color(i)
		if i > 0 {
			line.LineStyle.Dashes = plotutil.Dashes(i)
		}
		p.Add(line)
		p.Legend.Add(poly.name, line)
	}
	p.Legend.Top = true
	return p, nil
}

// WritePanel renders every chart of a panel into dir and returns the paths.
func (r *Renderer) WritePanel(dir string, panel *display.Panel) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create directory: %w", err)
	}

	type chart struct {
		name  string
		build func() (*plot.Plot, error)
	}
	charts := []chart{
		{"indicators", func() (*plot.Plot, error) { return r.Indicators(panel) }},
		{"drivers", func() (*plot.Plot, error) { return r.Drivers(panel) }},
	}
	for i, frame := range panel.Radar {
		frame := frame
		charts = append(charts, chart{fmt.Sprintf("radar_%d", i), func() (*plot.Plot, error) { return r.Radar(frame) }})
	}

	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		p, err := c.build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.name, err)
		}
		path := filepath.Join(dir, c.name+"."+r.Format)
		if err := r.Save(p, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r *Renderer) Save(p *plot.Plot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := r.WriteTo(bw, p); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (r *Renderer) WriteTo(w io.Writer, p *plot.Plot) error {
	if r.Format != "png" {
		wt, err := p.WriterTo(r.Width, r.Height, r.Format)
		if err != nil {
			return err
		}
		_, err = wt.WriteTo(w)
		return err
	}

	c := vgimg.NewWith(
		vgimg.UseWH(r.Width, r.Height),
		vgimg.UseDPI(r.DPI),
	)
	p.Draw(draw.New(c))

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return nil
}

func (r *Renderer) addLine(p *plot.Plot, i int, legend string, pts plotter.XYs) error {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = plotutil.Color(i)
	p.Add(line)
	p.Legend.Add(legend, line)
	return r.Labeler.Label(p, legend, pts)
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())
}

// spoke returns the unit vector of axis i of n, starting at twelve o'clock
// and running clockwise.
func spoke(i, n int) (float64, float64) {
	theta := math.Pi/2 - 2*math.Pi*float64(i)/float64(n)
	return math.Cos(theta), math.Sin(theta)
}

func radarPoints(values []float64) plotter.XYs {
	n := len(values)
	pts := make(plotter.XYs, n+1)
	for i, v := range values {
		x, y := spoke(i, n)
		pts[i].X, pts[i].Y = v*x, v*y
	}
	pts[n] = pts[0]
	return pts
}

func addRadarGrid(p *plot.Plot, n int) error {
	for _, ring := range []float64{0.25, 0.5, 0.75, 1} {
		values := make([]float64, n)
		for i := range values {
			values[i] = ring
		}
		line, err := plotter.NewLine(radarPoints(values))
		if err != nil {
			return err
		}
		line.LineStyle.Color = gridColor
		line.LineStyle.Width = vg.Points(0.5)
		p.Add(line)
	}

	labels := plotter.XYLabels{XYs: make(plotter.XYs, n), Labels: make([]string, n)}
	for i := 0; i < n; i++ {
		x, y := spoke(i, n)
		axis, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: x, Y: y}})
		if err != nil {
			return err
		}
		axis.LineStyle.Color = gridColor
		axis.LineStyle.Width = vg.Points(0.5)
		p.Add(axis)

		labels.XYs[i].X, labels.XYs[i].Y = 1.12*x, 1.12*y
		labels.Labels[i] = model.IndicatorSymbol(i)
	}
	l, err := plotter.NewLabels(labels)
	if err != nil {
		return err
	}
	p.Add(l)
	return nil
}

// yearTicker labels normalized time with calendar years.
type yearTicker struct{}

func (yearTicker) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for year := model.StartYear; year <= model.EndYear; year++ {
		t := float64(year-model.StartYear) / float64(model.EndYear-model.StartYear)
		if t < min || t > max {
			continue
		}
		label := ""
		if (year-model.StartYear)%2 == 0 {
			label = fmt.Sprint(year)
		}
		ticks = append(ticks, plot.Tick{Value: t, Label: label})
	}
	return ticks
}
