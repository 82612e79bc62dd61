package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/aviasim/internal/display"
	"github.com/san-kum/aviasim/internal/model"
)

// Radar draws a frame on a Braille canvas rows high: the current values as
// a solid polygon, restrictions dotted, and spokes for each indicator.
func Radar(frame display.RadarFrame, rows int) string {
	if rows < 4 {
		rows = 4
	}
	c := NewCanvas(rows*2, rows)
	size := rows * 4
	center := float64(size) / 2
	radius := center - 1

	n := len(frame.Values)
	point := func(i int, v float64) (int, int) {
		theta := math.Pi/2 - 2*math.Pi*float64(i)/float64(n)
		x := center + v*radius*math.Cos(theta)
		y := center - v*radius*math.Sin(theta)
		return int(math.Round(x)), int(math.Round(y))
	}

	for i := 0; i < n; i++ {
		x, y := point(i, 1)
		c.DrawDotted(int(center), int(center), x, y)
	}
	polygon(c, n, func(i int) (int, int) { return point(i, frame.Restrictions[i]) }, c.DrawDotted)
	polygon(c, n, func(i int) (int, int) { return point(i, frame.Values[i]) }, c.DrawLine)

	var b strings.Builder
	b.WriteString(Title.Render(frame.Title))
	b.WriteString("\n")
	b.WriteString(c.String())
	for i, v := range frame.Values {
		label := fmt.Sprintf("%s %.2f/%.2f", model.IndicatorSymbol(i), v, frame.Restrictions[i])
		if v >= frame.Restrictions[i] {
			b.WriteString(StatusWarn.Render(label))
		} else {
			b.WriteString(MetricLabel.Render(label))
		}
		if i%4 == 3 {
			b.WriteString("\n")
		} else {
			b.WriteString("  ")
		}
	}
	return b.String()
}

func polygon(c *Canvas, n int, vertex func(int) (int, int), draw func(x0, y0, x1, y1 int)) {
	for i := 0; i < n; i++ {
		x0, y0 := vertex(i)
		x1, y1 := vertex((i + 1) % n)
		draw(x0, y0, x1, y1)
	}
}
