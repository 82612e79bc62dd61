package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/aviasim/internal/dynamo"
)

type Point struct{ X, Y float64 }

// PhasePortrait2D pairs two indicators sample by sample.
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []Point
}

// NewPhasePortrait reads indicators xIdx and yIdx (zero-based) from a
// trajectory.
func NewPhasePortrait(traj *dynamo.Trajectory, xIdx, yIdx int) (*PhasePortrait2D, error) {
	if xIdx < 0 || yIdx < 0 || xIdx >= dynamo.NumIndicators || yIdx >= dynamo.NumIndicators {
		return nil, fmt.Errorf("indicator index out of range: %d, %d", xIdx+1, yIdx+1)
	}

	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, 0, traj.Len()),
	}
	for _, x := range traj.States {
		portrait.Points = append(portrait.Points, Point{X: x[xIdx], Y: x[yIdx]})
	}
	return portrait, nil
}

// PhasePortraitToASCII plots the portrait on a width x height grid. The
// start is marked 'o', the end '*', and the path between with dots.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	header := fmt.Sprintf("X%d [%.3f, %.3f] vs X%d [%.3f, %.3f]\n",
		portrait.XIndex+1, minX, maxX, portrait.YIndex+1, minY, maxY)

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	cell := func(p Point) (int, int) {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		return row, col
	}
	for _, p := range portrait.Points {
		row, col := cell(p)
		canvas[row][col] = '•'
	}
	row, col := cell(portrait.Points[0])
	canvas[row][col] = 'o'
	row, col = cell(portrait.Points[len(portrait.Points)-1])
	canvas[row][col] = '*'

	var sb strings.Builder
	sb.WriteString(header)
	for _, r := range canvas {
		sb.WriteString(string(r))
		sb.WriteRune('\n')
	}
	return sb.String()
}
