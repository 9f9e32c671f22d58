package analysis

import (
	"fmt"
	"strings"
)

type Point struct{ X, Y float64 }

// Portrait pairs two series sample by sample, e.g. crowding against kinetic
// energy.
type Portrait struct {
	XLabel, YLabel string
	Points         []Point
}

func NewPortrait(xLabel string, xs []float64, yLabel string, ys []float64) (*Portrait, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("portrait: series lengths differ (%d vs %d)", len(xs), len(ys))
	}
	p := &Portrait{XLabel: xLabel, YLabel: yLabel, Points: make([]Point, len(xs))}
	for i := range xs {
		p.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return p, nil
}

// ASCII renders the portrait on a width x height character grid. Later
// points are drawn with a heavier glyph so the path direction is visible.
func (p *Portrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	last := len(p.Points) - 1
	for i, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		switch {
		case i == last:
			canvas[row][col] = '◆'
		case i*2 > last:
			canvas[row][col] = '•'
		default:
			canvas[row][col] = '·'
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%.3g, %.3g]\n", p.YLabel, minY, maxY)
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	fmt.Fprintf(&sb, "%s [%.3g, %.3g]\n", p.XLabel, minX, maxX)
	return sb.String()
}
