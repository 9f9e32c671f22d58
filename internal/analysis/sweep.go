package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/san-kum/particlelife/internal/experiment"
)

// SweepPoint holds the tail of a metric series for one parameter value.
type SweepPoint struct {
	Param  float64
	Values []float64
}

// Sweep runs base once per value of param and records the last tail samples
// of metric. Every run uses the same seed so only the parameter differs.
func Sweep(ctx context.Context, base experiment.Config, param string, values []float64, metric string, tail int) ([]SweepPoint, error) {
	if tail < 1 {
		tail = 1
	}

	points := make([]SweepPoint, 0, len(values))
	for _, v := range values {
		cfg := base
		if err := cfg.Sim.SetParam(param, v); err != nil {
			return nil, err
		}

		e := experiment.New(cfg)
		if err := e.Setup(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", param, v, err)
		}
		res, err := e.Run(ctx)
		if err != nil {
			return nil, err
		}
		series, err := res.Series(metric)
		if err != nil {
			return nil, err
		}
		if len(series) > tail {
			series = series[len(series)-tail:]
		}
		points = append(points, SweepPoint{Param: v, Values: series})
	}
	return points, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// SweepToASCII plots every recorded value against its parameter column.
func SweepToASCII(data []SweepPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Values {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			minVal, maxVal = min(minVal, v), max(maxVal, v)
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%.3g\n", maxVal)
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	fmt.Fprintf(&sb, "%.3g   param %.3g .. %.3g\n", minVal, data[0].Param, data[len(data)-1].Param)
	return sb.String()
}
