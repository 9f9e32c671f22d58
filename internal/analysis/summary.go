package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Last   float64
	// Slope is the least-squares change per sample.
	Slope float64
}

func Summarize(data []float64) Summary {
	n := len(data)
	if n == 0 {
		return Summary{}
	}

	s := Summary{
		N:    n,
		Min:  floats.Min(data),
		Max:  floats.Max(data),
		Last: data[n-1],
	}
	if n == 1 {
		s.Mean = data[0]
		return s
	}

	s.Mean, s.StdDev = stat.MeanStdDev(data, nil)

	x := make([]float64, n)
	floats.Span(x, 0, float64(n-1))
	_, s.Slope = stat.LinearRegression(x, data, nil, false)
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.4f sd=%.4f min=%.4f max=%.4f last=%.4f slope=%+.2e",
		s.N, s.Mean, s.StdDev, s.Min, s.Max, s.Last, s.Slope)
}
