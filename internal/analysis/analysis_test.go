package analysis

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/particlelife/internal/experiment"
	"github.com/san-kum/particlelife/internal/life"
)

func TestDominantFrequency(t *testing.T) {
	n := 128
	data := make([]float64, n)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*8*float64(i)/float64(n))
	}

	freq, power := DominantFrequency(data, 0.5)
	want := 8.0 / float64(n) / 0.5
	if math.Abs(freq-want) > 1e-9 {
		t.Errorf("expected frequency %v, got %v", want, freq)
	}
	if power <= 0 {
		t.Errorf("expected positive power, got %v", power)
	}

	ps := PowerSpectrum(data)
	if len(ps) != n/2+1 {
		t.Fatalf("expected %d bins, got %d", n/2+1, len(ps))
	}
	if ps[0] > 1e-9 {
		t.Errorf("mean should be removed, dc power %v", ps[0])
	}
}

func TestDominantFrequencyDegenerate(t *testing.T) {
	tests := []struct {
		name     string
		data     []float64
		interval float64
	}{
		{"empty", nil, 1},
		{"single", []float64{4}, 1},
		{"flat", []float64{2, 2, 2, 2, 2, 2}, 1},
		{"bad interval", []float64{0, 1, 0, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if f, p := DominantFrequency(tt.data, tt.interval); f != 0 || p != 0 {
				t.Errorf("expected (0, 0), got (%v, %v)", f, p)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{1, 2, 3, 4, 5})
	if s.N != 5 || s.Mean != 3 || s.Min != 1 || s.Max != 5 || s.Last != 5 {
		t.Errorf("unexpected summary %+v", s)
	}
	if math.Abs(s.Slope-1) > 1e-12 {
		t.Errorf("expected slope 1, got %v", s.Slope)
	}
	if math.Abs(s.StdDev-math.Sqrt(2.5)) > 1e-12 {
		t.Errorf("expected sample stddev sqrt(2.5), got %v", s.StdDev)
	}
	if !strings.Contains(s.String(), "mean=3.0000") {
		t.Errorf("unexpected string %q", s.String())
	}

	if got := Summarize(nil); got.N != 0 {
		t.Errorf("expected empty summary, got %+v", got)
	}
	if got := Summarize([]float64{7}); got.Mean != 7 || got.StdDev != 0 {
		t.Errorf("unexpected single-value summary %+v", got)
	}
}

func TestPortrait(t *testing.T) {
	if _, err := NewPortrait("x", []float64{1}, "y", nil); err == nil {
		t.Error("expected length mismatch error")
	}

	p, err := NewPortrait("crowding", []float64{0, 1, 2}, "energy", []float64{0, 1, 4})
	if err != nil {
		t.Fatal(err)
	}
	out := p.ASCII(20, 5)
	if !strings.Contains(out, "◆") {
		t.Errorf("expected end marker in\n%s", out)
	}
	if !strings.HasPrefix(out, "energy") {
		t.Errorf("expected y label first, got\n%s", out)
	}
	if (*Portrait)(nil).ASCII(10, 10) != "" {
		t.Error("nil portrait should render empty")
	}
}

func smallRun() experiment.Config {
	cfg := life.DefaultConfig()
	cfg.Width, cfg.Height = 320, 240
	return experiment.Config{
		Sim:         cfg,
		Preset:      "clustering",
		Particles:   60,
		Steps:       20,
		SampleEvery: 5,
		Seed:        5,
	}
}

func TestSweep(t *testing.T) {
	values := Linspace(0.1, 0.5, 3)
	if len(values) != 3 || values[2] != 0.5 {
		t.Fatalf("unexpected linspace %v", values)
	}

	points, err := Sweep(context.Background(), smallRun(), "friction", values, "mean_speed", 2)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for i, p := range points {
		if p.Param != values[i] || len(p.Values) != 2 {
			t.Errorf("unexpected point %+v", p)
		}
	}
	if out := SweepToASCII(points, 30, 8); !strings.Contains(out, "•") {
		t.Errorf("expected plotted points in\n%s", out)
	}

	_, err = Sweep(context.Background(), smallRun(), "gravity", values, "mean_speed", 1)
	if !errors.Is(err, life.ErrConfig) {
		t.Errorf("expected ErrConfig for unknown param, got %v", err)
	}

	_, err = Sweep(context.Background(), smallRun(), "friction", []float64{-1}, "mean_speed", 1)
	if !errors.Is(err, life.ErrConfig) {
		t.Errorf("expected ErrConfig for invalid value, got %v", err)
	}
}

func TestDivergence(t *testing.T) {
	rate, err := Divergence(context.Background(), smallRun(), 1e-6)
	if err != nil {
		t.Fatalf("divergence: %v", err)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		t.Errorf("expected finite rate, got %v", rate)
	}

	if _, err := Divergence(context.Background(), smallRun(), 0); !errors.Is(err, life.ErrConfig) {
		t.Errorf("expected ErrConfig for zero perturbation, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Divergence(ctx, smallRun(), 1e-6); !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
}
