package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/particlelife/internal/life"
	"github.com/san-kum/particlelife/internal/sim"
)

var (
	_ sim.Metric = (*KineticEnergy)(nil)
	_ sim.Metric = (*MeanSpeed)(nil)
	_ sim.Metric = (*Crowding)(nil)
	_ sim.Metric = (*TypeBalance)(nil)
)

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy()
	cfg := life.DefaultConfig()

	m.Observe([]life.Particle{{VX: 3, VY: 4}, {}}, cfg)
	if got := m.Value(); math.Abs(got-6.25) > 1e-12 {
		t.Errorf("expected 6.25, got %v", got)
	}

	m.Observe([]life.Particle{{}}, cfg)
	if got := m.Value(); math.Abs(got-3.125) > 1e-12 {
		t.Errorf("expected running mean 3.125, got %v", got)
	}
	if m.Last() != 0 {
		t.Errorf("expected last observation 0, got %v", m.Last())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %v", m.Value())
	}
	if m.Name() != "kinetic_energy" {
		t.Errorf("unexpected name %q", m.Name())
	}
}

func TestMeanSpeed(t *testing.T) {
	tests := []struct {
		name      string
		particles []life.Particle
		want      float64
	}{
		{"empty", nil, 0},
		{"at rest", []life.Particle{{}, {}}, 0},
		{"mixed", []life.Particle{{VX: 3, VY: 4}, {VX: -1}}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MeanSpeedOf(tt.particles); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("MeanSpeedOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCrowding(t *testing.T) {
	cfg := life.DefaultConfig()
	cfg.InteractionRadius = 50
	cfg.Width, cfg.Height = 400, 300

	tests := []struct {
		name      string
		wrap      bool
		particles []life.Particle
		want      float64
	}{
		{"empty", true, nil, 0},
		{"isolated", true, []life.Particle{{X: 10, Y: 100}, {X: 200, Y: 100}}, 0},
		{"pair", true, []life.Particle{{X: 100, Y: 100}, {X: 120, Y: 100}}, 1},
		{"across edge wrapped", true, []life.Particle{{X: 5, Y: 100}, {X: 395, Y: 100}}, 1},
		{"across edge bounded", false, []life.Particle{{X: 5, Y: 100}, {X: 395, Y: 100}}, 0},
		{"triple", false, []life.Particle{{X: 100, Y: 100}, {X: 110, Y: 100}, {X: 200, Y: 200}}, 2.0 / 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cfg
			c.Wrap = tt.wrap
			if got := CrowdingOf(tt.particles, c); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("CrowdingOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypeBalance(t *testing.T) {
	even := []life.Particle{{Type: 0}, {Type: 1}, {Type: 2}, {Type: 0}, {Type: 1}, {Type: 2}}
	if got := TypeBalanceOf(even, 3); math.Abs(got-1) > 1e-12 {
		t.Errorf("expected 1 for even split, got %v", got)
	}

	single := []life.Particle{{Type: 1}, {Type: 1}}
	if got := TypeBalanceOf(single, 3); math.Abs(got) > 1e-12 {
		t.Errorf("expected 0 for one type, got %v", got)
	}

	if got := TypeBalanceOf(even, 1); got != 0 {
		t.Errorf("expected 0 for single-type config, got %v", got)
	}

	b := NewTypeBalance()
	cfg := life.DefaultConfig()
	cfg.NumTypes = 3
	b.Observe(even, cfg)
	if math.Abs(b.Value()-1) > 1e-12 {
		t.Errorf("expected accumulated 1, got %v", b.Value())
	}
}
