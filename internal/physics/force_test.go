package physics

import (
	"math"
	"testing"
)

var testParams = Params{MinDist: 10, InteractionRadius: 80, MaxForce: 2}

func TestForceZones(t *testing.T) {
	tests := []struct {
		name     string
		dist     float64
		strength float64
		want     float64
	}{
		{"overlap", 0, 1, 0},
		{"at radius", 80, 1, 0},
		{"beyond radius", 120, -1, 0},
		{"core midpoint", 5, 1, -1},
		{"core ignores negative strength", 5, -1, -1},
		{"core boundary", 10, 1, 2},
		{"scenario distance 50", 50, 1, 1 * (1 - 40.0/70.0) * 2},
		{"repulsive strength", 45, -0.5, -0.5 * 0.5 * 2},
		{"zero strength", 30, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Force(tt.dist, tt.strength, testParams)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Force(%v, %v) = %v, want %v", tt.dist, tt.strength, got, tt.want)
			}
		})
	}
}

func TestRepulsionFloor(t *testing.T) {
	for _, strength := range []float64{-1, -0.3, 0, 0.3, 1} {
		for d := 0.01; d < testParams.MinDist; d += 0.37 {
			if f := Force(d, strength, testParams); f >= 0 {
				t.Fatalf("Force(%v, %v) = %v, want repulsive", d, strength, f)
			}
		}
	}
	if f := Force(1e-9, 1, testParams); math.Abs(f+testParams.MaxForce) > 1e-6 {
		t.Errorf("expected approach to -maxForce near zero, got %v", f)
	}
}

func TestForceContinuousAtRadius(t *testing.T) {
	f := Force(testParams.InteractionRadius-1e-9, 1, testParams)
	if math.Abs(f) > 1e-8 {
		t.Errorf("expected force to vanish at the radius, got %v", f)
	}
}

func TestDegenerateCore(t *testing.T) {
	p := Params{MinDist: 0, InteractionRadius: 80, MaxForce: 1}
	if f := Force(40, 1, p); math.Abs(f-0.5) > 1e-12 {
		t.Errorf("expected 0.5 with no core zone, got %v", f)
	}
	p = Params{MinDist: 100, InteractionRadius: 80, MaxForce: 1}
	if f := Force(40, 1, p); f >= 0 {
		t.Errorf("expected repulsion when core exceeds radius, got %v", f)
	}
}

func TestDisplacement(t *testing.T) {
	tests := []struct {
		name           string
		dx, dy         float64
		wrap           bool
		wantX, wantY   float64
	}{
		{"no wrap", 390, -290, false, 390, -290},
		{"wrap x", 390, 10, true, -10, 10},
		{"wrap negative", -390, -290, true, 10, 10},
		{"half extent kept", 200, 150, true, 200, 150},
		{"inside", 20, -30, true, 20, -30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := Displacement(tt.dx, tt.dy, 400, 300, tt.wrap)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("got (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestPairForceDirection(t *testing.T) {
	fx, fy := PairForce(30, 40, 1, testParams)
	if fx <= 0 || fy <= 0 {
		t.Errorf("attraction should point toward the other particle, got (%v, %v)", fx, fy)
	}
	if math.Abs(fy/fx-40.0/30.0) > 1e-12 {
		t.Errorf("force not along separation axis: (%v, %v)", fx, fy)
	}

	fx, fy = PairForce(3, 4, 1, testParams)
	if fx >= 0 || fy >= 0 {
		t.Errorf("core repulsion should point away, got (%v, %v)", fx, fy)
	}

	fx, fy = PairForce(0, 0, 1, testParams)
	if fx != 0 || fy != 0 {
		t.Errorf("overlap must be skipped, got (%v, %v)", fx, fy)
	}
}
