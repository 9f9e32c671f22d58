package physics

import (
	"math"

	"github.com/san-kum/particlelife/internal/life"
)

// Params is the subset of life.Config the force law reads.
type Params struct {
	MinDist           float64
	InteractionRadius float64
	MaxForce          float64
}

func ParamsFrom(cfg life.Config) Params {
	return Params{
		MinDist:           cfg.MinDist(),
		InteractionRadius: cfg.InteractionRadius,
		MaxForce:          cfg.MaxForce,
	}
}

// Displacement folds (dx, dy) to the shortest signed displacement across
// the domain when wrap is set.
func Displacement(dx, dy, width, height float64, wrap bool) (float64, float64) {
	if !wrap {
		return dx, dy
	}
	if math.Abs(dx) > width/2 {
		dx -= math.Copysign(width, dx)
	}
	if math.Abs(dy) > height/2 {
		dy -= math.Copysign(height, dy)
	}
	return dx, dy
}

// Force returns the signed magnitude acting on a particle toward another at
// distance dist. Positive attracts, negative repels. Exact overlap and pairs
// at or beyond the interaction radius contribute nothing.
func Force(dist, strength float64, p Params) float64 {
	if dist == 0 || dist >= p.InteractionRadius {
		return 0
	}
	if dist < p.MinDist {
		return (dist/p.MinDist - 1) * p.MaxForce
	}
	t := (dist - p.MinDist) / (p.InteractionRadius - p.MinDist)
	return strength * (1 - t) * p.MaxForce
}

// PairForce returns the force vector on a particle from the separation
// (dx, dy) pointing toward the other particle.
func PairForce(dx, dy, strength float64, p Params) (fx, fy float64) {
	dist := math.Sqrt(dx*dx + dy*dy)
	mag := Force(dist, strength, p)
	if mag == 0 {
		return 0, 0
	}
	return dx / dist * mag, dy / dist * mag
}
