package physics

import (
	"math"

	"github.com/san-kum/particlelife/internal/life"
)

// Restitution scales the reflected velocity component on a bounce.
const Restitution = 0.8

// Boundary selects the edge policy.
type Boundary int

const (
	Bounce Boundary = iota
	Wrap
)

func BoundaryOf(wrap bool) Boundary {
	if wrap {
		return Wrap
	}
	return Bounce
}

func (b Boundary) String() string {
	if b == Wrap {
		return "wrap"
	}
	return "bounce"
}

// Integrator advances one particle by one step.
type Integrator struct {
	Dt       float64
	Speed    float64
	Friction float64
	Width    float64
	Height   float64
	Boundary Boundary
}

func NewIntegrator(cfg life.Config, dt float64) Integrator {
	return Integrator{
		Dt:       dt,
		Speed:    cfg.Speed,
		Friction: cfg.Friction,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Boundary: BoundaryOf(cfg.Wrap),
	}
}

// Integrate applies the accumulated force. Damping follows the position
// update within the same step.
func (in Integrator) Integrate(p *life.Particle, fx, fy float64) {
	p.VX += fx
	p.VY += fy

	p.X += p.VX * in.Dt * in.Speed
	p.Y += p.VY * in.Dt * in.Speed

	damp := 1 - in.Friction*in.Dt
	p.VX *= damp
	p.VY *= damp

	in.Confine(p)
}

// Confine applies the boundary policy to both axes.
func (in Integrator) Confine(p *life.Particle) {
	if in.Boundary == Wrap {
		p.X = wrapAxis(p.X, in.Width)
		p.Y = wrapAxis(p.Y, in.Height)
		return
	}
	p.X, p.VX = bounceAxis(p.X, p.VX, in.Width)
	p.Y, p.VY = bounceAxis(p.Y, p.VY, in.Height)
}

// wrapAxis corrects once; displacement per step is expected to be below the
// extent. The trailing fold covers rounding onto the extent and runaway steps.
func wrapAxis(x, extent float64) float64 {
	if x < 0 {
		x += extent
	} else if x >= extent {
		x -= extent
	}
	if x < 0 || x >= extent {
		x = math.Mod(x, extent)
		if x < 0 {
			x += extent
		}
		if x >= extent {
			x = 0
		}
	}
	return x
}

func bounceAxis(x, v, extent float64) (float64, float64) {
	switch {
	case x < 0:
		return 0, -v * Restitution
	case x >= extent:
		hi := extent - 1
		if hi < 0 {
			hi = 0
		}
		return hi, -v * Restitution
	}
	return x, v
}
