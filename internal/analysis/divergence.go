package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/particlelife/internal/experiment"
	"github.com/san-kum/particlelife/internal/life"
	"github.com/san-kum/particlelife/internal/physics"
	"github.com/san-kum/particlelife/internal/sim"
)

// Divergence estimates the largest growth rate of a perturbation by running
// twin simulations whose first particle differs by perturbation along x.
// Separation is renormalized once it exceeds renormAt so the estimate keeps
// measuring the linear regime.
//
//	λ ≈ Σ ln(|δ(t)| / δ0) / (steps · dt)
func Divergence(ctx context.Context, cfg experiment.Config, perturbation float64) (float64, error) {
	if perturbation <= 0 || math.IsNaN(perturbation) {
		return 0, &life.ConfigError{Field: "perturbation", Value: perturbation}
	}
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	a, err := twin(cfg)
	if err != nil {
		return 0, err
	}
	b, err := twin(cfg)
	if err != nil {
		return 0, err
	}
	if a.Len() == 0 {
		return 0, nil
	}

	ps := b.Particles()
	ps[0].X += perturbation
	physics.NewIntegrator(cfg.Sim, 0).Confine(&ps[0])
	if err := b.SetParticles(ps); err != nil {
		return 0, err
	}

	renormAt := perturbation * 1e3
	dt := cfg.Sim.Dt
	sumLog := 0.0
	count := 0

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		if err := a.Step(dt); err != nil {
			return 0, err
		}
		if err := b.Step(dt); err != nil {
			return 0, err
		}

		pa, pb := a.Particles(), b.Particles()
		sep := separation(pa, pb, cfg.Sim)
		if sep > 0 {
			sumLog += math.Log(sep / perturbation)
			count++
		}

		if sep > renormAt {
			rescale(pa, pb, perturbation/sep, cfg.Sim)
			if err := b.SetParticles(pb); err != nil {
				return 0, err
			}
		}
	}

	if count == 0 || dt == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * dt), nil
}

func twin(cfg experiment.Config) (*sim.Simulation, error) {
	s, err := sim.New(cfg.Sim, sim.WithSeed(cfg.Seed), sim.WithParticles(cfg.Particles))
	if err != nil {
		return nil, err
	}
	if cfg.Preset != "" {
		if err := s.SetPreset(cfg.Preset); err != nil {
			return nil, fmt.Errorf("divergence: %w", err)
		}
	}
	return s, nil
}

// separation is the Euclidean norm over all positions and velocities.
func separation(a, b []life.Particle, cfg life.Config) float64 {
	sum := 0.0
	for i := range a {
		dx, dy := physics.Displacement(b[i].X-a[i].X, b[i].Y-a[i].Y, cfg.Width, cfg.Height, cfg.Wrap)
		dvx, dvy := b[i].VX-a[i].VX, b[i].VY-a[i].VY
		sum += dx*dx + dy*dy + dvx*dvx + dvy*dvy
	}
	return math.Sqrt(sum)
}

func rescale(a, b []life.Particle, scale float64, cfg life.Config) {
	in := physics.NewIntegrator(cfg, 0)
	for i := range b {
		dx, dy := physics.Displacement(b[i].X-a[i].X, b[i].Y-a[i].Y, cfg.Width, cfg.Height, cfg.Wrap)
		b[i].X = a[i].X + dx*scale
		b[i].Y = a[i].Y + dy*scale
		b[i].VX = a[i].VX + (b[i].VX-a[i].VX)*scale
		b[i].VY = a[i].VY + (b[i].VY-a[i].VY)*scale
		in.Confine(&b[i])
	}
}
