package sim

import (
	"log/slog"

	"github.com/san-kum/particlelife/internal/matrix"
)

type Option func(*Simulation)

// WithSeed makes particle placement, matrix randomization and spawning
// reproducible.
func WithSeed(seed int64) Option {
	return func(s *Simulation) {
		s.seed = seed
		s.seeded = true
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMatrix installs an initial matrix instead of a random one. A size
// mismatch is reported by New.
func WithMatrix(m *matrix.Matrix) Option {
	return func(s *Simulation) {
		s.initial = m
	}
}

// WithParticles populates the simulation with n particles at creation.
func WithParticles(n int) Option {
	return func(s *Simulation) {
		s.initialCount = n
	}
}
