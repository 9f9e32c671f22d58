package sim

import "github.com/san-kum/particlelife/internal/life"

// Observer is notified after every completed physics step. The particle
// slice is the simulation's own storage and must not be retained or
// modified.
type Observer interface {
	OnStep(tick int, t float64, particles []life.Particle)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(tick int, t float64, particles []life.Particle)

func (f ObserverFunc) OnStep(tick int, t float64, particles []life.Particle) {
	f(tick, t, particles)
}

// Metric accumulates an observable over sampled particle sets.
type Metric interface {
	Name() string
	Observe(particles []life.Particle, cfg life.Config)
	Value() float64
	Reset()
}

// RunState is the run/pause state of a simulation.
type RunState int

const (
	Running RunState = iota
	Paused
)

func (r RunState) String() string {
	if r == Paused {
		return "paused"
	}
	return "running"
}
