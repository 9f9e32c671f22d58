package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/particlelife/internal/life"
)

// series averages per-observation values.
type series struct {
	name    string
	total   float64
	last    float64
	samples int
}

func (s *series) Name() string { return s.name }

func (s *series) add(v float64) {
	s.total += v
	s.last = v
	s.samples++
}

func (s *series) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *series) Last() float64 { return s.last }

func (s *series) Reset() {
	s.total = 0
	s.last = 0
	s.samples = 0
}

// KineticEnergy is the mean per-particle ½|v|² (unit mass).
type KineticEnergy struct{ series }

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{series{name: "kinetic_energy"}}
}

func (k *KineticEnergy) Observe(particles []life.Particle, _ life.Config) {
	k.add(KineticEnergyOf(particles))
}

func KineticEnergyOf(particles []life.Particle) float64 {
	if len(particles) == 0 {
		return 0
	}
	e := make([]float64, len(particles))
	for i, p := range particles {
		e[i] = 0.5 * (p.VX*p.VX + p.VY*p.VY)
	}
	return stat.Mean(e, nil)
}

type MeanSpeed struct{ series }

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{series{name: "mean_speed"}}
}

func (m *MeanSpeed) Observe(particles []life.Particle, _ life.Config) {
	m.add(MeanSpeedOf(particles))
}

func MeanSpeedOf(particles []life.Particle) float64 {
	if len(particles) == 0 {
		return 0
	}
	v := make([]float64, len(particles))
	for i, p := range particles {
		v[i] = p.Speed()
	}
	return stat.Mean(v, nil)
}
