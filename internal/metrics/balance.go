package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/particlelife/internal/life"
)

// TypeBalance is the Shannon entropy of the type distribution normalized to
// [0, 1]. One means every type is equally populated.
type TypeBalance struct{ series }

func NewTypeBalance() *TypeBalance {
	return &TypeBalance{series{name: "type_balance"}}
}

func (b *TypeBalance) Observe(particles []life.Particle, cfg life.Config) {
	b.add(TypeBalanceOf(particles, cfg.NumTypes))
}

func TypeBalanceOf(particles []life.Particle, numTypes int) float64 {
	if len(particles) == 0 || numTypes < 2 {
		return 0
	}
	p := make([]float64, numTypes)
	for _, q := range particles {
		if q.Type >= 0 && q.Type < numTypes {
			p[q.Type]++
		}
	}
	n := float64(len(particles))
	for i := range p {
		p[i] /= n
	}
	return stat.Entropy(p) / math.Log(float64(numTypes))
}
