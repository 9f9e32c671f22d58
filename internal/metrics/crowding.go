package metrics

import (
	"math"

	"github.com/san-kum/particlelife/internal/life"
	"github.com/san-kum/particlelife/internal/physics"
	"github.com/san-kum/particlelife/internal/spatial"
)

// Crowding is the mean number of other particles within the interaction
// radius. High values indicate clustering.
type Crowding struct {
	series
	grid *spatial.Grid
	cand []int
}

func NewCrowding() *Crowding {
	return &Crowding{series: series{name: "crowding"}}
}

func (c *Crowding) Observe(particles []life.Particle, cfg life.Config) {
	if c.grid == nil {
		c.grid = spatial.NewGrid(cfg.InteractionRadius)
	} else if c.grid.CellSize() != cfg.InteractionRadius {
		c.grid.Resize(cfg.InteractionRadius)
	}
	c.add(c.measure(particles, cfg))
}

func (c *Crowding) measure(particles []life.Particle, cfg life.Config) float64 {
	if len(particles) == 0 {
		return 0
	}
	c.grid.Build(particles)
	ex, ey := c.grid.Extent(cfg.Width), c.grid.Extent(cfg.Height)
	r2 := cfg.InteractionRadius * cfg.InteractionRadius

	total := 0
	for i, p := range particles {
		c.cand = c.grid.Candidates(c.cand[:0], p.X, p.Y, cfg.Wrap, ex, ey)
		for _, j := range c.cand {
			if j == i {
				continue
			}
			dx, dy := physics.Displacement(particles[j].X-p.X, particles[j].Y-p.Y, cfg.Width, cfg.Height, cfg.Wrap)
			if dx*dx+dy*dy < r2 {
				total++
			}
		}
	}
	return float64(total) / float64(len(particles))
}

// CrowdingOf computes a single crowding observation.
func CrowdingOf(particles []life.Particle, cfg life.Config) float64 {
	if cfg.InteractionRadius <= 0 || math.IsNaN(cfg.InteractionRadius) {
		return 0
	}
	c := NewCrowding()
	c.Observe(particles, cfg)
	return c.Last()
}
