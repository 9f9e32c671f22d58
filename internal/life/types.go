package life

import (
	"fmt"
	"math"
	"strings"
)

// MinDistFactor scales ParticleRadius into the pure-repulsion core distance.
const MinDistFactor = 4.0

// Particle is one simulated body. Type is fixed at creation.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Type   int
}

// Speed returns the magnitude of the velocity.
func (p Particle) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}

// ParticleState is the read-only view handed to renderers.
type ParticleState struct {
	X, Y float64
	Type int
}

// Config holds the engine tunables.
type Config struct {
	ParticleRadius    float64
	MaxForce          float64
	Friction          float64
	InteractionRadius float64
	Wrap              bool
	Speed             float64
	Dt                float64
	Width             float64
	Height            float64
	NumTypes          int
}

func DefaultConfig() Config {
	return Config{
		ParticleRadius:    2.5,
		MaxForce:          0.5,
		Friction:          0.3,
		InteractionRadius: 80,
		Wrap:              true,
		Speed:             1.0,
		Dt:                0.5,
		Width:             800,
		Height:            640,
		NumTypes:          6,
	}
}

// MinDist is the radius of the universal repulsion zone.
func (c Config) MinDist() float64 {
	return c.ParticleRadius * MinDistFactor
}

// WrapAligned reports whether both domain sides are whole multiples of the
// interaction radius. Under wrap the last grid cell of a side that is not
// a multiple is narrower, and a pair straddling that seam can fall outside
// each other's 3x3 query.
func (c Config) WrapAligned() bool {
	if !c.Wrap {
		return true
	}
	return aligned(c.Width, c.InteractionRadius) && aligned(c.Height, c.InteractionRadius)
}

func aligned(length, cell float64) bool {
	n := math.Round(length / cell)
	return n >= 1 && math.Abs(n*cell-length) <= 1e-9*length
}

// Validate reports the first invalid field as a *ConfigError.
func (c Config) Validate() error {
	checks := []struct {
		field    string
		value    float64
		positive bool
	}{
		{"particle_radius", c.ParticleRadius, false},
		{"max_force", c.MaxForce, false},
		{"friction", c.Friction, false},
		{"speed", c.Speed, false},
		{"dt", c.Dt, false},
		{"interaction_radius", c.InteractionRadius, true},
		{"width", c.Width, true},
		{"height", c.Height, true},
	}
	for _, ch := range checks {
		if math.IsNaN(ch.value) || math.IsInf(ch.value, 0) || ch.value < 0 || (ch.positive && ch.value == 0) {
			return &ConfigError{Field: ch.field, Value: ch.value}
		}
	}
	if c.NumTypes < 1 {
		return &ConfigError{Field: "num_types", Value: float64(c.NumTypes)}
	}
	return nil
}

// Params lists the tunables accepted by SetParam.
var Params = []string{"particle_radius", "max_force", "friction", "interaction_radius", "speed", "dt", "width", "height"}

// SetParam sets a float tunable by its config key. The result is not
// validated.
func (c *Config) SetParam(name string, v float64) error {
	switch name {
	case "particle_radius":
		c.ParticleRadius = v
	case "max_force":
		c.MaxForce = v
	case "friction":
		c.Friction = v
	case "interaction_radius":
		c.InteractionRadius = v
	case "speed":
		c.Speed = v
	case "dt":
		c.Dt = v
	case "width":
		c.Width = v
	case "height":
		c.Height = v
	default:
		return fmt.Errorf("%w: unknown parameter %q (one of %s)", ErrConfig, name, strings.Join(Params, ", "))
	}
	return nil
}
