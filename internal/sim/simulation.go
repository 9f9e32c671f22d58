package sim

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/particlelife/internal/life"
	"github.com/san-kum/particlelife/internal/matrix"
	"github.com/san-kum/particlelife/internal/physics"
	"github.com/san-kum/particlelife/internal/spatial"
)

// SpawnRadius bounds the distance of spawned particles from the spawn point.
const SpawnRadius = 30.0

// Simulation owns the particle set, interaction matrix and run state. It is
// not safe for concurrent use.
type Simulation struct {
	cfg       life.Config
	matrix    *matrix.Matrix
	particles []life.Particle
	state     RunState

	grid *spatial.Grid
	fx   []float64
	fy   []float64
	cand []int

	rng    *rand.Rand
	seed   int64
	seeded bool

	tick    int
	elapsed float64

	observers []Observer
	log       *slog.Logger

	initial      *matrix.Matrix
	initialCount int
}

func New(cfg life.Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg: cfg,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if !s.seeded {
		s.seed = time.Now().UnixNano()
	}
	s.rng = rand.New(rand.NewSource(s.seed))
	s.grid = spatial.NewGrid(cfg.InteractionRadius)
	s.checkSeam()

	if s.initial != nil {
		if err := s.SetMatrix(s.initial); err != nil {
			return nil, err
		}
		s.initial = nil
	} else {
		s.matrix = matrix.Random(cfg.NumTypes, s.rng)
	}

	if err := s.ResetParticles(s.initialCount); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulation) checkSeam() {
	if !s.cfg.WrapAligned() {
		s.log.Warn("domain is not a multiple of the interaction radius, pairs across the wrap seam may not interact",
			"width", s.cfg.Width, "height", s.cfg.Height, "radius", s.cfg.InteractionRadius)
	}
}

func (s *Simulation) Seed() int64         { return s.seed }
func (s *Simulation) Config() life.Config { return s.cfg }
func (s *Simulation) Len() int            { return len(s.particles) }
func (s *Simulation) Tick() int           { return s.tick }
func (s *Simulation) Time() float64       { return s.elapsed }
func (s *Simulation) State() RunState     { return s.state }
func (s *Simulation) IsPaused() bool      { return s.state == Paused }

func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) SetPaused(paused bool) {
	if paused {
		s.state = Paused
	} else {
		s.state = Running
	}
}

func (s *Simulation) TogglePaused() bool {
	s.SetPaused(s.state == Running)
	return s.IsPaused()
}

// Configure replaces the tunables. Nothing is applied when cfg is invalid.
// A change of type count regenerates the matrix and repopulates the same
// number of particles.
func (s *Simulation) Configure(cfg life.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	prev := s.cfg
	s.cfg = cfg
	if cfg.InteractionRadius != prev.InteractionRadius {
		s.grid.Resize(cfg.InteractionRadius)
	}
	s.checkSeam()

	if cfg.NumTypes != prev.NumTypes {
		s.matrix = matrix.Random(cfg.NumTypes, s.rng)
		s.log.Debug("type count changed", "from", prev.NumTypes, "to", cfg.NumTypes)
		return s.ResetParticles(len(s.particles))
	}

	in := physics.NewIntegrator(cfg, 0)
	for i := range s.particles {
		in.Confine(&s.particles[i])
	}
	s.log.Debug("configuration applied", "wrap", cfg.Wrap, "radius", cfg.InteractionRadius)
	return nil
}

// Matrix returns a copy of the active interaction matrix.
func (s *Simulation) Matrix() *matrix.Matrix { return s.matrix.Clone() }

func (s *Simulation) SetMatrix(m *matrix.Matrix) error {
	if m == nil {
		return fmt.Errorf("%w: nil matrix", life.ErrConfig)
	}
	if m.Size() != s.cfg.NumTypes {
		return fmt.Errorf("%w: matrix is %dx%d, simulation has %d types",
			life.ErrDimensionMismatch, m.Size(), m.Size(), s.cfg.NumTypes)
	}
	s.matrix = m.Clone()
	s.log.Debug("matrix replaced", "size", m.Size())
	return nil
}

func (s *Simulation) SetPreset(name string) error {
	m, err := matrix.FromPreset(name)
	if err != nil {
		return err
	}
	if err := s.SetMatrix(m); err != nil {
		return fmt.Errorf("preset %s: %w", name, err)
	}
	return nil
}

func (s *Simulation) RandomizeMatrix() {
	s.matrix = matrix.Random(s.cfg.NumTypes, s.rng)
	s.log.Debug("matrix randomized", "size", s.cfg.NumTypes)
}

func (s *Simulation) SetCell(i, j int, v float64) error {
	return s.matrix.SetCell(i, j, v)
}

// ResetParticles replaces the particle set with count particles placed
// uniformly at rest.
func (s *Simulation) ResetParticles(count int) error {
	if count < 0 {
		return &life.ConfigError{Field: "count", Value: float64(count)}
	}

	particles := make([]life.Particle, count)
	for i := range particles {
		particles[i] = life.Particle{
			X:    s.rng.Float64() * s.cfg.Width,
			Y:    s.rng.Float64() * s.cfg.Height,
			Type: s.rng.Intn(s.cfg.NumTypes),
		}
	}
	s.particles = particles
	s.tick = 0
	s.elapsed = 0

	s.log.Debug("particles reset", "count", count, "types", s.cfg.NumTypes)
	return nil
}

// SpawnParticles appends count particles scattered around (x, y).
func (s *Simulation) SpawnParticles(x, y float64, count int) error {
	if count < 0 {
		return &life.ConfigError{Field: "count", Value: float64(count)}
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return &life.ConfigError{Field: "x", Value: x}
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return &life.ConfigError{Field: "y", Value: y}
	}

	in := physics.NewIntegrator(s.cfg, 0)
	for i := 0; i < count; i++ {
		r := s.rng.Float64() * SpawnRadius
		a := s.rng.Float64() * 2 * math.Pi
		p := life.Particle{
			X:    x + math.Cos(a)*r,
			Y:    y + math.Sin(a)*r,
			Type: s.rng.Intn(s.cfg.NumTypes),
		}
		in.Confine(&p)
		s.particles = append(s.particles, p)
	}
	return nil
}

// Step advances the simulation by dt. Forces are computed for every particle
// from the positions at the start of the step, then all particles are
// integrated. A paused simulation is left untouched.
func (s *Simulation) Step(dt float64) error {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return &life.ConfigError{Field: "dt", Value: dt}
	}
	if s.state == Paused {
		return nil
	}

	s.accumulate()

	in := physics.NewIntegrator(s.cfg, dt)
	for i := range s.particles {
		in.Integrate(&s.particles[i], s.fx[i], s.fy[i])
	}

	s.tick++
	s.elapsed += dt
	for _, o := range s.observers {
		o.OnStep(s.tick, s.elapsed, s.particles)
	}
	return nil
}

func (s *Simulation) accumulate() {
	n := len(s.particles)
	if cap(s.fx) < n {
		s.fx = make([]float64, n)
		s.fy = make([]float64, n)
	}
	s.fx = s.fx[:n]
	s.fy = s.fy[:n]
	clear(s.fx)
	clear(s.fy)

	s.grid.Build(s.particles)

	cfg := s.cfg
	params := physics.ParamsFrom(cfg)
	extentX := s.grid.Extent(cfg.Width)
	extentY := s.grid.Extent(cfg.Height)

	for i := range s.particles {
		pi := s.particles[i]
		s.cand = s.grid.Candidates(s.cand[:0], pi.X, pi.Y, cfg.Wrap, extentX, extentY)
		for _, j := range s.cand {
			if j == i {
				continue
			}
			pj := s.particles[j]
			dx, dy := physics.Displacement(pj.X-pi.X, pj.Y-pi.Y, cfg.Width, cfg.Height, cfg.Wrap)
			fx, fy := physics.PairForce(dx, dy, s.matrix.Strength(pi.Type, pj.Type), params)
			s.fx[i] += fx
			s.fy[i] += fy
		}
	}
}

// Snapshot returns a copy of positions and types for rendering.
func (s *Simulation) Snapshot() []life.ParticleState {
	out := make([]life.ParticleState, len(s.particles))
	for i, p := range s.particles {
		out[i] = life.ParticleState{X: p.X, Y: p.Y, Type: p.Type}
	}
	return out
}

// Particles returns a copy of the full particle set.
func (s *Simulation) Particles() []life.Particle {
	out := make([]life.Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// SetParticles replaces the particle set. Types must index the matrix and
// positions must be finite; positions then pass the boundary policy.
func (s *Simulation) SetParticles(particles []life.Particle) error {
	for i, p := range particles {
		if p.Type < 0 || p.Type >= s.cfg.NumTypes {
			return fmt.Errorf("%w: particle %d has type %d, simulation has %d types",
				life.ErrIndex, i, p.Type, s.cfg.NumTypes)
		}
		if !finite(p.X) || !finite(p.Y) || !finite(p.VX) || !finite(p.VY) {
			return fmt.Errorf("%w: particle %d has a non-finite position or velocity", life.ErrConfig, i)
		}
	}

	in := physics.NewIntegrator(s.cfg, 0)
	s.particles = append(s.particles[:0:0], particles...)
	for i := range s.particles {
		in.Confine(&s.particles[i])
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
