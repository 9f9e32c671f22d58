package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/particlelife/internal/life"
	"github.com/san-kum/particlelife/internal/metrics"
	"github.com/san-kum/particlelife/internal/sim"
)

type Config struct {
	Sim         life.Config
	Preset      string
	Particles   int
	Steps       int
	SampleEvery int
	Seed        int64
}

func (c Config) Validate() error {
	if err := c.Sim.Validate(); err != nil {
		return err
	}
	if c.Particles < 0 {
		return &life.ConfigError{Field: "particles", Value: float64(c.Particles)}
	}
	if c.Steps < 0 {
		return &life.ConfigError{Field: "steps", Value: float64(c.Steps)}
	}
	if c.SampleEvery < 1 {
		return &life.ConfigError{Field: "sample_every", Value: float64(c.SampleEvery)}
	}
	return nil
}

// Sample is one row of run telemetry.
type Sample struct {
	Tick          int     `csv:"tick" json:"tick"`
	Time          float64 `csv:"time" json:"time"`
	Particles     int     `csv:"particles" json:"particles"`
	KineticEnergy float64 `csv:"kinetic_energy" json:"kinetic_energy"`
	MeanSpeed     float64 `csv:"mean_speed" json:"mean_speed"`
	Crowding      float64 `csv:"crowding" json:"crowding"`
	TypeBalance   float64 `csv:"type_balance" json:"type_balance"`
}

type Result struct {
	Seed     int64
	Steps    int
	Samples  []Sample
	Metrics  map[string]float64
	Final    []life.ParticleState
	Duration time.Duration
}

func (r *Result) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("seed", r.Seed),
		slog.Int("steps", r.Steps),
		slog.Int("samples", len(r.Samples)),
		slog.Duration("duration", r.Duration),
	}
	for _, name := range MetricNames {
		if v, ok := r.Metrics[name]; ok {
			attrs = append(attrs, slog.Float64(name, v))
		}
	}
	return slog.GroupValue(attrs...)
}

// Series extracts one named column from the samples.
func (r *Result) Series(name string) ([]float64, error) {
	return Column(r.Samples, name)
}

var MetricNames = []string{"kinetic_energy", "mean_speed", "crowding", "type_balance"}

// Column extracts one named column from samples.
func Column(samples []Sample, name string) ([]float64, error) {
	var pick func(Sample) float64
	switch name {
	case "time":
		pick = func(s Sample) float64 { return s.Time }
	case "particles":
		pick = func(s Sample) float64 { return float64(s.Particles) }
	case "kinetic_energy":
		pick = func(s Sample) float64 { return s.KineticEnergy }
	case "mean_speed":
		pick = func(s Sample) float64 { return s.MeanSpeed }
	case "crowding":
		pick = func(s Sample) float64 { return s.Crowding }
	case "type_balance":
		pick = func(s Sample) float64 { return s.TypeBalance }
	default:
		return nil, fmt.Errorf("%w: unknown series %q", life.ErrConfig, name)
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = pick(s)
	}
	return out, nil
}

type Experiment struct {
	cfg        Config
	simulation *sim.Simulation
	energy     *metrics.KineticEnergy
	speed      *metrics.MeanSpeed
	crowding   *metrics.Crowding
	balance    *metrics.TypeBalance
	log        *slog.Logger
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:      cfg,
		energy:   metrics.NewKineticEnergy(),
		speed:    metrics.NewMeanSpeed(),
		crowding: metrics.NewCrowding(),
		balance:  metrics.NewTypeBalance(),
		log:      slog.Default(),
	}
}

// Setup builds the simulation. Extra options are applied after the seed and
// population.
func (e *Experiment) Setup(opts ...sim.Option) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	base := []sim.Option{sim.WithSeed(e.cfg.Seed), sim.WithParticles(e.cfg.Particles)}
	s, err := sim.New(e.cfg.Sim, append(base, opts...)...)
	if err != nil {
		return err
	}
	if e.cfg.Preset != "" {
		if err := s.SetPreset(e.cfg.Preset); err != nil {
			return err
		}
	}
	e.simulation = s
	return nil
}

// Attach runs against an existing simulation instead of building one in
// Setup. Only Steps and SampleEvery of the config are used.
func Attach(s *sim.Simulation, steps, sampleEvery int) (*Experiment, error) {
	if steps < 0 {
		return nil, &life.ConfigError{Field: "steps", Value: float64(steps)}
	}
	if sampleEvery < 1 {
		return nil, &life.ConfigError{Field: "sample_every", Value: float64(sampleEvery)}
	}
	e := New(Config{Sim: s.Config(), Steps: steps, SampleEvery: sampleEvery, Seed: s.Seed()})
	e.simulation = s
	return e, nil
}

func (e *Experiment) SetLogger(l *slog.Logger) { e.log = l }

// Simulation returns the underlying simulation for adding observers.
func (e *Experiment) Simulation() *sim.Simulation {
	return e.simulation
}

// Run steps the simulation, sampling every SampleEvery steps and after the
// last one. On cancellation the partial result is returned with ctx.Err().
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.simulation == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	for _, m := range e.metrics() {
		m.Reset()
	}

	s := e.simulation
	res := &Result{
		Seed:    s.Seed(),
		Samples: make([]Sample, 0, e.cfg.Steps/e.cfg.SampleEvery+2),
		Metrics: make(map[string]float64),
	}

	start := time.Now()
	res.Samples = append(res.Samples, e.sample())

	for i := 0; i < e.cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			e.finish(res, start)
			return res, ctx.Err()
		default:
		}

		if err := s.Step(s.Config().Dt); err != nil {
			return nil, err
		}
		res.Steps++

		if res.Steps%e.cfg.SampleEvery == 0 || res.Steps == e.cfg.Steps {
			res.Samples = append(res.Samples, e.sample())
		}
	}

	e.finish(res, start)
	e.log.Debug("experiment finished", "result", res)
	return res, nil
}

func (e *Experiment) metrics() []sim.Metric {
	return []sim.Metric{e.energy, e.speed, e.crowding, e.balance}
}

func (e *Experiment) sample() Sample {
	s := e.simulation
	particles := s.Particles()
	cfg := s.Config()
	for _, m := range e.metrics() {
		m.Observe(particles, cfg)
	}
	return Sample{
		Tick:          s.Tick(),
		Time:          s.Time(),
		Particles:     len(particles),
		KineticEnergy: e.energy.Last(),
		MeanSpeed:     e.speed.Last(),
		Crowding:      e.crowding.Last(),
		TypeBalance:   e.balance.Last(),
	}
}

func (e *Experiment) finish(res *Result, start time.Time) {
	res.Duration = time.Since(start)
	for _, m := range e.metrics() {
		res.Metrics[m.Name()] = m.Value()
	}
	res.Final = e.simulation.Snapshot()
}
