package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/particlelife/internal/config"
	"github.com/san-kum/particlelife/internal/experiment"
	"github.com/san-kum/particlelife/internal/sim"
)

// Scenario scripts a sequence of stages over one simulation. Run settings
// (simulation tunables, preset, particles, seed) sit at the top level and
// default to the embedded configuration.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Base        config.Config `yaml:",inline"`
	Stages      []Stage       `yaml:"stages"`
}

// Stage applies its changes in field order, then runs Steps steps.
type Stage struct {
	Name        string             `yaml:"name"`
	Params      map[string]float64 `yaml:"params"`
	Wrap        *bool              `yaml:"wrap"`
	Preset      string             `yaml:"preset"`
	Randomize   bool               `yaml:"randomize"`
	Reset       int                `yaml:"reset"`
	Spawn       []Burst            `yaml:"spawn"`
	Paused      *bool              `yaml:"paused"`
	Steps       int                `yaml:"steps"`
	SampleEvery int                `yaml:"sample_every"`
}

// Burst spawns Count particles around (X, Y).
type Burst struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Count int     `yaml:"count"`
}

type StageResult struct {
	Stage  string
	Result *experiment.Result
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	scenario := Scenario{Base: *config.DefaultConfig()}
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if len(scenario.Stages) == 0 {
		return nil, fmt.Errorf("scenario %q has no stages", scenario.Name)
	}
	return &scenario, nil
}

// RunScenario executes every stage on one simulation so state carries over
// between stages. Results gathered before a failing stage are returned with
// the error.
func RunScenario(ctx context.Context, scenario *Scenario, log *slog.Logger) ([]StageResult, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := scenario.Base.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	run := scenario.Base.Experiment()
	s, err := sim.New(run.Sim, sim.WithSeed(run.Seed), sim.WithParticles(run.Particles), sim.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if run.Preset != "" {
		if err := s.SetPreset(run.Preset); err != nil {
			return nil, err
		}
	}

	results := make([]StageResult, 0, len(scenario.Stages))
	for i, stage := range scenario.Stages {
		name := stage.Name
		if name == "" {
			name = fmt.Sprintf("stage-%d", i+1)
		}
		log.Info("running stage", "scenario", scenario.Name, "stage", name, "index", i+1, "of", len(scenario.Stages))

		if err := apply(s, stage); err != nil {
			return results, fmt.Errorf("stage %s: %w", name, err)
		}

		every := stage.SampleEvery
		if every == 0 {
			every = run.SampleEvery
		}
		exp, err := experiment.Attach(s, stage.Steps, every)
		if err != nil {
			return results, fmt.Errorf("stage %s: %w", name, err)
		}
		exp.SetLogger(log)

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("stage %s run: %w", name, err)
		}
		results = append(results, StageResult{Stage: name, Result: result})
	}

	return results, nil
}

func apply(s *sim.Simulation, stage Stage) error {
	if len(stage.Params) > 0 || stage.Wrap != nil {
		cfg := s.Config()
		for k, v := range stage.Params {
			if err := cfg.SetParam(k, v); err != nil {
				return err
			}
		}
		if stage.Wrap != nil {
			cfg.Wrap = *stage.Wrap
		}
		if err := s.Configure(cfg); err != nil {
			return err
		}
	}
	if stage.Preset != "" {
		if err := s.SetPreset(stage.Preset); err != nil {
			return err
		}
	}
	if stage.Randomize {
		s.RandomizeMatrix()
	}
	if stage.Reset > 0 {
		if err := s.ResetParticles(stage.Reset); err != nil {
			return err
		}
	}
	for _, b := range stage.Spawn {
		if err := s.SpawnParticles(b.X, b.Y, b.Count); err != nil {
			return err
		}
	}
	if stage.Paused != nil {
		s.SetPaused(*stage.Paused)
	}
	return nil
}
