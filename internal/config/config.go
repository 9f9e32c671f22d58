// Package config loads particlelife run configuration from YAML.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/particlelife/internal/experiment"
	"github.com/san-kum/particlelife/internal/life"
	"github.com/san-kum/particlelife/internal/matrix"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type SimConfig struct {
	ParticleRadius    float64 `yaml:"particle_radius"`
	MaxForce          float64 `yaml:"max_force"`
	Friction          float64 `yaml:"friction"`
	InteractionRadius float64 `yaml:"interaction_radius"`
	Wrap              bool    `yaml:"wrap"`
	Speed             float64 `yaml:"speed"`
	Dt                float64 `yaml:"dt"`
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	NumTypes          int     `yaml:"num_types"`
}

type Config struct {
	Simulation  SimConfig `yaml:"simulation"`
	Preset      string    `yaml:"preset"`
	Particles   int       `yaml:"particles"`
	Steps       int       `yaml:"steps"`
	SampleEvery int       `yaml:"sample_every"`
	Seed        int64     `yaml:"seed"`
	DataDir     string    `yaml:"data_dir"`
}

// DefaultConfig returns the embedded defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: parsing embedded defaults: %v", err))
	}
	return cfg
}

// Load overlays the file at path on the defaults. Keys absent from the file
// keep their default values.
func Load(path string) (*Config, error) {
	return Overlay(DefaultConfig(), path)
}

// Overlay reads the file at path over base in place. An empty path leaves
// base untouched.
func Overlay(base *Config, path string) (*Config, error) {
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.Experiment().Validate(); err != nil {
		return err
	}
	if c.Preset != "" {
		if _, err := matrix.ParsePreset(c.Preset); err != nil {
			return err
		}
		if c.Simulation.NumTypes != matrix.PresetTypes {
			return fmt.Errorf("%w: preset %s needs %d types, config has %d",
				life.ErrDimensionMismatch, c.Preset, matrix.PresetTypes, c.Simulation.NumTypes)
		}
	}
	return nil
}

// SimConfig converts the simulation section to engine tunables.
func (c *Config) SimConfig() life.Config {
	s := c.Simulation
	return life.Config{
		ParticleRadius:    s.ParticleRadius,
		MaxForce:          s.MaxForce,
		Friction:          s.Friction,
		InteractionRadius: s.InteractionRadius,
		Wrap:              s.Wrap,
		Speed:             s.Speed,
		Dt:                s.Dt,
		Width:             s.Width,
		Height:            s.Height,
		NumTypes:          s.NumTypes,
	}
}

// Experiment builds a headless run description. A zero seed is replaced by
// the current time.
func (c *Config) Experiment() experiment.Config {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return experiment.Config{
		Sim:         c.SimConfig(),
		Preset:      c.Preset,
		Particles:   c.Particles,
		Steps:       c.Steps,
		SampleEvery: c.SampleEvery,
		Seed:        seed,
	}
}
