package config

import "sort"

// Presets bundle a matrix preset with tunables that show it off.
var Presets = map[string]*Config{
	"cells": {
		Simulation: SimConfig{
			ParticleRadius: 2.5, MaxForce: 0.5, Friction: 0.4, InteractionRadius: 60,
			Wrap: true, Speed: 1.0, Dt: 0.5, Width: 840, Height: 600, NumTypes: 6,
		},
		Preset: "clustering", Particles: 1500, Steps: 1000, SampleEvery: 10,
	},
	"flock": {
		Simulation: SimConfig{
			ParticleRadius: 2.0, MaxForce: 0.6, Friction: 0.2, InteractionRadius: 80,
			Wrap: true, Speed: 1.2, Dt: 0.5, Width: 960, Height: 640, NumTypes: 6,
		},
		Preset: "swarm", Particles: 2000, Steps: 1500, SampleEvery: 10,
	},
	"hunt": {
		Simulation: SimConfig{
			ParticleRadius: 2.5, MaxForce: 0.7, Friction: 0.3, InteractionRadius: 90,
			Wrap: true, Speed: 1.0, Dt: 0.5, Width: 810, Height: 630, NumTypes: 6,
		},
		Preset: "predator-prey", Particles: 1200, Steps: 2000, SampleEvery: 10,
	},
	"garden": {
		Simulation: SimConfig{
			ParticleRadius: 3.0, MaxForce: 0.4, Friction: 0.35, InteractionRadius: 70,
			Wrap: false, Speed: 1.0, Dt: 0.5, Width: 840, Height: 630, NumTypes: 6,
		},
		Preset: "symbiosis", Particles: 1500, Steps: 1000, SampleEvery: 10,
	},
	"chains": {
		Simulation: SimConfig{
			ParticleRadius: 2.0, MaxForce: 0.5, Friction: 0.25, InteractionRadius: 80,
			Wrap: true, Speed: 1.0, Dt: 0.5, Width: 800, Height: 640, NumTypes: 6,
		},
		Preset: "chains", Particles: 1800, Steps: 1500, SampleEvery: 10,
	},
}

// GetPreset returns a copy of the named preset with the default data
// directory, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.DataDir = DefaultConfig().DataDir
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
