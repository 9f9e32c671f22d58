package matrix

import (
	"fmt"
	"strings"

	"github.com/san-kum/particlelife/internal/life"
)

// PresetTypes is the type count every preset table is authored for.
const PresetTypes = 6

// Preset identifies one of the hand-authored tables.
type Preset int

const (
	Clustering Preset = iota
	Swarm
	PredatorPrey
	Symbiosis
	Chains
)

// Presets lists every preset in display order.
var Presets = []Preset{Clustering, Swarm, PredatorPrey, Symbiosis, Chains}

func (p Preset) String() string {
	switch p {
	case Clustering:
		return "clustering"
	case Swarm:
		return "swarm"
	case PredatorPrey:
		return "predator-prey"
	case Symbiosis:
		return "symbiosis"
	case Chains:
		return "chains"
	}
	return fmt.Sprintf("preset(%d)", int(p))
}

// Description is a one-line summary for listings.
func (p Preset) Description() string {
	switch p {
	case Clustering:
		return "diagonal-dominant: like attracts like"
	case Swarm:
		return "leader-follower: each type trails the next"
	case PredatorPrey:
		return "3-cycle hunt among 0..2, neutral block among 3..5"
	case Symbiosis:
		return "symmetric partner pairs (0,1) (2,3) (4,5)"
	case Chains:
		return "cyclic offset: links form along i -> i+1"
	}
	return ""
}

// ParsePreset resolves a name. Underscores and slashes are accepted in place
// of the hyphen.
func ParsePreset(name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "-", "/", "-", " ", "-").Replace(key)
	for _, p := range Presets {
		if p.String() == key {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown preset %q", life.ErrConfig, name)
}

// FromPreset returns a fresh copy of the named table.
func FromPreset(name string) (*Matrix, error) {
	p, err := ParsePreset(name)
	if err != nil {
		return nil, err
	}
	return p.Matrix(), nil
}

// Matrix returns a fresh copy of the preset table.
func (p Preset) Matrix() *Matrix {
	table := p.table()
	m := New(PresetTypes)
	for i := range table {
		copy(m.cells[i*PresetTypes:], table[i][:])
	}
	return m
}

func (p Preset) table() *[PresetTypes][PresetTypes]float64 {
	switch p {
	case Clustering:
		return &clustering
	case Swarm:
		return &swarm
	case PredatorPrey:
		return &predatorPrey
	case Symbiosis:
		return &symbiosis
	case Chains:
		return &chains
	}
	panic(fmt.Sprintf("matrix: no table for %v", p))
}

var clustering = [PresetTypes][PresetTypes]float64{
	{1.0, -0.2, -0.1, -0.2, -0.1, -0.2},
	{-0.2, 0.9, -0.2, -0.1, -0.2, -0.1},
	{-0.1, -0.2, 1.0, -0.2, -0.1, -0.2},
	{-0.2, -0.1, -0.2, 0.9, -0.2, -0.1},
	{-0.1, -0.2, -0.1, -0.2, 1.0, -0.2},
	{-0.2, -0.1, -0.2, -0.1, -0.2, 0.9},
}

var swarm = [PresetTypes][PresetTypes]float64{
	{0.3, 0.8, 0.0, 0.0, 0.0, -0.1},
	{-0.2, 0.3, 0.8, 0.0, 0.0, 0.0},
	{0.0, -0.2, 0.3, 0.8, 0.0, 0.0},
	{0.0, 0.0, -0.2, 0.3, 0.8, 0.0},
	{0.0, 0.0, 0.0, -0.2, 0.3, 0.8},
	{0.8, 0.0, 0.0, 0.0, -0.2, 0.3},
}

var predatorPrey = [PresetTypes][PresetTypes]float64{
	{0.2, 0.9, -0.7, 0.0, 0.0, 0.0},
	{-0.7, 0.2, 0.9, 0.0, 0.0, 0.0},
	{0.9, -0.7, 0.2, 0.0, 0.0, 0.0},
	{0.0, 0.0, 0.0, 0.1, 0.0, 0.0},
	{0.0, 0.0, 0.0, 0.0, 0.1, 0.0},
	{0.0, 0.0, 0.0, 0.0, 0.0, 0.1},
}

var symbiosis = [PresetTypes][PresetTypes]float64{
	{0.1, 0.7, -0.3, -0.3, -0.3, -0.3},
	{0.7, 0.1, -0.3, -0.3, -0.3, -0.3},
	{-0.3, -0.3, 0.1, 0.7, -0.3, -0.3},
	{-0.3, -0.3, 0.7, 0.1, -0.3, -0.3},
	{-0.3, -0.3, -0.3, -0.3, 0.1, 0.7},
	{-0.3, -0.3, -0.3, -0.3, 0.7, 0.1},
}

var chains = [PresetTypes][PresetTypes]float64{
	{0.3, 0.6, 0.0, 0.0, 0.0, -0.4},
	{-0.4, 0.3, 0.6, 0.0, 0.0, 0.0},
	{0.0, -0.4, 0.3, 0.6, 0.0, 0.0},
	{0.0, 0.0, -0.4, 0.3, 0.6, 0.0},
	{0.0, 0.0, 0.0, -0.4, 0.3, 0.6},
	{0.6, 0.0, 0.0, 0.0, -0.4, 0.3},
}
