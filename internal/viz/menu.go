package viz

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/particlelife/internal/config"
	"github.com/san-kum/particlelife/internal/matrix"
	"github.com/san-kum/particlelife/internal/sim"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

const randomEntry = "random"

// Menu lists run presets and launches the live view for the chosen one.
type Menu struct {
	cursor  int
	entries []string
	base    *config.Config
	theme   string
	live    *Model
	err     error
	width   int
	height  int
	log     *slog.Logger
}

// NewMenu offers every run preset plus a random matrix built from base.
func NewMenu(base *config.Config, theme string, log *slog.Logger) *Menu {
	if log == nil {
		log = slog.Default()
	}
	return &Menu{
		entries: append(config.ListPresets(), randomEntry),
		base:    base,
		theme:   theme,
		log:     log,
	}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.live != nil {
		next, cmd := m.live.Update(msg)
		live := next.(Model)
		m.live = &live
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m.start()
		}
	}
	return m, nil
}

// Selected returns the run configuration behind the cursor.
func (m Menu) Selected() *config.Config {
	name := m.entries[m.cursor]
	if name == randomEntry {
		cfg := *m.base
		cfg.Preset = ""
		return &cfg
	}
	cfg := config.GetPreset(name)
	cfg.Seed = m.base.Seed
	return cfg
}

func (m Menu) start() (tea.Model, tea.Cmd) {
	cfg := m.Selected()
	if err := cfg.Validate(); err != nil {
		m.err = err
		return m, nil
	}
	run := cfg.Experiment()
	s, err := sim.New(run.Sim, sim.WithSeed(run.Seed), sim.WithParticles(run.Particles), sim.WithLogger(m.log))
	if err == nil && run.Preset != "" {
		err = s.SetPreset(run.Preset)
	}
	if err != nil {
		m.err = err
		return m, nil
	}

	m.log.Info("starting live view", "entry", m.entries[m.cursor], "seed", run.Seed, "particles", run.Particles)
	live := NewModel(s, Options{Particles: run.Particles, Preset: run.Preset, Theme: m.theme, Logger: m.log})
	if m.width > 0 {
		live.resize(m.width, m.height)
	}
	m.live = &live
	return m, live.Init()
}

func (m Menu) View() string {
	if m.live != nil {
		return m.live.View()
	}

	var b strings.Builder
	b.WriteString("\n  " + cyan.Render("particle life") + dim.Render("  choose a preset") + "\n\n")
	for i, name := range m.entries {
		desc := describe(name)
		if i == m.cursor {
			b.WriteString("  " + white.Render("▸ "+fmt.Sprintf("%-10s", name)) + " " + dim.Render(desc) + "\n")
		} else {
			b.WriteString("    " + dim.Render(fmt.Sprintf("%-10s", name)) + " " + dimmer.Render(desc) + "\n")
		}
	}
	if m.err != nil {
		b.WriteString("\n  " + errStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n  " + dimmer.Render("↑↓ select · enter start · q quit") + "\n")
	return b.String()
}

func describe(name string) string {
	if name == randomEntry {
		return "random matrix from the config seed"
	}
	cfg := config.GetPreset(name)
	p, err := matrix.ParsePreset(cfg.Preset)
	if err != nil {
		return cfg.Preset
	}
	return fmt.Sprintf("%s · %d particles", p.Description(), cfg.Particles)
}

// RunMenu shows the preset menu, then the live view.
func RunMenu(base *config.Config, theme string, log *slog.Logger) error {
	_, err := tea.NewProgram(NewMenu(base, theme, log), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
