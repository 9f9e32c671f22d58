package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/particlelife/internal/matrix"
	"github.com/san-kum/particlelife/internal/metrics"
	"github.com/san-kum/particlelife/internal/sim"
)

const (
	defaultWidth    = 80
	defaultHeight   = 30
	statsWidth      = 44
	historyCapacity = 300
	maxStepsPerTick = 10
	spawnBurst      = 20
	crowdingEvery   = 15
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Options configure a live view.
type Options struct {
	// Particles is the population restored by the reset key.
	Particles int
	Preset    string
	Theme     string
	Width     int
	Height    int
	Logger    *slog.Logger
}

// Model is the live view of one simulation.
type Model struct {
	sim           *sim.Simulation
	width, height int
	canvas        *Canvas
	theme         Theme
	particles     int
	preset        string
	stepsPerTick  int
	energy        []float64
	crowding      []float64
	frame         int
	fps           float64
	lastFrame     time.Time
	recorder      *Recorder
	showHelp      bool
	message       string
	log           *slog.Logger
}

func NewModel(s *sim.Simulation, opts Options) Model {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	particles := opts.Particles
	if particles <= 0 {
		particles = s.Len()
	}
	preset := opts.Preset
	if preset == "" {
		preset = "random"
	}

	return Model{
		sim:          s,
		width:        w,
		height:       h,
		canvas:       NewCanvas(w, h),
		theme:        GetTheme(opts.Theme),
		particles:    particles,
		preset:       preset,
		stepsPerTick: 1,
		energy:       make([]float64, 0, historyCapacity),
		crowding:     make([]float64, 0, historyCapacity),
		log:          log,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.spawnAt(msg.X, msg.Y)
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.advance(time.Time(msg))
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		if m.recorder != nil {
			m.saveRecording()
		}
		return m, tea.Quit
	case " ":
		m.sim.TogglePaused()
	case "r":
		m.sim.RandomizeMatrix()
		m.preset = "random"
	case "1", "2", "3", "4", "5":
		p := matrix.Presets[int(key[0]-'1')]
		if err := m.sim.SetPreset(p.String()); err != nil {
			m.message = err.Error()
			break
		}
		m.preset = p.String()
	case "w":
		cfg := m.sim.Config()
		cfg.Wrap = !cfg.Wrap
		if err := m.sim.Configure(cfg); err != nil {
			m.message = err.Error()
		}
	case "n":
		if err := m.sim.ResetParticles(m.particles); err != nil {
			m.message = err.Error()
		}
		m.energy = m.energy[:0]
		m.crowding = m.crowding[:0]
	case "+", "=":
		m.stepsPerTick = min(m.stepsPerTick+1, maxStepsPerTick)
	case "-", "_":
		m.stepsPerTick = max(m.stepsPerTick-1, 1)
	case "t":
		names := ThemeNames()
		for i, name := range names {
			if name == m.theme.Name {
				m.theme = GetTheme(names[(i+1)%len(names)])
				break
			}
		}
	case "g":
		if m.recorder != nil {
			m.saveRecording()
		} else {
			cfg := m.sim.Config()
			m.recorder = NewRecorder(cfg.Width, cfg.Height, 480, m.theme)
			m.message = "recording"
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) saveRecording() {
	path := fmt.Sprintf("particlelife_%d.gif", time.Now().Unix())
	if err := m.recorder.Save(path); err != nil {
		m.message = err.Error()
	} else {
		m.message = "saved " + path
		m.log.Info("recording saved", "path", path, "frames", m.recorder.Len())
	}
	m.recorder = nil
}

// advance steps the simulation and refreshes the metric history.
func (m *Model) advance(now time.Time) {
	if !m.lastFrame.IsZero() {
		if d := now.Sub(m.lastFrame).Seconds(); d > 0 {
			m.fps = 0.9*m.fps + 0.1/d
		}
	}
	m.lastFrame = now
	m.frame++

	if m.sim.IsPaused() {
		return
	}

	dt := m.sim.Config().Dt
	for i := 0; i < m.stepsPerTick; i++ {
		if err := m.sim.Step(dt); err != nil {
			m.message = err.Error()
			return
		}
	}

	particles := m.sim.Particles()
	m.energy = pushHistory(m.energy, metrics.KineticEnergyOf(particles))
	if m.frame%crowdingEvery == 0 {
		m.crowding = pushHistory(m.crowding, metrics.CrowdingOf(particles, m.sim.Config()))
	}
	if m.recorder != nil {
		m.recorder.Capture(m.sim.Snapshot())
	}
}

func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) resize(w, h int) {
	cw := max(w-statsWidth-6, 20)
	ch := max(h-2, 10)
	if cw == m.width && ch == m.height {
		return
	}
	m.width, m.height = cw, ch
	m.canvas = NewCanvas(cw, ch)
}

// toWorld maps a terminal cell to domain coordinates. The canvas starts
// after the style padding.
func (m *Model) toWorld(col, row int) (float64, float64, bool) {
	cx, cy := col-2, row-1
	if cx < 0 || cy < 0 || cx >= m.width || cy >= m.height {
		return 0, 0, false
	}
	cfg := m.sim.Config()
	x := (float64(cx) + 0.5) / float64(m.width) * cfg.Width
	y := (float64(cy) + 0.5) / float64(m.height) * cfg.Height
	return x, y, true
}

func (m *Model) spawnAt(col, row int) {
	x, y, ok := m.toWorld(col, row)
	if !ok {
		return
	}
	if err := m.sim.SpawnParticles(x, y, spawnBurst); err != nil {
		m.message = err.Error()
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	cfg := m.sim.Config()
	cw, ch := m.width*2, m.height*4
	sx := float64(cw) / cfg.Width
	sy := float64(ch) / cfg.Height

	for _, p := range m.sim.Snapshot() {
		m.canvas.SetTyped(int(p.X*sx), int(p.Y*sy), p.Type)
	}

	if !cfg.Wrap {
		m.canvas.DrawLine(0, 0, cw-1, 0)
		m.canvas.DrawLine(0, ch-1, cw-1, ch-1)
		m.canvas.DrawLine(0, 0, 0, ch-1)
		m.canvas.DrawLine(cw-1, 0, cw-1, ch-1)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	th := m.theme
	canvasView := canvasStyle.Render(m.canvas.Render(func(owner int) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(th.TypeColor(owner))
	}))

	cfg := m.sim.Config()
	var s strings.Builder
	s.WriteString(th.Title("PARTICLE LIFE", cfg.NumTypes) + "\n\n")

	status := th.Status(m.sim.IsPaused())
	if m.recorder != nil {
		status += "  " + th.recording(m.recorder.Len())
	}
	s.WriteString(status + "\n\n")

	edges := "wrap"
	if !cfg.Wrap {
		edges = "bounce"
	}
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Preset", m.preset)
	row("Particles", fmt.Sprintf("%d", m.sim.Len()))
	row("Types", fmt.Sprintf("%d", cfg.NumTypes))
	row("Edges", edges)
	row("Tick", fmt.Sprintf("%d", m.sim.Tick()))
	row("Time", fmt.Sprintf("%.1f", m.sim.Time()))
	row("Speed", fmt.Sprintf("x%d  %.0f fps", m.stepsPerTick, m.fps))
	if m.recorder != nil {
		row("Buffer", th.Meter(float64(m.recorder.Len())/float64(m.recorder.maxFrames), 20))
	}
	if n := len(m.energy); n > 0 {
		row("Energy", lipgloss.NewStyle().Bold(true).Foreground(th.Accent).Render(fmt.Sprintf("%.4f", m.energy[n-1])))
	}

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if len(m.crowding) > 0 {
		s.WriteString(labelStyle.Render("Crowding") + th.Sparkline(m.crowding, 28) + "\n")
	}

	s.WriteString("\n" + MatrixView(m.sim.Matrix(), th, true))

	if m.message != "" {
		s.WriteString("\n" + errStyle.Render(m.message) + "\n")
	}
	s.WriteString(helpStyle.Render(th.rule(30) + "\nSP:Pause R:Random 1-5:Preset\nW:Edges N:Reset +/-:Speed\nT:Theme G:Record ?:Help Q:Quit"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpOverlay() + "\n\n" + mainView
	}
	return mainView
}

func helpOverlay() string {
	var b strings.Builder
	b.WriteString(`
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Randomize matrix         ║
║  W        - Toggle wrap/bounce       ║
║  N        - Reset particles          ║
║  +/-      - Steps per frame          ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  Click    - Spawn particles          ║
║  Q        - Quit                     ║
╠══════════════════════════════════════╣
`)
	for i, p := range matrix.Presets {
		b.WriteString(fmt.Sprintf("║  %d        - %-24s║\n", i+1, p.String()))
	}
	b.WriteString("╚══════════════════════════════════════╝")
	return b.String()
}

// Run starts the live view in the alternate screen with mouse support.
func Run(s *sim.Simulation, opts Options) error {
	_, err := tea.NewProgram(NewModel(s, opts), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
