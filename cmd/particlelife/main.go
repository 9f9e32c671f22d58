package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/particlelife/internal/analysis"
	"github.com/san-kum/particlelife/internal/automation"
	"github.com/san-kum/particlelife/internal/config"
	"github.com/san-kum/particlelife/internal/experiment"
	"github.com/san-kum/particlelife/internal/life"
	"github.com/san-kum/particlelife/internal/matrix"
	"github.com/san-kum/particlelife/internal/sim"
	"github.com/san-kum/particlelife/internal/storage"
	"github.com/san-kum/particlelife/internal/viz"
)

var (
	dataDir    string
	configFile string
	logFormat  string
	logFile    string
	verbose    bool
	theme      string
	// Run settings
	preset      string
	matrixName  string
	particles   int
	steps       int
	sampleEvery int
	seed        int64
	// Simulation tunables
	dt             float64
	friction       float64
	maxForce       float64
	radius         float64
	particleRadius float64
	speed          float64
	width          float64
	height         float64
	numTypes       int
	bounce         bool
	// Analysis
	metricName   string
	xMetric      string
	yMetric      string
	sweepFrom    float64
	sweepTo      float64
	sweepPoints  int
	sweepTail    int
	perturbation float64
	// Bench
	seeds      int
	benchSteps int
	// Scenario
	saveStages bool
	svgPath    string

	logger = slog.Default()
)

// main registers every command and opens the preset menu when no subcommand
// is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:               "particlelife",
		Short:             "particle life simulation lab",
		PersistentPreRunE: setupLogger,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunMenu(cfg, theme, uiLogger())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", "", "data directory (default from config)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logFormat, "log-format", "text", "log format: text or json")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&theme, "theme", "neon", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store its telemetry",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final particle positions as SVG")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live terminal visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metricName, "metric", "", "plot a single metric ("+strings.Join(experiment.MetricNames, ", ")+")")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and samples as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			return st.ExportJSON(args[0], os.Stdout)
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			return st.ExportCSV(args[0], os.Stdout)
		},
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summary statistics and frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&metricName, "metric", "kinetic_energy", "metric for the spectrum")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "plot one metric against another",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&xMetric, "x", "crowding", "metric for the x-axis")
	phaseCmd.Flags().StringVar(&yMetric, "y", "kinetic_energy", "metric for the y-axis")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list run presets and matrix presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	matrixCmd := &cobra.Command{
		Use:   "matrix [preset|random]",
		Short: "show an interaction matrix",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showMatrix,
	}
	matrixCmd.Flags().IntVar(&numTypes, "types", 6, "number of types (random)")
	matrixCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (random)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the step loop",
		Args:  cobra.NoArgs,
		RunE:  benchSimulation,
	}
	addRunFlags(benchCmd)
	benchCmd.Flags().IntVar(&seeds, "seeds", 1, "parallel runs per particle count")
	benchCmd.Flags().IntVar(&benchSteps, "bench-steps", 200, "steps per run")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted multi-stage scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&saveStages, "save", false, "store every stage as a run")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "sweep a simulation parameter and plot a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepParam,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1.0, "last value")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 10, "number of values")
	sweepCmd.Flags().IntVar(&sweepTail, "tail", 10, "samples kept per value")
	sweepCmd.Flags().StringVar(&metricName, "metric", "kinetic_energy", "metric to record")

	divergenceCmd := &cobra.Command{
		Use:   "divergence",
		Short: "estimate sensitivity to a perturbed particle",
		Args:  cobra.NoArgs,
		RunE:  runDivergence,
	}
	addRunFlags(divergenceCmd)
	divergenceCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-3, "initial offset")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, analyzeCmd, phaseCmd,
		presetsCmd, matrixCmd, benchCmd, scenarioCmd, sweepCmd, divergenceCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&preset, "preset", "", "use run preset ("+strings.Join(config.ListPresets(), ", ")+")")
	f.StringVar(&matrixName, "matrix", "", "matrix preset, empty for random")
	f.IntVar(&particles, "particles", 1500, "particle count")
	f.IntVar(&steps, "steps", 1000, "steps to run")
	f.IntVar(&sampleEvery, "sample-every", 10, "steps between samples")
	f.Int64Var(&seed, "seed", 0, "random seed, 0 for time based")
	f.Float64Var(&dt, "dt", 0.5, "timestep")
	f.Float64Var(&friction, "friction", 0.3, "velocity damping per unit time")
	f.Float64Var(&maxForce, "max-force", 0.5, "force scale")
	f.Float64Var(&radius, "radius", 80, "interaction radius")
	f.Float64Var(&particleRadius, "particle-radius", 3, "particle radius")
	f.Float64Var(&speed, "speed", 1, "position speed multiplier")
	f.Float64Var(&width, "width", 800, "domain width")
	f.Float64Var(&height, "height", 640, "domain height")
	f.IntVar(&numTypes, "types", 6, "number of particle types")
	f.BoolVar(&bounce, "bounce", false, "reflect at the edges instead of wrapping")
}

func setupLogger(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		out = f
	}

	opts := &slog.HandlerOptions{Level: level}
	switch logFormat {
	case "text":
		logger = slog.New(slog.NewTextHandler(out, opts))
	case "json":
		logger = slog.New(slog.NewJSONHandler(out, opts))
	default:
		return fmt.Errorf("unknown log format: %s", logFormat)
	}
	slog.SetDefault(logger)
	return nil
}

// uiLogger keeps logs off the terminal while the alternate screen is active.
func uiLogger() *slog.Logger {
	if logFile != "" {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// resolveConfig layers settings: the run preset (or embedded defaults), then
// the config file, then flags that were set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	cfg, err := config.Overlay(cfg, configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("matrix") {
		cfg.Preset = matrixName
	}
	if flags.Changed("particles") {
		cfg.Particles = particles
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}

	s := &cfg.Simulation
	floats := map[string]struct {
		val float64
		dst *float64
	}{
		"dt":              {dt, &s.Dt},
		"friction":        {friction, &s.Friction},
		"max-force":       {maxForce, &s.MaxForce},
		"radius":          {radius, &s.InteractionRadius},
		"particle-radius": {particleRadius, &s.ParticleRadius},
		"speed":           {speed, &s.Speed},
		"width":           {width, &s.Width},
		"height":          {height, &s.Height},
	}
	for name, f := range floats {
		if flags.Changed(name) {
			*f.dst = f.val
		}
	}
	if flags.Changed("types") {
		s.NumTypes = numTypes
	}
	if flags.Changed("bounce") {
		s.Wrap = !bounce
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	dir := dataDir
	if !cmd.Flags().Changed("data") {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		dir = cfg.DataDir
	}
	st := storage.New(dir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	run := cfg.Experiment()

	exp := experiment.New(run)
	exp.SetLogger(logger)
	if err := exp.Setup(sim.WithLogger(logger)); err != nil {
		return err
	}

	every := max(run.Steps/10, 1)
	exp.Simulation().AddObserver(sim.ObserverFunc(func(tick int, t float64, ps []life.Particle) {
		if tick%every == 0 {
			logger.Debug("progress", "tick", tick, "time", t, "particles", len(ps))
		}
	}))

	name := run.Preset
	if name == "" {
		name = "random"
	}
	fmt.Printf("running %s with %d particles for %d steps...\n", name, run.Particles, run.Steps)

	result, err := exp.Run(cmd.Context())
	if err != nil {
		if result == nil {
			return err
		}
		logger.Warn("run interrupted, saving partial result", "err", err, "steps", result.Steps)
	}

	runID, err := st.Save(run, result)
	if err != nil {
		return err
	}
	logger.Debug("run stored", "result", result)

	if svgPath != "" {
		doc := viz.SnapshotSVG(result.Final, run.Sim, 1, viz.GetTheme(theme))
		if err := os.WriteFile(svgPath, []byte(doc), 0644); err != nil {
			return fmt.Errorf("writing svg: %w", err)
		}
		logger.Info("snapshot written", "path", svgPath, "particles", len(result.Final))
	}

	fmt.Printf("completed in %v\n", result.Duration)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("seed: %d\n", result.Seed)
	fmt.Printf("samples: %d\n", len(result.Samples))
	fmt.Println("\nmetrics:")
	for _, name := range experiment.MetricNames {
		if v, ok := result.Metrics[name]; ok {
			fmt.Printf("  %s: %.6f\n", name, v)
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	run := cfg.Experiment()
	log := uiLogger()

	s, err := sim.New(run.Sim, sim.WithSeed(run.Seed), sim.WithParticles(run.Particles), sim.WithLogger(log))
	if err != nil {
		return err
	}
	if run.Preset != "" {
		if err := s.SetPreset(run.Preset); err != nil {
			return err
		}
	}

	return viz.Run(s, viz.Options{
		Particles: run.Particles,
		Preset:    run.Preset,
		Theme:     theme,
		Logger:    log,
	})
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tPARTICLES\tSTEPS\tSEED\tENERGY")

	for _, run := range runs {
		preset := run.Preset
		if preset == "" {
			preset = "random"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.4f\n",
			run.ID,
			preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Steps,
			run.Seed,
			run.Metrics["kinetic_energy"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(samples))

	names := experiment.MetricNames
	if metricName != "" {
		names = []string{metricName}
	}
	for _, name := range names {
		data, err := experiment.Column(samples, name)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(strings.ReplaceAll(name, "_", " ")),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("not enough samples")
	}

	fmt.Printf("analysis: %s\n\n", meta.ID)
	for _, name := range experiment.MetricNames {
		data, err := experiment.Column(samples, name)
		if err != nil {
			return err
		}
		fmt.Printf("%-15s %s\n", name, analysis.Summarize(data))
	}
	fmt.Println()

	data, err := experiment.Column(samples, metricName)
	if err != nil {
		return err
	}
	ps := analysis.PowerSpectrum(data)
	if len(ps) > 2 {
		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum ("+metricName+")"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	interval := float64(meta.SampleEvery) * meta.Config.Dt
	freq, power := analysis.DominantFrequency(data, interval)
	fmt.Printf("dominant frequency: %.4f per unit time (power %.3e)\n", freq, power)
	if freq > 0 {
		fmt.Printf("period: %.2f time units\n", 1.0/freq)
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	xs, err := experiment.Column(samples, xMetric)
	if err != nil {
		return err
	}
	ys, err := experiment.Column(samples, yMetric)
	if err != nil {
		return err
	}
	portrait, err := analysis.NewPortrait(xMetric, xs, yMetric, ys)
	if err != nil {
		return err
	}

	fmt.Printf("phase plot: %s\n", runID)
	fmt.Printf("x-axis: %s, y-axis: %s\n\n", xMetric, yMetric)
	fmt.Println(portrait.ASCII(70, 20))
	fmt.Printf("\nLegend: . = early, o = middle, ● = late\n")
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN PRESET\tMATRIX\tPARTICLES\tEDGES\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		p, err := matrix.ParsePreset(cfg.Preset)
		if err != nil {
			return err
		}
		edges := "wrap"
		if !cfg.Simulation.Wrap {
			edges = "bounce"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", name, p, cfg.Particles, edges, p.Description())
	}
	return w.Flush()
}

func showMatrix(cmd *cobra.Command, args []string) error {
	name := "random"
	if len(args) > 0 {
		name = args[0]
	}

	var m *matrix.Matrix
	if name == "random" {
		s := seed
		if s == 0 {
			s = time.Now().UnixNano()
		}
		if numTypes < 1 {
			return fmt.Errorf("types must be positive, got %d", numTypes)
		}
		m = matrix.Random(numTypes, rand.New(rand.NewSource(s)))
		fmt.Printf("random matrix (seed %d)\n\n", s)
	} else {
		p, err := matrix.ParsePreset(name)
		if err != nil {
			return err
		}
		m = p.Matrix()
		fmt.Printf("%s: %s\n\n", p, p.Description())
	}

	fmt.Print(viz.MatrixView(m, viz.GetTheme(theme), false))
	return nil
}

func benchSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if seeds < 1 {
		return fmt.Errorf("seeds must be positive, got %d", seeds)
	}

	counts := []int{250, 500, 1000, 2000, 4000}
	if cmd.Flags().Changed("particles") {
		counts = []int{cfg.Particles}
	}
	run := cfg.Experiment()

	setup := func(s *sim.Simulation) error {
		if run.Preset == "" {
			return nil
		}
		return s.SetPreset(run.Preset)
	}

	fmt.Printf("benchmarking %d steps, %d seed(s) from %d\n\n", benchSteps, seeds, run.Seed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tSEEDS\tSTEPS\tTIME\tSTEPS/SEC\tSTDDEV")

	for _, n := range counts {
		ens := sim.NewEnsemble(run.Sim, seeds, run.Seed, sim.WithParticles(n), sim.WithLogger(logger))

		start := time.Now()
		results, err := ens.Run(cmd.Context(), benchSteps, setup)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		rates := make([]float64, len(results))
		for i, r := range results {
			rates[i] = r.StepsPerSecond()
		}
		mean, sd := stat.MeanStdDev(rates, nil)
		if len(rates) < 2 {
			sd = 0
		}

		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\t%.0f\n",
			n, seeds, benchSteps, elapsed.Round(time.Millisecond), mean, sd)
	}

	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	results, runErr := automation.RunScenario(cmd.Context(), sc, logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STAGE\tSTEPS\tPARTICLES\tENERGY\tCROWDING\tBALANCE\tTIME")
	for _, r := range results {
		last := r.Result.Samples[len(r.Result.Samples)-1]
		fmt.Fprintf(w, "%s\t%d\t%d\t%.4f\t%.2f\t%.3f\t%v\n",
			r.Stage, r.Result.Steps, last.Particles,
			r.Result.Metrics["kinetic_energy"], r.Result.Metrics["crowding"], r.Result.Metrics["type_balance"],
			r.Result.Duration.Round(time.Millisecond))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if saveStages && len(results) > 0 {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		base := sc.Base.Experiment()
		for _, r := range results {
			run := base
			run.Steps = r.Result.Steps
			run.Seed = r.Result.Seed
			id, err := st.Save(run, r.Result)
			if err != nil {
				return err
			}
			fmt.Printf("stored %s as %s\n", r.Stage, id)
		}
	}

	return runErr
}

func sweepParam(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if sweepPoints < 2 {
		return fmt.Errorf("points must be at least 2, got %d", sweepPoints)
	}

	param := args[0]
	values := analysis.Linspace(sweepFrom, sweepTo, sweepPoints)
	fmt.Printf("sweeping %s over [%g, %g] in %d points\n\n", param, sweepFrom, sweepTo, sweepPoints)

	points, err := analysis.Sweep(cmd.Context(), cfg.Experiment(), param, values, metricName, sweepTail)
	if err != nil {
		return err
	}

	fmt.Println(analysis.SweepToASCII(points, 70, 20))
	fmt.Println()
	for _, p := range points {
		fmt.Printf("  %s=%-8.4g %s\n", param, p.Param, analysis.Summarize(p.Values))
	}
	return nil
}

func runDivergence(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	run := cfg.Experiment()

	rate, err := analysis.Divergence(cmd.Context(), run, perturbation)
	if err != nil {
		return err
	}

	fmt.Printf("divergence rate: %.5f per unit time\n", rate)
	switch {
	case rate > 0.01:
		fmt.Println("nearby states separate: the configuration is sensitive to initial conditions")
	case rate < -0.01:
		fmt.Println("nearby states converge")
	default:
		fmt.Println("separation stays roughly constant")
	}
	return nil
}
