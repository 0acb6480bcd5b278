package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/submoonsim/internal/automation"
	"github.com/san-kum/submoonsim/internal/catalog"
	"github.com/san-kum/submoonsim/internal/config"
	"github.com/san-kum/submoonsim/internal/dynamo"
	"github.com/san-kum/submoonsim/internal/physics"
	"github.com/san-kum/submoonsim/internal/sim"
	"github.com/san-kum/submoonsim/internal/stability"
	"github.com/san-kum/submoonsim/internal/storage"
	"github.com/san-kum/submoonsim/internal/telemetry"
	"github.com/san-kum/submoonsim/internal/viz"
	"github.com/spf13/cobra"
)

const historyFile = "history.db"

var (
	dataDir    string
	configPath string

	paramValues = map[string]*float64{}

	speed       float64
	ticks       int
	fps         float64
	sampleEvery int
	realtime    bool
	compress    bool
	noSave      bool
	metricsAddr string
	record      bool

	sweepField string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	historyLimit       int
	historyFingerprint string
	outputPath         string
	benchTicks         int
	svgSize            int

	trials       int
	perturbation float64
	seed         int64
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("submoonsim: ")

	rootCmd := &cobra.Command{
		Use:          "submoonsim",
		Short:        "planet, moon and submoon stability explorer",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".submoonsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "system config file (yaml)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "advance a system headless and save the sampled orbits",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSim,
	}
	addParamFlags(runCmd)
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames at --fps")
	runCmd.Flags().BoolVar(&compress, "compress", false, "store positions lz4-compressed")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")

	stabilityCmd := &cobra.Command{
		Use:   "stability [preset]",
		Short: "print derived quantities and the stability report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showStability,
	}
	addParamFlags(stabilityCmd)
	stabilityCmd.Flags().BoolVar(&record, "record", false, "record the evaluation in the history database")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "score a range of values for one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addParamFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepField, "field", "submoon_orbit_radius", "parameter to vary")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", math.NaN(), "lower bound (default: slider minimum)")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", math.NaN(), "upper bound (default: slider maximum)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 30, "number of samples")
	sweepCmd.Flags().BoolVar(&record, "record", false, "record every point in the history database")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "interactive terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addParamFlags(liveCmd)
	liveCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "speed multiplier")
	liveCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "measure engine throughput",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchEngine,
	}
	addParamFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchTicks, "frames", 1_000_000, "frames per measurement")

	scenarioCmd := &cobra.Command{
		Use:   "scenario <file>",
		Short: "play a scripted sequence of parameter changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [preset]",
		Short: "score random perturbations of a system",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	addParamFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 200, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturbation", 0.1, "relative perturbation of every parameter")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0: time based)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in systems",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot <run_id>",
		Short: "plot distances from a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv <run_id>",
		Short: "write a run's positions as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json <run_id>",
		Short: "write a run's metadata and positions as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg <run_id>",
		Short: "draw a run's orbit paths as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 800, "image width and height in pixels")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "list recorded stability evaluations",
		RunE:  showHistory,
	}
	historyCmd.Flags().IntVar(&historyLimit, "limit", catalog.DefaultLimit, "maximum rows")
	historyCmd.Flags().StringVar(&historyFingerprint, "fingerprint", "", "only evaluations of this parameter set")

	rootCmd.AddCommand(runCmd, stabilityCmd, sweepCmd, liveCmd, benchCmd, scenarioCmd, monteCarloCmd, presetsCmd,
		listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, historyCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func flagName(param string) string { return strings.ReplaceAll(param, "_", "-") }

func addParamFlags(cmd *cobra.Command) {
	for _, key := range config.ParamKeys() {
		v, ok := paramValues[key]
		if !ok {
			v = new(float64)
			paramValues[key] = v
		}
		cmd.Flags().Float64Var(v, flagName(key), 0, "override "+key)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "speed multiplier")
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "frames to advance")
	cmd.Flags().Float64Var(&fps, "fps", config.DefaultFPS, "frame rate for --realtime")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "record every nth frame")
}

// resolveConfig layers preset, config file and flags, in increasing precedence.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	name := config.DefaultPreset
	if len(args) > 0 {
		name = args[0]
	} else if configPath != "" {
		peek, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if peek.Preset != "" {
			name = peek.Preset
		}
	}

	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(config.ListPresets(), ", "))
	}

	if configPath != "" {
		loaded, err := config.LoadOver(configPath, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	for _, key := range config.ParamKeys() {
		if !cmd.Flags().Changed(flagName(key)) {
			continue
		}
		p, err := cfg.System.With(key, *paramValues[key])
		if err != nil {
			return nil, err
		}
		cfg.System = p
	}
	if f := cmd.Flags().Lookup("speed"); f != nil && f.Changed {
		cfg.Sim.Speed = speed
	}
	if f := cmd.Flags().Lookup("ticks"); f != nil && f.Changed {
		cfg.Sim.Ticks = ticks
	}
	if f := cmd.Flags().Lookup("fps"); f != nil && f.Changed {
		cfg.Sim.FPS = fps
	}
	if f := cmd.Flags().Lookup("sample-every"); f != nil && f.Changed {
		cfg.Sim.SampleEvery = sampleEvery
	}

	cfg.Preset = name
	if cfg.System != config.Presets[name].Params {
		cfg.Preset = "custom"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openCatalog() (*catalog.Catalog, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return catalog.Open(filepath.Join(dataDir, historyFile))
}

func serveMetrics(ctx context.Context, collector *telemetry.Collector) {
	if metricsAddr == "" {
		return
	}
	go func() {
		if err := collector.Serve(ctx, metricsAddr); err != nil {
			log.Printf("metrics server: %v", err)
		}
	}()
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	collector := telemetry.NewCollector()
	eng, err := dynamo.NewWithParams(cfg.System)
	if err != nil {
		collector.RecordConfigureError(err)
		return err
	}
	d, err := sim.NewDriver(eng, cfg.Sim.Speed)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	serveMetrics(ctx, collector)

	runner := sim.NewRunner(d)
	runner.AddObserver(collector)

	fmt.Printf("running %s system for %d frames...\n", cfg.Preset, cfg.Sim.Ticks)
	start := time.Now()

	result, err := runner.Run(ctx, sim.Config{
		Ticks:       cfg.Sim.Ticks,
		FPS:         cfg.Sim.FPS,
		Realtime:    realtime,
		SampleEvery: cfg.Sim.SampleEvery,
	})
	if err != nil {
		if result == nil || !errors.Is(err, context.Canceled) {
			return err
		}
		log.Printf("interrupted after %d frames", result.Frames)
	}
	elapsed := time.Since(start)

	final := result.Final
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Printf("samples: %d\n", len(result.Ticks))
	fmt.Printf("score: %d (%s)\n", final.Stats.Score, final.Stats.Tier)
	for l := physics.Level(0); l < physics.NumLevels; l++ {
		fmt.Printf("  %-8s angle %.4f rad, %d turns\n", l, final.State.Angles[l], final.State.Turns[l])
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir).WithCompression(compress)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Preset, cfg.Sim.Speed, cfg.Sim.SampleEvery, result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func showStability(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	p := cfg.System
	d, err := physics.Derive(p)
	if err != nil {
		return err
	}
	stats := dynamo.ComputeStability(p, d)
	speeds := physics.OrbitSpeeds(p, d)

	fmt.Printf("system: %s\n\n", cfg.Preset)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, f := range p.Fields() {
		fmt.Fprintf(w, "%s\t%g\n", f.Name, f.Value)
	}
	fmt.Fprintln(w, "\t")
	fmt.Fprintf(w, "hill radius (planet)\t%.4f\n", d.HillRadiusOfPlanet)
	fmt.Fprintf(w, "hill radius (moon)\t%.4f\n", d.HillRadiusOfMoon)
	fmt.Fprintf(w, "roche limit\t%.4f\n", d.RocheLimit)
	fmt.Fprintf(w, "moon orbit distance\t%.4f\n", d.MoonOrbitDistance)
	fmt.Fprintf(w, "submoon orbit distance\t%.4f\n", d.SubmoonOrbitDistance)
	for l := physics.Level(0); l < physics.NumLevels; l++ {
		state := fmt.Sprintf("%.5f rad/frame", speeds.Omega[l])
		if speeds.Frozen[l] {
			state = "frozen"
		}
		fmt.Fprintf(w, "%s angular speed\t%s\n", l, state)
	}
	fmt.Fprintln(w, "\t")
	fmt.Fprintf(w, "score\t%d / %d\n", stats.Score, stability.MaxScore)
	fmt.Fprintf(w, "tier\t%s\n", stats.Tier)
	fmt.Fprintf(w, "lifetime\t%s\n", stats.Lifetime)
	fmt.Fprintf(w, "tidal effects\t%s\n", stats.Tidal)
	fmt.Fprintf(w, "planet/moon mass ratio\t%.2f\n", stats.PlanetToMoonMassRatio)
	fmt.Fprintf(w, "moon/submoon mass ratio\t%.2f\n", stats.MoonToSubmoonMassRatio)
	if err := w.Flush(); err != nil {
		return err
	}

	if d.MoonWithinRoche {
		fmt.Println("\nwarning: moon orbits inside the planet's roche limit")
	}
	if len(stats.CriticalParameters) > 0 {
		fmt.Println("\ncritical parameters:")
		for _, c := range stats.CriticalParameters {
			fmt.Printf("  - %s\n", c)
		}
	}

	if !record {
		return nil
	}
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	id, err := cat.Record(cmd.Context(), cfg.Preset, p, stats)
	if err != nil {
		return err
	}
	fmt.Printf("\nrecorded evaluation %d (%s)\n", id, storage.Fingerprint(p)[:12])
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	bound, ok := config.Bounds[sweepField]
	if !ok || sweepField == config.SpeedKey {
		return fmt.Errorf("unknown param: %s", sweepField)
	}
	lo, hi := sweepMin, sweepMax
	if math.IsNaN(lo) {
		lo = bound.Min
	}
	if math.IsNaN(hi) {
		hi = bound.Max
	}
	if sweepSteps < 2 {
		return fmt.Errorf("sweep needs at least 2 steps, got %d", sweepSteps)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	points, err := sim.NewSweep(cfg.System, sweepField, sim.Linspace(lo, hi, sweepSteps)).Run(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSCORE\tTIER\tLIFETIME\tCRITICAL\n", strings.ToUpper(sweepField))
	scores := make([]float64, len(points))
	for i, pt := range points {
		scores[i] = float64(pt.Stats.Score)
		fmt.Fprintf(w, "%.4f\t%d\t%s\t%s\t%d\n",
			pt.Value,
			pt.Stats.Score,
			pt.Stats.Tier,
			pt.Stats.Lifetime,
			len(pt.Stats.CriticalParameters),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(scores,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
		asciigraph.Caption(fmt.Sprintf("score vs %s [%.3g, %.3g]", sweepField, lo, hi)),
	))

	if !record {
		return nil
	}
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	for _, pt := range points {
		if _, err := cat.Record(ctx, "sweep:"+sweepField, pt.Params, pt.Stats); err != nil {
			return err
		}
	}
	fmt.Printf("recorded %d evaluations\n", len(points))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	collector := telemetry.NewCollector()
	eng, err := dynamo.NewWithParams(cfg.System)
	if err != nil {
		collector.RecordConfigureError(err)
		return err
	}
	d, err := sim.NewDriver(eng, cfg.Sim.Speed)
	if err != nil {
		return err
	}

	ctx, stop := context.WithCancel(cmd.Context())
	defer stop()
	serveMetrics(ctx, collector)

	m := viz.NewModel(d, cfg.Preset, collector)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func benchEngine(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if benchTicks <= 0 {
		return fmt.Errorf("frames must be positive, got %d", benchTicks)
	}

	fmt.Printf("benchmarking %s\n\n", cfg.Preset)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPEED\tFRAMES\tTIME\tFRAMES/SEC")

	for _, s := range []float64{0.5, 1, 5} {
		eng, err := dynamo.NewWithParams(cfg.System)
		if err != nil {
			return err
		}
		start := time.Now()
		for i := 0; i < benchTicks; i++ {
			eng.Tick(s, true)
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "%.1f\t%d\t%v\t%.0f\n", s, benchTicks, elapsed, float64(benchTicks)/elapsed.Seconds())
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, runErr := automation.RunScenario(ctx, scenario)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tFRAMES\tTICK\tSCORE\tTIER\tSUBMOON RADIUS")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%.3f\n",
			r.Name,
			r.Frames,
			r.Final.State.Ticks,
			r.Final.Stats.Score,
			r.Final.Stats.Tier,
			r.Final.Params.SubmoonOrbitRadius,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Base:         cfg.System,
		Perturbation: perturbation,
		NumTrials:    trials,
		Seed:         seed,
	})
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	tiers := map[stability.Tier]int{}
	for _, r := range results {
		tiers[r.Stats.Tier]++
	}

	fmt.Printf("system: %s, %d trials at ±%.0f%%\n\n", cfg.Preset, len(results), perturbation*100)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIER\tTRIALS\tSHARE")
	for _, tier := range []stability.Tier{stability.TierHigh, stability.TierMedium, stability.TierLow, stability.TierVeryLow} {
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", tier, tiers[tier], 100*float64(tiers[tier])/float64(len(results)))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nstable: %d, unstable: %d\n", stable, unstable)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSCORE\tTIER\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		preset := config.Presets[name]
		d, err := physics.Derive(preset.Params)
		if err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
		stats := dynamo.ComputeStability(preset.Params, d)
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", name, stats.Score, stats.Tier, preset.Description)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tTICKS\tSPEED\tSCORE\tTIER")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%d\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Speed,
			run.Stats.Score,
			run.Stats.Tier,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, positions, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(positions))

	series := []struct {
		caption string
		value   func(dynamo.Positions) float64
	}{
		{"submoon distance from star", func(p dynamo.Positions) float64 { return p.Submoon.Norm() }},
		{"submoon distance from moon", func(p dynamo.Positions) float64 { return p.SubmoonOffset().Norm() }},
		{"moon distance from planet", func(p dynamo.Positions) float64 { return p.MoonOffset().Norm() }},
	}

	for _, s := range series {
		data := make([]float64, len(positions))
		for i, p := range positions {
			data[i] = s.value(p)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func outputFile() (*os.File, func() error, error) {
	if outputPath == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	out, closeOut, err := outputFile()
	if err != nil {
		return err
	}
	if err := storage.New(dataDir).ExportCSV(out, args[0]); err != nil {
		_ = closeOut()
		return err
	}
	return closeOut()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	out, closeOut, err := outputFile()
	if err != nil {
		return err
	}
	if err := storage.New(dataDir).ExportJSON(out, args[0]); err != nil {
		_ = closeOut()
		return err
	}
	return closeOut()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, positions, err := storage.New(dataDir).LoadPositions(args[0])
	if err != nil {
		return err
	}
	svg := viz.TrajectorySVG(positions, svgSize, viz.Themes[0])
	if svg == "" {
		return fmt.Errorf("run %s has too few samples to draw", args[0])
	}

	out, closeOut, err := outputFile()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, svg); err != nil {
		_ = closeOut()
		return err
	}
	return closeOut()
}

func showHistory(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	var evals []catalog.Evaluation
	if historyFingerprint != "" {
		evals, err = cat.ByFingerprint(cmd.Context(), historyFingerprint)
	} else {
		evals, err = cat.Recent(cmd.Context(), historyLimit)
	}
	if err != nil {
		return err
	}

	if len(evals) == 0 {
		fmt.Println("no evaluations recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSCORE\tTIER\tLIFETIME\tFINGERPRINT\tPARAMS")
	for _, e := range evals {
		params, err := json.Marshal(e.Params)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Preset,
			e.RecordedAt.Local().Format("2006-01-02 15:04:05"),
			e.Score,
			e.Tier,
			e.Lifetime,
			e.Fingerprint[:12],
			params,
		)
	}
	return w.Flush()
}
