package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/gustavorspires/sistema-solar-simulacao/internal/analysis"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/config"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/experiment"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/export"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/gui"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/optim"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/sim"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/storage"
	"github.com/gustavorspires/sistema-solar-simulacao/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string
	seed       uint64
	asteroids  int
	timeStep   float64

	steps       int
	sampleEvery int
	metricNames []string

	sweepParams []string
	sweepMetric string

	bodyName string
	outPath  string
	width    int
	height   int

	logger hclog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "solarsim",
		Short: "2D solar system gravity simulation",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = hclog.New(&hclog.LoggerOptions{
				Name:   "solarsim",
				Level:  hclog.LevelFromString(logLevel),
				Output: os.Stderr,
			})
		},
		// Default to the window when no command is given.
		RunE: runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".solarsim", "data directory")
	pf.StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Uint64Var(&seed, "seed", config.DefaultSeed, "asteroid belt seed")
	pf.IntVar(&asteroids, "asteroids", config.DefaultAsteroids, "number of asteroids")
	pf.Float64Var(&timeStep, "timestep", config.DefaultTimeStep, "initial time step")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the simulation in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and record planet tracks",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&steps, "steps", 10000, "number of ticks")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 10, "record positions every n ticks")
	runCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to observe (default all)")

	sweepCmd := &cobra.Command{
		Use:     "sweep",
		Short:   "run a parameter grid side by side and rank it by a metric",
		Example: "  solarsim sweep --param timestep=1,10,50 --param seed=1,2 --steps 2000",
		Args:    cobra.NoArgs,
		RunE:    runSweep,
	}
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "name=v1,v2,... (timestep, seed, asteroids, g)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "energy_drift", "metric to minimise")
	sweepCmd.Flags().IntVar(&steps, "steps", 2000, "number of ticks per run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a body's distance from the sun",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&bodyName, "body", "Earth", "body to plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate a body's orbital period",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&bodyName, "body", "Earth", "body to analyze")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw recorded orbits as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&width, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&height, "height", 800, "image height")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export recorded tracks as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE:  printConfig,
	}
	configCmd.Flags().StringVar(&outPath, "out", "", "save to file instead of printing")

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, sweepCmd, listCmd, plotCmd, analyzeCmd, exportSVGCmd, exportCSVCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers preset, then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("asteroids") {
		cfg.Belt.Count = asteroids
	}
	if flags.Changed("timestep") {
		cfg.Clock.TimeStep = timeStep
	}
	if f := flags.Lookup("steps"); f != nil && f.Changed {
		cfg.Run.Steps = steps
	}
	if f := flags.Lookup("sample-every"); f != nil && f.Changed {
		cfg.Run.SampleEvery = sampleEvery
	}

	return cfg, cfg.Validate()
}

func newExperiment(cmd *cobra.Command) (*experiment.Experiment, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return experiment.New(cfg, logger)
}

func openStore() (*storage.Store, error) {
	dir, err := homedir.Expand(dataDir)
	if err != nil {
		return nil, err
	}
	return storage.New(dir), nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	return gui.Run(exp, logger.Named("gui"))
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The terminal belongs to the UI; only errors reach stderr.
	logger.SetLevel(hclog.Error)
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	return viz.Run(viz.NewModel(exp, logger.Named("tui")))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	names := metricNames
	if len(names) == 0 {
		names = registry.ListMetrics()
	}
	ms, err := registry.Metrics(names, exp)
	if err != nil {
		return err
	}
	exp.Setup(ms)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := exp.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if result == nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	if err := st.Init(); err != nil {
		return err
	}

	cfg := exp.Config()
	meta := storage.RunMetadata{
		Preset:      preset,
		Seed:        cfg.Seed,
		G:           cfg.G,
		TimeStep:    cfg.Clock.TimeStep,
		Steps:       result.StepsTaken,
		SampleEvery: cfg.Run.SampleEvery,
		Asteroids:   cfg.Belt.Count,
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, name := range names {
		fmt.Printf("%s: %.6g\n", name, result.Metrics[name])
	}
	for _, rerr := range result.Errors {
		fmt.Printf("error: %v\n", rerr)
	}
	return nil
}

func parseSweepParams(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok || list == "" {
			return nil, nil, fmt.Errorf("bad --param %q, want name=v1,v2", spec)
		}
		var vals []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad value in --param %q: %w", spec, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	names, ranges, err := parseSweepParams(sweepParams)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("at least one --param is required")
	}

	build := func(p optim.Point) (*experiment.Experiment, error) {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return nil, err
		}
		if err := optim.Apply(cfg, p); err != nil {
			return nil, err
		}
		return experiment.New(cfg, logger.Named("sweep"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := optim.NewGridSearch(names, ranges)
	logger.Info("sweep started", "points", len(g.Points()), "metric", sweepMetric, "steps", steps)
	outcomes, best, err := g.Search(ctx, build, sweepMetric, sim.RunConfig{Steps: steps, SampleEvery: steps, ValidateState: true})
	if err != nil && outcomes == nil {
		return err
	}
	if err != nil {
		logger.Warn("some runs failed", "error", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PARAMS\t%s\tSTEPS\n", strings.ToUpper(sweepMetric))
	for i, o := range outcomes {
		mark := ""
		if i == best {
			mark = " *"
		}
		taken := 0
		if o.Result != nil {
			taken = o.Result.StepsTaken
		}
		fmt.Fprintf(w, "%s\t%.4g\t%d%s\n", o.Params, o.Value, taken, mark)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSTEPS\tTIMESTEP\tASTEROIDS\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2e\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.TimeStep,
			run.Asteroids,
			run.Seed,
		)
	}
	return w.Flush()
}

// bodyTrack loads a track and the Sun's position at its first sample. The
// Sun is always the first recorded track.
func bodyTrack(runID, name string) (*storage.Track, r2.Vec, error) {
	st, err := openStore()
	if err != nil {
		return nil, r2.Vec{}, err
	}
	tracks, err := st.LoadTracks(runID)
	if err != nil {
		return nil, r2.Vec{}, err
	}
	if len(tracks) == 0 || len(tracks[0].Points) == 0 {
		return nil, r2.Vec{}, fmt.Errorf("run %s: no data", runID)
	}
	tr := storage.FindTrack(tracks, name)
	if tr == nil {
		return nil, r2.Vec{}, fmt.Errorf("run %s: no track for %s", runID, name)
	}
	return tr, tracks[0].Points[0], nil
}

func sampleInterval(tr *storage.Track) (float64, error) {
	if len(tr.Times) < 2 {
		return 0, analysis.ErrTooShort
	}
	return tr.Times[1] - tr.Times[0], nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	tr, sun, err := bodyTrack(args[0], bodyName)
	if err != nil {
		return err
	}
	if len(tr.Points) < 2 {
		return fmt.Errorf("no data to plot")
	}

	d := analysis.Distances(tr.Points, sun)
	fmt.Printf("run: %s\n", args[0])
	fmt.Printf("samples: %d\n\n", len(d))
	fmt.Println(asciigraph.Plot(d,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("%s distance from sun", tr.Name))))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	tr, sun, err := bodyTrack(args[0], bodyName)
	if err != nil {
		return err
	}
	dt, err := sampleInterval(tr)
	if err != nil {
		return err
	}

	d := analysis.Distances(tr.Points, sun)
	minD, maxD := d[0], d[0]
	for _, v := range d {
		minD = min(minD, v)
		maxD = max(maxD, v)
	}

	fmt.Printf("body: %s\n", tr.Name)
	fmt.Printf("perihelion: %.2f\n", minD)
	fmt.Printf("aphelion: %.2f\n", maxD)

	if p, err := analysis.SweptPeriod(tr.Points, sun, dt); err == nil {
		fmt.Printf("period (swept angle): %.4g\n", p)
	} else {
		fmt.Printf("period (swept angle): n/a (%v)\n", err)
	}
	if p, err := analysis.DominantPeriod(d, dt); err == nil {
		fmt.Printf("period (distance spectrum): %.4g\n", p)
	} else {
		fmt.Printf("period (distance spectrum): n/a (%v)\n", err)
	}
	return nil
}

func output() (io.WriteCloser, error) {
	if outPath == "" {
		return nopCloser{os.Stdout}, nil
	}
	path, err := homedir.Expand(outPath)
	if err != nil {
		return nil, err
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	tracks, err := st.LoadTracks(args[0])
	if err != nil {
		return err
	}

	colors := map[string]string{cfg.Sun.Name: cfg.Sun.Color}
	for _, p := range cfg.Planets {
		colors[p.Name] = p.Color
	}
	paths := make([]export.Path, len(tracks))
	for i, tr := range tracks {
		paths[i] = export.Path{Name: tr.Name, Color: colors[tr.Name], Points: tr.Points}
	}

	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.WriteString(out, export.TracksToSVG(paths, width, height))
	return err
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	in, err := os.Open(st.TracksPath(args[0]))
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if outPath != "" {
		if err := config.Save(outPath, cfg); err != nil {
			return err
		}
		logger.Info("config saved", "path", outPath)
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
