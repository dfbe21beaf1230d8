package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/tui"
	"github.com/san-kum/algoviz/internal/viz"
)

var (
	dataDir    string
	configFile string
	verbose    bool
	themeName  string

	// Input flags
	preset   string
	size     int
	nodes    int
	seed     int64
	arrayArg string
	start    string
	end      string
	speedMS  int

	// Output flags
	output     string
	width      int
	height     int
	frameDelay int
	stepIndex  int
	limit      int
	plain      bool

	// Batch flags
	sweepMin    int
	sweepMax    int
	sweepStride int
	numTrials   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "algoviz",
		Short: "step-by-step sorting and graph search visualizer",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
			viz.SetTheme(themeName)
		},
		RunE: playAlgorithm,
	}
	rootCmd.SilenceUsage = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", "", "data directory (default from config, else runs)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&themeName, "theme", "cyberpunk", "color theme: "+strings.Join(viz.ThemeNames(), ", "))

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "generate a trace and save the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAlgorithm,
	}
	inputFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a run's metadata and steps",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&limit, "limit", 20, "steps to print (0 for all)")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's operation counts per step",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVarP(&output, "output", "o", "", "also write the first series as SVG")

	playCmd := &cobra.Command{
		Use:   "play [algorithm]",
		Short: "play a trace interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  playAlgorithm,
	}
	inputFlags(playCmd)
	playCmd.Flags().BoolVar(&plain, "plain", false, "redraw to the terminal without keyboard control")

	exportGIFCmd := &cobra.Command{
		Use:   "export-gif [algorithm]",
		Short: "render every step of a trace to an animated GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportGIF,
	}
	inputFlags(exportGIFCmd)
	exportGIFCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <algorithm>.gif)")
	exportGIFCmd.Flags().IntVar(&width, "width", 0, "canvas width in cells")
	exportGIFCmd.Flags().IntVar(&height, "height", 0, "canvas height in cells")
	exportGIFCmd.Flags().IntVar(&frameDelay, "delay", 0, "frame delay in 1/100 s")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportDOTCmd := &cobra.Command{
		Use:   "export-dot [run_id]",
		Short: "export one step of a graph run as DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportDOT,
	}
	exportDOTCmd.Flags().StringVarP(&output, "output", "o", "", "output file; .svg renders with graphviz (default stdout DOT)")
	exportDOTCmd.Flags().IntVar(&stepIndex, "step", -1, "step index (default last)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export one step of a saved run as an SVG drawing",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&stepIndex, "step", -1, "step index (default last)")
	exportSVGCmd.Flags().IntVar(&width, "width", 0, "canvas width in cells")
	exportSVGCmd.Flags().IntVar(&height, "height", 0, "canvas height in cells")

	presetsCmd := &cobra.Command{
		Use:       "presets [array|graph]",
		Short:     "list input presets",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"array", "graph"},
		RunE:      listPresets,
	}

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "list available algorithms",
		RunE:  listAlgorithms,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [algorithm] [algorithm] ...",
		Short: "compare metrics of several algorithms on the same input",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareAlgorithms,
	}
	inputFlags(compareCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a YAML scenario of traces",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [algorithm]",
		Short: "run an algorithm on random inputs of growing size",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepMin, "min", 4, "smallest size")
	sweepCmd.Flags().IntVar(&sweepMax, "max", 32, "largest size")
	sweepCmd.Flags().IntVar(&sweepStride, "stride", 4, "size increment")
	sweepCmd.Flags().Int64Var(&seed, "seed", 0, "random seed")

	trialsCmd := &cobra.Command{
		Use:   "trials [algorithm]",
		Short: "summarize metrics over random inputs of one size",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrials,
	}
	trialsCmd.Flags().IntVar(&numTrials, "trials", 50, "number of runs")
	trialsCmd.Flags().IntVar(&size, "size", config.DefaultSize, "array size or node count")
	trialsCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 for clock)")

	rootCmd.AddCommand(runCmd, listCmd, showCmd, plotCmd, playCmd, exportGIFCmd, exportJSONCmd,
		exportDOTCmd, exportSVGCmd, presetsCmd, algorithmsCmd, compareCmd, batchCmd, sweepCmd, trialsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func inputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&preset, "preset", "", "input preset (see presets)")
	f.IntVar(&size, "size", config.DefaultSize, "random array size")
	f.IntVar(&nodes, "nodes", config.DefaultGraphSize, "random graph node count")
	f.Int64Var(&seed, "seed", 0, "random seed (0 for clock)")
	f.StringVar(&arrayArg, "array", "", "comma-separated values to sort")
	f.StringVar(&start, "start", "", "start node id")
	f.StringVar(&end, "end", "", "end node id")
	f.IntVar(&speedMS, "speed", config.DefaultSpeedMS, "playback delay per step in ms")
}

// loadConfig merges the config file, then flags the user set, then the
// algorithm argument.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if len(args) > 0 {
		cfg.Algorithm = args[0]
	}
	if changed("preset") {
		cfg.Preset = preset
	}
	if changed("size") {
		cfg.Size = size
	}
	if changed("nodes") {
		cfg.Nodes = nodes
	}
	if changed("seed") {
		cfg.Seed = seed
	}
	if changed("start") {
		cfg.Start = start
	}
	if changed("end") {
		cfg.End = end
	}
	if changed("speed") {
		cfg.SpeedMS = speedMS
	}
	if changed("array") {
		vals, err := parseArray(arrayArg)
		if err != nil {
			return nil, err
		}
		cfg.Array = vals
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func parseArray(s string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid array value %q: %w", field, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func storeDir() string {
	if dataDir != "" {
		return dataDir
	}
	if configFile != "" {
		if cfg, err := config.Load(configFile); err == nil && cfg.DataDir != "" {
			return cfg.DataDir
		}
	}
	return config.DefaultDataDir
}

func playAlgorithm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := loggerFromContext(cmd.Context())

	if !plain {
		return tui.RunInteractive(cfg, logger)
	}

	exp, err := experiment.FromConfig(experiment.NewRegistry(), cfg, logger)
	if err != nil {
		return err
	}
	e := newEngine(exp, cfg, logger)
	defer e.Close()

	r := tui.NewLiveRenderer(os.Stdout, cfg.Export.Width, cfg.Export.Height, true)
	return r.Play(cmd.Context(), e)
}
