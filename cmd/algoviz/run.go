package main

import (
	"fmt"
	"math"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/export"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/san-kum/algoviz/internal/trace"
	"github.com/san-kum/algoviz/internal/viz"
)

func newEngine(exp *experiment.Experiment, cfg *config.Config, logger *log.Logger, opts ...playback.Option) *playback.Engine {
	opts = append([]playback.Option{
		playback.WithSpeed(cfg.Speed()),
		playback.WithLogger(logger),
	}, opts...)
	return playback.New(exp, exp.Input(), opts...)
}

func runAlgorithm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := loggerFromContext(cmd.Context())

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.FromConfig(experiment.NewRegistry(), cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("running", "algorithm", exp.Name())
	p := newProgress(logger)
	res, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("generated %d steps", res.Trace.Len()))

	runID, err := st.Save(res, cfg.Seed)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", res.Trace.Len())
	if last := res.Trace.Last(); last != nil {
		fmt.Printf("result: %s\n", last.Text())
	}
	fmt.Println("\nmetrics:")
	fmt.Print(viz.Metrics(res.Metrics))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(storeDir())
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tSTEPS\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Seed,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(storeDir())
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := st.LoadSteps(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("time: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("seed: %d\n", meta.Seed)
	if len(meta.Array) > 0 {
		fmt.Printf("input: %v\n", meta.Array)
	}
	if meta.Graph != nil {
		fmt.Printf("input: %d nodes, %d edges, %s -> %s\n", len(meta.Graph.Nodes), len(meta.Graph.Edges), meta.Start, meta.End)
	}
	fmt.Println("\nmetrics:")
	fmt.Print(viz.Metrics(meta.Metrics))

	if len(rows) <= 1 {
		return nil
	}
	steps := rows[1:]
	if limit > 0 && len(steps) > limit {
		steps = steps[:limit]
	}

	fmt.Printf("\nsteps (%d of %d):\n", len(steps), len(rows)-1)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTYPE\tTARGET\tMESSAGE")
	for _, r := range steps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r[0], r[1], r[2], r[4])
	}
	return w.Flush()
}

// series lists the step types whose running counts plot best for kind.
func series(k trace.Kind) []trace.StepType {
	switch k {
	case trace.KindBFS:
		return []trace.StepType{trace.Visit, trace.Discover}
	case trace.KindDijkstra:
		return []trace.StepType{trace.Visit, trace.Relax}
	default:
		return []trace.StepType{trace.Compare, trace.Swap, trace.Move}
	}
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(storeDir())
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("steps: %d\n\n", tr.Len())

	var first []float64
	for _, typ := range series(tr.Kind) {
		data := viz.Activity(tr, typ)
		if data[len(data)-1] == 0 {
			continue
		}
		if first == nil {
			first = data
		}
		fmt.Println(viz.Plot(data, 80, 10, string(typ)+" count vs step"))
		fmt.Println()
	}

	if last, ok := tr.Last().(*trace.DijkstraStep); ok && meta.Graph != nil {
		fmt.Println(viz.DistancePlot(last, meta.Graph.NodeIDs(), 80, 8))
	}

	if output != "" && first != nil {
		svg := export.SeriesToSVG(first, 800, 300, string(viz.CurrentTheme.Primary))
		if err := os.WriteFile(output, []byte(svg), 0644); err != nil {
			return err
		}
		loggerFromContext(cmd.Context()).Info("wrote plot", "path", output)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	kinds := []string{"array", "graph"}
	if len(args) > 0 {
		kinds = args
	}
	for _, kind := range kinds {
		fmt.Printf("%s presets:\n", kind)
		for _, name := range config.ListPresets(kind) {
			var desc string
			if kind == "array" {
				desc = config.GetArrayPreset(name).Description
			} else {
				desc = config.GetGraphPreset(name).Description
			}
			fmt.Printf("  %-14s %s\n", name, desc)
		}
	}
	return nil
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	r := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tTIME\tSPACE")
	for _, c := range []experiment.Category{experiment.Sorting, experiment.Graph} {
		for _, a := range r.ByCategory(c) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Title, a.Category, a.TimeComplexity, a.SpaceComplexity)
		}
	}
	return w.Flush()
}

func compareAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[:1])
	if err != nil {
		return err
	}
	logger := loggerFromContext(cmd.Context())
	r := experiment.NewRegistry()

	first, err := r.Get(args[0])
	if err != nil {
		return err
	}
	in, err := experiment.InputFor(first, cfg)
	if err != nil {
		return err
	}

	results := make([]*experiment.Result, 0, len(args))
	for _, name := range args {
		alg, err := r.Get(name)
		if err != nil {
			return err
		}
		if alg.Category != first.Category {
			return fmt.Errorf("cannot compare %s with %s: different input kinds", first.ID, alg.ID)
		}
		exp, err := experiment.New(r, experiment.Config{Algorithm: name, Input: in, Seed: cfg.Seed, Logger: logger})
		if err != nil {
			return err
		}
		res, err := exp.Run(cmd.Context())
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	var names []string
	for _, res := range results {
		for k := range res.Metrics {
			if !slices.Contains(names, k) {
				names = append(names, k)
			}
		}
	}
	slices.Sort(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "METRIC")
	for _, res := range results {
		fmt.Fprintf(w, "\t%s", res.Algorithm)
	}
	fmt.Fprintln(w)
	for _, k := range names {
		fmt.Fprint(w, k)
		for _, res := range results {
			v, ok := res.Metrics[k]
			switch {
			case !ok:
				fmt.Fprint(w, "\t-")
			case math.IsInf(v, 1):
				fmt.Fprint(w, "\tinf")
			default:
				fmt.Fprintf(w, "\t%g", v)
			}
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
