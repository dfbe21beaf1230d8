package main

import (
	"fmt"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/automation"
	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/storage"
)

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger := loggerFromContext(cmd.Context())

	st := storage.New(storeDir())
	if err := st.Init(); err != nil {
		return err
	}
	r := automation.NewRunner(experiment.NewRegistry(), st, logger)

	logger.Info("scenario", "name", sc.Name, "steps", len(sc.Steps))
	p := newProgress(logger)
	outcomes, err := r.RunScenario(cmd.Context(), sc)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tALGORITHM\tSTEPS\tRUN ID")
	for _, o := range outcomes {
		id := o.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", o.Step, o.Result.Algorithm, o.Result.Trace.Len(), id)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("completed %d steps", len(outcomes)))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	r := automation.NewRunner(experiment.NewRegistry(), nil, loggerFromContext(cmd.Context()))
	res, err := r.RunSweep(cmd.Context(), &automation.SizeSweep{
		Algorithm: args[0],
		Min:       sweepMin,
		Max:       sweepMax,
		Stride:    sweepStride,
		Seed:      seed,
	})
	if err != nil {
		return err
	}

	var names []string
	if len(res) > 0 {
		for k := range res[0].Metrics {
			names = append(names, k)
		}
		slices.Sort(names)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SIZE\tSTEPS")
	for _, k := range names {
		fmt.Fprintf(w, "\t%s", k)
	}
	fmt.Fprintln(w)
	for _, p := range res {
		fmt.Fprintf(w, "%d\t%d", p.Size, p.Steps)
		for _, k := range names {
			fmt.Fprintf(w, "\t%g", p.Metrics[k])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runTrials(cmd *cobra.Command, args []string) error {
	r := automation.NewRunner(experiment.NewRegistry(), nil, loggerFromContext(cmd.Context()))
	sum, err := r.RunTrials(cmd.Context(), &automation.TrialsConfig{
		Algorithm: args[0],
		Size:      size,
		NumTrials: numTrials,
		Seed:      seed,
	})
	if err != nil {
		return err
	}

	names := make([]string, 0, len(sum))
	for k := range sum {
		names = append(names, k)
	}
	slices.Sort(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMIN\tMEAN\tMAX")
	for _, k := range names {
		s := sum[k]
		fmt.Fprintf(w, "%s\t%g\t%.2f\t%g\n", k, s.Min, s.Mean, s.Max)
	}
	return w.Flush()
}
