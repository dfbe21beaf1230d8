package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/capture"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/export"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/san-kum/algoviz/internal/viz"
)

func exportGIF(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if width > 0 {
		cfg.Export.Width = width
	}
	if height > 0 {
		cfg.Export.Height = height
	}
	if frameDelay > 0 {
		cfg.Export.FrameDelay = frameDelay
	}
	logger := loggerFromContext(cmd.Context())

	exp, err := experiment.FromConfig(experiment.NewRegistry(), cfg, logger)
	if err != nil {
		return err
	}

	clock := playback.NewManualClock()
	e := newEngine(exp, cfg, logger, playback.WithClock(clock))
	defer e.Close()

	s := capture.NewSession(capture.Options{
		Width:  cfg.Export.Width,
		Height: cfg.Export.Height,
		Delay:  cfg.Export.FrameDelay,
		Loop:   cfg.Export.Loop,
		Theme:  viz.CurrentTheme,
	})

	p := newProgress(logger)
	if err := capture.Record(cmd.Context(), e, clock, s); err != nil {
		return err
	}

	path := output
	if path == "" {
		path = exp.Name() + ".gif"
	}
	if err := s.Save(path); err != nil {
		return err
	}
	p.done(fmt.Sprintf("wrote %d frames to %s", s.Len(), path))
	return nil
}

// loadResult rebuilds the result of a saved run.
func loadResult(st *storage.Store, runID string) (*experiment.Result, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, err
	}
	tr, err := st.LoadTrace(runID)
	if err != nil {
		return nil, err
	}
	return &experiment.Result{
		Algorithm: meta.Algorithm,
		Input:     playback.Input{Array: meta.Array, Graph: meta.Graph, Start: meta.Start, End: meta.End},
		Trace:     tr,
		Metrics:   meta.Metrics,
		Elapsed:   meta.Elapsed,
	}, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	res, err := loadResult(storage.New(storeDir()), args[0])
	if err != nil {
		return err
	}
	if output == "" {
		return storage.WriteJSON(os.Stdout, res)
	}
	if err := storage.ExportJSON(output, res); err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Info("exported", "path", output)
	return nil
}

// resultStep resolves the --step flag against res, negative meaning last.
func resultStep(res *experiment.Result) (int, error) {
	i := stepIndex
	if i < 0 {
		i = res.Trace.Len() - 1
	}
	if res.Trace.At(i) == nil {
		return 0, fmt.Errorf("step %d out of range [0, %d)", i, res.Trace.Len())
	}
	return i, nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	res, err := loadResult(storage.New(storeDir()), args[0])
	if err != nil {
		return err
	}
	i, err := resultStep(res)
	if err != nil {
		return err
	}

	w, h := config.DefaultWidth, config.DefaultHeight
	if width > 0 {
		w = width
	}
	if height > 0 {
		h = height
	}
	f := playback.FrameAt(res.Trace, res.Input, i)
	svg := export.FrameToSVG(f, w, h, viz.CurrentTheme, 4)
	if output == "" {
		_, err := fmt.Println(svg)
		return err
	}
	if err := os.WriteFile(output, []byte(svg), 0644); err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Info("exported", "path", output, "step", i)
	return nil
}

func exportDOT(cmd *cobra.Command, args []string) error {
	res, err := loadResult(storage.New(storeDir()), args[0])
	if err != nil {
		return err
	}
	if res.Input.Graph == nil {
		return fmt.Errorf("run %s is not a graph run", args[0])
	}

	i, err := resultStep(res)
	if err != nil {
		return err
	}

	dot := export.ToDOT(res.Input.Graph, res.Trace.At(i), viz.CurrentTheme)
	if output == "" {
		_, err := fmt.Print(dot)
		return err
	}

	data := []byte(dot)
	if strings.EqualFold(filepath.Ext(output), ".svg") {
		if data, err = export.RenderSVG(cmd.Context(), dot); err != nil {
			return err
		}
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Info("exported", "path", output, "step", i)
	return nil
}
