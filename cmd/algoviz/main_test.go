package main

import (
	"slices"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/san-kum/algoviz/internal/trace"
)

func TestParseArray(t *testing.T) {
	got, err := parseArray(" 3, 1.5,,2 ")
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{3, 1.5, 2}; !slices.Equal(got, want) {
		t.Errorf("parseArray = %v, want %v", got, want)
	}
	if _, err := parseArray("1,x"); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestLoadConfigFlags(t *testing.T) {
	cmd := &cobra.Command{}
	inputFlags(cmd)
	if err := cmd.ParseFlags([]string{"--array", "4,2", "--seed", "9", "--speed", "250"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(cmd, []string{"mergesort"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Algorithm != "mergesort" || cfg.Seed != 9 || cfg.SpeedMS != 250 {
		t.Errorf("cfg = %+v", cfg)
	}
	if !slices.Equal(cfg.Array, []float64{4, 2}) {
		t.Errorf("array = %v", cfg.Array)
	}
}

func TestSeries(t *testing.T) {
	if got := series(trace.KindArray); !slices.Contains(got, trace.Swap) {
		t.Errorf("array series = %v", got)
	}
	if got := series(trace.KindDijkstra); !slices.Contains(got, trace.Relax) {
		t.Errorf("dijkstra series = %v", got)
	}
}

func TestResultStep(t *testing.T) {
	res := &experiment.Result{Trace: sorting.Bubble([]float64{2, 1})}
	defer func() { stepIndex = -1 }()

	stepIndex = -1
	if i, err := resultStep(res); err != nil || i != res.Trace.Len()-1 {
		t.Errorf("default step = %d, %v", i, err)
	}
	stepIndex = 1
	if i, err := resultStep(res); err != nil || i != 1 {
		t.Errorf("step = %d, %v", i, err)
	}
	stepIndex = res.Trace.Len()
	if _, err := resultStep(res); err == nil {
		t.Error("expected out of range error")
	}
}
