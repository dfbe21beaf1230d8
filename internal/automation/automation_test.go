package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/storage"
)

const scenarioYAML = `name: demo
description: sorting and search on presets
steps:
  - algorithm: bubblesort
    array: [3, 1, 2]
    save: true
  - algorithm: dijkstra
    preset: dense
    start: A
    end: F
  - algorithm: quicksort
    size: 12
    seed: 7
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "demo" || len(sc.Steps) != 3 {
		t.Fatalf("scenario = %+v", sc)
	}

	store := storage.New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	r := NewRunner(experiment.NewRegistry(), store, nil)

	out, err := r.RunScenario(context.Background(), sc)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Fatalf("outcomes = %d", len(out))
	}
	if out[0].RunID == "" || out[1].RunID != "" {
		t.Errorf("run ids = %q, %q", out[0].RunID, out[1].RunID)
	}
	if got := out[1].Result.Metrics["path_cost"]; got != 6 {
		t.Errorf("dijkstra path cost = %v, want 6", got)
	}
	if got := len(out[2].Result.Input.Array); got != 12 {
		t.Errorf("quicksort size = %d", got)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Algorithm != "bubblesort" {
		t.Errorf("stored runs = %+v", runs)
	}
}

func TestRunScenarioStopsOnError(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{
		{Algorithm: "mergesort", Array: []float64{2, 1}},
		{Algorithm: "heapsort"},
		{Algorithm: "bubblesort", Array: []float64{2, 1}},
	}}
	r := NewRunner(experiment.NewRegistry(), nil, nil)

	out, err := r.RunScenario(context.Background(), sc)
	if !errors.Is(err, experiment.ErrUnknownAlgorithm) {
		t.Fatalf("err = %v", err)
	}
	if len(out) != 1 {
		t.Errorf("completed = %d, want 1", len(out))
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
	if _, err := LoadScenario(writeScenario(t, "steps: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestRunSweep(t *testing.T) {
	r := NewRunner(experiment.NewRegistry(), nil, nil)
	res, err := r.RunSweep(context.Background(), &SizeSweep{Algorithm: "bubblesort", Min: 4, Max: 16, Stride: 4, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 4 {
		t.Fatalf("points = %d, want 4", len(res))
	}
	for i, p := range res {
		if p.Size != 4+4*i {
			t.Errorf("point %d size = %d", i, p.Size)
		}
		n := float64(p.Size)
		if got := p.Metrics["comparisons"]; got > n*(n-1)/2 {
			t.Errorf("size %d: %v comparisons exceeds n(n-1)/2", p.Size, got)
		}
	}
	if res[3].Steps <= res[0].Steps {
		t.Errorf("steps did not grow: %d then %d", res[0].Steps, res[3].Steps)
	}

	if _, err := r.RunSweep(context.Background(), &SizeSweep{Algorithm: "bubblesort", Min: 5, Max: 2}); err == nil {
		t.Error("expected range error")
	}
}

func TestRunTrials(t *testing.T) {
	r := NewRunner(experiment.NewRegistry(), nil, nil)
	sum, err := r.RunTrials(context.Background(), &TrialsConfig{Algorithm: "bfs", Size: 6, NumTrials: 5, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	v, ok := sum["visits"]
	if !ok {
		t.Fatalf("no visits summary in %v", sum)
	}
	if v.Min > v.Mean || v.Mean > v.Max {
		t.Errorf("visits summary out of order: %+v", v)
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(map[string][]float64{"a": {1, 2, 3}, "b": nil})
	if got["a"] != (Summary{Min: 1, Max: 3, Mean: 2}) {
		t.Errorf("a = %+v", got["a"])
	}
	if _, ok := got["b"]; ok {
		t.Error("empty samples should be skipped")
	}
}

func TestRunTrialsDeterministic(t *testing.T) {
	r := NewRunner(experiment.NewRegistry(), nil, nil)
	cfg := &TrialsConfig{Algorithm: "quicksort", Size: 10, NumTrials: 8, Seed: 11}

	a, err := r.RunTrials(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.RunTrials(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range a {
		if b[k] != v {
			t.Errorf("%s: %+v != %+v", k, v, b[k])
		}
	}
}
