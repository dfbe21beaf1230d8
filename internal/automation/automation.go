// Package automation runs scripted batches of traces: YAML scenarios, size
// sweeps and randomized trials.
package automation

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/generate"
	"github.com/san-kum/algoviz/internal/graph"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/storage"
)

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Input resolves the same way as the CLI
// flags: explicit data, then a preset, then random data from Seed.
type ScenarioStep struct {
	Algorithm string       `yaml:"algorithm"`
	Preset    string       `yaml:"preset"`
	Size      int          `yaml:"size"`
	Nodes     int          `yaml:"nodes"`
	Seed      int64        `yaml:"seed"`
	Array     []float64    `yaml:"array"`
	Graph     *graph.Graph `yaml:"graph"`
	Start     string       `yaml:"start"`
	End       string       `yaml:"end"`
	Save      bool         `yaml:"save"`
}

func (s ScenarioStep) config() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Algorithm = s.Algorithm
	cfg.Preset = s.Preset
	cfg.Seed = s.Seed
	cfg.Array = s.Array
	cfg.Graph = s.Graph
	cfg.Start = s.Start
	cfg.End = s.End
	if s.Size > 0 {
		cfg.Size = s.Size
	}
	if s.Nodes > 0 {
		cfg.Nodes = s.Nodes
	}
	return cfg
}

// Outcome is the result of one scenario step. RunID is set when the step
// was saved.
type Outcome struct {
	Step   int
	Result *experiment.Result
	RunID  string
}

type Runner struct {
	Registry *experiment.Registry
	// Store receives steps marked save. It may be nil.
	Store  *storage.Store
	Logger *log.Logger
}

func NewRunner(r *experiment.Registry, store *storage.Store, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Registry: r, Store: store, Logger: logger}
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &scenario, nil
}

// RunScenario executes every step in order and stops at the first error,
// returning the outcomes completed so far.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		r.Logger.Info("running step", "step", fmt.Sprintf("%d/%d", i+1, len(scenario.Steps)), "algorithm", step.Algorithm)

		exp, err := experiment.FromConfig(r.Registry, step.config(), r.Logger)
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}
		res, err := exp.Run(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}

		out := Outcome{Step: i + 1, Result: res}
		if step.Save && r.Store != nil {
			if out.RunID, err = r.Store.Save(res, step.Seed); err != nil {
				return outcomes, fmt.Errorf("step %d save: %w", i+1, err)
			}
			r.Logger.Info("saved run", "id", out.RunID)
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}

// SizeSweep runs one algorithm on random inputs of growing size, one run
// per size from Min to Max in Stride increments.
type SizeSweep struct {
	Algorithm string
	Min, Max  int
	Stride    int
	Seed      int64
}

// SweepResult holds the metrics of one sweep point.
type SweepResult struct {
	Size    int
	Steps   int
	Metrics map[string]float64
}

func (r *Runner) RunSweep(ctx context.Context, sweep *SizeSweep) ([]SweepResult, error) {
	alg, err := r.Registry.Get(sweep.Algorithm)
	if err != nil {
		return nil, err
	}
	if sweep.Min < 1 || sweep.Max < sweep.Min {
		return nil, fmt.Errorf("invalid sweep range %d..%d", sweep.Min, sweep.Max)
	}
	stride := max(sweep.Stride, 1)

	rng := rand.New(rand.NewSource(sweep.Seed))
	var results []SweepResult
	for n := sweep.Min; n <= sweep.Max; n += stride {
		res, err := r.run(ctx, alg, randomInput(alg, rng, n))
		if err != nil {
			return results, fmt.Errorf("sweep size %d: %w", n, err)
		}
		results = append(results, SweepResult{Size: n, Steps: res.Trace.Len(), Metrics: res.Metrics})
		r.Logger.Debug("sweep point", "size", n, "steps", res.Trace.Len())
	}
	return results, nil
}

// TrialsConfig defines repeated runs on random inputs of one size.
type TrialsConfig struct {
	Algorithm string
	Size      int
	NumTrials int
	// Seed 0 seeds from the clock.
	Seed int64
}

// Summary aggregates one metric across trials.
type Summary struct {
	Min, Max, Mean float64
}

// RunTrials executes cfg.NumTrials runs concurrently and summarizes each
// finite metric. Inputs are drawn in trial order, so a fixed seed gives the
// same summary.
func (r *Runner) RunTrials(ctx context.Context, cfg *TrialsConfig) (map[string]Summary, error) {
	alg, err := r.Registry.Get(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	inputs := make([]playback.Input, cfg.NumTrials)
	for i := range inputs {
		inputs[i] = randomInput(alg, rng, cfg.Size)
	}

	results := make([]*experiment.Result, cfg.NumTrials)
	errs := make([]error, cfg.NumTrials)

	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = r.run(ctx, alg, inputs[idx])
		}(i)
	}
	wg.Wait()

	samples := map[string][]float64{}
	for i, res := range results {
		if errs[i] != nil {
			return nil, fmt.Errorf("trial %d: %w", i+1, errs[i])
		}
		for k, v := range res.Metrics {
			if !math.IsInf(v, 0) && !math.IsNaN(v) {
				samples[k] = append(samples[k], v)
			}
		}
	}
	r.Logger.Info("trials complete", "algorithm", alg.ID, "trials", cfg.NumTrials)

	return Summarize(samples), nil
}

// Summarize computes min, max and mean for each sample set.
func Summarize(samples map[string][]float64) map[string]Summary {
	out := make(map[string]Summary, len(samples))
	for k, vs := range samples {
		if len(vs) == 0 {
			continue
		}
		sum := 0.0
		for _, v := range vs {
			sum += v
		}
		out[k] = Summary{Min: slices.Min(vs), Max: slices.Max(vs), Mean: sum / float64(len(vs))}
	}
	return out
}

func randomInput(alg *experiment.Algorithm, rng *rand.Rand, n int) playback.Input {
	if alg.Category == experiment.Graph {
		return playback.Input{Graph: generate.Graph(rng, min(max(n, generate.MinNodes), generate.MaxNodes))}
	}
	return playback.Input{Array: generate.Array(rng, n)}
}

func (r *Runner) run(ctx context.Context, alg *experiment.Algorithm, in playback.Input) (*experiment.Result, error) {
	exp, err := experiment.New(r.Registry, experiment.Config{Algorithm: alg.ID, Input: in, Logger: r.Logger})
	if err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}
