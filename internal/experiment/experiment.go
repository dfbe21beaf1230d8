package experiment

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/generate"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/trace"
)

type Config struct {
	Algorithm string
	Input     playback.Input
	Seed      int64
	Logger    *log.Logger
}

// Experiment pairs an algorithm with its original input. It is the
// playback source for interactive runs.
type Experiment struct {
	alg        *Algorithm
	input      playback.Input
	randSource *rand.Rand
	logger     *log.Logger
}

type Result struct {
	Algorithm string
	Input     playback.Input
	Trace     *trace.Trace
	Metrics   map[string]float64
	Elapsed   time.Duration
}

func New(r *Registry, cfg Config) (*Experiment, error) {
	alg, err := r.Get(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	// Shuffles draw from Seed+1 so they never repeat data generated from
	// Seed itself.
	return &Experiment{
		alg:        alg,
		input:      cfg.Input.Clone(),
		randSource: rand.New(rand.NewSource(cfg.Seed + 1)),
		logger:     logger,
	}, nil
}

// FromConfig builds the experiment cfg describes, resolving the input that
// matches the algorithm's category.
func FromConfig(r *Registry, cfg *config.Config, logger *log.Logger) (*Experiment, error) {
	alg, err := r.Get(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	in, err := InputFor(alg, cfg)
	if err != nil {
		return nil, err
	}
	return New(r, Config{Algorithm: alg.ID, Input: in, Seed: cfg.Seed, Logger: logger})
}

// InputFor resolves the input cfg describes for alg.
func InputFor(alg *Algorithm, cfg *config.Config) (playback.Input, error) {
	if alg.Category == Graph {
		return cfg.GraphInput()
	}
	return cfg.ArrayInput()
}

func (e *Experiment) Name() string { return e.alg.ID }

func (e *Experiment) Algorithm() *Algorithm { return e.alg }

func (e *Experiment) Input() playback.Input { return e.input.Clone() }

func (e *Experiment) Generate(in playback.Input) (*trace.Trace, error) {
	start := time.Now()
	tr, err := e.alg.Generate(in)
	if err != nil {
		e.logger.Error("generation failed", "algorithm", e.alg.ID, "err", err)
		return nil, err
	}
	e.logger.Debug("generated", "algorithm", e.alg.ID, "steps", tr.Len(), "elapsed", time.Since(start))
	return tr, nil
}

// Shuffle replaces the input with fresh random data of the same size: a
// new array for sorting algorithms, a new graph for graph algorithms.
func (e *Experiment) Shuffle() playback.Input {
	switch e.alg.Category {
	case Graph:
		n := generate.MinNodes
		if e.input.Graph != nil {
			n = len(e.input.Graph.Nodes)
		}
		e.input = playback.Input{Graph: generate.Graph(e.randSource, n)}
	default:
		e.input = playback.Input{Array: generate.Array(e.randSource, len(e.input.Array))}
	}
	return e.input.Clone()
}

// SetInput replaces the original input.
func (e *Experiment) SetInput(in playback.Input) {
	e.input = in.Clone()
}

// Run generates the full trace for the current input and evaluates the
// standard metrics over it.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	tr, err := e.Generate(e.input.Clone())
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", e.alg.ID, err)
	}

	return &Result{
		Algorithm: e.alg.ID,
		Input:     e.input.Clone(),
		Trace:     tr,
		Metrics:   metrics.Evaluate(tr, metrics.Standard(tr.Kind)...),
		Elapsed:   time.Since(start),
	}, nil
}
