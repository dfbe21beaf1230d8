package playback

import (
	"errors"
	"slices"

	"github.com/san-kum/algoviz/internal/graph"
	"github.com/san-kum/algoviz/internal/trace"
)

var (
	ErrNoSource     = errors.New("playback: no source")
	ErrInvalidSpeed = errors.New("playback: speed must be positive")
)

type Status int

const (
	Idle Status = iota
	Running
	Paused
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// Input is the original data a trace is generated from. Array is used by
// sorting sources; Graph, Start and End by search sources.
type Input struct {
	Array []float64
	Graph *graph.Graph
	Start string
	End   string
}

func (in Input) Clone() Input {
	out := in
	out.Array = slices.Clone(in.Array)
	if in.Graph != nil {
		out.Graph = in.Graph.Clone()
	}
	return out
}

// Source produces the trace for an input.
type Source interface {
	Name() string
	Generate(in Input) (*trace.Trace, error)
}

// Frame is what a presenter needs to draw the current moment.
type Frame struct {
	Algorithm string
	Index     int
	Total     int
	Status    Status
	Step      trace.Step

	// Array holds the displayed values for sorting traces.
	Array []float64

	// Graph and State are set for search traces. Graph is a copy of the
	// engine's input. State is nil before a trace is generated.
	Graph *graph.Graph
	State *trace.GraphState
}

// Done reports whether the frame shows the last step of its trace.
func (f Frame) Done() bool {
	return f.Total > 0 && f.Index == f.Total-1
}
