package trace

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
)

// Kind discriminates the step variants.
type Kind string

const (
	KindArray    Kind = "array"
	KindBFS      Kind = "bfs"
	KindDijkstra Kind = "dijkstra"
)

// StepType is the semantic action a step narrates.
type StepType string

const (
	Highlight StepType = "highlight"
	Compare   StepType = "compare"
	Swap      StepType = "swap"
	Move      StepType = "move"
	Visit     StepType = "visit"
	Discover  StepType = "discover"
	Explore   StepType = "explore"
	Relax     StepType = "relax"
	Path      StepType = "path"
	Complete  StepType = "complete"
)

// Step is one inspectable moment of a run.
type Step interface {
	Kind() Kind
	StepType() StepType
	Text() string
}

// Header carries the fields every variant has.
type Header struct {
	Type    StepType `json:"type"`
	Message string   `json:"message"`
}

func (h Header) StepType() StepType { return h.Type }
func (h Header) Text() string       { return h.Message }

// ArrayStep records a sorting step. Array holds the full contents after the
// step was applied.
type ArrayStep[E any] struct {
	Header
	Indices []int `json:"indices"`
	Array   []E   `json:"array"`
}

func (*ArrayStep[E]) Kind() Kind { return KindArray }

// NumberStep is the array step used throughout the core.
type NumberStep = ArrayStep[float64]

// GraphState holds the snapshot fields shared by the graph variants.
type GraphState struct {
	NodeID   string            `json:"nodeId,omitempty"`
	EdgeID   string            `json:"edgeId,omitempty"`
	Visited  NodeSet           `json:"visited"`
	Previous map[string]string `json:"previous"`
	Path     []string          `json:"path,omitempty"`
}

// BFSStep records a breadth-first search step.
type BFSStep struct {
	Header
	GraphState
	Frontier []string `json:"frontier"`
	Level    int      `json:"level"`
}

func (*BFSStep) Kind() Kind { return KindBFS }

// DijkstraStep records a shortest-path step.
type DijkstraStep struct {
	Header
	GraphState
	Distances Distances `json:"distances"`
}

func (*DijkstraStep) Kind() Kind { return KindDijkstra }

// NodeSet is a set of node ids kept in insertion order.
type NodeSet []string

// Contains reports whether id is in the set.
func (s NodeSet) Contains(id string) bool {
	return slices.Contains(s, id)
}

// Distances maps node ids to their tentative distance. Unreached nodes hold
// +Inf, which is encoded as JSON null.
type Distances map[string]float64

// Reached reports whether id has a finite distance.
func (d Distances) Reached(id string) bool {
	v, ok := d[id]
	return ok && !math.IsInf(v, 1)
}

func (d Distances) MarshalJSON() ([]byte, error) {
	out := make(map[string]*float64, len(d))
	for k, v := range d {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			out[k] = nil
			continue
		}
		out[k] = &v
	}
	return json.Marshal(out)
}

func (d *Distances) UnmarshalJSON(data []byte) error {
	var in map[string]*float64
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	out := make(Distances, len(in))
	for k, v := range in {
		if v == nil {
			out[k] = math.Inf(1)
			continue
		}
		out[k] = *v
	}
	*d = out
	return nil
}

// ArraySnapshot returns the numeric array carried by s. Graph steps carry
// none.
func ArraySnapshot(s Step) ([]float64, bool) {
	switch s := s.(type) {
	case *NumberStep:
		return s.Array, true
	case *BFSStep, *DijkstraStep:
		return nil, false
	default:
		panic(fmt.Sprintf("trace: unhandled step %T", s))
	}
}

// GraphSnapshot returns the graph state carried by s. Array steps carry
// none.
func GraphSnapshot(s Step) (*GraphState, bool) {
	switch s := s.(type) {
	case *BFSStep:
		return &s.GraphState, true
	case *DijkstraStep:
		return &s.GraphState, true
	case *NumberStep:
		return nil, false
	default:
		panic(fmt.Sprintf("trace: unhandled step %T", s))
	}
}
