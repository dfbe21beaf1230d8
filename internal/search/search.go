// Package search generates step traces for shortest-path searches on
// undirected weighted graphs.
//
// Both generators validate their input before recording anything and return
// a *trace.InputError on failure. A missing path is a normal outcome that
// ends the trace with a complete step.
package search

import (
	"maps"
	"slices"
	"strings"

	"github.com/san-kum/algoviz/internal/graph"
	"github.com/san-kum/algoviz/internal/trace"
)

const (
	BFSName      = "bfs"
	DijkstraName = "dijkstra"
)

const arrow = " → "

func validate(algorithm string, g *graph.Graph, start, end string) error {
	if err := g.Validate(); err != nil {
		return &trace.InputError{Algorithm: algorithm, Field: "graph", Wrapped: err}
	}
	if !g.HasNode(start) {
		return &trace.InputError{Algorithm: algorithm, Field: "start", Value: start, Wrapped: trace.ErrNodeNotFound}
	}
	if !g.HasNode(end) {
		return &trace.InputError{Algorithm: algorithm, Field: "end", Value: end, Wrapped: trace.ErrNodeNotFound}
	}
	return nil
}

// state is the mutable search bookkeeping that every step snapshots.
type state struct {
	visited  trace.NodeSet
	seen     map[string]bool
	previous map[string]string
}

func newState() *state {
	return &state{seen: make(map[string]bool), previous: make(map[string]string)}
}

func (s *state) visit(id string) {
	s.visited = append(s.visited, id)
	s.seen[id] = true
}

func (s *state) snapshot(nodeID, edgeID string, path []string) trace.GraphState {
	return trace.GraphState{
		NodeID:   nodeID,
		EdgeID:   edgeID,
		Visited:  slices.Clone(s.visited),
		Previous: maps.Clone(s.previous),
		Path:     slices.Clone(path),
	}
}

// reconstruct follows predecessors from end back to start. It returns nil
// when the chain does not reach start.
func reconstruct(previous map[string]string, start, end string) []string {
	path := []string{end}
	for cur := end; cur != start; {
		prev, ok := previous[cur]
		if !ok {
			return nil
		}
		path = append(path, prev)
		cur = prev
	}
	slices.Reverse(path)
	return path
}

func joinPath(path []string) string {
	return strings.Join(path, arrow)
}

func steps[S trace.Step](in []S) []trace.Step {
	out := make([]trace.Step, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
