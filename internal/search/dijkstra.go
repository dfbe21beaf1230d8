package search

import (
	"fmt"
	"maps"
	"math"

	"github.com/san-kum/algoviz/internal/graph"
	"github.com/san-kum/algoviz/internal/trace"
)

// Dijkstra records a shortest-path search from start to end. The next node
// is the unvisited one with the smallest tentative distance, ties going to
// the node listed first in the graph. The search stops once end is visited
// or no reachable node remains.
func Dijkstra(g *graph.Graph, start, end string) (*trace.Trace, error) {
	if err := validate(DijkstraName, g, start, end); err != nil {
		return nil, err
	}

	d := &dijkstra{
		state: newState(),
		dist:  make(trace.Distances, len(g.Nodes)),
	}
	for _, n := range g.Nodes {
		d.dist[n.ID] = math.Inf(1)
	}
	d.dist[start] = 0

	adj := g.Adjacency()
	order := g.NodeIDs()

	d.emit(trace.Visit, fmt.Sprintf("Starting Dijkstra's algorithm from node %s", start), start, "", nil)

	for {
		cur, ok := d.closest(order)
		if !ok {
			break
		}

		d.visit(cur)
		d.emit(trace.Visit, fmt.Sprintf("Visiting node %s (distance: %v)", cur, d.dist[cur]), cur, "", nil)

		for _, e := range adj[cur] {
			next := e.Other(cur)
			if d.seen[next] {
				continue
			}

			cand := d.dist[cur] + e.Weight
			d.emit(trace.Relax, fmt.Sprintf("Checking edge to %s (weight: %v, new distance: %v)", next, e.Weight, cand), next, e.ID, nil)

			if cand < d.dist[next] {
				d.dist[next] = cand
				d.previous[next] = cur
				d.emit(trace.Relax, fmt.Sprintf("Updated distance to %s: %v", next, cand), next, e.ID, nil)
			}
		}

		if cur == end {
			break
		}
	}

	if d.dist.Reached(end) {
		path := reconstruct(d.previous, start, end)
		d.emit(trace.Path, fmt.Sprintf("Shortest path found: %s (total distance: %v)", joinPath(path), d.dist[end]), "", "", path)
		d.emit(trace.Complete, "Dijkstra's algorithm completed!", "", "", path)
	} else {
		noPath := fmt.Sprintf("No path found from %s to %s", start, end)
		d.emit(trace.Path, noPath, "", "", nil)
		d.emit(trace.Complete, noPath, "", "", nil)
	}

	return trace.New(DijkstraName, trace.KindDijkstra, steps(d.steps)), nil
}

// closest returns the first unvisited node in order with the smallest finite
// distance.
func (d *dijkstra) closest(order []string) (string, bool) {
	best, found := "", false
	for _, id := range order {
		if d.seen[id] || math.IsInf(d.dist[id], 1) {
			continue
		}
		if !found || d.dist[id] < d.dist[best] {
			best, found = id, true
		}
	}
	return best, found
}

type dijkstra struct {
	*state
	dist  trace.Distances
	steps []*trace.DijkstraStep
}

func (d *dijkstra) emit(t trace.StepType, msg, nodeID, edgeID string, path []string) {
	d.steps = append(d.steps, &trace.DijkstraStep{
		Header:     trace.Header{Type: t, Message: msg},
		GraphState: d.snapshot(nodeID, edgeID, path),
		Distances:  maps.Clone(d.dist),
	})
}
