package search

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/graph"
	"github.com/san-kum/algoviz/internal/trace"
)

// BFS records a breadth-first search from start to end. Neighbors are
// expanded in edge-list order; the search stops when end is dequeued.
func BFS(g *graph.Graph, start, end string) (*trace.Trace, error) {
	if err := validate(BFSName, g, start, end); err != nil {
		return nil, err
	}

	b := &bfs{
		state:   newState(),
		adj:     g.Adjacency(),
		levels:  map[string]int{start: 0},
		pending: map[string]bool{start: true},
		queue:   []string{start},
	}

	b.emit(trace.Visit, fmt.Sprintf("Starting BFS from node %s", start), start, "", 0, nil)

	found := false
	for len(b.queue) > 0 {
		cur := b.queue[0]
		b.queue = b.queue[1:]
		delete(b.pending, cur)

		if b.seen[cur] {
			continue
		}
		b.visit(cur)
		level := b.levels[cur]
		b.emit(trace.Visit, fmt.Sprintf("Visiting node %s at level %d", cur, level), cur, "", level, nil)

		if cur == end {
			path := reconstruct(b.previous, start, end)
			b.emit(trace.Path, fmt.Sprintf("Path found to %s: %s (%d steps)", end, joinPath(path), len(path)-1), "", "", level, path)
			found = true
			break
		}

		for _, e := range b.adj[cur] {
			next := e.Other(cur)
			if b.seen[next] || b.pending[next] {
				continue
			}
			b.emit(trace.Discover, fmt.Sprintf("Discovering neighbor %s from %s", next, cur), next, e.ID, level, nil)

			b.queue = append(b.queue, next)
			b.pending[next] = true
			b.previous[next] = cur
			b.levels[next] = level + 1
			b.emit(trace.Explore, fmt.Sprintf("Added %s to queue (level %d)", next, level+1), next, e.ID, level+1, nil)
		}
	}

	depth := b.depth()
	if !found {
		b.emit(trace.Complete, fmt.Sprintf("No path found from %s to %s", start, end), "", "", depth, nil)
	} else {
		path := reconstruct(b.previous, start, end)
		b.emit(trace.Complete, fmt.Sprintf("BFS completed! Explored %d nodes in %d levels", len(b.visited), depth), "", "", depth, path)
	}

	return trace.New(BFSName, trace.KindBFS, steps(b.steps)), nil
}

type bfs struct {
	*state
	adj     map[string][]graph.Edge
	levels  map[string]int
	pending map[string]bool
	queue   []string
	steps   []*trace.BFSStep
}

func (b *bfs) emit(t trace.StepType, msg, nodeID, edgeID string, level int, path []string) {
	b.steps = append(b.steps, &trace.BFSStep{
		Header:     trace.Header{Type: t, Message: msg},
		GraphState: b.snapshot(nodeID, edgeID, path),
		Frontier:   append([]string{}, b.queue...),
		Level:      level,
	})
}

// depth is the deepest level assigned so far.
func (b *bfs) depth() int {
	deepest := 0
	for _, l := range b.levels {
		deepest = max(deepest, l)
	}
	return deepest
}
