// Package generate builds random inputs for the visualizer.
package generate

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/algoviz/internal/graph"
)

const (
	MinValue = 1
	MaxValue = 100

	MinNodes = 3
	MaxNodes = 26
)

// Array returns n values drawn uniformly from [MinValue, MaxValue].
func Array(rng *rand.Rand, n int) []float64 {
	out := make([]float64, max(n, 0))
	for i := range out {
		out[i] = float64(rng.Intn(MaxValue-MinValue+1) + MinValue)
	}
	return out
}

// Shuffle returns a random permutation of values.
func Shuffle(rng *rand.Rand, values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

type layout struct {
	radius float64
	edgeP  float64
	// minimum edge count once the chain is in place
	minEdges int
}

func layoutFor(n int) layout {
	switch {
	case n <= 4:
		return layout{radius: 60, edgeP: 0.8, minEdges: n + 1}
	case n <= 6:
		return layout{radius: 80, edgeP: 0.6, minEdges: n}
	case n <= 8:
		return layout{radius: 120, edgeP: 0.4, minEdges: n - 1}
	default:
		return layout{radius: 150, edgeP: 0.3, minEdges: n - 1}
	}
}

const centerX, centerY = 250, 200

// Graph returns a connected graph of n nodes laid out on a circle. Nodes are
// labelled A, B, C...; the first is the start and the last the end. Edge
// weights are integers in [1, 10]. n is clamped to [MinNodes, MaxNodes].
func Graph(rng *rand.Rand, n int) *graph.Graph {
	n = min(max(n, MinNodes), MaxNodes)
	lay := layoutFor(n)

	g := &graph.Graph{}
	for i := range n {
		angle := 2 * math.Pi * float64(i) / float64(n)
		id := string(rune('A' + i))
		g.Nodes = append(g.Nodes, graph.Node{
			ID:      id,
			X:       centerX + lay.radius*math.Cos(angle),
			Y:       centerY + lay.radius*math.Sin(angle),
			Label:   id,
			IsStart: i == 0,
			IsEnd:   i == n-1,
		})
	}

	add := func(a, b string) {
		g.Edges = append(g.Edges, graph.Edge{
			ID:     fmt.Sprintf("edge-%d", len(g.Edges)),
			From:   a,
			To:     b,
			Weight: float64(rng.Intn(10) + 1),
		})
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < lay.edgeP {
				add(g.Nodes[i].ID, g.Nodes[j].ID)
			}
		}
	}

	// a chain through every node keeps the graph connected
	for i := 0; i < n-1; i++ {
		a, b := g.Nodes[i].ID, g.Nodes[i+1].ID
		if _, ok := g.EdgeBetween(a, b); !ok {
			add(a, b)
		}
	}

	if n <= 6 {
		for i := 0; i < n && len(g.Edges) < lay.minEdges+2; i++ {
			for j := i + 2; j < n && len(g.Edges) < lay.minEdges+2; j++ {
				a, b := g.Nodes[i].ID, g.Nodes[j].ID
				if _, ok := g.EdgeBetween(a, b); !ok {
					add(a, b)
				}
			}
		}
	}

	return g
}
