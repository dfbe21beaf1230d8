package config

import (
	"slices"

	"github.com/san-kum/algoviz/internal/graph"
)

type ArrayPreset struct {
	Name        string
	Description string
	Data        []float64
}

type GraphPreset struct {
	Name        string
	Description string
	Build       func() *graph.Graph
}

var ArrayPresets = map[string]*ArrayPreset{
	"nearly-sorted": {
		Name:        "Nearly sorted",
		Description: "Ascending with a few misplaced values",
		Data:        []float64{1, 2, 3, 4, 5, 7, 6, 8, 9, 10, 12, 11, 13, 14, 15},
	},
	"reversed": {
		Name:        "Reversed",
		Description: "Strictly descending order",
		Data:        []float64{20, 19, 18, 17, 16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6},
	},
	"few-unique": {
		Name:        "Few unique",
		Description: "Many duplicates; good to show stable sorts",
		Data:        []float64{5, 1, 3, 3, 2, 5, 1, 2, 3, 5, 1, 2, 3},
	},
	"small-random": {
		Name:        "Small random",
		Description: "Short random list for quick demos",
		Data:        []float64{9, 1, 7, 3, 5, 2, 8, 6, 4},
	},
}

func node(id string, x, y float64) graph.Node {
	return graph.Node{ID: id, X: x, Y: y, Label: id}
}

func edge(id string, w float64) graph.Edge {
	return graph.Edge{ID: id, From: id[:1], To: id[1:], Weight: w}
}

func build(nodes []graph.Node, start, end string, edges ...graph.Edge) *graph.Graph {
	for i := range nodes {
		nodes[i].IsStart = nodes[i].ID == start
		nodes[i].IsEnd = nodes[i].ID == end
	}
	return &graph.Graph{Nodes: nodes, Edges: edges}
}

var GraphPresets = map[string]*GraphPreset{
	"star": {
		Name:        "Star (weighted)",
		Description: "One hub connected to all leaves",
		Build: func() *graph.Graph {
			return build([]graph.Node{
				node("A", 250, 180), node("B", 120, 60), node("C", 380, 60),
				node("D", 120, 300), node("E", 380, 300), node("F", 250, 340),
			}, "A", "F",
				edge("AB", 2), edge("AC", 4), edge("AD", 5), edge("AE", 1), edge("AF", 7),
			)
		},
	},
	"line": {
		Name:        "Line (chain)",
		Description: "Simple path from start to end",
		Build: func() *graph.Graph {
			return build([]graph.Node{
				node("A", 60, 200), node("B", 160, 200), node("C", 260, 200),
				node("D", 360, 200), node("E", 460, 200),
			}, "A", "E",
				edge("AB", 1), edge("BC", 3), edge("CD", 2), edge("DE", 4),
			)
		},
	},
	"dense": {
		Name:        "Dense (weighted)",
		Description: "More edges; good for Dijkstra",
		Build: func() *graph.Graph {
			return build([]graph.Node{
				node("A", 80, 80), node("B", 230, 60), node("C", 380, 80),
				node("D", 120, 220), node("E", 260, 220), node("F", 400, 220),
				node("G", 180, 330), node("H", 320, 330),
			}, "A", "F",
				edge("AB", 2), edge("AC", 6), edge("AD", 1), edge("BE", 2),
				edge("BC", 1), edge("CD", 3), edge("CF", 4), edge("DE", 2),
				edge("EG", 5), edge("EH", 2), edge("FH", 1), edge("GH", 3),
			)
		},
	},
	"small-gridish": {
		Name:        "Small grid-ish",
		Description: "Compact with cross connections",
		Build: func() *graph.Graph {
			return build([]graph.Node{
				node("A", 120, 120), node("B", 240, 120), node("C", 360, 120),
				node("D", 120, 240), node("E", 240, 240), node("F", 360, 240),
				node("G", 240, 340),
			}, "A", "G",
				edge("AB", 1), edge("BC", 2), edge("AD", 2), edge("BE", 2),
				edge("CF", 3), edge("DE", 1), edge("EF", 1), edge("DG", 4),
				edge("EG", 2), edge("FG", 2),
			)
		},
	},
}

func GetArrayPreset(name string) *ArrayPreset {
	return ArrayPresets[name]
}

func GetGraphPreset(name string) *GraphPreset {
	return GraphPresets[name]
}

// ListPresets returns the preset names for "array" or "graph" in sorted
// order, or nil for any other kind.
func ListPresets(kind string) []string {
	var names []string
	switch kind {
	case "array":
		for name := range ArrayPresets {
			names = append(names, name)
		}
	case "graph":
		for name := range GraphPresets {
			names = append(names, name)
		}
	default:
		return nil
	}
	slices.Sort(names)
	return names
}
