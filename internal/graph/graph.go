// Package graph holds the weighted graph model consumed by the search
// generators.
//
// Edges are stored with a From/To pair but traversals treat them as
// undirected. Incident edges are always enumerated in edge-list order, which
// is the exploration tie-break for every traversal.
package graph

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty         = errors.New("graph: no nodes")
	ErrDuplicateNode = errors.New("graph: duplicate node id")
	ErrDuplicateEdge = errors.New("graph: duplicate edge id")
	ErrDanglingEdge  = errors.New("graph: edge references unknown node")
	ErrInvalidWeight = errors.New("graph: edge weight must be positive")
	ErrNoEndpoints   = errors.New("graph: start or end node not flagged")
	ErrNotAdjacent   = errors.New("graph: nodes are not adjacent")
)

type Node struct {
	ID      string  `json:"id" yaml:"id" toml:"id"`
	X       float64 `json:"x" yaml:"x" toml:"x"`
	Y       float64 `json:"y" yaml:"y" toml:"y"`
	Label   string  `json:"label" yaml:"label" toml:"label"`
	IsStart bool    `json:"isStart,omitempty" yaml:"is_start,omitempty" toml:"is_start,omitempty"`
	IsEnd   bool    `json:"isEnd,omitempty" yaml:"is_end,omitempty" toml:"is_end,omitempty"`
}

type Edge struct {
	ID     string  `json:"id" yaml:"id" toml:"id"`
	From   string  `json:"from" yaml:"from" toml:"from"`
	To     string  `json:"to" yaml:"to" toml:"to"`
	Weight float64 `json:"weight" yaml:"weight" toml:"weight"`
}

// Other returns the endpoint of e opposite to id.
func (e Edge) Other(id string) string {
	if e.From == id {
		return e.To
	}
	return e.From
}

// Touches reports whether id is one of e's endpoints.
func (e Edge) Touches(id string) bool {
	return e.From == id || e.To == id
}

type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes" toml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges" toml:"edges"`
}

// Clone returns a deep copy of g.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	c := &Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	copy(c.Nodes, g.Nodes)
	copy(c.Edges, g.Edges)
	return c
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

func (g *Graph) HasNode(id string) bool {
	_, ok := g.Node(id)
	return ok
}

// Edge returns the edge with the given id.
func (g *Graph) Edge(id string) (Edge, bool) {
	for _, e := range g.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}

// NodeIDs returns node ids in graph order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// Incident returns the edges touching id in edge-list order.
func (g *Graph) Incident(id string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Touches(id) {
			out = append(out, e)
		}
	}
	return out
}

// Adjacency maps every node id to its incident edges in edge-list order.
func (g *Graph) Adjacency() map[string][]Edge {
	adj := make(map[string][]Edge, len(g.Nodes))
	for _, n := range g.Nodes {
		adj[n.ID] = nil
	}
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e)
		if e.To != e.From {
			adj[e.To] = append(adj[e.To], e)
		}
	}
	return adj
}

// EdgeBetween returns the first edge connecting a and b in either direction.
func (g *Graph) EdgeBetween(a, b string) (Edge, bool) {
	for _, e := range g.Edges {
		if (e.From == a && e.To == b) || (e.From == b && e.To == a) {
			return e, true
		}
	}
	return Edge{}, false
}

// PathWeight sums the lightest edge between each consecutive pair in path.
func (g *Graph) PathWeight(path []string) (float64, error) {
	total := 0.0
	for i := 1; i < len(path); i++ {
		best, found := 0.0, false
		for _, e := range g.Edges {
			if (e.From == path[i-1] && e.To == path[i]) || (e.From == path[i] && e.To == path[i-1]) {
				if !found || e.Weight < best {
					best, found = e.Weight, true
				}
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %s-%s", ErrNotAdjacent, path[i-1], path[i])
		}
		total += best
	}
	return total, nil
}

// Validate checks ids are unique, edges reference known nodes and weights are
// positive.
func (g *Graph) Validate() error {
	if g == nil || len(g.Nodes) == 0 {
		return ErrEmpty
	}

	nodes := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, dup := nodes[n.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
		}
		nodes[n.ID] = struct{}{}
	}

	edges := make(map[string]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		if _, dup := edges[e.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateEdge, e.ID)
		}
		edges[e.ID] = struct{}{}
		if _, ok := nodes[e.From]; !ok {
			return fmt.Errorf("%w: %s -> %s", ErrDanglingEdge, e.ID, e.From)
		}
		if _, ok := nodes[e.To]; !ok {
			return fmt.Errorf("%w: %s -> %s", ErrDanglingEdge, e.ID, e.To)
		}
		if !(e.Weight > 0) {
			return fmt.Errorf("%w: %s has %v", ErrInvalidWeight, e.ID, e.Weight)
		}
	}
	return nil
}

// Endpoints returns the ids of the nodes flagged IsStart and IsEnd. Graphs
// without both flags must name their endpoints explicitly; nothing is guessed.
func (g *Graph) Endpoints() (start, end string, err error) {
	for _, n := range g.Nodes {
		if n.IsStart && start == "" {
			start = n.ID
		}
		if n.IsEnd && end == "" {
			end = n.ID
		}
	}
	if start == "" || end == "" {
		return "", "", ErrNoEndpoints
	}
	return start, end, nil
}
