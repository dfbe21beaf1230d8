package viz

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/san-kum/algoviz/internal/graph"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/trace"
)

// DrawFrame draws the data shown by f: bars for sorting traces, nodes and
// edges for search traces.
func DrawFrame(c *Canvas, f playback.Frame) {
	c.Clear()
	if f.Graph != nil {
		DrawGraph(c, f.Graph, f.Step)
		return
	}
	DrawArray(c, f.Array, f.Step)
}

func arrayTag(st trace.StepType) Tag {
	switch st {
	case trace.Compare:
		return Active
	case trace.Swap, trace.Move:
		return Changed
	case trace.Highlight:
		return Queued
	case trace.Complete:
		return Settled
	default:
		return Plain
	}
}

// DrawArray draws values as bars scaled to the canvas height. Bars named by
// the step's indices are tagged by its type; a complete step tags all bars.
func DrawArray(c *Canvas, values []float64, step trace.Step) {
	w, h := c.Dots()
	n := len(values)
	if n == 0 || w == 0 || h == 0 {
		return
	}

	var indices []int
	tag := Plain
	if s, ok := step.(*trace.NumberStep); ok {
		indices = s.Indices
		tag = arrayTag(s.Type)
	}
	all := tag == Settled

	lo, hi := 0.0, values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	barW := max(w/n, 1)
	gap := 0
	if barW >= 3 {
		gap = 1
	}

	for i, v := range values {
		x0 := i * barW
		if x0 >= w {
			break
		}
		x1 := x0 + barW - 1 - gap
		top := h - 1 - int(math.Round((v-lo)/span*float64(h-1)))

		t := Plain
		if all || slices.Contains(indices, i) {
			t = tag
		}
		c.FillRect(x0, top, x1, h-1, t)
	}
}

type projector struct {
	minX, minY, scaleX, scaleY float64
	w, h                       int
}

// newProjector fits node coordinates into the canvas, leaving room on the
// right for distance labels.
func newProjector(g *graph.Graph, w, h int) projector {
	p := projector{minX: math.Inf(1), minY: math.Inf(1), w: w, h: h}
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range g.Nodes {
		p.minX, maxX = math.Min(p.minX, n.X), math.Max(maxX, n.X)
		p.minY, maxY = math.Min(p.minY, n.Y), math.Max(maxY, n.Y)
	}
	p.scaleX = float64(w-16) / math.Max(maxX-p.minX, 1)
	p.scaleY = float64(h-8) / math.Max(maxY-p.minY, 1)
	return p
}

func (p projector) point(n graph.Node) (int, int) {
	return 4 + int(math.Round((n.X-p.minX)*p.scaleX)), 4 + int(math.Round((n.Y-p.minY)*p.scaleY))
}

// DrawGraph draws the edges and labelled nodes of g with the state carried
// by step. Dijkstra steps add each reached node's distance to its label.
func DrawGraph(c *Canvas, g *graph.Graph, step trace.Step) {
	w, h := c.Dots()
	if len(g.Nodes) == 0 || w < 20 || h < 10 {
		return
	}
	p := newProjector(g, w, h)
	tags := GraphTags(g, step)

	nodes := make(map[string]graph.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes[n.ID] = n
	}

	for _, e := range g.Edges {
		x0, y0 := p.point(nodes[e.From])
		x1, y1 := p.point(nodes[e.To])
		c.DrawLine(x0, y0, x1, y1, tags.Edges[e.ID])

		mx, my := (x0+x1)/2, (y0+y1)/2
		c.Text(mx/2, my/4, strconv.FormatFloat(e.Weight, 'f', -1, 64), Plain)
	}

	for _, n := range g.Nodes {
		x, y := p.point(n)
		c.Text(x/2, y/4, NodeLabel(n, step), tags.Nodes[n.ID])
	}
}

// NodeLabel is the node's label, with its distance appended on Dijkstra
// steps once the node is reached.
func NodeLabel(n graph.Node, step trace.Step) string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	if s, ok := step.(*trace.DijkstraStep); ok && s.Distances.Reached(n.ID) {
		label = fmt.Sprintf("%s:%s", label, strconv.FormatFloat(s.Distances[n.ID], 'f', -1, 64))
	}
	return label
}

// Tags holds the tag of every node and edge of a graph, keyed by id.
type Tags struct {
	Nodes map[string]Tag
	Edges map[string]Tag
}

// GraphTags classifies each node and edge of g for step. A nil or array
// step leaves only the endpoints marked.
func GraphTags(g *graph.Graph, step trace.Step) Tags {
	var gs *trace.GraphState
	var frontier []string
	switch s := step.(type) {
	case *trace.BFSStep:
		gs, frontier = &s.GraphState, s.Frontier
	case *trace.DijkstraStep:
		gs = &s.GraphState
	}

	onPath := map[string]bool{}
	if gs != nil {
		for i := 1; i < len(gs.Path); i++ {
			onPath[gs.Path[i-1]+"|"+gs.Path[i]] = true
			onPath[gs.Path[i]+"|"+gs.Path[i-1]] = true
		}
	}

	t := Tags{
		Nodes: make(map[string]Tag, len(g.Nodes)),
		Edges: make(map[string]Tag, len(g.Edges)),
	}
	for _, e := range g.Edges {
		switch {
		case onPath[e.From+"|"+e.To]:
			t.Edges[e.ID] = OnPath
		case gs != nil && gs.EdgeID == e.ID:
			t.Edges[e.ID] = Active
		default:
			t.Edges[e.ID] = Plain
		}
	}
	for _, n := range g.Nodes {
		t.Nodes[n.ID] = nodeTag(n, gs, frontier)
	}
	return t
}

func nodeTag(n graph.Node, gs *trace.GraphState, frontier []string) Tag {
	switch {
	case gs != nil && slices.Contains(gs.Path, n.ID):
		return OnPath
	case gs != nil && gs.NodeID == n.ID:
		return Active
	case gs != nil && gs.Visited.Contains(n.ID):
		return Settled
	case slices.Contains(frontier, n.ID):
		return Queued
	case n.IsStart || n.IsEnd:
		return Endpoint
	default:
		return Plain
	}
}
