package export

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/san-kum/algoviz/internal/graph"
	"github.com/san-kum/algoviz/internal/trace"
	"github.com/san-kum/algoviz/internal/viz"
)

// pointsPerInch converts node coordinates to the inch units neato pins
// positions in.
const pointsPerInch = 72.0

// ToDOT converts g with the state carried by step to an undirected
// Graphviz graph. Nodes keep their layout coordinates; colors come from th.
// A nil step draws the bare graph.
func ToDOT(g *graph.Graph, step trace.Step, th viz.Theme) string {
	tags := viz.GraphTags(g, step)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", string(th.Background))
	buf.WriteString("  splines=line;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fontname=\"monospace\", fontcolor=%q, color=%q];\n",
		string(th.Background), string(th.Text))
	fmt.Fprintf(&buf, "  edge [fontname=\"monospace\", fontcolor=%q];\n", string(th.Muted))
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		tag := tags.Nodes[n.ID]
		attrs := []string{
			fmt.Sprintf("label=%q", viz.NodeLabel(n, step)),
			fmt.Sprintf("pos=\"%s,%s!\"", inches(n.X), inches(-n.Y)),
			fmt.Sprintf("fillcolor=%q", string(th.TagColor(tag))),
		}
		if n.IsStart || n.IsEnd {
			attrs = append(attrs, "penwidth=3")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		tag := tags.Edges[e.ID]
		attrs := []string{
			fmt.Sprintf("label=%q", strconv.FormatFloat(e.Weight, 'f', -1, 64)),
			fmt.Sprintf("color=%q", string(th.TagColor(tag))),
		}
		if tag != viz.Plain {
			attrs = append(attrs, "penwidth=3")
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func inches(v float64) string {
	return strconv.FormatFloat(v/pointsPerInch, 'f', 3, 64)
}

// RenderSVG lays out a DOT graph with neato, honoring pinned positions, and
// renders it to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
