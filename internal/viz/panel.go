package viz

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/trace"
)

// Plot renders values as an ASCII line chart.
func Plot(values []float64, width, height int, caption string) string {
	if len(values) == 0 {
		return Subtle.Render("(no data)")
	}
	if len(values) == 1 {
		values = []float64{values[0], values[0]}
	}
	return asciigraph.Plot(values,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

// Activity returns, for each step of tr, how many steps of type st happened
// up to and including it.
func Activity(tr *trace.Trace, st trace.StepType) []float64 {
	out := make([]float64, tr.Len())
	n := 0.0
	for i, s := range tr.Steps {
		if s.StepType() == st {
			n++
		}
		out[i] = n
	}
	return out
}

// DistancePlot charts the finite distances of a Dijkstra step in node
// order.
func DistancePlot(step *trace.DijkstraStep, order []string, width, height int) string {
	var vals []float64
	for _, id := range order {
		if step.Distances.Reached(id) {
			vals = append(vals, step.Distances[id])
		}
	}
	return Plot(vals, width, height, "distance")
}

// StatusLine renders the index, status and message of f.
func StatusLine(f playback.Frame) string {
	var status string
	switch f.Status {
	case playback.Running:
		status = StatusRunning.Render("▶ RUNNING")
	case playback.Paused:
		status = StatusPaused.Render("⏸ PAUSED")
	default:
		status = Subtle.Render("■ IDLE")
	}

	pos := "-/-"
	if f.Total > 0 {
		pos = fmt.Sprintf("%d/%d", f.Index+1, f.Total)
	}

	msg := "Press space to start"
	if f.Step != nil {
		msg = f.Step.Text()
	}
	return fmt.Sprintf("%s  %s  %s", status, MetricValue.Render(pos), msg)
}

// Metrics renders name/value pairs in name order.
func Metrics(m map[string]float64) string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	slices.Sort(names)

	var b strings.Builder
	for _, k := range names {
		b.WriteString(MetricLabel.Width(16).Render(k))
		b.WriteString(MetricValue.Render(fmt.Sprintf("%g", m[k])))
		b.WriteByte('\n')
	}
	return b.String()
}

type legendItem struct {
	tag   Tag
	label string
}

// Legend lists what each tag color means for kind k.
func Legend(k trace.Kind, th Theme) string {
	items := []legendItem{{Active, "current"}, {Settled, "visited"}, {Queued, "queued"}, {OnPath, "path"}, {Endpoint, "start/end"}}
	if k == trace.KindArray {
		items = []legendItem{{Active, "compare"}, {Changed, "swap/move"}, {Queued, "range"}, {Settled, "sorted"}}
	}

	parts := make([]string, len(items))
	for i, it := range items {
		dot := lipgloss.NewStyle().Foreground(th.TagColor(it.tag)).Render("●")
		parts[i] = dot + " " + it.label
	}
	return strings.Join(parts, "  ")
}
