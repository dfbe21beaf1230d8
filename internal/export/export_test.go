package export

import (
	"context"
	"strings"
	"testing"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/search"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/san-kum/algoviz/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(10, 4)
	c.Mark(0, 0, viz.Active)
	c.Mark(3, 7, viz.Plain)
	c.Text(5, 2, "A<", viz.OnPath)

	svg := CanvasToSVG(c, viz.ThemeMinimal, 2)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("circles = %d, want 2", n)
	}
	for _, want := range []string{
		`fill="` + string(viz.ThemeMinimal.Warning) + `"`,
		`fill="` + string(viz.ThemeMinimal.Primary) + `"`,
		`>A</text>`,
		`>&lt;</text>`,
		`width="40" height="32"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestCanvasToSVGNil(t *testing.T) {
	if CanvasToSVG(nil, viz.ThemeMinimal, 1) != "" {
		t.Error("expected empty output for nil canvas")
	}
}

func TestFrameToSVG(t *testing.T) {
	in := playback.Input{Array: []float64{4, 1, 3, 2}}
	tr := sorting.Bubble(in.Array)
	svg := FrameToSVG(playback.FrameAt(tr, in, tr.Len()-1), 40, 10, viz.ThemeMinimal, 2)
	if !strings.HasSuffix(svg, "</svg>") || strings.Count(svg, "<circle") == 0 {
		t.Fatal("expected bars in the drawing")
	}
	if !strings.Contains(svg, `width="160" height="80"`) {
		t.Error("canvas size not scaled")
	}

	g := config.GetGraphPreset("dense").Build()
	gt, err := search.Dijkstra(g, "A", "F")
	if err != nil {
		t.Fatal(err)
	}
	svg = FrameToSVG(playback.FrameAt(gt, playback.Input{Graph: g}, gt.Len()-1), 80, 24, viz.ThemeMinimal, 2)
	if !strings.Contains(svg, ">A</text>") || !strings.Contains(svg, ">F</text>") {
		t.Error("node labels missing")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("single point should render nothing")
	}
	svg := SeriesToSVG([]float64{0, 1, 2, 1}, 300, 100, "#00ff00")
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("stroke color missing")
	}
	if n := strings.Count(svg, " L"); n != 3 {
		t.Errorf("segments = %d, want 3", n)
	}
}

func TestToDOT(t *testing.T) {
	g := config.GetGraphPreset("dense").Build()
	tr, err := search.Dijkstra(g, "A", "F")
	if err != nil {
		t.Fatal(err)
	}
	dot := ToDOT(g, tr.Last(), viz.ThemeCyberpunk)

	if !strings.HasPrefix(dot, "graph G {") {
		t.Fatalf("unexpected header: %q", dot[:20])
	}
	if n := strings.Count(dot, " -- "); n != len(g.Edges) {
		t.Errorf("edges = %d, want %d", n, len(g.Edges))
	}
	for _, want := range []string{
		`label="F:6"`,
		`label="A:0"`,
		`"A" -- "D"`,
		`fillcolor="` + string(viz.ThemeCyberpunk.Primary) + `"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing %q in\n%s", want, dot)
		}
	}
}

func TestToDOTWithoutStep(t *testing.T) {
	g := config.GetGraphPreset("line").Build()
	dot := ToDOT(g, nil, viz.ThemeCyberpunk)
	if strings.Contains(dot, string(viz.ThemeCyberpunk.Primary)) {
		t.Error("bare graph should not mark a path")
	}
	if !strings.Contains(dot, `fillcolor="`+string(viz.ThemeCyberpunk.Accent)+`"`) {
		t.Error("endpoints should use the accent color")
	}
	if !strings.Contains(dot, "penwidth=3") {
		t.Error("endpoints should be outlined")
	}
}

func TestRenderSVG(t *testing.T) {
	g := config.GetGraphPreset("star").Build()
	svg, err := RenderSVG(context.Background(), ToDOT(g, nil, viz.ThemeOcean))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not svg")
	}
}

func TestRenderSVGInvalid(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "graph {"); err == nil {
		t.Error("expected parse error")
	}
}
