package metrics

import (
	"math"

	"github.com/san-kum/algoviz/internal/trace"
)

// FrontierPeak is the largest BFS queue seen.
type FrontierPeak struct {
	peak int
}

func NewFrontierPeak() *FrontierPeak { return &FrontierPeak{} }

func (f *FrontierPeak) Name() string { return "frontier_peak" }

func (f *FrontierPeak) Observe(s trace.Step, _ int) {
	if b, ok := s.(*trace.BFSStep); ok {
		f.peak = max(f.peak, len(b.Frontier))
	}
}

func (f *FrontierPeak) Value() float64 { return float64(f.peak) }
func (f *FrontierPeak) Reset()         { f.peak = 0 }

// PathLength is the number of edges in the last reported path, or -1 when
// the trace found none.
type PathLength struct {
	hops int
}

func NewPathLength() *PathLength { return &PathLength{hops: -1} }

func (p *PathLength) Name() string { return "path_length" }

func (p *PathLength) Observe(s trace.Step, _ int) {
	gs, ok := trace.GraphSnapshot(s)
	if !ok || s.StepType() != trace.Path {
		return
	}
	p.hops = len(gs.Path) - 1
}

func (p *PathLength) Value() float64 { return float64(p.hops) }
func (p *PathLength) Reset()         { p.hops = -1 }

// PathCost is the distance of the last Dijkstra path, +Inf without one.
type PathCost struct {
	cost float64
}

func NewPathCost() *PathCost { return &PathCost{cost: math.Inf(1)} }

func (p *PathCost) Name() string { return "path_cost" }

func (p *PathCost) Observe(s trace.Step, _ int) {
	d, ok := s.(*trace.DijkstraStep)
	if !ok || d.Type != trace.Path || len(d.Path) == 0 {
		return
	}
	p.cost = d.Distances[d.Path[len(d.Path)-1]]
}

func (p *PathCost) Value() float64 { return p.cost }
func (p *PathCost) Reset()         { p.cost = math.Inf(1) }
