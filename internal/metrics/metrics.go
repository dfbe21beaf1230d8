package metrics

import "github.com/san-kum/algoviz/internal/trace"

// Metric accumulates a summary value over the steps of a trace.
type Metric interface {
	Name() string
	Observe(s trace.Step, index int)
	Value() float64
	Reset()
}

// Evaluate feeds every step of tr to ms and returns their values by name.
func Evaluate(tr *trace.Trace, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
	}
	for i := 0; i < tr.Len(); i++ {
		s := tr.At(i)
		for _, m := range ms {
			m.Observe(s, i)
		}
	}
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Standard returns the default metric set for traces of kind k.
func Standard(k trace.Kind) []Metric {
	ms := []Metric{NewSteps()}
	switch k {
	case trace.KindArray:
		ms = append(ms,
			NewCounter("comparisons", trace.Compare),
			NewCounter("swaps", trace.Swap),
			NewCounter("moves", trace.Move),
		)
	case trace.KindBFS:
		ms = append(ms,
			NewCounter("visits", trace.Visit),
			NewCounter("discoveries", trace.Discover),
			NewFrontierPeak(),
			NewPathLength(),
		)
	case trace.KindDijkstra:
		ms = append(ms,
			NewCounter("visits", trace.Visit),
			NewCounter("relaxations", trace.Relax),
			NewPathLength(),
			NewPathCost(),
		)
	}
	return ms
}
