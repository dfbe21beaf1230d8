package sorting

import (
	"cmp"

	"github.com/san-kum/algoviz/internal/trace"
)

const (
	BubbleName = "bubblesort"
	MergeName  = "mergesort"
	QuickName  = "quicksort"
)

// recorder owns the working array and snapshots it on every emit.
type recorder[E any] struct {
	a     []E
	steps []*trace.ArrayStep[E]
}

func newRecorder[E any](in []E) *recorder[E] {
	a := make([]E, len(in))
	copy(a, in)
	return &recorder[E]{a: a}
}

func (r *recorder[E]) emit(t trace.StepType, msg string, indices ...int) {
	idx := make([]int, len(indices))
	copy(idx, indices)
	snap := make([]E, len(r.a))
	copy(snap, r.a)
	r.steps = append(r.steps, &trace.ArrayStep[E]{
		Header:  trace.Header{Type: t, Message: msg},
		Indices: idx,
		Array:   snap,
	})
}

func span(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}

func wrap(name string, steps []*trace.NumberStep) *trace.Trace {
	out := make([]trace.Step, len(steps))
	for i, s := range steps {
		out[i] = s
	}
	return trace.New(name, trace.KindArray, out)
}

// Bubble returns the bubble sort trace of values.
func Bubble(values []float64) *trace.Trace {
	return wrap(BubbleName, BubbleFunc(values, cmp.Compare[float64]))
}

// Merge returns the merge sort trace of values.
func Merge(values []float64) *trace.Trace {
	return wrap(MergeName, MergeFunc(values, cmp.Compare[float64]))
}

// Quick returns the quicksort trace of values.
func Quick(values []float64) *trace.Trace {
	return wrap(QuickName, QuickFunc(values, cmp.Compare[float64]))
}
