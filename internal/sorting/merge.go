package sorting

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/trace"
)

// MergeFunc records a top-down merge sort over in. Ties take the left
// element first, which keeps the sort stable.
func MergeFunc[E any](in []E, cmp func(a, b E) int) []*trace.ArrayStep[E] {
	r := newRecorder(in)
	m := &merger[E]{recorder: r, cmp: cmp}

	r.emit(trace.Highlight, "Starting Merge Sort algorithm")
	m.sort(0, len(r.a)-1)
	r.emit(trace.Complete, "Merge Sort completed!")
	return r.steps
}

type merger[E any] struct {
	*recorder[E]
	cmp func(a, b E) int
}

func (m *merger[E]) sort(left, right int) {
	if left >= right {
		return
	}
	mid := left + (right-left)/2

	m.emit(trace.Highlight, fmt.Sprintf("Dividing array from index %d to %d", left, right), span(left, right)...)
	m.sort(left, mid)
	m.sort(mid+1, right)
	m.merge(left, mid, right)
}

func (m *merger[E]) merge(left, mid, right int) {
	a := m.a
	lhs := append([]E(nil), a[left:mid+1]...)
	rhs := append([]E(nil), a[mid+1:right+1]...)

	m.emit(trace.Highlight, fmt.Sprintf("Merging subarrays from %d to %d", left, right), span(left, right)...)

	i, j, k := 0, 0, left
	for i < len(lhs) && j < len(rhs) {
		m.emit(trace.Compare, fmt.Sprintf("Comparing %v and %v", lhs[i], rhs[j]), left+i, mid+1+j)
		if m.cmp(lhs[i], rhs[j]) <= 0 {
			a[k] = lhs[i]
			m.emit(trace.Move, fmt.Sprintf("Placing %v at position %d", lhs[i], k), k)
			i++
		} else {
			a[k] = rhs[j]
			m.emit(trace.Move, fmt.Sprintf("Placing %v at position %d", rhs[j], k), k)
			j++
		}
		k++
	}

	for ; i < len(lhs); i, k = i+1, k+1 {
		a[k] = lhs[i]
		m.emit(trace.Move, fmt.Sprintf("Placing remaining element %v at position %d", lhs[i], k), k)
	}
	for ; j < len(rhs); j, k = j+1, k+1 {
		a[k] = rhs[j]
		m.emit(trace.Move, fmt.Sprintf("Placing remaining element %v at position %d", rhs[j], k), k)
	}
}
