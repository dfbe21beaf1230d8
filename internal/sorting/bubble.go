package sorting

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/trace"
)

// BubbleFunc records bubble sort over in. Pass i compares the first n-1-i
// adjacent pairs; a pass without swaps ends the sort early.
func BubbleFunc[E any](in []E, cmp func(a, b E) int) []*trace.ArrayStep[E] {
	r := newRecorder(in)
	a := r.a
	n := len(a)

	r.emit(trace.Highlight, "Starting Bubble Sort algorithm")

	for i := 0; i < n-1; i++ {
		swapped := false
		r.emit(trace.Highlight, fmt.Sprintf("Pass %d: Comparing adjacent elements", i+1))

		for j := 0; j < n-i-1; j++ {
			r.emit(trace.Compare, fmt.Sprintf("Comparing %v and %v", a[j], a[j+1]), j, j+1)
			if cmp(a[j], a[j+1]) > 0 {
				a[j], a[j+1] = a[j+1], a[j]
				swapped = true
				r.emit(trace.Swap, fmt.Sprintf("Swapping %v and %v", a[j+1], a[j]), j, j+1)
			}
		}

		if !swapped {
			r.emit(trace.Highlight, "No swaps in this pass - array is sorted!")
			break
		}
	}

	r.emit(trace.Complete, "Bubble Sort completed!")
	return r.steps
}
