package sorting

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/trace"
)

// QuickFunc records quicksort over in using the Lomuto scheme with the last
// element of each subrange as pivot. Swaps of an element with itself are not
// recorded, except for the final pivot placement, which always is.
func QuickFunc[E any](in []E, cmp func(a, b E) int) []*trace.ArrayStep[E] {
	r := newRecorder(in)
	q := &quicker[E]{recorder: r, cmp: cmp}

	r.emit(trace.Highlight, "Starting Quicksort algorithm")
	q.sort(0, len(r.a)-1)
	r.emit(trace.Complete, "Quicksort completed!")
	return r.steps
}

type quicker[E any] struct {
	*recorder[E]
	cmp func(a, b E) int
}

func (q *quicker[E]) sort(low, high int) {
	if low >= high {
		return
	}
	p := q.partition(low, high)
	q.sort(low, p-1)
	q.sort(p+1, high)
}

func (q *quicker[E]) partition(low, high int) int {
	a := q.a
	pivot := a[high]
	i := low - 1

	q.emit(trace.Highlight, fmt.Sprintf("Pivot selected: %v", pivot), high)

	for j := low; j < high; j++ {
		q.emit(trace.Compare, fmt.Sprintf("Comparing %v with pivot %v", a[j], pivot), j, high)
		if q.cmp(a[j], pivot) <= 0 {
			i++
			if i != j {
				a[i], a[j] = a[j], a[i]
				q.emit(trace.Swap, fmt.Sprintf("Swapping %v and %v", a[j], a[i]), i, j)
			}
		}
	}

	a[i+1], a[high] = a[high], a[i+1]
	q.emit(trace.Swap, fmt.Sprintf("Placing pivot %v in correct position", pivot), i+1, high)
	return i + 1
}
