package sorting

import (
	"cmp"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/san-kum/algoviz/internal/trace"
)

var generators = []struct {
	name string
	run  func([]float64) *trace.Trace
}{
	{BubbleName, Bubble},
	{MergeName, Merge},
	{QuickName, Quick},
}

func finalArray(t *testing.T, tr *trace.Trace) []float64 {
	t.Helper()
	arr, ok := trace.ArraySnapshot(tr.Last())
	if !ok {
		t.Fatalf("last step is not an array step")
	}
	return arr
}

func TestGeneratorsSort(t *testing.T) {
	inputs := map[string][]float64{
		"empty":    {},
		"single":   {7},
		"sorted":   {1, 2, 3, 4, 5},
		"reversed": {5, 4, 3, 2, 1},
		"dupes":    {3, 1, 3, 2, 1, 3},
		"mixed":    {64, 34, 25, 12, 22, 11, 90},
	}

	for _, g := range generators {
		for name, in := range inputs {
			t.Run(g.name+"/"+name, func(t *testing.T) {
				orig := slices.Clone(in)
				tr := g.run(in)

				if !slices.Equal(in, orig) {
					t.Fatalf("input mutated: %v", in)
				}
				if tr.Algorithm != g.name || tr.Kind != trace.KindArray {
					t.Errorf("got %s/%s", tr.Algorithm, tr.Kind)
				}
				if tr.Len() < 2 {
					t.Fatalf("expected start and complete steps, got %d", tr.Len())
				}
				if tr.Last().StepType() != trace.Complete {
					t.Errorf("last step = %s", tr.Last().StepType())
				}

				want := slices.Clone(in)
				slices.Sort(want)
				if got := finalArray(t, tr); !slices.Equal(got, want) {
					t.Errorf("final = %v, want %v", got, want)
				}
			})
		}
	}
}

func TestEveryStepIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	in := make([]float64, 20)
	for i := range in {
		in[i] = float64(rng.Intn(10))
	}
	sorted := slices.Clone(in)
	slices.Sort(sorted)

	for _, g := range generators {
		t.Run(g.name, func(t *testing.T) {
			tr := g.run(in)
			for i, s := range tr.Steps {
				arr, _ := trace.ArraySnapshot(s)
				got := slices.Clone(arr)
				slices.Sort(got)
				if !slices.Equal(got, sorted) {
					t.Fatalf("step %d is not a permutation of the input: %v", i, arr)
				}
			}
		})
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	tr := Bubble([]float64{3, 2, 1})
	first, _ := trace.ArraySnapshot(tr.At(0))
	if !slices.Equal(first, []float64{3, 2, 1}) {
		t.Fatalf("first snapshot = %v", first)
	}
	if last := finalArray(t, tr); &last[0] == &first[0] {
		t.Error("steps share backing storage")
	}
}

func TestBubbleCompareBound(t *testing.T) {
	for n := 0; n <= 8; n++ {
		in := make([]float64, n)
		for i := range in {
			in[i] = float64(n - i)
		}
		tr := Bubble(in)
		if got, want := tr.Count(trace.Compare), n*(n-1)/2; got != want {
			t.Errorf("n=%d reversed: %d compares, want %d", n, got, want)
		}
	}

	tr := Bubble([]float64{1, 2, 3, 4, 5})
	if got := tr.Count(trace.Compare); got != 4 {
		t.Errorf("sorted input: %d compares, want 4", got)
	}
	if got := tr.Count(trace.Swap); got != 0 {
		t.Errorf("sorted input: %d swaps", got)
	}
}

func TestBubbleSteps(t *testing.T) {
	tr := Bubble([]float64{2, 1})
	want := []struct {
		typ trace.StepType
		msg string
		idx []int
		arr []float64
	}{
		{trace.Highlight, "Starting Bubble Sort algorithm", []int{}, []float64{2, 1}},
		{trace.Highlight, "Pass 1: Comparing adjacent elements", []int{}, []float64{2, 1}},
		{trace.Compare, "Comparing 2 and 1", []int{0, 1}, []float64{2, 1}},
		{trace.Swap, "Swapping 2 and 1", []int{0, 1}, []float64{1, 2}},
		{trace.Complete, "Bubble Sort completed!", []int{}, []float64{1, 2}},
	}
	if tr.Len() != len(want) {
		t.Fatalf("got %d steps, want %d", tr.Len(), len(want))
	}
	for i, w := range want {
		s := tr.Steps[i].(*trace.NumberStep)
		if s.Type != w.typ || s.Message != w.msg || !slices.Equal(s.Indices, w.idx) || !slices.Equal(s.Array, w.arr) {
			t.Errorf("step %d = %+v, want %+v", i, *s, w)
		}
	}
}

func TestMergeIsStable(t *testing.T) {
	type item struct {
		key, pos int
	}
	in := []item{{3, 0}, {1, 1}, {3, 2}, {2, 3}, {1, 4}, {3, 5}, {2, 6}}
	byKey := func(a, b item) int { return cmp.Compare(a.key, b.key) }

	steps := MergeFunc(in, byKey)
	got := steps[len(steps)-1].Array

	want := slices.Clone(in)
	slices.SortStableFunc(want, byKey)
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMergeCompareIndices(t *testing.T) {
	tr := Merge([]float64{4, 3, 2, 1})
	for i, s := range tr.Steps {
		st := s.(*trace.NumberStep)
		if st.Type != trace.Compare {
			continue
		}
		if len(st.Indices) != 2 || st.Indices[0] >= st.Indices[1] {
			t.Errorf("step %d: compare indices %v", i, st.Indices)
		}
	}
	if tr.Count(trace.Move) == 0 {
		t.Error("expected move steps")
	}
}

func TestQuickPivotAndSelfSwaps(t *testing.T) {
	tr := Quick([]float64{1, 2, 3})
	pivots := 0
	for i, s := range tr.Steps {
		st := s.(*trace.NumberStep)
		switch st.Type {
		case trace.Compare:
			if st.Indices[0] == st.Indices[1] {
				t.Errorf("step %d compares an element with itself", i)
			}
		case trace.Swap:
			if strings.HasPrefix(st.Message, "Placing pivot") {
				pivots++
				continue
			}
			if st.Indices[0] == st.Indices[1] {
				t.Errorf("step %d: self swap recorded", i)
			}
		}
	}
	// subranges [0,2] and [0,1]
	if pivots != 2 {
		t.Errorf("got %d pivot placements, want 2", pivots)
	}
}
