package generate

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/san-kum/algoviz/internal/search"
	"github.com/san-kum/algoviz/internal/trace"
)

func TestArray(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := Array(rng, 500)
	if len(a) != 500 {
		t.Fatalf("len = %d", len(a))
	}
	for _, v := range a {
		if v < MinValue || v > MaxValue || v != float64(int(v)) {
			t.Fatalf("value %v out of range", v)
		}
	}
	if got := Array(rng, -3); len(got) != 0 {
		t.Errorf("negative size gave %v", got)
	}
}

func TestArrayDeterministic(t *testing.T) {
	a := Array(rand.New(rand.NewSource(7)), 20)
	b := Array(rand.New(rand.NewSource(7)), 20)
	if !slices.Equal(a, b) {
		t.Error("same seed gave different arrays")
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5, 6}
	out := Shuffle(rand.New(rand.NewSource(3)), in)

	if !slices.Equal(in, []float64{1, 2, 3, 4, 5, 6}) {
		t.Fatal("input mutated")
	}
	slices.Sort(out)
	if !slices.Equal(out, in) {
		t.Errorf("not a permutation: %v", out)
	}
}

func TestGraphConnected(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		for _, n := range []int{1, 3, 5, 8, 12} {
			g := Graph(rand.New(rand.NewSource(seed)), n)
			if err := g.Validate(); err != nil {
				t.Fatalf("seed %d n %d: %v", seed, n, err)
			}

			start, end, err := g.Endpoints()
			if err != nil {
				t.Fatal(err)
			}
			if start != "A" || end != g.Nodes[len(g.Nodes)-1].ID {
				t.Errorf("endpoints %s, %s", start, end)
			}

			tr, err := search.BFS(g, start, end)
			if err != nil {
				t.Fatal(err)
			}
			if tr.Count(trace.Path) != 1 {
				t.Errorf("seed %d n %d: end not reachable", seed, n)
			}
			if len(g.Nodes) < MinNodes {
				t.Errorf("n %d produced %d nodes", n, len(g.Nodes))
			}
		}
	}
}

func TestGraphSmallIsComplete(t *testing.T) {
	// four nodes are topped up past the six possible pairs
	g := Graph(rand.New(rand.NewSource(11)), 4)
	if len(g.Edges) != 6 {
		t.Errorf("got %d edges, want 6", len(g.Edges))
	}
}
