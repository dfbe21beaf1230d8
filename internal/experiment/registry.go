package experiment

import (
	"errors"
	"fmt"
	"slices"

	"github.com/san-kum/algoviz/internal/graph"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/search"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/san-kum/algoviz/internal/trace"
)

var ErrUnknownAlgorithm = errors.New("experiment: unknown algorithm")

type Category string

const (
	Sorting Category = "sorting"
	Graph   Category = "graph"
)

// Algorithm is a registered trace generator with its catalog entry.
type Algorithm struct {
	ID              string
	Title           string
	Category        Category
	Kind            trace.Kind
	Description     string
	TimeComplexity  string
	SpaceComplexity string

	run func(in playback.Input) (*trace.Trace, error)
}

func (a *Algorithm) Name() string { return a.ID }

// Generate runs the algorithm on in. Graph algorithms take their endpoints
// from in, or from the graph's start and end flags when in names none.
func (a *Algorithm) Generate(in playback.Input) (*trace.Trace, error) {
	return a.run(in)
}

type Registry struct {
	algorithms map[string]*Algorithm
}

func NewRegistry() *Registry {
	r := &Registry{algorithms: make(map[string]*Algorithm)}

	r.register(&Algorithm{
		ID:              sorting.QuickName,
		Title:           "Quicksort",
		Category:        Sorting,
		Kind:            trace.KindArray,
		Description:     "A divide-and-conquer algorithm that picks a pivot and partitions the array around it.",
		TimeComplexity:  "O(n log n) average, O(n²) worst",
		SpaceComplexity: "O(log n)",
		run:             sortWith(sorting.Quick),
	})
	r.register(&Algorithm{
		ID:              sorting.MergeName,
		Title:           "Merge Sort",
		Category:        Sorting,
		Kind:            trace.KindArray,
		Description:     "A stable divide-and-conquer algorithm that divides the array into halves and merges them.",
		TimeComplexity:  "O(n log n)",
		SpaceComplexity: "O(n)",
		run:             sortWith(sorting.Merge),
	})
	r.register(&Algorithm{
		ID:              sorting.BubbleName,
		Title:           "Bubble Sort",
		Category:        Sorting,
		Kind:            trace.KindArray,
		Description:     "A simple sorting algorithm that repeatedly steps through the list and swaps adjacent elements.",
		TimeComplexity:  "O(n²)",
		SpaceComplexity: "O(1)",
		run:             sortWith(sorting.Bubble),
	})
	r.register(&Algorithm{
		ID:              search.DijkstraName,
		Title:           "Dijkstra's Algorithm",
		Category:        Graph,
		Kind:            trace.KindDijkstra,
		Description:     "Finds the shortest path between nodes in a weighted graph.",
		TimeComplexity:  "O((V + E) log V)",
		SpaceComplexity: "O(V)",
		run:             searchWith(search.DijkstraName, search.Dijkstra),
	})
	r.register(&Algorithm{
		ID:              search.BFSName,
		Title:           "Breadth-First Search",
		Category:        Graph,
		Kind:            trace.KindBFS,
		Description:     "Explores all nodes at the present depth before moving to nodes at the next depth level.",
		TimeComplexity:  "O(V + E)",
		SpaceComplexity: "O(V)",
		run:             searchWith(search.BFSName, search.BFS),
	})

	return r
}

func (r *Registry) register(a *Algorithm) {
	r.algorithms[a.ID] = a
}

func (r *Registry) Get(name string) (*Algorithm, error) {
	a, ok := r.algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
	return a, nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.algorithms))
	for name := range r.algorithms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ByCategory returns the algorithms of c sorted by name.
func (r *Registry) ByCategory(c Category) []*Algorithm {
	var out []*Algorithm
	for _, name := range r.List() {
		if a := r.algorithms[name]; a.Category == c {
			out = append(out, a)
		}
	}
	return out
}

func sortWith(fn func([]float64) *trace.Trace) func(playback.Input) (*trace.Trace, error) {
	return func(in playback.Input) (*trace.Trace, error) {
		return fn(in.Array), nil
	}
}

func searchWith(name string, fn func(g *graph.Graph, start, end string) (*trace.Trace, error)) func(playback.Input) (*trace.Trace, error) {
	return func(in playback.Input) (*trace.Trace, error) {
		if in.Graph == nil {
			return nil, &trace.InputError{Algorithm: name, Field: "graph", Wrapped: graph.ErrEmpty}
		}
		start, end := in.Start, in.End
		if start == "" || end == "" {
			s, e, err := in.Graph.Endpoints()
			if err != nil {
				return nil, &trace.InputError{Algorithm: name, Field: "endpoints", Wrapped: err}
			}
			if start == "" {
				start = s
			}
			if end == "" {
				end = e
			}
		}
		return fn(in.Graph, start, end)
	}
}
