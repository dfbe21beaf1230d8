package trace

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestTraceJSONKeepsInfiniteDistances(t *testing.T) {
	tr := New("dijkstra", KindDijkstra, []Step{
		&DijkstraStep{
			Header:     Header{Type: Visit, Message: "Visiting node A (distance: 0)"},
			GraphState: GraphState{NodeID: "A", Visited: NodeSet{"A"}, Previous: map[string]string{}},
			Distances:  Distances{"A": 0, "B": math.Inf(1)},
		},
	})

	data, err := json.Marshal(tr)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var got Trace
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	step, ok := got.At(0).(*DijkstraStep)
	if !ok {
		t.Fatalf("expected *DijkstraStep, got %T", got.At(0))
	}
	if !math.IsInf(step.Distances["B"], 1) {
		t.Errorf("expected +Inf for B, got %v", step.Distances["B"])
	}
	if step.Distances.Reached("B") {
		t.Error("B should not be reached")
	}
	if !step.Distances.Reached("A") {
		t.Error("A should be reached")
	}
}

func TestTraceUnknownKind(t *testing.T) {
	var tr Trace
	err := json.Unmarshal([]byte(`{"algorithm":"x","kind":"tree","steps":[{}]}`), &tr)
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestTraceMarshalRejectsMixedKinds(t *testing.T) {
	tr := New("bubblesort", KindArray, []Step{
		&NumberStep{Header: Header{Type: Highlight, Message: "start"}},
		&BFSStep{Header: Header{Type: Visit, Message: "visit"}},
	})
	if _, err := json.Marshal(tr); err == nil {
		t.Error("expected error for mixed step kinds")
	}
}

func TestTraceAccessors(t *testing.T) {
	var empty *Trace
	if empty.Len() != 0 || empty.At(0) != nil || empty.Last() != nil {
		t.Error("nil trace should behave as empty")
	}

	tr := New("bubblesort", KindArray, []Step{
		&NumberStep{Header: Header{Type: Highlight, Message: "start"}, Array: []float64{2, 1}},
		&NumberStep{Header: Header{Type: Compare, Message: "cmp"}, Indices: []int{0, 1}, Array: []float64{2, 1}},
		&NumberStep{Header: Header{Type: Complete, Message: "done"}, Array: []float64{1, 2}},
	})

	if tr.At(-1) != nil || tr.At(3) != nil {
		t.Error("out of range At should return nil")
	}
	if tr.Last().StepType() != Complete {
		t.Errorf("expected complete last, got %s", tr.Last().StepType())
	}
	if n := tr.Count(Compare); n != 1 {
		t.Errorf("expected 1 compare, got %d", n)
	}
}

func TestSnapshots(t *testing.T) {
	arr := &NumberStep{Array: []float64{3, 1}}
	if got, ok := ArraySnapshot(arr); !ok || len(got) != 2 {
		t.Errorf("ArraySnapshot = %v, %v", got, ok)
	}
	if _, ok := GraphSnapshot(arr); ok {
		t.Error("array step should have no graph snapshot")
	}

	bfs := &BFSStep{GraphState: GraphState{Visited: NodeSet{"A"}}}
	gs, ok := GraphSnapshot(bfs)
	if !ok || !gs.Visited.Contains("A") {
		t.Errorf("GraphSnapshot = %v, %v", gs, ok)
	}
	if _, ok := ArraySnapshot(bfs); ok {
		t.Error("bfs step should have no array snapshot")
	}
}

func TestInputError(t *testing.T) {
	err := &InputError{Algorithm: "bfs", Field: "start", Value: "Z", Wrapped: ErrNodeNotFound}
	if !errors.Is(err, ErrNodeNotFound) {
		t.Error("InputError should unwrap to ErrNodeNotFound")
	}
	want := `bfs: start "Z": trace: node not found`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
