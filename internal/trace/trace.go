package trace

import (
	"encoding/json"
	"fmt"
)

// Trace is the complete, immutable step list of one run.
type Trace struct {
	Algorithm string
	Kind      Kind
	Steps     []Step
}

// New wraps steps produced by algorithm.
func New(algorithm string, kind Kind, steps []Step) *Trace {
	return &Trace{Algorithm: algorithm, Kind: kind, Steps: steps}
}

// Len returns the number of steps.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Steps)
}

// At returns the step at i, or nil when i is out of range.
func (t *Trace) At(i int) Step {
	if t == nil || i < 0 || i >= len(t.Steps) {
		return nil
	}
	return t.Steps[i]
}

// Last returns the final step, or nil for an empty trace.
func (t *Trace) Last() Step {
	return t.At(t.Len() - 1)
}

// Count returns how many steps have the given type.
func (t *Trace) Count(st StepType) int {
	if t == nil {
		return 0
	}
	n := 0
	for _, s := range t.Steps {
		if s.StepType() == st {
			n++
		}
	}
	return n
}

type traceJSON struct {
	Algorithm string            `json:"algorithm"`
	Kind      Kind              `json:"kind"`
	Steps     []json.RawMessage `json:"steps"`
}

func (t *Trace) MarshalJSON() ([]byte, error) {
	out := traceJSON{Algorithm: t.Algorithm, Kind: t.Kind, Steps: make([]json.RawMessage, len(t.Steps))}
	for i, s := range t.Steps {
		if s.Kind() != t.Kind {
			return nil, fmt.Errorf("trace: step %d is %s in a %s trace", i, s.Kind(), t.Kind)
		}
		data, err := json.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("trace: step %d: %w", i, err)
		}
		out.Steps[i] = data
	}
	return json.Marshal(out)
}

func (t *Trace) UnmarshalJSON(data []byte) error {
	var in traceJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	steps := make([]Step, len(in.Steps))
	for i, raw := range in.Steps {
		var s Step
		switch in.Kind {
		case KindArray:
			s = &NumberStep{}
		case KindBFS:
			s = &BFSStep{}
		case KindDijkstra:
			s = &DijkstraStep{}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownKind, in.Kind)
		}
		if err := json.Unmarshal(raw, s); err != nil {
			return fmt.Errorf("trace: step %d: %w", i, err)
		}
		steps[i] = s
	}

	t.Algorithm = in.Algorithm
	t.Kind = in.Kind
	t.Steps = steps
	return nil
}
