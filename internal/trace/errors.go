package trace

import (
	"errors"
	"fmt"
)

// Domain errors for trace generation.
var (
	// ErrNodeNotFound indicates a start or end id that is not in the graph.
	ErrNodeNotFound = errors.New("trace: node not found")

	// ErrInvalidInput indicates input a generator refuses to run on.
	ErrInvalidInput = errors.New("trace: invalid input")

	// ErrUnknownKind indicates a step variant this package does not define.
	ErrUnknownKind = errors.New("trace: unknown step kind")
)

// InputError wraps a generator input failure with the algorithm and the
// offending field.
type InputError struct {
	Algorithm string
	Field     string
	Value     string
	Wrapped   error
}

func (e *InputError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s %q: %v", e.Algorithm, e.Field, e.Value, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s: %v", e.Algorithm, e.Field, e.Wrapped)
}

func (e *InputError) Unwrap() error {
	return e.Wrapped
}
