package calculation

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("invalid simulation input")
	// ErrComputation matches any *ComputationError via errors.Is.
	ErrComputation = errors.New("simulation result not representable")
)

// ValidationError reports a supplied parameter outside its domain. It is
// raised before any arithmetic runs.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %g)", e.Field, e.Reason, e.Value)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ComputationError reports valid inputs whose result cannot be represented,
// such as an overflow or a horizon with no whole month to spread over.
type ComputationError struct {
	Operation string
	Reason    string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Reason)
}

func (e *ComputationError) Is(target error) bool { return target == ErrComputation }
