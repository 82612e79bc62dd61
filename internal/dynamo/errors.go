package dynamo

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure produced by the simulation core matches exactly
// one of these via errors.Is.
var (
	// ErrValidation marks inconsistent scenario input the user can correct.
	ErrValidation = errors.New("dynamo: invalid scenario")

	// ErrDiverged marks an integration that left the model's valid domain.
	ErrDiverged = errors.New("dynamo: simulation diverged")

	// ErrParse marks an override field that could not be read as a number.
	ErrParse = errors.New("dynamo: unparsable value")

	// ErrStepRejected is returned by adaptive steppers when the local error
	// estimate exceeds tolerance. It never leaves the simulator.
	ErrStepRejected = errors.New("dynamo: adaptive step rejected")
)

// ValidationError reports a restriction that does not exceed its initial value.
type ValidationError struct {
	Index       int
	Initial     float64
	Restriction float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("restriction for X%d must exceed its initial value: initial %.2f, restriction %.2f",
		e.Index+1, e.Initial, e.Restriction)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// DivergedError wraps a divergence with the step at which it was detected.
type DivergedError struct {
	Step   int
	Time   float64
	State  State
	Reason string
}

func (e *DivergedError) Error() string {
	return fmt.Sprintf("simulation diverged at step %d (t=%.4f): %s", e.Step, e.Time, e.Reason)
}

func (e *DivergedError) Is(target error) bool { return target == ErrDiverged }

// ParseError records an override field replaced by its default.
type ParseError struct {
	Field   string
	Value   string
	Default float64
	Err     error
}

func (e *ParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: missing, using default %g", e.Field, e.Default)
	}
	return fmt.Sprintf("%s: cannot parse %q, using default %g", e.Field, e.Value, e.Default)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }
