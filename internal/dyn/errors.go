package dyn

import (
	"errors"
	"fmt"
)

// Domain errors for stepping operations.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf entries.
	ErrInvalidState = errors.New("dyn: invalid state (NaN or Inf detected)")

	// ErrUnstable indicates the integration diverged.
	ErrUnstable = errors.New("dyn: integration unstable (state diverged)")

	// ErrStepTooSmall indicates an adaptive timestep below the minimum.
	ErrStepTooSmall = errors.New("dyn: adaptive timestep below minimum")
)

// StepError wraps an error with the time it occurred at.
type StepError struct {
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("t=%.4f: %v", e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
