package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates a body whose position went NaN or Inf.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrClock indicates a clock whose bounds cannot hold its time step.
	ErrClock = errors.New("sim: invalid clock")
)

// SimError records where a run stopped being numerically valid.
type SimError struct {
	Step    int
	Time    float64
	Body    string
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s: %s", e.Step, e.Time, e.Body, e.Message)
}

func (e SimError) Unwrap() error { return ErrInvalidState }
