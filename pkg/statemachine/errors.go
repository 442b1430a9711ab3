package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("transition needs from, to and event")
	ErrDuplicateEdge     = errors.New("transition already defined")
	ErrInvalidEvent      = errors.New("state and event are required")
	ErrNoTransition      = errors.New("no transition")
)

// TransitionError reports which state and event failed to resolve.
// It unwraps to ErrNoTransition.
type TransitionError struct {
	From  string
	Event string
	Err   error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %q on %q", e.Err, e.Event, e.From)
}

func (e *TransitionError) Unwrap() error { return e.Err }
