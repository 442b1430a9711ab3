package statemachine

import "context"

type State interface {
	Name() string
}

type Event interface {
	Name() string
}

// Action runs before the caller persists the new state. Returning an error aborts the transition.
type Action func(ctx context.Context, from, to State, event Event, data any) error

type StringState string

func (s StringState) Name() string { return string(s) }

type StringEvent string

func (e StringEvent) Name() string { return string(e) }
