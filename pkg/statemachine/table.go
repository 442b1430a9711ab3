package statemachine

import (
	"context"
	"fmt"
)

// Transition is one edge of a Table.
type Transition struct {
	From    State
	To      State
	Event   Event
	Actions []Action // run in order
}

// TransitionOption customises a Transition built by Def.
type TransitionOption func(*Transition)

// Def describes a transition for NewTable.
func Def(from, to State, event Event, opts ...TransitionOption) Transition {
	t := Transition{From: from, To: to, Event: event}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// WithActions attaches actions to a transition. Nil actions are skipped.
func WithActions(actions ...Action) TransitionOption {
	return func(t *Transition) {
		for _, a := range actions {
			if a != nil {
				t.Actions = append(t.Actions, a)
			}
		}
	}
}

type edgeKey struct {
	from  string
	event string
}

// Table is an immutable set of transitions. It holds no current state, so one
// Table can drive any number of entities whose state lives elsewhere, such as
// rows in a database.
type Table struct {
	edges map[edgeKey]Transition
}

// NewTable validates defs and indexes them by source state and event.
// At most one transition may leave a state on a given event.
func NewTable(defs ...Transition) (*Table, error) {
	t := &Table{edges: make(map[edgeKey]Transition, len(defs))}
	for i, d := range defs {
		if d.From == nil || d.To == nil || d.Event == nil {
			return nil, fmt.Errorf("transition[%d]: %w", i, ErrInvalidTransition)
		}
		k := edgeKey{from: d.From.Name(), event: d.Event.Name()}
		if _, dup := t.edges[k]; dup {
			return nil, fmt.Errorf("transition[%d] %q on %q: %w", i, k.event, k.from, ErrDuplicateEdge)
		}
		t.edges[k] = d
	}
	return t, nil
}

// Apply resolves event from state, runs the transition's actions and returns
// the target state. On error from is returned unchanged.
func (t *Table) Apply(ctx context.Context, from State, event Event, data any) (State, error) {
	if from == nil || event == nil {
		return from, ErrInvalidEvent
	}

	tr, ok := t.edges[edgeKey{from: from.Name(), event: event.Name()}]
	if !ok {
		return from, &TransitionError{From: from.Name(), Event: event.Name(), Err: ErrNoTransition}
	}
	for _, action := range tr.Actions {
		if err := action(ctx, from, tr.To, event, data); err != nil {
			return from, fmt.Errorf("%s action: %w", event.Name(), err)
		}
	}
	return tr.To, nil
}
