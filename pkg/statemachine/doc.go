// Package statemachine resolves (state, event) pairs against an immutable
// transition Table.
//
// A Table owns no current state: load the entity, Apply the event, persist the
// returned state. Every edge is explicit; a pair with no edge returns a
// *TransitionError wrapping ErrNoTransition.
//
//	table, err := statemachine.NewTable(
//	    statemachine.Def(None, Active, Approve),
//	    statemachine.Def(Active, Canceled, Cancel, statemachine.WithActions(stamp)),
//	)
//	next, err := table.Apply(ctx, current, Cancel, record)
//	if errors.Is(err, statemachine.ErrNoTransition) {
//	    // event not valid from current
//	}
package statemachine
