package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/copygen/pkg/logger"
	"github.com/dmitrymomot/copygen/pkg/statemachine"
	"github.com/dmitrymomot/copygen/svc/store"
)

// BillingPeriod is the access granted by one approval.
const BillingPeriod = 30 * 24 * time.Hour

// Store is the persistence the lifecycle needs.
type Store interface {
	UpsertSubscription(ctx context.Context, rec store.SubscriptionRecord) error
	UpdateSubscriptionStatus(ctx context.Context, email string, status store.Status, field store.TimestampField, at time.Time) error
	GetLatestSubscription(ctx context.Context, email string) (store.SubscriptionRecord, error)
}

// Outcome describes what applying an event did.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeNotFound  Outcome = "not_found"
	OutcomeIgnored   Outcome = "ignored"
)

// noRecord is the state of an email without a subscription row.
const noRecord = statemachine.StringState("none")

var (
	eventApprove    = statemachine.StringEvent("approve")
	eventCancel     = statemachine.StringEvent("cancel")
	eventRefund     = statemachine.StringEvent("refund")
	eventChargeback = statemachine.StringEvent("chargeback")
)

func state(s store.Status) statemachine.StringState {
	return statemachine.StringState(s)
}

var terminalStates = []store.Status{store.StatusCanceled, store.StatusRefunded, store.StatusChargeback}

// newTransitions lists every allowed edge:
//
//	none     -> active      first approval
//	active   -> active      renewal
//	terminal -> active      reactivation (logged)
//	active   -> terminal    cancel, refund, chargeback
//	terminal -> terminal    latest event wins; same status is a no-op
//
// Cancel, refund and chargeback have no edge from none: there is nothing to
// update for an unknown buyer.
func (l *Lifecycle) newTransitions() (*statemachine.Table, error) {
	defs := []statemachine.Transition{
		statemachine.Def(noRecord, state(store.StatusActive), eventApprove),
		statemachine.Def(state(store.StatusActive), state(store.StatusActive), eventApprove),
	}
	terminalEvents := map[store.Status]statemachine.StringEvent{
		store.StatusCanceled:   eventCancel,
		store.StatusRefunded:   eventRefund,
		store.StatusChargeback: eventChargeback,
	}
	for _, from := range terminalStates {
		defs = append(defs, statemachine.Def(state(from), state(store.StatusActive), eventApprove,
			statemachine.WithActions(l.logReactivation)))
	}
	for _, from := range append([]store.Status{store.StatusActive}, terminalStates...) {
		for to, ev := range terminalEvents {
			defs = append(defs, statemachine.Def(state(from), state(to), ev))
		}
	}
	return statemachine.NewTable(defs...)
}

func (l *Lifecycle) logReactivation(ctx context.Context, from, _ statemachine.State, _ statemachine.Event, data any) error {
	e, _ := data.(Approved)
	l.log.WarnContext(ctx, "subscription reactivated",
		logger.Email(e.Email),
		slog.String("previous_status", from.Name()),
		logger.Component("subscription"),
	)
	return nil
}

// Lifecycle applies billing events to subscription records.
type Lifecycle struct {
	store       Store
	transitions *statemachine.Table
	log         *slog.Logger
	now         func() time.Time
}

// LifecycleOption configures a Lifecycle.
type LifecycleOption func(*Lifecycle)

// WithLifecycleLogger sets the logger.
func WithLifecycleLogger(log *slog.Logger) LifecycleOption {
	return func(l *Lifecycle) {
		if log != nil {
			l.log = log
		}
	}
}

// WithLifecycleClock overrides time.Now.
func WithLifecycleClock(now func() time.Time) LifecycleOption {
	return func(l *Lifecycle) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLifecycle creates a Lifecycle backed by s.
func NewLifecycle(s Store, opts ...LifecycleOption) (*Lifecycle, error) {
	if s == nil {
		return nil, ErrStoreRequired
	}
	l := &Lifecycle{store: s, log: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(l)
	}

	table, err := l.newTransitions()
	if err != nil {
		return nil, err
	}
	l.transitions = table
	return l, nil
}

// Apply changes the subscription for ev's buyer.
//
// Approval upserts an active record for one BillingPeriod. Cancel, refund
// and chargeback set the status and stamp the matching timestamp; repeating
// the current status changes nothing. An update for an unknown email returns
// OutcomeNotFound without an error. Store failures are returned as errors.
func (l *Lifecycle) Apply(ctx context.Context, ev Event) (Outcome, error) {
	switch e := ev.(type) {
	case Approved:
		return l.approve(ctx, e)
	case Canceled:
		return l.terminate(ctx, e.Email, eventCancel, store.CanceledAt)
	case Refunded:
		return l.terminate(ctx, e.Email, eventRefund, store.RefundedAt)
	case Chargeback:
		return l.terminate(ctx, e.Email, eventChargeback, store.ChargebackAt)
	case Completed:
		l.log.InfoContext(ctx, "purchase complete",
			logger.Email(e.Email),
			logger.EventType(e.Tag()),
			logger.Component("subscription"),
		)
		return OutcomeIgnored, nil
	default:
		return OutcomeIgnored, nil
	}
}

func (l *Lifecycle) approve(ctx context.Context, e Approved) (Outcome, error) {
	if e.Email == "" {
		return OutcomeIgnored, ErrMissingEmail
	}

	// The read only decides which edge to log; approval is an upsert and
	// must not depend on it.
	from := noRecord
	current, err := l.store.GetLatestSubscription(ctx, e.Email)
	switch {
	case err == nil:
		from = state(current.Status)
	case !errors.Is(err, store.ErrNotFound):
		l.log.WarnContext(ctx, "approval without current subscription state",
			logger.Error(err),
			logger.Email(e.Email),
			logger.Component("subscription"),
		)
	}

	if _, err := l.transitions.Apply(ctx, from, eventApprove, e); err != nil {
		l.log.WarnContext(ctx, "approving subscription from unexpected status",
			logger.Error(err),
			logger.Email(e.Email),
			logger.Component("subscription"),
		)
	}

	now := l.now().UTC()
	ends := now.Add(BillingPeriod)
	rec := store.SubscriptionRecord{
		ID:            uuid.New(),
		UserEmail:     e.Email,
		Status:        store.StatusActive,
		ProductID:     e.ProductID,
		ProductName:   e.ProductName,
		PurchaseToken: e.PurchaseToken,
		StartsAt:      &now,
		EndsAt:        &ends,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := l.store.UpsertSubscription(ctx, rec); err != nil {
		return OutcomeIgnored, fmt.Errorf("upsert subscription: %w", err)
	}
	return OutcomeApplied, nil
}

func (l *Lifecycle) terminate(ctx context.Context, email string, event statemachine.StringEvent, field store.TimestampField) (Outcome, error) {
	if email == "" {
		return OutcomeIgnored, ErrMissingEmail
	}

	current, err := l.store.GetLatestSubscription(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return OutcomeNotFound, nil
	}
	if err != nil {
		return OutcomeIgnored, fmt.Errorf("load subscription: %w", err)
	}

	from := state(current.Status)
	to, err := l.transitions.Apply(ctx, from, event, nil)
	if errors.Is(err, statemachine.ErrNoTransition) {
		l.log.WarnContext(ctx, "subscription status does not accept event",
			logger.Error(err),
			logger.Email(email),
			logger.Component("subscription"),
		)
		return OutcomeIgnored, nil
	}
	if err != nil {
		return OutcomeIgnored, err
	}
	if to.Name() == from.Name() {
		return OutcomeUnchanged, nil
	}

	err = l.store.UpdateSubscriptionStatus(ctx, email, store.Status(to.Name()), field, l.now().UTC())
	if errors.Is(err, store.ErrNotFound) {
		return OutcomeNotFound, nil
	}
	if err != nil {
		return OutcomeIgnored, fmt.Errorf("update subscription status: %w", err)
	}
	return OutcomeApplied, nil
}
