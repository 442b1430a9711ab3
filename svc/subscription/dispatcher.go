package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/copygen/pkg/logger"
)

// Ack statuses.
const (
	AckSuccess = "success"
	AckError   = "error"
)

// Ack is the body returned to the payment provider. It is always sent with
// HTTP 200 so the provider does not redeliver.
type Ack struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Metric outcome labels.
const (
	metricSuccess = "success"
	metricError   = "error"
	metricIgnored = "ignored"
)

// Metrics receives one call per dispatched event.
type Metrics interface {
	WebhookEvent(event, outcome string)
}

type applier interface {
	Apply(ctx context.Context, ev Event) (Outcome, error)
}

// Dispatcher routes events to the lifecycle and turns every result,
// including a panic, into an Ack.
type Dispatcher struct {
	lifecycle applier
	metrics   Metrics
	log       *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherMetrics reports each event to m.
func WithDispatcherMetrics(m Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithDispatcherLogger sets the logger.
func WithDispatcherLogger(log *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDispatcher creates a Dispatcher that applies events with lifecycle.
func NewDispatcher(lifecycle applier, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{lifecycle: lifecycle, log: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch applies ev and acknowledges it.
//
// Unknown events and updates for unknown buyers are logged and acknowledged
// as success. Store failures are logged and acknowledged as success, since
// redelivery would not help. Missing data and panics produce an error ack.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) (ack Ack) {
	// Unknown tags come from the request, so they share one metric label.
	tag := "unknown"
	if _, isUnknown := ev.(Unknown); ev != nil && !isUnknown {
		tag = ev.Tag()
	}

	defer func() {
		if r := recover(); r != nil {
			d.log.ErrorContext(ctx, "webhook handler panicked",
				slog.Any("panic", r),
				logger.EventType(tag),
				logger.Component("webhook"),
			)
			d.observe(tag, metricError)
			ack = Ack{Status: AckError, Message: fmt.Sprintf("failed to process %s", tag)}
		}
	}()

	if u, ok := ev.(Unknown); ok || ev == nil {
		d.log.InfoContext(ctx, "ignoring unknown webhook event",
			logger.EventType(u.Name),
			logger.Component("webhook"),
		)
		d.observe(tag, metricIgnored)
		return Ack{Status: AckSuccess, Message: "event ignored"}
	}

	outcome, err := d.lifecycle.Apply(ctx, ev)
	switch {
	case err == nil:
	case errors.Is(err, ErrMissingEmail):
		d.log.WarnContext(ctx, "webhook event without buyer email",
			logger.EventType(tag),
			logger.Component("webhook"),
		)
		d.observe(tag, metricError)
		return Ack{Status: AckError, Message: ErrMissingEmail.Error()}
	default:
		d.log.ErrorContext(ctx, "failed to persist webhook event",
			logger.Error(err),
			logger.EventType(tag),
			logger.Component("webhook"),
		)
		d.observe(tag, metricError)
		return Ack{Status: AckSuccess, Message: "event received"}
	}

	switch outcome {
	case OutcomeNotFound:
		d.log.WarnContext(ctx, "no subscription to update",
			logger.EventType(tag),
			logger.Component("webhook"),
		)
	case OutcomeIgnored:
		d.observe(tag, metricIgnored)
		return Ack{Status: AckSuccess, Message: "event processed"}
	}

	d.observe(tag, metricSuccess)
	return Ack{Status: AckSuccess, Message: "event processed"}
}

func (d *Dispatcher) observe(tag, outcome string) {
	if d.metrics != nil {
		d.metrics.WebhookEvent(tag, outcome)
	}
}
