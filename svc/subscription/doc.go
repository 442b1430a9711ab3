// Package subscription turns billing provider webhooks into subscription
// state.
//
// ParseHotmart and PaddleParser decode provider payloads into Event values:
// Approved, Completed, Canceled, Refunded, Chargeback, or Unknown for any tag
// this service does not act on. Lifecycle applies an Event to the buyer's
// single subscription record using a transition table from pkg/statemachine.
// Approval upserts an active record for BillingPeriod. Terminal events set the
// status and stamp the matching timestamp; repeating the current terminal
// status is a no-op.
//
// Dispatcher wraps Lifecycle and always produces an Ack. Providers redeliver
// on non-200 responses, so handlers send every Ack with status 200, including
// after a panic.
package subscription
