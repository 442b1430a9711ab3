package store

import (
	"time"

	"github.com/google/uuid"
)

// GenerationRecord is one generated piece of copy. Insert-only.
type GenerationRecord struct {
	ID        uuid.UUID `json:"id"`
	Prompt    string    `json:"prompt"`
	Template  string    `json:"template"`
	Content   string    `json:"content"`
	Tokens    int       `json:"tokens,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Status is the subscription lifecycle status.
type Status string

const (
	StatusActive     Status = "active"
	StatusCanceled   Status = "canceled"
	StatusRefunded   Status = "refunded"
	StatusChargeback Status = "chargeback"
)

// TimestampField names the column stamped by a status update.
type TimestampField string

const (
	CanceledAt   TimestampField = "canceled_at"
	RefundedAt   TimestampField = "refunded_at"
	ChargebackAt TimestampField = "chargeback_at"
)

// Valid reports whether f is one of the known timestamp columns.
func (f TimestampField) Valid() bool {
	switch f {
	case CanceledAt, RefundedAt, ChargebackAt:
		return true
	}
	return false
}

// SubscriptionRecord is the single subscription row per buyer email.
type SubscriptionRecord struct {
	ID            uuid.UUID  `json:"id"`
	UserEmail     string     `json:"userEmail"`
	Status        Status     `json:"status"`
	ProductID     string     `json:"productId,omitempty"`
	ProductName   string     `json:"productName,omitempty"`
	PurchaseToken string     `json:"purchaseToken,omitempty"`
	StartsAt      *time.Time `json:"startsAt,omitempty"`
	EndsAt        *time.Time `json:"endsAt,omitempty"`
	CanceledAt    *time.Time `json:"canceledAt,omitempty"`
	RefundedAt    *time.Time `json:"refundedAt,omitempty"`
	ChargebackAt  *time.Time `json:"chargebackAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Stats summarises generation volume.
type Stats struct {
	Total      int            `json:"total"`
	ByTemplate map[string]int `json:"byTemplate"`
	Last7Days  int            `json:"last7Days"`
}
