package subscription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
)

// PaddleSignatureHeader carries the Paddle webhook signature.
const PaddleSignatureHeader = "Paddle-Signature"

// Paddle event types mapped onto lifecycle events.
const (
	paddleSubscriptionCreated   = "subscription.created"
	paddleSubscriptionActivated = "subscription.activated"
	paddleSubscriptionCanceled  = "subscription.canceled"
	paddleTransactionCompleted  = "transaction.completed"
	paddleAdjustmentCreated     = "adjustment.created"
)

// PaddleConfig holds the Paddle notification settings.
type PaddleConfig struct {
	WebhookSecret string `env:"PADDLE_WEBHOOK_SECRET"`
}

// PaddleParser verifies and decodes Paddle notifications.
type PaddleParser struct {
	verifier *paddle.WebhookVerifier
}

// NewPaddleParser creates a parser for notifications signed with secret.
func NewPaddleParser(secret string) (*PaddleParser, error) {
	if secret == "" {
		return nil, ErrSecretRequired
	}
	return &PaddleParser{verifier: paddle.NewWebhookVerifier(secret)}, nil
}

type paddleNotification struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Data      struct {
		ID         string         `json:"id"`
		Action     string         `json:"action"`
		CustomData map[string]any `json:"custom_data"`
		Items      []struct {
			Price struct {
				ID        string `json:"id"`
				ProductID string `json:"product_id"`
				Name      string `json:"name"`
			} `json:"price"`
		} `json:"items"`
	} `json:"data"`
}

// Parse verifies signature over payload and maps the notification to an
// Event. The buyer email is read from data.custom_data.email.
func (p *PaddleParser) Parse(ctx context.Context, payload []byte, signature string) (Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/webhook/paddle", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request for verification: %w", err)
	}
	req.Header.Set(PaddleSignatureHeader, signature)

	valid, err := p.verifier.Verify(req)
	if err != nil {
		return nil, errors.Join(ErrInvalidSignature, err)
	}
	if !valid {
		return nil, ErrInvalidSignature
	}

	var n paddleNotification
	if err := json.Unmarshal(payload, &n); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	if n.EventType == "" {
		return nil, errors.Join(ErrInvalidPayload, errors.New("event_type is missing"))
	}

	email, _ := n.Data.CustomData["email"].(string)
	email = normalizeEmail(email)

	switch n.EventType {
	case paddleSubscriptionCreated, paddleSubscriptionActivated:
		ev := Approved{Email: email, PurchaseToken: n.Data.ID}
		if len(n.Data.Items) > 0 {
			price := n.Data.Items[0].Price
			ev.ProductID = price.ProductID
			if ev.ProductID == "" {
				ev.ProductID = price.ID
			}
			ev.ProductName = price.Name
		}
		return ev, nil
	case paddleSubscriptionCanceled:
		return Canceled{Email: email}, nil
	case paddleTransactionCompleted:
		return Completed{Email: email}, nil
	case paddleAdjustmentCreated:
		switch n.Data.Action {
		case "refund":
			return Refunded{Email: email}, nil
		case "chargeback":
			return Chargeback{Email: email}, nil
		}
		return Unknown{Name: n.EventType + ":" + n.Data.Action}, nil
	}
	return Unknown{Name: n.EventType}, nil
}
