package subscription_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/copygen/svc/subscription"
)

const paddleSecret = "pdl_ntfset_test_secret"

func signPaddle(secret, body string) string {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts + ":" + body))
	return fmt.Sprintf("ts=%s;h1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestPaddleParser(t *testing.T) {
	t.Parallel()

	parser, err := subscription.NewPaddleParser(paddleSecret)
	require.NoError(t, err)

	tests := []struct {
		name string
		body string
		want subscription.Event
	}{
		{
			name: "subscription created",
			body: `{"event_id":"evt_1","event_type":"subscription.created","data":{"id":"sub_1","custom_data":{"email":"B@x.com"},"items":[{"price":{"id":"pri_1","product_id":"pro_1","name":"Monthly"}}]}}`,
			want: subscription.Approved{Email: "b@x.com", ProductID: "pro_1", ProductName: "Monthly", PurchaseToken: "sub_1"},
		},
		{
			name: "subscription canceled",
			body: `{"event_type":"subscription.canceled","data":{"id":"sub_1","custom_data":{"email":"b@x.com"}}}`,
			want: subscription.Canceled{Email: "b@x.com"},
		},
		{
			name: "refund adjustment",
			body: `{"event_type":"adjustment.created","data":{"action":"refund","custom_data":{"email":"b@x.com"}}}`,
			want: subscription.Refunded{Email: "b@x.com"},
		},
		{
			name: "chargeback adjustment",
			body: `{"event_type":"adjustment.created","data":{"action":"chargeback","custom_data":{"email":"b@x.com"}}}`,
			want: subscription.Chargeback{Email: "b@x.com"},
		},
		{
			name: "credit adjustment is unknown",
			body: `{"event_type":"adjustment.created","data":{"action":"credit"}}`,
			want: subscription.Unknown{Name: "adjustment.created:credit"},
		},
		{
			name: "unmapped event",
			body: `{"event_type":"customer.updated","data":{}}`,
			want: subscription.Unknown{Name: "customer.updated"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ev, err := parser.Parse(context.Background(), []byte(tt.body), signPaddle(paddleSecret, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev)
		})
	}

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		body := `{"event_type":"subscription.canceled","data":{}}`
		_, err := parser.Parse(context.Background(), []byte(body), signPaddle("other", body))
		assert.ErrorIs(t, err, subscription.ErrInvalidSignature)
	})

	t.Run("missing signature", func(t *testing.T) {
		t.Parallel()
		_, err := parser.Parse(context.Background(), []byte(`{}`), "")
		assert.ErrorIs(t, err, subscription.ErrInvalidSignature)
	})

	t.Run("tampered body", func(t *testing.T) {
		t.Parallel()
		body := `{"event_type":"subscription.canceled","data":{"custom_data":{"email":"b@x.com"}}}`
		sig := signPaddle(paddleSecret, body)
		_, err := parser.Parse(context.Background(), []byte(body+" "), sig)
		assert.ErrorIs(t, err, subscription.ErrInvalidSignature)
	})

	t.Run("missing event type", func(t *testing.T) {
		t.Parallel()
		body := `{"data":{}}`
		_, err := parser.Parse(context.Background(), []byte(body), signPaddle(paddleSecret, body))
		assert.ErrorIs(t, err, subscription.ErrInvalidPayload)
	})
}

func TestNewPaddleParser_RequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := subscription.NewPaddleParser("")
	assert.ErrorIs(t, err, subscription.ErrSecretRequired)
}
