package subscription

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"strings"
)

// HotmartTokenHeader carries the shared secret configured in Hotmart.
const HotmartTokenHeader = "X-HOTMART-HOTTOK"

// HotmartEnvelope is the part of a Hotmart postback this service reads.
type HotmartEnvelope struct {
	Event  string `json:"event"`
	Hottok string `json:"hottok,omitempty"`
	Data   struct {
		Buyer struct {
			Email string `json:"email"`
		} `json:"buyer"`
		Product struct {
			ID   flexString `json:"id"`
			Name string     `json:"name"`
		} `json:"product"`
		Purchase struct {
			Transaction string `json:"transaction"`
		} `json:"purchase"`
	} `json:"data"`
}

// ParseHotmart decodes a Hotmart postback into an Event.
// Unknown event tags are not an error.
func ParseHotmart(body []byte) (Event, *HotmartEnvelope, error) {
	var env HotmartEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, nil, errors.Join(ErrInvalidPayload, err)
	}
	if env.Event == "" {
		return nil, nil, errors.Join(ErrInvalidPayload, errors.New("event is missing"))
	}

	ev := newEvent(
		env.Event,
		normalizeEmail(env.Data.Buyer.Email),
		string(env.Data.Product.ID),
		env.Data.Product.Name,
		env.Data.Purchase.Transaction,
	)
	return ev, &env, nil
}

// VerifyHottok compares the received token with the configured one in
// constant time. An empty expected token disables the check.
func VerifyHottok(expected, received string) error {
	if expected == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(received)) != 1 {
		return ErrInvalidToken
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// flexString accepts a JSON string or number. Hotmart sends product ids as
// numbers in some payload versions.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
