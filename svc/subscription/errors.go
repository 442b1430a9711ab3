package subscription

import "errors"

var (
	ErrInvalidPayload   = errors.New("invalid webhook payload")
	ErrMissingEmail     = errors.New("buyer email is missing")
	ErrInvalidToken     = errors.New("invalid webhook token")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrSecretRequired   = errors.New("webhook secret is required")
	ErrStoreRequired    = errors.New("subscription store is required")
)
