package store

import "errors"

var (
	ErrNotFound              = errors.New("record not found")
	ErrInvalidTimestampField = errors.New("invalid timestamp field")
	ErrEmailRequired         = errors.New("user email is required")
	ErrUnknownDriver         = errors.New("unknown store driver")
)
