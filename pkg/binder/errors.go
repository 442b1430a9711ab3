package binder

import "errors"

// Sentinels returned by the binders. The handler package maps all of them to 400.
var (
	ErrMissingContentType   = errors.New("binder: request has no content type")
	ErrUnsupportedMediaType = errors.New("binder: content type is not application/json")
	ErrFailedToParseJSON    = errors.New("binder: malformed json body")
	ErrFailedToParsePath    = errors.New("binder: invalid path parameter")
)
