// Package binder decodes HTTP request data into Go structs.
//
// JSON decodes the request body, checking the content type, capping the body
// size and rejecting trailing data. Unknown fields are rejected unless
// WithUnknownFields is given. Path fills fields tagged `path:"name"` using a
// router-specific extractor such as chi.URLParam.
//
// Both return errors wrapping the sentinel values in errors.go so callers can
// map them to HTTP statuses with errors.Is.
package binder
