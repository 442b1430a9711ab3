package handler

import (
	"encoding/json"
	"net/http"
)

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// JSON encodes v as the response body, 200 unless overridden.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ErrorBody is the body of every error response.
type ErrorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
	Path      string `json:"path,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// WriteJSON writes v as JSON with the given status. Encoding failures are
// ignored since the header is already sent.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	_ = jsonResponse{status: status, body: v}.Render(w, nil)
}

type errorResponse struct {
	err error
}

func (e errorResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return e.err
}

// Error returns a Response that hands err to the wrapper's error handler.
func Error(err error) Response {
	return errorResponse{err: err}
}
