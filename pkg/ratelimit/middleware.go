package ratelimit

import (
	"math"
	"net/http"
	"strconv"
	"time"
)

// Response headers set on every limited request.
const (
	HeaderLimit      = "X-RateLimit-Limit"
	HeaderRemaining  = "X-RateLimit-Remaining"
	HeaderReset      = "X-RateLimit-Reset"
	HeaderRetryAfter = "Retry-After"
)

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middleware)

// RejectFunc writes the response for a rejected request. Headers, including
// Retry-After, are already set when it runs.
type RejectFunc func(w http.ResponseWriter, r *http.Request, res *Result)

// WithOnLimitReached replaces the default plain-text 429.
func WithOnLimitReached(fn RejectFunc) MiddlewareOption {
	return func(m *middleware) {
		if fn != nil {
			m.reject = fn
		}
	}
}

// WithOnError is called when the limiter fails; the request is still served.
func WithOnError(fn func(r *http.Request, key string, err error)) MiddlewareOption {
	return func(m *middleware) { m.onError = fn }
}

type middleware struct {
	limiter Limiter
	key     KeyFunc
	reject  RejectFunc
	onError func(r *http.Request, key string, err error)
}

// Middleware consumes one slot per request from limiter. Limiter errors fail
// open so an unavailable store never blocks traffic.
func Middleware(limiter Limiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if limiter == nil || keyFunc == nil {
		panic("ratelimit: Middleware requires a limiter and a key func")
	}

	m := &middleware{
		limiter: limiter,
		key:     keyFunc,
		reject: func(w http.ResponseWriter, _ *http.Request, _ *Result) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		},
	}
	for _, opt := range opts {
		opt(m)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.allow(w, r) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

// allow reports whether the request should reach the next handler. On
// rejection the response has already been written.
func (m *middleware) allow(w http.ResponseWriter, r *http.Request) bool {
	key := m.key(r)
	if key == "" {
		return true
	}

	res, err := m.limiter.Allow(r.Context(), key)
	if err != nil {
		if m.onError != nil {
			m.onError(r, key, err)
		}
		return true
	}

	setHeaders(w.Header(), res)
	if res.Allowed {
		return true
	}

	w.Header().Set(HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(res.RetryAfter())))
	m.reject(w, r, res)
	return false
}

func setHeaders(h http.Header, res *Result) {
	h.Set(HeaderLimit, strconv.Itoa(res.Limit))
	h.Set(HeaderRemaining, strconv.Itoa(res.Remaining))
	h.Set(HeaderReset, strconv.FormatInt(res.ResetAt.Unix(), 10))
}

// retryAfterSeconds rounds up and never advertises less than one second.
func retryAfterSeconds(d time.Duration) int {
	return max(1, int(math.Ceil(d.Seconds())))
}
