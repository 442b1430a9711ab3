package ratelimit

import (
	"net/http"

	"github.com/dmitrymomot/copygen/pkg/clientip"
)

// unknownKey is shared by every request whose address cannot be parsed.
const unknownKey = "unknown"

// KeyFunc maps a request to its limiter bucket. An empty key disables
// limiting for that request.
type KeyFunc func(*http.Request) string

// ClientIP trusts X-Forwarded-For and similar headers. Use it only behind a
// proxy that overwrites them.
func ClientIP(r *http.Request) string {
	return orUnknown(clientip.GetIP(r))
}

// RemoteAddr keys by the TCP peer and ignores headers.
func RemoteAddr(r *http.Request) string {
	return orUnknown(clientip.RemoteIP(r))
}

// Prefixed namespaces the keys produced by fn. Empty keys stay empty.
func Prefixed(prefix string, fn KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		if key := fn(r); key != "" {
			return prefix + key
		}
		return ""
	}
}

func orUnknown(ip string) string {
	if ip == "" {
		return unknownKey
	}
	return ip
}
