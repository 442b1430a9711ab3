// Package clientip resolves the originating client address of an HTTP request.
//
// GetIP trusts proxy headers, in order CF-Connecting-IP, DO-Connecting-IP,
// X-Forwarded-For (first valid entry), X-Real-IP, then falls back to the TCP
// peer. RemoteIP ignores headers entirely and is the safe choice when the
// service is exposed directly. Both return an empty string when no valid
// address can be found.
package clientip
