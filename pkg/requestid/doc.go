// Package requestid attaches a correlation identifier to every HTTP request.
//
// Middleware reuses a client-supplied X-Request-ID when it is short and made of
// safe characters, otherwise it generates a UUIDv4. The id is stored in the
// request context, echoed in the response header, and picked up by
// LoggerExtractor so every log line written with the request context carries it.
//
//	r.Use(requestid.Middleware)
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// Error responses for unhandled failures expose the same id so clients can quote it.
package requestid
