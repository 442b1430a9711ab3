// Package app assembles the HTTP surface of the service.
//
// Router wires the middleware chain (request ids, panic recovery and the
// fixed-window limiter on /api) and mounts the services:
//
//	GET  /health
//	GET  /metrics
//	POST /api/generate
//	GET  /api/history
//	GET  /api/stats
//	GET  /api/subscription/{email}
//	POST /webhook/hotmart
//	POST /webhook/paddle   (only with a Paddle secret)
//
// Unmatched routes answer 404 {"error":"Not found","path":...}. Webhook
// routes always answer 200 with an Ack body.
package app
