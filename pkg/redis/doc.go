// Package redis connects to Redis with go-redis/v9.
//
// Connect retries PING until the server answers or the connect timeout
// expires. Healthcheck adapts PING to the func(context.Context) error shape
// used by the health endpoint.
package redis
