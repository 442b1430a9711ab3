package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeIgnored = "ignored"
)

// Collector groups the service counters behind one registry.
type Collector struct {
	registry *prometheus.Registry

	rateLimitRejections prometheus.Counter
	webhookEvents       *prometheus.CounterVec
	generations         *prometheus.CounterVec
}

// New creates a Collector with its own registry, including Go runtime and
// process collectors. namespace prefixes every metric name.
func New(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		rateLimitRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_rejections_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_events_total",
			Help:      "Billing webhook events by event tag and outcome.",
		}, []string{"event", "outcome"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generation requests by template and outcome.",
		}, []string{"template", "outcome"}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.rateLimitRejections,
		c.webhookEvents,
		c.generations,
	)

	return c
}

// RateLimitRejected counts one rejected request.
func (c *Collector) RateLimitRejected() {
	c.rateLimitRejections.Inc()
}

// WebhookEvent counts one processed webhook event.
func (c *Collector) WebhookEvent(event, outcome string) {
	c.webhookEvents.WithLabelValues(event, outcome).Inc()
}

// Generation counts one generation attempt.
func (c *Collector) Generation(template, outcome string) {
	c.generations.WithLabelValues(template, outcome).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
