// Package metrics exposes the service counters in Prometheus format.
//
//	m := metrics.New("copygen")
//	m.Generation("blog", metrics.OutcomeSuccess)
//	r.Handle("/metrics", m.Handler())
//
// Each Collector owns a private registry so tests can create as many as
// they need without colliding on the default one.
package metrics
