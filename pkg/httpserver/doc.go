// Package httpserver wraps net/http with graceful shutdown, configurable
// timeouts and a JSON health report.
//
// Run and Serve block until the context is cancelled or SIGINT/SIGTERM
// arrives, then shut the server down within the configured deadline. Listen failures are
// wrapped with ErrStart and shutdown failures with ErrShutdown.
//
// HealthHandler reports process uptime and memory together with the
// connectivity of each DependencyCheck. It always answers 200 and marks the
// report Degraded when a dependency is down, so orchestrators keep routing
// traffic while the condition is visible to operators.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	r.Get("/health", httpserver.HealthHandler(time.Now(), log, 2*time.Second,
//	    httpserver.DependencyCheck{Name: "store", Check: st.Ping},
//	))
//	if err := srv.Run(ctx, r); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
package httpserver
