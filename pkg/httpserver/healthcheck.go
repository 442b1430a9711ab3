package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/dmitrymomot/copygen/pkg/logger"
)

const (
	StatusOK       = "OK"
	StatusDegraded = "Degraded"

	DependencyConnected    = "connected"
	DependencyDisconnected = "disconnected"
)

// DependencyCheck probes one backing service. Name becomes the report key.
type DependencyCheck struct {
	Name  string
	Check func(context.Context) error
}

// MemoryStats is the subset of runtime.MemStats exposed by the health report, in bytes.
type MemoryStats struct {
	Alloc     uint64 `json:"alloc"`
	HeapAlloc uint64 `json:"heap_alloc"`
	Sys       uint64 `json:"sys"`
}

// HealthHandler returns a liveness handler that also reports dependency connectivity.
// The response is always 200; a failing dependency only flips status to Degraded
// and its entry to "disconnected". Panics raised by checks are left to the
// recovery middleware.
func HealthHandler(started time.Time, log *slog.Logger, timeout time.Duration, checks ...DependencyCheck) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)

		now := time.Now()
		report := map[string]any{
			"status":    StatusOK,
			"timestamp": now.UTC().Format(time.RFC3339),
			"uptime":    now.Sub(started).Seconds(),
			"memory": MemoryStats{
				Alloc:     ms.Alloc,
				HeapAlloc: ms.HeapAlloc,
				Sys:       ms.Sys,
			},
		}

		for _, c := range checks {
			state := DependencyConnected
			if err := runCheck(r.Context(), timeout, c.Check); err != nil {
				log.WarnContext(r.Context(), "health dependency unavailable",
					logger.Component(c.Name),
					logger.Error(err),
				)
				state = DependencyDisconnected
				report["status"] = StatusDegraded
			}
			report[c.Name] = state
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(report)
	}
}

func runCheck(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}
