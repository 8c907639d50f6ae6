package httphandler

import (
	"context"
	"net/http"
	"time"

	"github.com/niksmo/catalog/internal/core/port"
)

const (
	healthy  = "Healthy"
	degraded = "Degraded"
)

type HealthHandler struct {
	checker port.HealthChecker
	timeout time.Duration
}

// RegisterHealth serves GET /health, reporting document store reachability.
// The response is always 200; an unreachable store reports Degraded.
func RegisterHealth(
	mux *http.ServeMux, checker port.HealthChecker, timeout time.Duration,
) {
	h := HealthHandler{checker, timeout}
	mux.HandleFunc("GET /health", h.Health)
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	const op = "HealthHandler.Health"

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	start := time.Now()
	err := h.checker.Ping(ctx)
	entry := healthEntry{Status: healthy, Duration: time.Since(start).String()}

	if err != nil {
		loggerFrom(r, op).Warn("document store is unreachable", "err", err)
		entry.Status = degraded
		entry.Error = err.Error()
	}

	writeJSON(w, r, op, http.StatusOK, healthResponse{
		Status:  entry.Status,
		Entries: map[string]healthEntry{"mongodb": entry},
	})
}
