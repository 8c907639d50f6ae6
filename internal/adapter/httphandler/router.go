package httphandler

import (
	"net/http"
	"time"

	"github.com/niksmo/catalog/internal/core/mediator"
	"github.com/niksmo/catalog/internal/core/port"
)

// NewRouter returns the catalog API with health reporting and the common
// middleware applied.
func NewRouter(
	m *mediator.Mediator, checker port.HealthChecker, healthTimeout time.Duration,
) http.Handler {
	mux := http.NewServeMux()
	RegisterCatalog(mux, m)
	RegisterHealth(mux, checker, healthTimeout)

	return Chain(mux, RequestID, LogRequests, AllowJSON)
}
