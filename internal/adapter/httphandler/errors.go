package httphandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/niksmo/catalog/internal/core/domain"
)

// statusFor translates domain errors into HTTP status codes.
// Unknown errors become 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	code := statusFor(err)
	log := loggerFrom(r, op)

	msg := http.StatusText(code)
	switch code {
	case http.StatusBadRequest:
		log.Warn("rejected request", "err", err)
		msg = err.Error()
	case http.StatusNotFound:
		log.Info("not found", "err", err)
	default:
		log.Error("failed to handle request", "err", err)
	}

	writeJSON(w, r, op, code, errorResponse{msg})
}
