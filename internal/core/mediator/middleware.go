package mediator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
)

type validator interface {
	Validate() error
}

// Recover turns a handler panic into an error.
func Recover(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, req Request) (res any, err error) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(ctx, "handler panicked",
					"op", "mediator.Recover",
					"request", req.RequestName(),
					"panic", r,
					"stack", string(debug.Stack()),
				)
				res = nil
				err = fmt.Errorf("%s: panic: %v", req.RequestName(), r)
			}
		}()
		return next(ctx, req)
	}
}

func Log(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, req Request) (any, error) {
		log := slog.With("op", "mediator.Log", "request", req.RequestName())

		start := time.Now()
		res, err := next(ctx, req)
		elapsed := time.Since(start)

		if err != nil {
			log.DebugContext(ctx, "request failed", "elapsed", elapsed, "err", err)
			return res, err
		}
		log.DebugContext(ctx, "request handled", "elapsed", elapsed)
		return res, nil
	}
}

// Validate rejects requests whose Validate method fails.
// The error wraps [domain.ErrInvalidInput].
func Validate(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, req Request) (any, error) {
		v, ok := req.(validator)
		if !ok {
			return next(ctx, req)
		}

		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf(
				"%s: %w", req.RequestName(), asInvalidInput(err),
			)
		}
		return next(ctx, req)
	}
}

func asInvalidInput(err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
}
