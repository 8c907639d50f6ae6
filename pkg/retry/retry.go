package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const defaultDelay = 100 * time.Millisecond

// Backoff builds a fresh backoff policy for every retried call.
type Backoff func() backoff.BackOff

type ShouldRetry func(error) bool

type RetryConfig struct {
	MaxAttempts int
	Backoff     Backoff
	ShouldRetry ShouldRetry
}

func (s *RetryConfig) normalize() {
	if s.MaxAttempts <= 0 {
		s.MaxAttempts = 1
	}

	if s.Backoff == nil {
		s.Backoff = ExponentialBackoff(defaultDelay)
	}

	if s.ShouldRetry == nil {
		s.ShouldRetry = alwaysRetry
	}
}

func alwaysRetry(error) bool {
	return true
}

// ExponentialBackoff starts at delay, doubles it per attempt and adds up to
// 50% jitter.
func ExponentialBackoff(delay time.Duration) Backoff {
	return func() backoff.BackOff {
		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = delay
		bo.Multiplier = 2
		bo.RandomizationFactor = 0.5
		return bo
	}
}

func LinearBackoff(delay time.Duration) Backoff {
	return func() backoff.BackOff {
		return backoff.NewConstantBackOff(delay)
	}
}

func Do(ctx context.Context, c RetryConfig, fn func() error) error {
	_, err := DoWithResult(ctx, c, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult calls fn until it succeeds, returns an error ShouldRetry
// rejects, runs out of attempts or ctx is done.
func DoWithResult[T any](ctx context.Context, c RetryConfig, fn func() (T, error)) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	c.normalize()

	var lastErr error
	operation := func() (T, error) {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !c.ShouldRetry(err) {
			return zero, backoff.Permanent(err)
		}
		return zero, err
	}

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(c.Backoff()),
		backoff.WithMaxTries(uint(c.MaxAttempts)),
	)
	if err != nil {
		if ctx.Err() != nil && lastErr != nil && !errors.Is(err, lastErr) {
			return zero, fmt.Errorf("%w: %w", err, lastErr)
		}
		return zero, err
	}
	return result, nil
}
