package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/mediator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoQuery struct {
	Text string
}

func (echoQuery) RequestName() string { return "EchoQuery" }

func (q echoQuery) Validate() error {
	if q.Text == "" {
		return errors.New("text is required")
	}
	return nil
}

type panicCommand struct{}

func (panicCommand) RequestName() string { return "PanicCommand" }

// echoImpostor shares echoQuery's name with a different type.
type echoImpostor struct{}

func (echoImpostor) RequestName() string { return "EchoQuery" }

type unknownQuery struct{}

func (unknownQuery) RequestName() string { return "UnknownQuery" }

func echo(_ context.Context, q echoQuery) (string, error) {
	return q.Text, nil
}

func TestMediator(t *testing.T) {
	t.Run("UnexpectedRequest", func(t *testing.T) {
		m := mediator.New()
		mediator.Handle(m, echo)

		_, err := m.Send(t.Context(), echoImpostor{})
		require.Error(t, err)
		assert.ErrorIs(t, err, mediator.ErrUnexpectedRequest)
		assert.NotErrorIs(t, err, mediator.ErrUnexpectedResult)
	})

	t.Run("Dispatch", func(t *testing.T) {
		m := mediator.New()
		mediator.Handle(m, echo)

		res, err := mediator.Send[string](t.Context(), m, echoQuery{"hello"})
		require.NoError(t, err)
		assert.Equal(t, "hello", res)
	})

	t.Run("NoHandler", func(t *testing.T) {
		m := mediator.New()
		_, err := m.Send(t.Context(), unknownQuery{})
		require.Error(t, err)
		assert.ErrorIs(t, err, mediator.ErrNoHandler)
	})

	t.Run("NilRequest", func(t *testing.T) {
		m := mediator.New()
		_, err := m.Send(t.Context(), nil)
		assert.ErrorIs(t, err, mediator.ErrNoHandler)
	})

	t.Run("UnexpectedResult", func(t *testing.T) {
		m := mediator.New()
		mediator.Handle(m, echo)

		_, err := mediator.Send[int](t.Context(), m, echoQuery{"hello"})
		require.Error(t, err)
		assert.ErrorIs(t, err, mediator.ErrUnexpectedResult)
	})

	t.Run("DuplicateRegistration", func(t *testing.T) {
		m := mediator.New()
		mediator.Handle(m, echo)
		assert.Panics(t, func() { mediator.Handle(m, echo) })
	})

	t.Run("MiddlewareOrder", func(t *testing.T) {
		var calls []string
		mw := func(name string) mediator.Middleware {
			return func(next mediator.HandlerFunc) mediator.HandlerFunc {
				return func(ctx context.Context, req mediator.Request) (any, error) {
					calls = append(calls, name)
					return next(ctx, req)
				}
			}
		}

		m := mediator.New(mw("first"), mw("second"))
		mediator.Handle(m, echo)

		_, err := m.Send(t.Context(), echoQuery{"x"})
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, calls)
	})
}

func TestMiddlewares(t *testing.T) {
	m := mediator.New(mediator.Recover, mediator.Log, mediator.Validate)
	mediator.Handle(m, echo)
	mediator.Handle(m, func(context.Context, panicCommand) (bool, error) {
		panic("boom")
	})

	t.Run("ValidateRejects", func(t *testing.T) {
		_, err := m.Send(t.Context(), echoQuery{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("ValidatePasses", func(t *testing.T) {
		res, err := mediator.Send[string](t.Context(), m, echoQuery{"ok"})
		require.NoError(t, err)
		assert.Equal(t, "ok", res)
	})

	t.Run("RecoverPanic", func(t *testing.T) {
		var (
			res any
			err error
		)
		require.NotPanics(t, func() {
			res, err = m.Send(t.Context(), panicCommand{})
		})
		require.Error(t, err)
		assert.Nil(t, res)
		assert.Contains(t, err.Error(), "boom")
	})
}
