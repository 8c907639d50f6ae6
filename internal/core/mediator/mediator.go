// Package mediator routes a request object to the single handler registered
// under the request's name.
//
// Dispatch is a map lookup keyed by [Request.RequestName]; handlers are wrapped
// by the middleware chain once, at registration.
package mediator

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNoHandler         = errors.New("no handler registered")
	ErrUnexpectedResult  = errors.New("unexpected result type")
	ErrUnexpectedRequest = errors.New("unexpected request type")
)

type Request interface {
	RequestName() string
}

type HandlerFunc func(ctx context.Context, req Request) (any, error)

type Middleware func(next HandlerFunc) HandlerFunc

type Mediator struct {
	handlers    map[string]HandlerFunc
	middlewares []Middleware
}

// New returns a Mediator. The first middleware is the outermost one.
func New(middlewares ...Middleware) *Mediator {
	return &Mediator{
		handlers:    make(map[string]HandlerFunc),
		middlewares: middlewares,
	}
}

// Register panics if name is empty or already registered.
func (m *Mediator) Register(name string, h HandlerFunc) {
	const op = "Mediator.Register"

	if name == "" || h == nil {
		panic(fmt.Errorf("%s: empty name or nil handler", op)) // develop mistake
	}

	if _, ok := m.handlers[name]; ok {
		panic(fmt.Errorf("%s: %q already registered", op, name)) // develop mistake
	}

	m.handlers[name] = m.wrap(h)
}

func (m *Mediator) wrap(h HandlerFunc) HandlerFunc {
	for i := len(m.middlewares) - 1; i >= 0; i-- {
		h = m.middlewares[i](h)
	}
	return h
}

func (m *Mediator) Send(ctx context.Context, req Request) (any, error) {
	const op = "Mediator.Send"

	if req == nil {
		return nil, fmt.Errorf("%s: %w: nil request", op, ErrNoHandler)
	}

	h, ok := m.handlers[req.RequestName()]
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ErrNoHandler, req.RequestName())
	}
	return h(ctx, req)
}

// Handle registers a typed handler under the name reported by the zero value
// of Req.
func Handle[Req Request, Res any](
	m *Mediator, h func(context.Context, Req) (Res, error),
) {
	var zero Req
	m.Register(zero.RequestName(), func(ctx context.Context, req Request) (any, error) {
		r, ok := req.(Req)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrUnexpectedRequest, req)
		}
		return h(ctx, r)
	})
}

// Send dispatches req and asserts the handler result to Res.
func Send[Res any](ctx context.Context, m *Mediator, req Request) (Res, error) {
	var zero Res

	v, err := m.Send(ctx, req)
	if err != nil {
		return zero, err
	}

	res, ok := v.(Res)
	if !ok {
		return zero, fmt.Errorf(
			"%w: %q returned %T, want %T", ErrUnexpectedResult,
			req.RequestName(), v, zero,
		)
	}
	return res, nil
}
