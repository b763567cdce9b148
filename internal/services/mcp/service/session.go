package service

import "context"

// receiveFunc delivers request events to an exchange session. After the
// final body chunk it blocks until the exchange context is done.
type receiveFunc func(ctx context.Context) (requestEvent, error)

// sendFunc accepts response events from an exchange session.
type sendFunc func(ctx context.Context, event sendEvent) error

// exchangeSession processes exactly one HTTP exchange against the protocol
// server. Handle blocks until the response has been emitted or the context
// is cancelled. Close releases any resources the exchange allocated and is
// safe to call more than once.
type exchangeSession interface {
	Handle(ctx context.Context, scope Scope, receive receiveFunc, send sendFunc) error
	Close() error
}

// sessionFactory produces a fresh exchange session per HTTP request.
type sessionFactory func() exchangeSession
