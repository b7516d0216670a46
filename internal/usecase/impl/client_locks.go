// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"sync"

	"storefront/internal/domain/entity"
)

// ClientLocks serializes operations per client, so each client observes
// run-to-completion semantics while different clients proceed in parallel.
// One instance is shared by the cart, session and checkout services.
type ClientLocks struct {
	mu    sync.Mutex
	locks map[entity.ClientID]*sync.Mutex
}

func NewClientLocks() *ClientLocks {
	return &ClientLocks{locks: make(map[entity.ClientID]*sync.Mutex)}
}

type heldLockKey struct {
	locks  *ClientLocks
	client entity.ClientID
}

// lock acquires the client's mutex and returns a context marking it as held
// plus the release function. A call made with a context that already holds
// the client's lock does not block, so checkout can call into the cart and
// session services while it owns the client.
func (l *ClientLocks) lock(ctx context.Context, client entity.ClientID) (context.Context, func()) {
	key := heldLockKey{locks: l, client: client}
	if held, _ := ctx.Value(key).(bool); held {
		return ctx, func() {}
	}

	l.mu.Lock()
	m, ok := l.locks[client]
	if !ok {
		m = &sync.Mutex{}
		l.locks[client] = m
	}
	l.mu.Unlock()

	m.Lock()

	return context.WithValue(ctx, key, true), m.Unlock
}

func locksOrNew(l *ClientLocks) *ClientLocks {
	if l != nil {
		return l
	}

	return NewClientLocks()
}
