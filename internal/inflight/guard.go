// Package inflight serializes duplicate submissions of the same
// entity-action pair. A browser double-click lands here as two requests
// for the same key; only the first one reaches the backend.
package inflight

import (
	"errors"
	"strings"
	"sync"
)

// ErrBusy is returned when the same key already has a mutation in flight.
var ErrBusy = errors.New("action already in flight")

// Guard tracks busy keys. There is no state machine beyond busy/idle:
// a key is marked busy before any work starts and cleared when Do returns,
// whatever the outcome.
type Guard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{busy: make(map[string]struct{})}
}

// Key builds a guard key from the session, the action and the target
// entity, so unrelated entities stay independently operable.
func Key(sessionID, action, entityID string) string {
	return strings.Join([]string{sessionID, action, entityID}, ":")
}

// Do runs fn unless key is already busy, in which case it returns ErrBusy
// without calling fn. The busy mark is taken synchronously, before fn
// starts, so rapid repeated triggers cannot race past it.
func (g *Guard) Do(key string, fn func() error) error {
	g.mu.Lock()
	if _, exists := g.busy[key]; exists {
		g.mu.Unlock()
		return ErrBusy
	}
	g.busy[key] = struct{}{}
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.busy, key)
		g.mu.Unlock()
	}()

	return fn()
}

// Busy reports whether key currently has work in flight.
func (g *Guard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, exists := g.busy[key]
	return exists
}
