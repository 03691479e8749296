// Package inflight tracks pending operations so that a second attempt
// while one is running is rejected instead of queued.
package inflight

import (
	"sync"

	"github.com/blockedby/applio/internal/errs"
)

// Guard holds one busy flag per key.
// thread-safe
type Guard struct {
	mu   sync.Mutex
	busy map[string]bool
}

// Acquire marks key busy and returns its release func.
// returns errs.ErrInFlight if key is already busy
func (g *Guard) Acquire(key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.busy == nil {
		g.busy = make(map[string]bool)
	}
	if g.busy[key] {
		return nil, errs.ErrInFlight
	}
	g.busy[key] = true

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, key)
			g.mu.Unlock()
		})
	}, nil
}

// Busy reports whether key is pending.
func (g *Guard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy[key]
}

// Counter counts concurrent calls that are allowed to overlap.
type Counter struct {
	mu sync.Mutex
	n  int
}

// Enter increments the counter and returns the matching exit func.
func (c *Counter) Enter() func() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			c.n--
			c.mu.Unlock()
		})
	}
}

// Active reports whether any call is running.
func (c *Counter) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n > 0
}
