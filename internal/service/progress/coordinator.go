package progress

import (
	"sync"
	"time"
)

// DefaultDebounce is the coalescing window for change notifications.
const DefaultDebounce = 300 * time.Millisecond

// Notifier delivers at-least-once "something changed" signals scoped by table
// and row filter. Payloads carry no row data: every notification means "go
// re-fetch".
type Notifier interface {
	Subscribe(table, scope string, fn func()) (unsubscribe func())
}

// Subscription identifies one change source.
type Subscription struct {
	Table string
	Scope string
}

// Coordinator funnels every change source through a single debounce timer so
// a burst of related writes triggers one recomputation, not N. If a refresh
// is already running when more notifications arrive, exactly one follow-up
// recomputation is scheduled rather than overlapping fetches.
type Coordinator struct {
	refresh  func()
	debounce time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	unsubs   []func()
	inFlight bool
	pending  bool
	closed   bool
}

func NewCoordinator(refresh func(), debounce time.Duration) *Coordinator {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Coordinator{refresh: refresh, debounce: debounce}
}

// Bind routes all given change sources into the shared debounce timer.
func (c *Coordinator) Bind(notifier Notifier, subs []Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	for _, sub := range subs {
		c.unsubs = append(c.unsubs, notifier.Subscribe(sub.Table, sub.Scope, c.notify))
	}
}

func (c *Coordinator) notify() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.timer != nil {
		return
	}
	c.timer = time.AfterFunc(c.debounce, c.fire)
}

// Refresh triggers a recomputation immediately, bypassing the debounce.
func (c *Coordinator) Refresh() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	c.fire()
}

func (c *Coordinator) fire() {
	c.mu.Lock()
	c.timer = nil
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.inFlight {
		c.pending = true
		c.mu.Unlock()
		return
	}
	c.inFlight = true
	c.mu.Unlock()

	go c.run()
}

func (c *Coordinator) run() {
	for {
		c.refresh()

		c.mu.Lock()
		if c.pending && !c.closed {
			c.pending = false
			c.mu.Unlock()
			continue
		}
		c.inFlight = false
		c.mu.Unlock()
		return
	}
}

// Close unsubscribes from every change source and cancels any pending timer.
// No refresh fires after Close returns.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	unsubs := c.unsubs
	c.unsubs = nil
	c.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
}
