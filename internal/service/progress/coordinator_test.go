package progress

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	mu   sync.Mutex
	subs map[Subscription][]func()
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{subs: make(map[Subscription][]func())}
}

func (n *fakeNotifier) Subscribe(table, scope string, fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	key := Subscription{Table: table, Scope: scope}
	n.subs[key] = append(n.subs[key], fn)
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		n.subs[key] = nil
	}
}

func (n *fakeNotifier) emit(table, scope string) {
	n.mu.Lock()
	fns := append([]func(){}, n.subs[Subscription{Table: table, Scope: scope}]...)
	n.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func TestCoordinatorCoalescesBursts(t *testing.T) {
	var count atomic.Int32
	c := NewCoordinator(func() { count.Add(1) }, 30*time.Millisecond)
	defer c.Close()

	notifier := newFakeNotifier()
	c.Bind(notifier, []Subscription{
		{Table: "study_sessions", Scope: "u1"},
		{Table: "goals", Scope: "g1"},
		{Table: "user_points", Scope: "u1"},
	})

	// A burst across every source lands in the same debounce window.
	for i := 0; i < 5; i++ {
		notifier.emit("study_sessions", "u1")
		notifier.emit("goals", "g1")
		notifier.emit("user_points", "u1")
	}

	require.Eventually(t, func() bool { return count.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), count.Load(), "burst must trigger exactly one recompute")
}

func TestCoordinatorRefreshBypassesDebounce(t *testing.T) {
	var count atomic.Int32
	c := NewCoordinator(func() { count.Add(1) }, time.Hour)
	defer c.Close()

	c.Refresh()

	require.Eventually(t, func() bool { return count.Load() == 1 }, time.Second, time.Millisecond)
}

func TestCoordinatorSchedulesOneFollowUpWhileInFlight(t *testing.T) {
	var count atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{}, 8)

	c := NewCoordinator(func() {
		count.Add(1)
		started <- struct{}{}
		<-release
	}, 10*time.Millisecond)
	defer c.Close()

	c.Refresh()
	<-started

	// Several notifications while the first refresh is still running.
	c.Refresh()
	c.Refresh()
	c.Refresh()

	release <- struct{}{}
	<-started
	release <- struct{}{}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(2), count.Load(), "in-flight burst schedules exactly one follow-up")
}

func TestCoordinatorCloseCancelsPendingTimer(t *testing.T) {
	var count atomic.Int32
	c := NewCoordinator(func() { count.Add(1) }, 30*time.Millisecond)

	notifier := newFakeNotifier()
	c.Bind(notifier, []Subscription{{Table: "study_sessions", Scope: "u1"}})

	notifier.emit("study_sessions", "u1")
	c.Close()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, count.Load(), "no refresh fires after Close")

	// Unsubscribed: further notifications are ignored.
	notifier.emit("study_sessions", "u1")
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, count.Load())
}
