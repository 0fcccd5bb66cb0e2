package repository

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
)

// changeChannel is the single NOTIFY channel the migration triggers publish
// to. Payloads look like "study_sessions:<user_id>" — table name plus the
// scoping id, never row data.
const changeChannel = "grupo_estuda_changes"

// ChangeListener fans Postgres NOTIFY payloads out to in-process
// subscribers keyed by (table, scope). It delivers an at-least-once,
// unordered "something changed" signal; subscribers are expected to re-fetch.
type ChangeListener struct {
	listener *pq.Listener

	mu     sync.Mutex
	subs   map[string]map[int]func()
	nextID int
	done   chan struct{}
}

func NewChangeListener(connStr string) (*ChangeListener, error) {
	listener := pq.NewListener(connStr, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("❌ Postgres listener event %d: %v", ev, err)
		}
	})

	if err := listener.Listen(changeChannel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", changeChannel, err)
	}

	l := &ChangeListener{
		listener: listener,
		subs:     make(map[string]map[int]func()),
		done:     make(chan struct{}),
	}

	go l.dispatch()

	log.Println("✅ Listening for database change notifications")

	return l, nil
}

// Subscribe registers fn for notifications on table scoped to a row filter
// value. An empty scope matches every change on the table.
func (l *ChangeListener) Subscribe(table, scope string, fn func()) (unsubscribe func()) {
	key := subKey(table, scope)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.subs[key] == nil {
		l.subs[key] = make(map[int]func())
	}
	id := l.nextID
	l.nextID++
	l.subs[key][id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs[key], id)
	}
}

func (l *ChangeListener) dispatch() {
	for {
		select {
		case <-l.done:
			return
		case n := <-l.listener.Notify:
			if n == nil {
				// Reconnect signal: subscribers re-fetch on the next
				// real notification anyway.
				continue
			}
			l.deliver(n.Extra)
		case <-time.After(90 * time.Second):
			go l.listener.Ping()
		}
	}
}

func (l *ChangeListener) deliver(payload string) {
	table, scope, _ := strings.Cut(payload, ":")

	l.mu.Lock()
	var fns []func()
	for _, fn := range l.subs[subKey(table, scope)] {
		fns = append(fns, fn)
	}
	for _, fn := range l.subs[subKey(table, "")] {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (l *ChangeListener) Close() error {
	close(l.done)
	return l.listener.Close()
}

func subKey(table, scope string) string {
	return table + ":" + scope
}
