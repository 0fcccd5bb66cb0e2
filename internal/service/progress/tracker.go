package progress

import (
	"context"
	"log/slog"
	"sync"

	"github.com/grupo-estuda/study-backend/internal/entity"
)

// Tracker keeps one live ProgressStats snapshot for a watched (user, group,
// window, metric) combination, recomputing it when the coordinator signals a
// change. A failed refresh keeps the previous snapshot: stale stats beat a
// blank screen.
type Tracker struct {
	svc    *Service
	filter entity.ProgressFilter
	coord  *Coordinator
	logger *slog.Logger
	ctx    context.Context

	mu      sync.RWMutex
	stats   *entity.ProgressStats
	updates chan *entity.ProgressStats
}

// Watch computes an initial snapshot and subscribes the tracker to every
// change source relevant to the filter, all funneled through one debounce.
func (s *Service) Watch(ctx context.Context, notifier Notifier, filter entity.ProgressFilter, logger *slog.Logger) (*Tracker, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t := &Tracker{
		svc:     s,
		filter:  filter,
		logger:  logger,
		ctx:     ctx,
		updates: make(chan *entity.ProgressStats, 1),
	}

	stats, err := s.Stats(ctx, filter)
	if err != nil {
		return nil, err
	}
	t.stats = stats

	t.coord = NewCoordinator(t.refresh, DefaultDebounce)
	t.coord.Bind(notifier, t.subscriptions())

	return t, nil
}

func (t *Tracker) subscriptions() []Subscription {
	userScope := t.filter.UserID.String()
	subs := []Subscription{
		{Table: "study_sessions", Scope: userScope},
		{Table: "user_points", Scope: userScope},
	}

	if t.filter.GroupID != nil {
		groupScope := t.filter.GroupID.String()
		subs = append(subs,
			Subscription{Table: "goals", Scope: groupScope},
			Subscription{Table: "goal_progress_events", Scope: groupScope},
			Subscription{Table: "subjects", Scope: groupScope},
		)
	} else {
		subs = append(subs, Subscription{Table: "goal_progress_events", Scope: userScope})
	}

	return subs
}

func (t *Tracker) refresh() {
	stats, err := t.svc.Stats(t.ctx, t.filter)
	if err != nil {
		t.logger.Warn("progress refresh failed, keeping previous snapshot",
			slog.String("user_id", t.filter.UserID.String()),
			slog.String("error", err.Error()))
		return
	}

	t.mu.Lock()
	t.stats = stats
	t.mu.Unlock()

	// Replace any undelivered snapshot so listeners always get the newest.
	for {
		select {
		case t.updates <- stats:
			return
		default:
			select {
			case <-t.updates:
			default:
			}
		}
	}
}

// Stats returns the latest snapshot.
func (t *Tracker) Stats() *entity.ProgressStats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stats
}

// Updates delivers recomputed snapshots. Slow consumers only miss
// intermediate states, never the latest one.
func (t *Tracker) Updates() <-chan *entity.ProgressStats {
	return t.updates
}

// Refresh bypasses the debounce for a manual retry.
func (t *Tracker) Refresh() {
	t.coord.Refresh()
}

// Close detaches the tracker from all change sources.
func (t *Tracker) Close() {
	t.coord.Close()
}
