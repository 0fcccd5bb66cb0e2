package progress

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gofrs/uuid"

	"github.com/grupo-estuda/study-backend/internal/entity"
	"github.com/grupo-estuda/study-backend/pkg/utils"
)

// Store is the query surface the aggregation pipeline needs from the
// database. The since bound is inclusive.
type Store interface {
	CompletedSessions(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID, since time.Time) ([]entity.StudySession, error)
	GoalProgressEvents(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID, since time.Time) ([]entity.GoalProgressEvent, error)
	GroupGoals(ctx context.Context, groupID uuid.UUID) ([]entity.Goal, error)
	StudyActivityTimes(ctx context.Context, userID uuid.UUID) ([]time.Time, error)
}

// Service computes ProgressStats snapshots. The clock and location are
// injected so tests can pin the reference instant.
type Service struct {
	store Store
	now   func() time.Time
	loc   *time.Location
}

func NewService(store Store, now func() time.Time, loc *time.Location) *Service {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = utils.SaoPauloLocation
	}
	return &Service{store: store, now: now, loc: loc}
}

// Stats runs the full pipeline for one (user, group, window, metric)
// combination and returns a freshly computed snapshot.
func (s *Service) Stats(ctx context.Context, filter entity.ProgressFilter) (*entity.ProgressStats, error) {
	reference := s.now().In(s.loc)

	window, buckets, err := ResolveWindow(filter.Granularity, reference)
	if err != nil {
		return nil, err
	}

	sessions, err := s.store.CompletedSessions(ctx, filter.UserID, filter.GroupID, window.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to load study sessions: %w", err)
	}

	goalEvents, err := s.store.GoalProgressEvents(ctx, filter.UserID, filter.GroupID, window.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal progress events: %w", err)
	}

	events := NormalizeEvents(sessions, goalEvents)
	totals, summaries := Aggregate(events, window, buckets)
	shares := Distribute(events, filter.Metric)

	activityTimes, err := s.store.StudyActivityTimes(ctx, filter.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load study activity: %w", err)
	}
	activeDates := make(map[string]struct{}, len(activityTimes))
	for _, t := range activityTimes {
		activeDates[DateKey(t.In(s.loc))] = struct{}{}
	}

	stats := &entity.ProgressStats{
		TotalTime:       utils.RoundToTwoDecimals(totals.Time),
		TotalPages:      utils.RoundToTwoDecimals(totals.Pages),
		TotalExercises:  utils.RoundToTwoDecimals(totals.Exercises),
		StudyStreakDays: CalculateStreak(activeDates, reference),
		Period:          utils.FormatPeriod(window.Start, reference),
		Buckets:         summaries,
		SubjectShares:   shares,
		GoalProgress:    []entity.GoalProgress{},
	}

	if filter.GroupID != nil {
		goals, err := s.store.GroupGoals(ctx, *filter.GroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to load goals: %w", err)
		}
		stats.GoalProgress = goalProgress(goals)
	}

	if filter.Granularity == entity.GranularityDay {
		stats.DailySessions = dailySessions(sessions, window, s.loc)
	}

	return stats, nil
}

// goalProgress is a pass-through view of the group's goals; only the percent
// is derived here.
func goalProgress(goals []entity.Goal) []entity.GoalProgress {
	result := make([]entity.GoalProgress, 0, len(goals))
	for _, g := range goals {
		label := "Geral"
		if g.SubjectName != nil && *g.SubjectName != "" {
			label = *g.SubjectName
		}

		percent := 0
		if g.Target > 0 {
			percent = int(math.Round(g.Current / g.Target * 100))
		}

		result = append(result, entity.GoalProgress{
			GoalID:          g.ID,
			MetricType:      g.Type,
			SubjectLabel:    label,
			Current:         g.Current,
			Target:          g.Target,
			PercentComplete: percent,
		})
	}
	return result
}

func dailySessions(sessions []entity.StudySession, window TimeWindow, loc *time.Location) []entity.DailySession {
	inWindow := make([]entity.StudySession, 0, len(sessions))
	for _, s := range sessions {
		if s.CompletedAt == nil || !window.Contains(sessionTimestamp(s)) {
			continue
		}
		inWindow = append(inWindow, s)
	}

	sort.Slice(inWindow, func(i, j int) bool {
		return inWindow[i].StartedAt.Before(inWindow[j].StartedAt)
	})

	result := make([]entity.DailySession, 0, len(inWindow))
	for i, s := range inWindow {
		subject := "Sem matéria"
		if s.SubjectName != nil && *s.SubjectName != "" {
			subject = *s.SubjectName
		}

		end := "-"
		if s.CompletedAt != nil {
			end = utils.FormatClock(s.CompletedAt.In(loc))
		}

		result = append(result, entity.DailySession{
			ID:              s.ID,
			StartTime:       utils.FormatClock(s.StartedAt.In(loc)),
			EndTime:         end,
			DurationMinutes: s.DurationMinutes,
			Subject:         subject,
			ColorIndex:      i % PaletteSize,
		})
	}
	return result
}
