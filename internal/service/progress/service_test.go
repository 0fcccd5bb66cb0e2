package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupo-estuda/study-backend/internal/entity"
)

type fakeStore struct {
	sessions   []entity.StudySession
	goalEvents []entity.GoalProgressEvent
	goals      []entity.Goal
	activity   []time.Time

	sessionsErr error
	fetchCount  int
}

func (f *fakeStore) CompletedSessions(_ context.Context, _ uuid.UUID, _ *uuid.UUID, since time.Time) ([]entity.StudySession, error) {
	f.fetchCount++
	if f.sessionsErr != nil {
		return nil, f.sessionsErr
	}
	var result []entity.StudySession
	for _, s := range f.sessions {
		if !sessionTimestamp(s).Before(since) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeStore) GoalProgressEvents(_ context.Context, _ uuid.UUID, _ *uuid.UUID, since time.Time) ([]entity.GoalProgressEvent, error) {
	var result []entity.GoalProgressEvent
	for _, e := range f.goalEvents {
		if !e.CreatedAt.Before(since) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeStore) GroupGoals(_ context.Context, _ uuid.UUID) ([]entity.Goal, error) {
	return f.goals, nil
}

func (f *fakeStore) StudyActivityTimes(_ context.Context, _ uuid.UUID) ([]time.Time, error) {
	return f.activity, nil
}

func subjectSession(name string, minutes int, completedAt time.Time) entity.StudySession {
	id := uuid.NewV5(uuid.NamespaceDNS, name)
	s := completedSession(minutes, completedAt)
	s.SubjectID = &id
	s.SubjectName = &name
	return s
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestServiceStatsEndToEnd(t *testing.T) {
	reference := testReference() // Wednesday 2024-06-12 15:30

	monday := time.Date(2024, 6, 10, 9, 30, 0, 0, testLoc)
	wednesday := time.Date(2024, 6, 12, 14, 0, 0, 0, testLoc)

	store := &fakeStore{
		sessions: []entity.StudySession{
			subjectSession("Matemática", 30, monday),
			subjectSession("Física", 60, wednesday),
		},
		activity: []time.Time{monday, wednesday},
	}

	svc := NewService(store, fixedClock(reference), testLoc)

	stats, err := svc.Stats(context.Background(), entity.ProgressFilter{
		UserID:      uuid.Must(uuid.NewV4()),
		Granularity: entity.GranularityWeek,
		Metric:      entity.MetricTime,
	})
	require.NoError(t, err)

	assert.Equal(t, 90.0, stats.TotalTime)
	assert.Equal(t, 36.0, stats.TotalPages, "floor(30/5)*2 + floor(60/5)*2")
	assert.Equal(t, 9.0, stats.TotalExercises, "floor(30/10) + floor(60/10)")

	require.Len(t, stats.Buckets, 7)
	byKey := make(map[string]entity.BucketSummary)
	for _, b := range stats.Buckets {
		byKey[b.BucketKey] = b
	}
	assert.Equal(t, 30.0, byKey["2024-06-10"].Time)
	assert.Equal(t, 60.0, byKey["2024-06-12"].Time)

	require.Len(t, stats.SubjectShares, 2)
	assert.Equal(t, "Física", stats.SubjectShares[0].SubjectName)
	assert.Equal(t, 67, stats.SubjectShares[0].Percent)
	assert.Equal(t, "Matemática", stats.SubjectShares[1].SubjectName)
	assert.Equal(t, 33, stats.SubjectShares[1].Percent)

	// Monday and Wednesday with a Tuesday gap: today (Wednesday) is active,
	// yesterday is not, so the streak is 1.
	assert.Equal(t, 1, stats.StudyStreakDays)

	assert.Empty(t, stats.GoalProgress, "no group scope, no goals")
	assert.Nil(t, stats.DailySessions, "only the day range lists sessions")
}

func TestServiceStatsGroupGoals(t *testing.T) {
	groupID := uuid.Must(uuid.NewV4())
	subject := "Física"

	store := &fakeStore{
		goals: []entity.Goal{
			{ID: uuid.Must(uuid.NewV4()), GroupID: groupID, Type: entity.MetricTime, SubjectName: &subject, Current: 90, Target: 120},
			{ID: uuid.Must(uuid.NewV4()), GroupID: groupID, Type: entity.MetricPages, Current: 10, Target: 0},
		},
	}

	svc := NewService(store, fixedClock(testReference()), testLoc)

	stats, err := svc.Stats(context.Background(), entity.ProgressFilter{
		UserID:      uuid.Must(uuid.NewV4()),
		GroupID:     &groupID,
		Granularity: entity.GranularityWeek,
		Metric:      entity.MetricTime,
	})
	require.NoError(t, err)

	require.Len(t, stats.GoalProgress, 2)
	assert.Equal(t, "Física", stats.GoalProgress[0].SubjectLabel)
	assert.Equal(t, 75, stats.GoalProgress[0].PercentComplete)
	assert.Equal(t, "Geral", stats.GoalProgress[1].SubjectLabel)
	assert.Equal(t, 0, stats.GoalProgress[1].PercentComplete, "zero-target goals report 0")
}

func TestServiceStatsDailySessions(t *testing.T) {
	reference := testReference()
	morning := time.Date(2024, 6, 12, 8, 45, 0, 0, testLoc)
	noon := time.Date(2024, 6, 12, 12, 30, 0, 0, testLoc)

	store := &fakeStore{
		sessions: []entity.StudySession{
			subjectSession("Física", 25, noon),
			subjectSession("Matemática", 45, morning),
		},
		activity: []time.Time{morning, noon},
	}

	svc := NewService(store, fixedClock(reference), testLoc)

	stats, err := svc.Stats(context.Background(), entity.ProgressFilter{
		UserID:      uuid.Must(uuid.NewV4()),
		Granularity: entity.GranularityDay,
		Metric:      entity.MetricTime,
	})
	require.NoError(t, err)

	require.Len(t, stats.DailySessions, 2)
	assert.Equal(t, "Matemática", stats.DailySessions[0].Subject, "ordered by start time")
	assert.Equal(t, "08:00", stats.DailySessions[0].StartTime)
	assert.Equal(t, "08:45", stats.DailySessions[0].EndTime)
	assert.Equal(t, "Física", stats.DailySessions[1].Subject)
}

func TestServiceStatsGoalDeltasCountTowardTotals(t *testing.T) {
	reference := testReference()

	store := &fakeStore{
		goalEvents: []entity.GoalProgressEvent{
			{Metric: entity.MetricPages, Delta: 12, CreatedAt: reference.Add(-2 * time.Hour)},
			{Metric: entity.MetricPages, Delta: -2, CreatedAt: reference.Add(-time.Hour)},
		},
	}

	svc := NewService(store, fixedClock(reference), testLoc)

	stats, err := svc.Stats(context.Background(), entity.ProgressFilter{
		UserID:      uuid.Must(uuid.NewV4()),
		Granularity: entity.GranularityWeek,
		Metric:      entity.MetricTime,
	})
	require.NoError(t, err)

	assert.Equal(t, 10.0, stats.TotalPages, "signed deltas are summed, not clamped")
}

func TestServiceStatsTotalsRoundedToTwoDecimals(t *testing.T) {
	reference := testReference()

	store := &fakeStore{
		goalEvents: []entity.GoalProgressEvent{
			{Metric: entity.MetricPages, Delta: 1.111, CreatedAt: reference.Add(-2 * time.Hour)},
			{Metric: entity.MetricPages, Delta: 2.222, CreatedAt: reference.Add(-time.Hour)},
		},
	}

	svc := NewService(store, fixedClock(reference), testLoc)

	stats, err := svc.Stats(context.Background(), entity.ProgressFilter{
		UserID:      uuid.Must(uuid.NewV4()),
		Granularity: entity.GranularityWeek,
		Metric:      entity.MetricTime,
	})
	require.NoError(t, err)

	assert.Equal(t, 3.33, stats.TotalPages)
}

func TestServiceStatsPropagatesFetchErrors(t *testing.T) {
	store := &fakeStore{sessionsErr: errors.New("connection refused")}
	svc := NewService(store, fixedClock(testReference()), testLoc)

	_, err := svc.Stats(context.Background(), entity.ProgressFilter{
		UserID:      uuid.Must(uuid.NewV4()),
		Granularity: entity.GranularityWeek,
		Metric:      entity.MetricTime,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load study sessions")
}

func TestTrackerKeepsPreviousStatsOnFailedRefresh(t *testing.T) {
	reference := testReference()
	wednesday := time.Date(2024, 6, 12, 14, 0, 0, 0, testLoc)

	store := &fakeStore{
		sessions: []entity.StudySession{subjectSession("Física", 60, wednesday)},
		activity: []time.Time{wednesday},
	}

	svc := NewService(store, fixedClock(reference), testLoc)
	notifier := newFakeNotifier()

	tracker, err := svc.Watch(context.Background(), notifier, entity.ProgressFilter{
		UserID:      uuid.Must(uuid.NewV4()),
		Granularity: entity.GranularityWeek,
		Metric:      entity.MetricTime,
	}, nil)
	require.NoError(t, err)
	defer tracker.Close()

	first := tracker.Stats()
	require.NotNil(t, first)
	assert.Equal(t, 60.0, first.TotalTime)

	// The store starts failing; a manual refresh must keep the old snapshot.
	store.sessionsErr = errors.New("store unavailable")
	tracker.Refresh()

	assert.Eventually(t, func() bool {
		return tracker.Stats() == first
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 60.0, tracker.Stats().TotalTime)
}

func TestTrackerDeliversUpdatedSnapshots(t *testing.T) {
	reference := testReference()
	wednesday := time.Date(2024, 6, 12, 14, 0, 0, 0, testLoc)

	store := &fakeStore{activity: []time.Time{wednesday}}
	svc := NewService(store, fixedClock(reference), testLoc)
	notifier := newFakeNotifier()

	userID := uuid.Must(uuid.NewV4())
	tracker, err := svc.Watch(context.Background(), notifier, entity.ProgressFilter{
		UserID:      userID,
		Granularity: entity.GranularityWeek,
		Metric:      entity.MetricTime,
	}, nil)
	require.NoError(t, err)
	defer tracker.Close()

	assert.Zero(t, tracker.Stats().TotalTime)

	store.sessions = []entity.StudySession{subjectSession("Física", 60, wednesday)}
	notifier.emit("study_sessions", userID.String())

	select {
	case updated := <-tracker.Updates():
		assert.Equal(t, 60.0, updated.TotalTime)
	case <-time.After(2 * time.Second):
		t.Fatal("no update delivered after change notification")
	}
}
