package progress

import (
	"math"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupo-estuda/study-backend/internal/entity"
)

func completedSession(duration int, completedAt time.Time) entity.StudySession {
	started := completedAt.Add(-time.Duration(duration) * time.Minute)
	return entity.StudySession{
		ID:              uuid.Must(uuid.NewV4()),
		DurationMinutes: duration,
		StartedAt:       started,
		CompletedAt:     &completedAt,
	}
}

func TestNormalizeEstimatesPagesAndExercises(t *testing.T) {
	done := time.Date(2024, 6, 12, 10, 0, 0, 0, testLoc)
	events := NormalizeEvents([]entity.StudySession{completedSession(47, done)}, nil)

	require.Len(t, events, 3)

	byMetric := make(map[entity.Metric]MetricEvent)
	for _, e := range events {
		byMetric[e.Metric] = e
	}

	assert.Equal(t, 47.0, byMetric[entity.MetricTime].Amount)
	assert.Equal(t, 18.0, byMetric[entity.MetricPages].Amount, "floor(47/5)*2")
	assert.Equal(t, 4.0, byMetric[entity.MetricExercises].Amount, "floor(47/10)")
}

func TestNormalizeExplicitCountsWin(t *testing.T) {
	done := time.Date(2024, 6, 12, 10, 0, 0, 0, testLoc)
	pages, exercises := 3, 1
	session := completedSession(47, done)
	session.PagesRead = &pages
	session.ExercisesDone = &exercises

	events := NormalizeEvents([]entity.StudySession{session}, nil)

	byMetric := make(map[entity.Metric]MetricEvent)
	for _, e := range events {
		byMetric[e.Metric] = e
	}
	assert.Equal(t, 3.0, byMetric[entity.MetricPages].Amount)
	assert.Equal(t, 1.0, byMetric[entity.MetricExercises].Amount)
}

func TestNormalizeSkipsIncompleteAndMalformedSessions(t *testing.T) {
	done := time.Date(2024, 6, 12, 10, 0, 0, 0, testLoc)

	incomplete := completedSession(30, done)
	incomplete.CompletedAt = nil

	negative := completedSession(-5, done)

	events := NormalizeEvents([]entity.StudySession{incomplete, negative}, nil)
	assert.Empty(t, events)
}

func TestNormalizeBucketsByCompletionTime(t *testing.T) {
	// Session spanning midnight: started 23:40, finished 00:20 next day.
	done := time.Date(2024, 6, 13, 0, 20, 0, 0, testLoc)
	session := completedSession(40, done)

	events := NormalizeEvents([]entity.StudySession{session}, nil)
	require.NotEmpty(t, events)
	for _, e := range events {
		assert.Equal(t, "2024-06-13", DateKey(e.Timestamp.In(testLoc)))
	}
}

func TestNormalizeGoalEvents(t *testing.T) {
	created := time.Date(2024, 6, 12, 9, 0, 0, 0, testLoc)
	goalEvents := []entity.GoalProgressEvent{
		{Metric: entity.MetricPages, Delta: 12, CreatedAt: created},
		{Metric: entity.MetricPages, Delta: -4, CreatedAt: created},
		{Metric: entity.Metric("chapters"), Delta: 2, CreatedAt: created},
		{Metric: entity.MetricTime, Delta: math.NaN(), CreatedAt: created},
		{Metric: entity.MetricTime, Delta: math.Inf(1), CreatedAt: created},
	}

	events := NormalizeEvents(nil, goalEvents)

	require.Len(t, events, 2, "invalid metric and non-finite deltas are skipped")
	assert.Equal(t, 12.0, events[0].Amount)
	assert.Equal(t, -4.0, events[1].Amount, "negative deltas are kept as signed corrections")
}
