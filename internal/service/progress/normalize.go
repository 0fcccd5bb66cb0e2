package progress

import (
	"math"
	"time"

	"github.com/gofrs/uuid"

	"github.com/grupo-estuda/study-backend/internal/entity"
)

// SubjectOther labels events that carry no subject.
const SubjectOther = "Outros"

// MetricEvent is the normalized unit of work every aggregation step consumes.
// It is derived transiently per call and never persisted.
type MetricEvent struct {
	Timestamp   time.Time
	Metric      entity.Metric
	Amount      float64
	SubjectID   *uuid.UUID
	SubjectName string
}

// NormalizeEvents flattens completed study sessions and goal-progress deltas
// into a single event stream. Malformed rows are skipped, never fatal: a
// partially broken fetch must not blank the whole report.
func NormalizeEvents(sessions []entity.StudySession, goalEvents []entity.GoalProgressEvent) []MetricEvent {
	events := make([]MetricEvent, 0, len(sessions)*3+len(goalEvents))

	for _, s := range sessions {
		if s.CompletedAt == nil || s.CompletedAt.IsZero() {
			// Incomplete sessions never contribute to aggregates.
			continue
		}
		if s.DurationMinutes < 0 {
			continue
		}

		ts := sessionTimestamp(s)
		name := SubjectOther
		if s.SubjectName != nil && *s.SubjectName != "" {
			name = *s.SubjectName
		}

		events = append(events,
			MetricEvent{
				Timestamp:   ts,
				Metric:      entity.MetricTime,
				Amount:      float64(s.DurationMinutes),
				SubjectID:   s.SubjectID,
				SubjectName: name,
			},
			MetricEvent{
				Timestamp:   ts,
				Metric:      entity.MetricPages,
				Amount:      float64(sessionPages(s)),
				SubjectID:   s.SubjectID,
				SubjectName: name,
			},
			MetricEvent{
				Timestamp:   ts,
				Metric:      entity.MetricExercises,
				Amount:      float64(sessionExercises(s)),
				SubjectID:   s.SubjectID,
				SubjectName: name,
			},
		)
	}

	for _, e := range goalEvents {
		if _, err := entity.ParseMetric(string(e.Metric)); err != nil {
			continue
		}
		if math.IsNaN(e.Delta) || math.IsInf(e.Delta, 0) {
			continue
		}

		events = append(events, MetricEvent{
			Timestamp:   e.CreatedAt,
			Metric:      e.Metric,
			Amount:      e.Delta,
			SubjectName: SubjectOther,
		})
	}

	return events
}

// sessionTimestamp prefers completed_at so a session spanning midnight lands
// in the day it finished.
func sessionTimestamp(s entity.StudySession) time.Time {
	if s.CompletedAt != nil && !s.CompletedAt.IsZero() {
		return *s.CompletedAt
	}
	return s.StartedAt
}

// sessionPages uses the explicit per-session count when present, otherwise
// the product estimate of 2 pages per 5 studied minutes.
func sessionPages(s entity.StudySession) int {
	if s.PagesRead != nil {
		return *s.PagesRead
	}
	return s.DurationMinutes / 5 * 2
}

// sessionExercises uses the explicit count when present, otherwise the
// estimate of 1 exercise per 10 studied minutes.
func sessionExercises(s entity.StudySession) int {
	if s.ExercisesDone != nil {
		return *s.ExercisesDone
	}
	return s.DurationMinutes / 10
}
