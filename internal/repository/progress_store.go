package repository

import (
	"context"
	"time"

	uuid2 "github.com/gofrs/uuid"

	"github.com/grupo-estuda/study-backend/internal/entity"
)

// ProgressStore bundles the query surface the progress aggregator needs into
// one collaborator.
type ProgressStore struct {
	sessions StudySessionRepository
	goals    GoalRepository
}

func NewProgressStore(sessions StudySessionRepository, goals GoalRepository) *ProgressStore {
	return &ProgressStore{sessions: sessions, goals: goals}
}

func (s *ProgressStore) CompletedSessions(ctx context.Context, userID uuid2.UUID, groupID *uuid2.UUID, since time.Time) ([]entity.StudySession, error) {
	return s.sessions.CompletedSessions(ctx, userID, groupID, since)
}

func (s *ProgressStore) GoalProgressEvents(ctx context.Context, userID uuid2.UUID, groupID *uuid2.UUID, since time.Time) ([]entity.GoalProgressEvent, error) {
	return s.goals.ProgressEventsSince(ctx, userID, groupID, since)
}

func (s *ProgressStore) GroupGoals(ctx context.Context, groupID uuid2.UUID) ([]entity.Goal, error) {
	return s.goals.ListByGroup(ctx, groupID)
}

func (s *ProgressStore) StudyActivityTimes(ctx context.Context, userID uuid2.UUID) ([]time.Time, error) {
	return s.sessions.StudyActivityTimes(ctx, userID)
}
