package session

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gofrs/uuid"

	"github.com/grupo-estuda/study-backend/internal/entity"
	"github.com/grupo-estuda/study-backend/internal/repository"
)

type SessionService struct {
	sessions repository.StudySessionRepository
	subjects repository.SubjectRepository
	goals    repository.GoalRepository
	points   repository.PointsRepository
	groups   repository.GroupRepository
}

func NewSessionService(
	sessions repository.StudySessionRepository,
	subjects repository.SubjectRepository,
	goals repository.GoalRepository,
	points repository.PointsRepository,
	groups repository.GroupRepository,
) *SessionService {
	return &SessionService{
		sessions: sessions,
		subjects: subjects,
		goals:    goals,
		points:   points,
		groups:   groups,
	}
}

// CreateSession records a finished study session. Minutes are floored from
// the submitted seconds, points are one per whole minute, and when the
// session belongs to a group its minutes roll into the group's time goals
// and the member's points row. Goal and points failures are logged but do
// not lose the session.
func (s *SessionService) CreateSession(ctx context.Context, userID uuid.UUID, req entity.CreateStudySessionRequest) (*entity.StudySession, error) {
	minutes := req.DurationSeconds / 60

	subjectID, groupID, err := s.resolveScope(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	completedAt := time.Now()
	if req.CompletedAt != nil {
		completedAt = *req.CompletedAt
	}
	startedAt := completedAt.Add(-time.Duration(req.DurationSeconds) * time.Second)
	if req.StartedAt != nil {
		startedAt = *req.StartedAt
	}

	session := &entity.StudySession{
		UserID:          userID,
		GroupID:         groupID,
		SubjectID:       subjectID,
		DurationMinutes: minutes,
		PagesRead:       req.PagesRead,
		ExercisesDone:   req.ExercisesDone,
		Points:          minutes,
		StartedAt:       startedAt,
		CompletedAt:     &completedAt,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create study session: %w", err)
	}

	if groupID != nil && minutes > 0 {
		if err := s.rollIntoTimeGoals(ctx, *groupID, subjectID, minutes); err != nil {
			log.Printf("❌ Failed to update time goals for session %s: %v", session.ID, err)
		}

		if err := s.points.AddPoints(ctx, userID, *groupID, minutes); err != nil {
			log.Printf("❌ Failed to add points for session %s: %v", session.ID, err)
		}
	}

	return session, nil
}

// resolveScope parses the optional subject and group ids. The sentinel
// subject id "general" means no subject. When only the subject is given the
// session inherits the subject's group.
func (s *SessionService) resolveScope(ctx context.Context, userID uuid.UUID, req entity.CreateStudySessionRequest) (*uuid.UUID, *uuid.UUID, error) {
	var subjectID, groupID *uuid.UUID

	if req.SubjectID != "" && req.SubjectID != "general" {
		id, err := uuid.FromString(req.SubjectID)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid subject_id: %w", err)
		}

		subject, err := s.subjects.GetByID(ctx, id)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get subject: %w", err)
		}
		if subject == nil {
			return nil, nil, fmt.Errorf("subject not found")
		}

		subjectID = &subject.ID
		groupID = &subject.GroupID
	}

	if req.GroupID != "" {
		id, err := uuid.FromString(req.GroupID)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid group_id: %w", err)
		}
		groupID = &id
	}

	if groupID != nil {
		member, err := s.groups.IsMember(ctx, *groupID, userID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check group membership: %w", err)
		}
		if !member {
			return nil, nil, fmt.Errorf("user is not a member of the group")
		}
	}

	return subjectID, groupID, nil
}

// rollIntoTimeGoals credits the session's minutes to the group's matching
// time goals, clamped at each goal's target.
func (s *SessionService) rollIntoTimeGoals(ctx context.Context, groupID uuid.UUID, subjectID *uuid.UUID, minutes int) error {
	goals, err := s.goals.ListTimeGoals(ctx, groupID, subjectID)
	if err != nil {
		return err
	}

	for _, goal := range goals {
		next := math.Min(goal.Current+float64(minutes), goal.Target)
		if next == goal.Current {
			continue
		}
		if err := s.goals.UpdateCurrent(ctx, goal.ID, next); err != nil {
			return err
		}
	}

	return nil
}

func (s *SessionService) GetSession(ctx context.Context, id uuid.UUID) (*entity.StudySession, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *SessionService) ListSessions(ctx context.Context, filter entity.StudySessionFilter) ([]entity.StudySession, int, error) {
	sessions, err := s.sessions.GetByFilter(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	total, err := s.sessions.CountByFilter(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	return sessions, total, nil
}

func (s *SessionService) DeleteSession(ctx context.Context, id, userID uuid.UUID) error {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session not found")
	}
	if session.UserID != userID {
		return fmt.Errorf("session does not belong to user")
	}

	return s.sessions.Delete(ctx, id)
}
