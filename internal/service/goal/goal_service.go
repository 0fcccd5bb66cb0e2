package goal

import (
	"context"
	"fmt"
	"math"

	"github.com/gofrs/uuid"

	"github.com/grupo-estuda/study-backend/internal/entity"
	"github.com/grupo-estuda/study-backend/internal/repository"
)

type GoalService struct {
	goals    repository.GoalRepository
	subjects repository.SubjectRepository
	groups   repository.GroupRepository
}

func NewGoalService(goals repository.GoalRepository, subjects repository.SubjectRepository, groups repository.GroupRepository) *GoalService {
	return &GoalService{goals: goals, subjects: subjects, groups: groups}
}

func (s *GoalService) CreateGoal(ctx context.Context, groupID uuid.UUID, req entity.CreateGoalRequest) (*entity.Goal, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return nil, fmt.Errorf("group not found")
	}

	goal := &entity.Goal{
		GroupID: groupID,
		Type:    entity.Metric(req.Type),
		Target:  req.Target,
	}

	if req.SubjectID != "" {
		subjectID, err := uuid.FromString(req.SubjectID)
		if err != nil {
			return nil, fmt.Errorf("invalid subject_id: %w", err)
		}

		subject, err := s.subjects.GetByID(ctx, subjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to get subject: %w", err)
		}
		if subject == nil || subject.GroupID != groupID {
			return nil, fmt.Errorf("subject does not belong to the group")
		}

		goal.SubjectID = &subject.ID
		goal.SubjectName = &subject.Name
	}

	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) ListGoals(ctx context.Context, groupID uuid.UUID) ([]entity.Goal, error) {
	return s.goals.ListByGroup(ctx, groupID)
}

// RecordProgress appends a signed progress event and moves the goal's
// current value by the delta, clamped to [0, target]. The raw delta is kept
// in the event log so aggregation sees corrections as-is.
func (s *GoalService) RecordProgress(ctx context.Context, goalID, userID uuid.UUID, req entity.RecordGoalProgressRequest) (*entity.Goal, error) {
	goal, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	if goal == nil {
		return nil, fmt.Errorf("goal not found")
	}

	member, err := s.groups.IsMember(ctx, goal.GroupID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check group membership: %w", err)
	}
	if !member {
		return nil, fmt.Errorf("user is not a member of the group")
	}

	event := &entity.GoalProgressEvent{
		GoalID:  goal.ID,
		UserID:  userID,
		GroupID: goal.GroupID,
		Metric:  goal.Type,
		Delta:   req.Delta,
	}
	if err := s.goals.InsertProgressEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to record goal progress: %w", err)
	}

	next := math.Min(math.Max(goal.Current+req.Delta, 0), goal.Target)
	if err := s.goals.UpdateCurrent(ctx, goal.ID, next); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	goal.Current = next
	return goal, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, goalID, userID uuid.UUID) error {
	goal, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return err
	}
	if goal == nil {
		return fmt.Errorf("goal not found")
	}

	member, err := s.groups.IsMember(ctx, goal.GroupID, userID)
	if err != nil {
		return fmt.Errorf("failed to check group membership: %w", err)
	}
	if !member {
		return fmt.Errorf("user is not a member of the group")
	}

	return s.goals.Delete(ctx, goalID)
}
