package group

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"

	"github.com/grupo-estuda/study-backend/internal/entity"
	"github.com/grupo-estuda/study-backend/internal/plans"
	"github.com/grupo-estuda/study-backend/internal/repository"
)

type GroupService struct {
	groups   repository.GroupRepository
	subjects repository.SubjectRepository
	users    *repository.UserRepository
}

func NewGroupService(groups repository.GroupRepository, subjects repository.SubjectRepository, users *repository.UserRepository) *GroupService {
	return &GroupService{groups: groups, subjects: subjects, users: users}
}

// CreateGroup creates a group with the creator as admin, enforcing the
// creator's plan limit on group membership count.
func (s *GroupService) CreateGroup(ctx context.Context, creatorID uuid.UUID, req entity.CreateGroupRequest) (*entity.Group, error) {
	user, err := s.users.GetUserById(creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	limits := plans.GetPlanLimits(user.Plan)
	if limits.MaxGroups != nil {
		count, err := s.groups.CountByUser(ctx, creatorID)
		if err != nil {
			return nil, fmt.Errorf("failed to count groups: %w", err)
		}
		if count >= *limits.MaxGroups {
			return nil, fmt.Errorf("plan %s allows at most %d groups", user.Plan, *limits.MaxGroups)
		}
	}

	group := &entity.Group{Name: req.Name}
	if req.Description != "" {
		group.Description = &req.Description
	}

	if err := s.groups.Create(ctx, group, creatorID); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return group, nil
}

func (s *GroupService) GetGroup(ctx context.Context, id uuid.UUID) (*entity.GroupWithMembers, error) {
	return s.groups.GetWithMembers(ctx, id)
}

func (s *GroupService) ListGroups(ctx context.Context, userID uuid.UUID) ([]entity.Group, error) {
	return s.groups.ListByUser(ctx, userID)
}

// AddMember adds a user to a group. The group size limit comes from the
// acting member's plan.
func (s *GroupService) AddMember(ctx context.Context, groupID, actorID uuid.UUID, req entity.AddGroupMemberRequest) error {
	member, err := s.groups.IsMember(ctx, groupID, actorID)
	if err != nil {
		return fmt.Errorf("failed to check group membership: %w", err)
	}
	if !member {
		return fmt.Errorf("user is not a member of the group")
	}

	newUserID, err := uuid.FromString(req.UserID)
	if err != nil {
		return fmt.Errorf("invalid user_id: %w", err)
	}

	already, err := s.groups.IsMember(ctx, groupID, newUserID)
	if err != nil {
		return fmt.Errorf("failed to check group membership: %w", err)
	}
	if already {
		return fmt.Errorf("user is already a member of the group")
	}

	actor, err := s.users.GetUserById(actorID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	limits := plans.GetPlanLimits(actor.Plan)
	if limits.MaxMembersPerGroup != nil {
		count, err := s.groups.CountMembers(ctx, groupID)
		if err != nil {
			return fmt.Errorf("failed to count members: %w", err)
		}
		if count >= *limits.MaxMembersPerGroup {
			return fmt.Errorf("plan %s allows at most %d members per group", actor.Plan, *limits.MaxMembersPerGroup)
		}
	}

	role := req.Role
	if role == "" {
		role = "member"
	}

	return s.groups.AddMember(ctx, groupID, newUserID, role)
}

func (s *GroupService) CreateSubject(ctx context.Context, groupID, userID uuid.UUID, req entity.CreateSubjectRequest) (*entity.Subject, error) {
	member, err := s.groups.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check group membership: %w", err)
	}
	if !member {
		return nil, fmt.Errorf("user is not a member of the group")
	}

	subject := &entity.Subject{GroupID: groupID, Name: req.Name}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	return subject, nil
}

func (s *GroupService) ListSubjects(ctx context.Context, groupID uuid.UUID) ([]entity.Subject, error) {
	return s.subjects.ListByGroup(ctx, groupID)
}

// ListUserSubjects returns the subjects of every group the user belongs to,
// for the session form's subject picker.
func (s *GroupService) ListUserSubjects(ctx context.Context, userID uuid.UUID) ([]entity.Subject, error) {
	groups, err := s.groups.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}

	return s.subjects.ListByGroups(ctx, ids)
}
