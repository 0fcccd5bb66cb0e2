package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	uuid2 "github.com/gofrs/uuid"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/grupo-estuda/study-backend/internal/entity"
)

type GroupRepository interface {
	Create(ctx context.Context, group *entity.Group, creatorID uuid2.UUID) error
	GetByID(ctx context.Context, id uuid2.UUID) (*entity.Group, error)
	GetWithMembers(ctx context.Context, id uuid2.UUID) (*entity.GroupWithMembers, error)
	ListByUser(ctx context.Context, userID uuid2.UUID) ([]entity.Group, error)
	AddMember(ctx context.Context, groupID, userID uuid2.UUID, role string) error
	IsMember(ctx context.Context, groupID, userID uuid2.UUID) (bool, error)
	CountMembers(ctx context.Context, groupID uuid2.UUID) (int, error)
	CountByUser(ctx context.Context, userID uuid2.UUID) (int, error)
}

type groupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *entity.Group, creatorID uuid2.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	group.ID = uuid2.UUID(uuid.New())
	group.CreatedAt = time.Now()
	group.UpdatedAt = time.Now()

	query := `
		INSERT INTO groups (id, name, description, created_at, updated_at)
		VALUES (:id, :name, :description, :created_at, :updated_at)`

	if _, err = tx.NamedExecContext(ctx, query, group); err != nil {
		return err
	}

	memberQuery := `INSERT INTO group_members (group_id, user_id, role, joined_at) VALUES ($1, $2, 'admin', $3)`
	if _, err = tx.ExecContext(ctx, memberQuery, group.ID, creatorID, time.Now()); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *groupRepository) GetByID(ctx context.Context, id uuid2.UUID) (*entity.Group, error) {
	var group entity.Group
	err := r.db.GetContext(ctx, &group, "SELECT * FROM groups WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &group, nil
}

func (r *groupRepository) GetWithMembers(ctx context.Context, id uuid2.UUID) (*entity.GroupWithMembers, error) {
	group, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, nil
	}

	membersQuery := `
		SELECT gm.user_id, p.username, p.name, gm.role, gm.joined_at
		FROM group_members gm
		JOIN profiles p ON p.id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY gm.joined_at ASC`

	var members []entity.GroupMember
	if err := r.db.SelectContext(ctx, &members, membersQuery, id); err != nil {
		return nil, err
	}

	return &entity.GroupWithMembers{Group: *group, Members: members}, nil
}

func (r *groupRepository) ListByUser(ctx context.Context, userID uuid2.UUID) ([]entity.Group, error) {
	query := `
		SELECT g.*
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = $1
		ORDER BY g.created_at ASC`

	var groups []entity.Group
	err := r.db.SelectContext(ctx, &groups, query, userID)
	return groups, err
}

func (r *groupRepository) AddMember(ctx context.Context, groupID, userID uuid2.UUID, role string) error {
	query := `INSERT INTO group_members (group_id, user_id, role, joined_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, groupID, userID, role, time.Now())
	return err
}

func (r *groupRepository) IsMember(ctx context.Context, groupID, userID uuid2.UUID) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM group_members WHERE group_id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &count, query, groupID, userID)
	return count > 0, err
}

func (r *groupRepository) CountMembers(ctx context.Context, groupID uuid2.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM group_members WHERE group_id = $1", groupID)
	return count, err
}

func (r *groupRepository) CountByUser(ctx context.Context, userID uuid2.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM group_members WHERE user_id = $1", userID)
	return count, err
}
