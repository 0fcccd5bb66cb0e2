package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	uuid2 "github.com/gofrs/uuid"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/grupo-estuda/study-backend/internal/entity"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *entity.Goal) error
	GetByID(ctx context.Context, id uuid2.UUID) (*entity.Goal, error)
	ListByGroup(ctx context.Context, groupID uuid2.UUID) ([]entity.Goal, error)
	ListTimeGoals(ctx context.Context, groupID uuid2.UUID, subjectID *uuid2.UUID) ([]entity.Goal, error)
	UpdateCurrent(ctx context.Context, id uuid2.UUID, current float64) error
	Delete(ctx context.Context, id uuid2.UUID) error

	InsertProgressEvent(ctx context.Context, event *entity.GoalProgressEvent) error
	ProgressEventsSince(ctx context.Context, userID uuid2.UUID, groupID *uuid2.UUID, since time.Time) ([]entity.GoalProgressEvent, error)
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	goal.ID = uuid2.UUID(uuid.New())
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = time.Now()

	query := `
		INSERT INTO goals (id, group_id, subject_id, type, current, target, created_at, updated_at)
		VALUES (:id, :group_id, :subject_id, :type, :current, :target, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, goal)
	return err
}

func (r *goalRepository) GetByID(ctx context.Context, id uuid2.UUID) (*entity.Goal, error) {
	var goal entity.Goal
	query := `
		SELECT g.*, sub.name AS subject_name
		FROM goals g
		LEFT JOIN subjects sub ON sub.id = g.subject_id
		WHERE g.id = $1`

	err := r.db.GetContext(ctx, &goal, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &goal, nil
}

func (r *goalRepository) ListByGroup(ctx context.Context, groupID uuid2.UUID) ([]entity.Goal, error) {
	query := `
		SELECT g.*, sub.name AS subject_name
		FROM goals g
		LEFT JOIN subjects sub ON sub.id = g.subject_id
		WHERE g.group_id = $1
		ORDER BY g.created_at ASC`

	var goals []entity.Goal
	err := r.db.SelectContext(ctx, &goals, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	return goals, nil
}

// ListTimeGoals returns the group's time goals a finished session should roll
// into: subject-specific goals for the session's subject plus subject-less
// group goals.
func (r *goalRepository) ListTimeGoals(ctx context.Context, groupID uuid2.UUID, subjectID *uuid2.UUID) ([]entity.Goal, error) {
	query := `
		SELECT g.*, sub.name AS subject_name
		FROM goals g
		LEFT JOIN subjects sub ON sub.id = g.subject_id
		WHERE g.group_id = $1 AND g.type = 'time'`

	args := []interface{}{groupID}

	if subjectID != nil {
		query += " AND (g.subject_id = $2 OR g.subject_id IS NULL)"
		args = append(args, *subjectID)
	} else {
		query += " AND g.subject_id IS NULL"
	}

	var goals []entity.Goal
	err := r.db.SelectContext(ctx, &goals, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time goals: %w", err)
	}

	return goals, nil
}

func (r *goalRepository) UpdateCurrent(ctx context.Context, id uuid2.UUID, current float64) error {
	query := `UPDATE goals SET current = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, current, time.Now())
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *goalRepository) Delete(ctx context.Context, id uuid2.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM goals WHERE id = $1", id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *goalRepository) InsertProgressEvent(ctx context.Context, event *entity.GoalProgressEvent) error {
	event.ID = uuid2.UUID(uuid.New())
	event.CreatedAt = time.Now()

	query := `
		INSERT INTO goal_progress_events (id, goal_id, user_id, group_id, metric, delta, created_at)
		VALUES (:id, :goal_id, :user_id, :group_id, :metric, :delta, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, event)
	return err
}

func (r *goalRepository) ProgressEventsSince(ctx context.Context, userID uuid2.UUID, groupID *uuid2.UUID, since time.Time) ([]entity.GoalProgressEvent, error) {
	query := `
		SELECT * FROM goal_progress_events
		WHERE user_id = $1 AND created_at >= $2`

	args := []interface{}{userID, since}

	if groupID != nil {
		query += " AND group_id = $3"
		args = append(args, *groupID)
	}

	query += " ORDER BY created_at ASC"

	var events []entity.GoalProgressEvent
	err := r.db.SelectContext(ctx, &events, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list goal progress events: %w", err)
	}

	return events, nil
}
