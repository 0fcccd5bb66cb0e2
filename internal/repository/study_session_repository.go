package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid2 "github.com/gofrs/uuid"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/grupo-estuda/study-backend/internal/entity"
)

type StudySessionRepository interface {
	Create(ctx context.Context, session *entity.StudySession) error
	GetByID(ctx context.Context, id uuid2.UUID) (*entity.StudySession, error)
	GetByFilter(ctx context.Context, filter entity.StudySessionFilter) ([]entity.StudySession, error)
	CountByFilter(ctx context.Context, filter entity.StudySessionFilter) (int, error)
	CompletedSessions(ctx context.Context, userID uuid2.UUID, groupID *uuid2.UUID, since time.Time) ([]entity.StudySession, error)
	StudyActivityTimes(ctx context.Context, userID uuid2.UUID) ([]time.Time, error)
	Delete(ctx context.Context, id uuid2.UUID) error
}

type studySessionRepository struct {
	db *sqlx.DB
}

func NewStudySessionRepository(db *sqlx.DB) StudySessionRepository {
	return &studySessionRepository{db: db}
}

func (r *studySessionRepository) Create(ctx context.Context, session *entity.StudySession) error {
	session.ID = uuid2.UUID(uuid.New())
	session.CreatedAt = time.Now()
	session.UpdatedAt = time.Now()

	query := `
		INSERT INTO study_sessions (id, user_id, group_id, subject_id, duration_minutes, pages_read, exercises_done, points, started_at, completed_at, created_at, updated_at)
		VALUES (:id, :user_id, :group_id, :subject_id, :duration_minutes, :pages_read, :exercises_done, :points, :started_at, :completed_at, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, session)
	return err
}

func (r *studySessionRepository) GetByID(ctx context.Context, id uuid2.UUID) (*entity.StudySession, error) {
	var session entity.StudySession
	query := `
		SELECT s.*, sub.name AS subject_name
		FROM study_sessions s
		LEFT JOIN subjects sub ON sub.id = s.subject_id
		WHERE s.id = $1`

	err := r.db.GetContext(ctx, &session, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

func (r *studySessionRepository) GetByFilter(ctx context.Context, filter entity.StudySessionFilter) ([]entity.StudySession, error) {
	var sessions []entity.StudySession

	query := `
		SELECT s.*, sub.name AS subject_name
		FROM study_sessions s
		LEFT JOIN subjects sub ON sub.id = s.subject_id`
	whereClause, args := buildSessionWhereClause(filter)
	query += whereClause
	argIndex := len(args) + 1

	query += " ORDER BY s.started_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	err := r.db.SelectContext(ctx, &sessions, query, args...)
	return sessions, err
}

func (r *studySessionRepository) CountByFilter(ctx context.Context, filter entity.StudySessionFilter) (int, error) {
	query := "SELECT COUNT(*) FROM study_sessions s"
	whereClause, args := buildSessionWhereClause(filter)
	query += whereClause

	var total int
	err := r.db.GetContext(ctx, &total, query, args...)
	return total, err
}

func (r *studySessionRepository) CompletedSessions(ctx context.Context, userID uuid2.UUID, groupID *uuid2.UUID, since time.Time) ([]entity.StudySession, error) {
	query := `
		SELECT s.*, sub.name AS subject_name
		FROM study_sessions s
		LEFT JOIN subjects sub ON sub.id = s.subject_id
		WHERE s.user_id = $1
			AND s.completed_at IS NOT NULL
			AND COALESCE(s.completed_at, s.started_at) >= $2`

	args := []interface{}{userID, since}

	if groupID != nil {
		query += " AND s.group_id = $3"
		args = append(args, *groupID)
	}

	query += " ORDER BY s.started_at ASC"

	var sessions []entity.StudySession
	err := r.db.SelectContext(ctx, &sessions, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed sessions: %w", err)
	}

	return sessions, nil
}

func (r *studySessionRepository) StudyActivityTimes(ctx context.Context, userID uuid2.UUID) ([]time.Time, error) {
	query := `
		SELECT COALESCE(completed_at, started_at)
		FROM study_sessions
		WHERE user_id = $1 AND completed_at IS NOT NULL
		ORDER BY started_at DESC`

	var times []time.Time
	err := r.db.SelectContext(ctx, &times, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get study activity: %w", err)
	}

	return times, nil
}

func (r *studySessionRepository) Delete(ctx context.Context, id uuid2.UUID) error {
	query := "DELETE FROM study_sessions WHERE id = $1"
	result, err := r.db.ExecContext(ctx, query, id)
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

func buildSessionWhereClause(filter entity.StudySessionFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	conditions = append(conditions, fmt.Sprintf("s.user_id = $%d", argIndex))
	args = append(args, filter.UserID)
	argIndex++

	if filter.GroupID != nil {
		conditions = append(conditions, fmt.Sprintf("s.group_id = $%d", argIndex))
		args = append(args, *filter.GroupID)
		argIndex++
	}

	if filter.SubjectID != nil {
		conditions = append(conditions, fmt.Sprintf("s.subject_id = $%d", argIndex))
		args = append(args, *filter.SubjectID)
		argIndex++
	}

	if filter.StartTime != nil {
		conditions = append(conditions, fmt.Sprintf("s.started_at >= $%d", argIndex))
		args = append(args, *filter.StartTime)
		argIndex++
	}

	if filter.EndTime != nil {
		conditions = append(conditions, fmt.Sprintf("s.started_at < $%d", argIndex))
		args = append(args, *filter.EndTime)
		argIndex++
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}
