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

type SubjectRepository interface {
	Create(ctx context.Context, subject *entity.Subject) error
	GetByID(ctx context.Context, id uuid2.UUID) (*entity.Subject, error)
	ListByGroup(ctx context.Context, groupID uuid2.UUID) ([]entity.Subject, error)
	ListByGroups(ctx context.Context, groupIDs []uuid2.UUID) ([]entity.Subject, error)
}

type subjectRepository struct {
	db *sqlx.DB
}

func NewSubjectRepository(db *sqlx.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(ctx context.Context, subject *entity.Subject) error {
	subject.ID = uuid2.UUID(uuid.New())
	subject.CreatedAt = time.Now()

	query := `INSERT INTO subjects (id, group_id, name, created_at) VALUES (:id, :group_id, :name, :created_at)`
	_, err := r.db.NamedExecContext(ctx, query, subject)
	return err
}

func (r *subjectRepository) GetByID(ctx context.Context, id uuid2.UUID) (*entity.Subject, error) {
	var subject entity.Subject
	err := r.db.GetContext(ctx, &subject, "SELECT * FROM subjects WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &subject, nil
}

func (r *subjectRepository) ListByGroup(ctx context.Context, groupID uuid2.UUID) ([]entity.Subject, error) {
	var subjects []entity.Subject
	err := r.db.SelectContext(ctx, &subjects, "SELECT * FROM subjects WHERE group_id = $1 ORDER BY name", groupID)
	return subjects, err
}

func (r *subjectRepository) ListByGroups(ctx context.Context, groupIDs []uuid2.UUID) ([]entity.Subject, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In("SELECT * FROM subjects WHERE group_id IN (?) ORDER BY name", groupIDs)
	if err != nil {
		return nil, err
	}

	var subjects []entity.Subject
	err = r.db.SelectContext(ctx, &subjects, r.db.Rebind(query), args...)
	return subjects, err
}
