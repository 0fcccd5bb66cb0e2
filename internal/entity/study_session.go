package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

type StudySession struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	UserID          uuid.UUID  `json:"user_id" db:"user_id"`
	GroupID         *uuid.UUID `json:"group_id,omitempty" db:"group_id"`
	SubjectID       *uuid.UUID `json:"subject_id,omitempty" db:"subject_id"`
	SubjectName     *string    `json:"subject_name,omitempty" db:"subject_name"`
	DurationMinutes int        `json:"duration_minutes" db:"duration_minutes"`
	PagesRead       *int       `json:"pages_read,omitempty" db:"pages_read"`
	ExercisesDone   *int       `json:"exercises_done,omitempty" db:"exercises_done"`
	Points          int        `json:"points" db:"points"`
	StartedAt       time.Time  `json:"started_at" db:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateStudySessionRequest struct {
	SubjectID       string     `json:"subject_id"`
	GroupID         string     `json:"group_id"`
	DurationSeconds int        `json:"duration_seconds" binding:"required,min=1"`
	PagesRead       *int       `json:"pages_read"`
	ExercisesDone   *int       `json:"exercises_done"`
	StartedAt       *time.Time `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at"`
}

type StudySessionFilter struct {
	UserID    uuid.UUID
	GroupID   *uuid.UUID
	SubjectID *uuid.UUID
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Offset    int
}
