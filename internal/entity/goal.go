package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

type Goal struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	GroupID     uuid.UUID  `json:"group_id" db:"group_id"`
	SubjectID   *uuid.UUID `json:"subject_id,omitempty" db:"subject_id"`
	SubjectName *string    `json:"subject_name,omitempty" db:"subject_name"`
	Type        Metric     `json:"type" db:"type"`
	Current     float64    `json:"current" db:"current"`
	Target      float64    `json:"target" db:"target"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// GoalProgressEvent is a discrete, signed progress delta recorded against a
// goal. Negative deltas are corrections.
type GoalProgressEvent struct {
	ID        uuid.UUID `json:"id" db:"id"`
	GoalID    uuid.UUID `json:"goal_id" db:"goal_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	GroupID   uuid.UUID `json:"group_id" db:"group_id"`
	Metric    Metric    `json:"metric" db:"metric"`
	Delta     float64   `json:"delta" db:"delta"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateGoalRequest struct {
	SubjectID string  `json:"subject_id"`
	Type      string  `json:"type" binding:"required,oneof=time pages exercises"`
	Target    float64 `json:"target" binding:"required,gt=0"`
}

type RecordGoalProgressRequest struct {
	Delta float64 `json:"delta" binding:"required"`
}
