package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

type Subject struct {
	ID        uuid.UUID `json:"id" db:"id"`
	GroupID   uuid.UUID `json:"group_id" db:"group_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateSubjectRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}
