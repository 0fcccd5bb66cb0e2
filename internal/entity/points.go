package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

type UserPoints struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	GroupID   uuid.UUID `json:"group_id" db:"group_id"`
	Points    int       `json:"points" db:"points"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type LeaderboardEntry struct {
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	Plan          *string   `json:"plan,omitempty" db:"plan"`
	Points        int       `json:"points" db:"points"`
	Rank          int       `json:"rank"`
	IsCurrentUser bool      `json:"is_current_user,omitempty"`
}

type GroupLeaderboard struct {
	GroupID   uuid.UUID          `json:"group_id"`
	GroupName string             `json:"group_name"`
	Members   []LeaderboardEntry `json:"members"`
}
