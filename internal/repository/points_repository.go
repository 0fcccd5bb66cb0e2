package repository

import (
	"context"
	"time"

	uuid2 "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/grupo-estuda/study-backend/internal/entity"
)

type PointsRepository interface {
	AddPoints(ctx context.Context, userID, groupID uuid2.UUID, points int) error
	GlobalLeaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
	GroupLeaderboard(ctx context.Context, groupID uuid2.UUID) ([]entity.LeaderboardEntry, error)
}

type pointsRepository struct {
	db *sqlx.DB
}

func NewPointsRepository(db *sqlx.DB) PointsRepository {
	return &pointsRepository{db: db}
}

// AddPoints upserts the per-group points row, accumulating on conflict.
func (r *pointsRepository) AddPoints(ctx context.Context, userID, groupID uuid2.UUID, points int) error {
	query := `
		INSERT INTO user_points (user_id, group_id, points, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, group_id)
		DO UPDATE SET points = user_points.points + EXCLUDED.points, updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query, userID, groupID, points, time.Now())
	return err
}

// GlobalLeaderboard sums points across groups per user, since user_points
// rows are per (user, group).
func (r *pointsRepository) GlobalLeaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	query := `
		SELECT up.user_id, COALESCE(p.name, p.username) AS name, p.plan, SUM(up.points) AS points
		FROM user_points up
		JOIN profiles p ON p.id = up.user_id
		GROUP BY up.user_id, p.name, p.username, p.plan
		ORDER BY points DESC
		LIMIT $1`

	var entries []entity.LeaderboardEntry
	err := r.db.SelectContext(ctx, &entries, query, limit)
	return entries, err
}

func (r *pointsRepository) GroupLeaderboard(ctx context.Context, groupID uuid2.UUID) ([]entity.LeaderboardEntry, error) {
	query := `
		SELECT up.user_id, COALESCE(p.name, p.username) AS name, p.plan, up.points
		FROM user_points up
		JOIN profiles p ON p.id = up.user_id
		WHERE up.group_id = $1
		ORDER BY up.points DESC`

	var entries []entity.LeaderboardEntry
	err := r.db.SelectContext(ctx, &entries, query, groupID)
	return entries, err
}
