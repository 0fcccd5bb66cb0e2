package leaderboard

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofrs/uuid"

	"github.com/grupo-estuda/study-backend/internal/entity"
	"github.com/grupo-estuda/study-backend/internal/repository"
	"github.com/grupo-estuda/study-backend/internal/service/cache"
)

const (
	globalLimit  = 50
	cacheTTL     = time.Minute
	globalKey    = "leaderboard:global"
	groupKeyBase = "leaderboard:group:"
)

type LeaderboardService struct {
	points repository.PointsRepository
	groups repository.GroupRepository
	cache  cache.ServiceInterface
}

// NewLeaderboardService wires the points queries with an optional cache; a
// nil cache means every call hits the database.
func NewLeaderboardService(points repository.PointsRepository, groups repository.GroupRepository, cacheService cache.ServiceInterface) *LeaderboardService {
	return &LeaderboardService{points: points, groups: groups, cache: cacheService}
}

// Global returns the top users by points across all groups, with ranks
// assigned and the caller's own row flagged.
func (s *LeaderboardService) Global(ctx context.Context, currentUser uuid.UUID) ([]entity.LeaderboardEntry, error) {
	entries, err := s.globalEntries(ctx)
	if err != nil {
		return nil, err
	}

	return decorate(entries, currentUser), nil
}

func (s *LeaderboardService) globalEntries(ctx context.Context) ([]entity.LeaderboardEntry, error) {
	if s.cache != nil {
		var cached []entity.LeaderboardEntry
		if err := s.cache.Get(ctx, globalKey, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.points.GlobalLeaderboard(ctx, globalLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get global leaderboard: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, globalKey, entries, cacheTTL); err != nil {
			log.Printf("Failed to cache global leaderboard: %v", err)
		}
	}

	return entries, nil
}

// Groups returns one ranked leaderboard per group the user belongs to.
func (s *LeaderboardService) Groups(ctx context.Context, userID uuid.UUID) ([]entity.GroupLeaderboard, error) {
	groups, err := s.groups.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	boards := make([]entity.GroupLeaderboard, 0, len(groups))
	for _, g := range groups {
		entries, err := s.groupEntries(ctx, g.ID)
		if err != nil {
			return nil, err
		}

		boards = append(boards, entity.GroupLeaderboard{
			GroupID:   g.ID,
			GroupName: g.Name,
			Members:   decorate(entries, userID),
		})
	}

	return boards, nil
}

func (s *LeaderboardService) groupEntries(ctx context.Context, groupID uuid.UUID) ([]entity.LeaderboardEntry, error) {
	key := groupKeyBase + groupID.String()

	if s.cache != nil {
		var cached []entity.LeaderboardEntry
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.points.GroupLeaderboard(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group leaderboard: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, entries, cacheTTL); err != nil {
			log.Printf("Failed to cache group leaderboard: %v", err)
		}
	}

	return entries, nil
}

// decorate fills ranks from the already-sorted entries and marks the
// caller's row. Cached entries never carry these fields.
func decorate(entries []entity.LeaderboardEntry, currentUser uuid.UUID) []entity.LeaderboardEntry {
	out := make([]entity.LeaderboardEntry, len(entries))
	for i, e := range entries {
		e.Rank = i + 1
		e.IsCurrentUser = e.UserID == currentUser
		out[i] = e
	}
	return out
}
