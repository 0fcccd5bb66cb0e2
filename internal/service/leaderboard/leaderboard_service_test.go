package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupo-estuda/study-backend/internal/entity"
)

type fakePointsRepo struct {
	global      []entity.LeaderboardEntry
	byGroup     map[uuid.UUID][]entity.LeaderboardEntry
	globalCalls int
}

func (f *fakePointsRepo) AddPoints(ctx context.Context, userID, groupID uuid.UUID, points int) error {
	return nil
}

func (f *fakePointsRepo) GlobalLeaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	f.globalCalls++
	if len(f.global) > limit {
		return f.global[:limit], nil
	}
	return f.global, nil
}

func (f *fakePointsRepo) GroupLeaderboard(ctx context.Context, groupID uuid.UUID) ([]entity.LeaderboardEntry, error) {
	return f.byGroup[groupID], nil
}

type fakeGroupRepo struct {
	groups []entity.Group
}

func (f *fakeGroupRepo) Create(ctx context.Context, g *entity.Group, creatorID uuid.UUID) error {
	return nil
}

func (f *fakeGroupRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	return nil, nil
}

func (f *fakeGroupRepo) GetWithMembers(ctx context.Context, id uuid.UUID) (*entity.GroupWithMembers, error) {
	return nil, nil
}

func (f *fakeGroupRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Group, error) {
	return f.groups, nil
}

func (f *fakeGroupRepo) AddMember(ctx context.Context, groupID, userID uuid.UUID, role string) error {
	return nil
}

func (f *fakeGroupRepo) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeGroupRepo) CountMembers(ctx context.Context, groupID uuid.UUID) (int, error) {
	return 0, nil
}

func (f *fakeGroupRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return 0, nil
}

type fakeCache struct {
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = data
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := f.store[key]
	if !ok {
		return fmt.Errorf("key not found: %s", key)
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.store, key)
	return nil
}

func (f *fakeCache) Health(ctx context.Context) error { return nil }

func (f *fakeCache) Close() error { return nil }

func entriesFor(ids ...uuid.UUID) []entity.LeaderboardEntry {
	entries := make([]entity.LeaderboardEntry, len(ids))
	for i, id := range ids {
		entries[i] = entity.LeaderboardEntry{
			UserID: id,
			Name:   fmt.Sprintf("user-%d", i),
			Points: 100 - i*10,
		}
	}
	return entries
}

func TestGlobal_RanksAndFlagsCurrentUser(t *testing.T) {
	first := uuid.Must(uuid.NewV4())
	second := uuid.Must(uuid.NewV4())
	third := uuid.Must(uuid.NewV4())

	points := &fakePointsRepo{global: entriesFor(first, second, third)}
	svc := NewLeaderboardService(points, &fakeGroupRepo{}, nil)

	entries, err := svc.Global(context.Background(), second)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)

	assert.False(t, entries[0].IsCurrentUser)
	assert.True(t, entries[1].IsCurrentUser)
	assert.False(t, entries[2].IsCurrentUser)
}

func TestGlobal_SecondCallServedFromCache(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	points := &fakePointsRepo{global: entriesFor(userID)}
	svc := NewLeaderboardService(points, &fakeGroupRepo{}, newFakeCache())

	_, err := svc.Global(context.Background(), userID)
	require.NoError(t, err)

	entries, err := svc.Global(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 1, points.globalCalls)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsCurrentUser)
	assert.Equal(t, 1, entries[0].Rank)
}

func TestGroups_OneBoardPerGroup(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	rival := uuid.Must(uuid.NewV4())
	groupA := uuid.Must(uuid.NewV4())
	groupB := uuid.Must(uuid.NewV4())

	points := &fakePointsRepo{byGroup: map[uuid.UUID][]entity.LeaderboardEntry{
		groupA: entriesFor(rival, userID),
		groupB: entriesFor(userID),
	}}
	groups := &fakeGroupRepo{groups: []entity.Group{
		{ID: groupA, Name: "Vestibular"},
		{ID: groupB, Name: "Concurso"},
	}}
	svc := NewLeaderboardService(points, groups, nil)

	boards, err := svc.Groups(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, boards, 2)

	assert.Equal(t, "Vestibular", boards[0].GroupName)
	require.Len(t, boards[0].Members, 2)
	assert.Equal(t, 2, boards[0].Members[1].Rank)
	assert.True(t, boards[0].Members[1].IsCurrentUser)

	assert.Equal(t, "Concurso", boards[1].GroupName)
	require.Len(t, boards[1].Members, 1)
	assert.True(t, boards[1].Members[0].IsCurrentUser)
}
