package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlanLimits_Free(t *testing.T) {
	limits := GetPlanLimits("free")

	require.NotNil(t, limits.MaxGroups)
	assert.Equal(t, 1, *limits.MaxGroups)
	require.NotNil(t, limits.MaxMembersPerGroup)
	assert.Equal(t, 5, *limits.MaxMembersPerGroup)
	require.NotNil(t, limits.HistoryDays)
	assert.Equal(t, 30, *limits.HistoryDays)
	assert.True(t, limits.HasAds)
	assert.False(t, limits.CanUploadFiles)
}

func TestGetPlanLimits_PremiumIsUnlimited(t *testing.T) {
	limits := GetPlanLimits("premium")

	assert.Nil(t, limits.MaxGroups)
	assert.Nil(t, limits.MaxMembersPerGroup)
	assert.Nil(t, limits.HistoryDays)
	assert.True(t, limits.HasAITests)
	assert.True(t, limits.HasPremiumBadge)
}

func TestGetPlanLimits_UnknownFallsBackToFree(t *testing.T) {
	limits := GetPlanLimits("enterprise")

	require.NotNil(t, limits.MaxGroups)
	assert.Equal(t, 1, *limits.MaxGroups)
	assert.True(t, limits.HasAds)
}

func TestAll_ContainsEveryPlan(t *testing.T) {
	all := All()

	assert.Len(t, all, 3)
	assert.Contains(t, all, PlanFree)
	assert.Contains(t, all, PlanBasic)
	assert.Contains(t, all, PlanPremium)
}
