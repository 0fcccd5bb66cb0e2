package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupo-estuda/study-backend/internal/entity"
)

var testLoc = time.FixedZone("BRT", -3*60*60)

// Wednesday, 2024-06-12 15:30 local.
func testReference() time.Time {
	return time.Date(2024, 6, 12, 15, 30, 0, 0, testLoc)
}

func TestResolveWindowDay(t *testing.T) {
	window, buckets, err := ResolveWindow(entity.GranularityDay, testReference())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, testLoc), window.Start)
	assert.Equal(t, time.Date(2024, 6, 13, 0, 0, 0, 0, testLoc), window.EndExclusive)
	require.Len(t, buckets, 1)
	assert.Equal(t, "2024-06-12", buckets[0].Key)
}

func TestResolveWindowWeek(t *testing.T) {
	window, buckets, err := ResolveWindow(entity.GranularityWeek, testReference())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 6, 6, 0, 0, 0, 0, testLoc), window.Start)
	assert.True(t, window.EndExclusive.IsZero(), "week window stays open through now")

	require.Len(t, buckets, 7)
	assert.Equal(t, "2024-06-06", buckets[0].Key)
	assert.Equal(t, "2024-06-12", buckets[6].Key)
	// Thursday through Wednesday in pt-BR.
	assert.Equal(t, "qui", buckets[0].Label)
	assert.Equal(t, "qua", buckets[6].Label)
}

func TestResolveWindowMonth(t *testing.T) {
	window, buckets, err := ResolveWindow(entity.GranularityMonth, testReference())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 5, 14, 0, 0, 0, 0, testLoc), window.Start)
	require.Len(t, buckets, 30)
	assert.Equal(t, "2024-05-14", buckets[0].Key)
	assert.Equal(t, "2024-06-12", buckets[29].Key)
	assert.Equal(t, "14/05", buckets[0].Label)
}

func TestResolveWindowYear(t *testing.T) {
	window, buckets, err := ResolveWindow(entity.GranularityYear, testReference())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, 7, 1, 0, 0, 0, 0, testLoc), window.Start)
	require.Len(t, buckets, 12)
	assert.Equal(t, "2023-07", buckets[0].Key)
	assert.Equal(t, "2024-06", buckets[11].Key)
	assert.Equal(t, "jul", buckets[0].Label)
	assert.Equal(t, "jun", buckets[11].Label)
}

func TestResolveWindowBucketKeysContiguous(t *testing.T) {
	for _, g := range []entity.Granularity{
		entity.GranularityDay,
		entity.GranularityWeek,
		entity.GranularityMonth,
		entity.GranularityYear,
	} {
		t.Run(string(g), func(t *testing.T) {
			_, buckets, err := ResolveWindow(g, testReference())
			require.NoError(t, err)

			seen := make(map[string]bool, len(buckets))
			for i, b := range buckets {
				assert.False(t, seen[b.Key], "duplicate key %s", b.Key)
				seen[b.Key] = true
				if i > 0 {
					assert.Greater(t, b.Key, buckets[i-1].Key, "keys must be strictly increasing")
				}
			}
		})
	}
}

func TestResolveWindowUnknownGranularity(t *testing.T) {
	_, _, err := ResolveWindow(entity.Granularity("fortnight"), testReference())
	assert.Error(t, err)
}

func TestWindowContainsBoundaries(t *testing.T) {
	window, _, err := ResolveWindow(entity.GranularityDay, testReference())
	require.NoError(t, err)

	assert.True(t, window.Contains(window.Start), "event exactly at start must be included")
	assert.False(t, window.Contains(window.EndExclusive), "event exactly at endExclusive must be excluded")
	assert.False(t, window.Contains(window.Start.Add(-time.Nanosecond)))
	assert.True(t, window.Contains(window.EndExclusive.Add(-time.Nanosecond)))
}
