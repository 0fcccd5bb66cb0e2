package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupo-estuda/study-backend/internal/entity"
)

func timeEvent(ts time.Time, minutes float64) MetricEvent {
	return MetricEvent{Timestamp: ts, Metric: entity.MetricTime, Amount: minutes, SubjectName: SubjectOther}
}

func TestAggregateZeroFillsEveryBucket(t *testing.T) {
	window, buckets, err := ResolveWindow(entity.GranularityWeek, testReference())
	require.NoError(t, err)

	totals, summaries := Aggregate(nil, window, buckets)

	assert.Equal(t, Totals{}, totals)
	require.Len(t, summaries, 7, "output length is fixed by the granularity, not the data")
	for i, s := range summaries {
		assert.Equal(t, buckets[i].Key, s.BucketKey)
		assert.Zero(t, s.Time)
		assert.Zero(t, s.Pages)
		assert.Zero(t, s.Exercises)
	}
}

func TestAggregateSumsIntoCorrectBuckets(t *testing.T) {
	window, buckets, err := ResolveWindow(entity.GranularityWeek, testReference())
	require.NoError(t, err)

	monday := time.Date(2024, 6, 10, 9, 0, 0, 0, testLoc)
	wednesday := time.Date(2024, 6, 12, 14, 0, 0, 0, testLoc)

	events := []MetricEvent{
		timeEvent(monday, 30),
		timeEvent(wednesday, 60),
		timeEvent(wednesday, 15),
	}

	totals, summaries := Aggregate(events, window, buckets)

	assert.Equal(t, 105.0, totals.Time)

	byKey := make(map[string]entity.BucketSummary)
	for _, s := range summaries {
		byKey[s.BucketKey] = s
	}
	assert.Equal(t, 30.0, byKey["2024-06-10"].Time)
	assert.Equal(t, 75.0, byKey["2024-06-12"].Time)
}

func TestAggregateWindowBoundaries(t *testing.T) {
	window, buckets, err := ResolveWindow(entity.GranularityDay, testReference())
	require.NoError(t, err)

	events := []MetricEvent{
		timeEvent(window.Start, 10),
		timeEvent(window.EndExclusive, 20),
		timeEvent(window.Start.Add(-time.Minute), 30),
	}

	totals, summaries := Aggregate(events, window, buckets)

	assert.Equal(t, 10.0, totals.Time, "only the event at start is inside the window")
	require.Len(t, summaries, 1)
	assert.Equal(t, 10.0, summaries[0].Time)
}

func TestAggregateIsIdempotent(t *testing.T) {
	window, buckets, err := ResolveWindow(entity.GranularityMonth, testReference())
	require.NoError(t, err)

	events := []MetricEvent{
		timeEvent(time.Date(2024, 6, 1, 8, 0, 0, 0, testLoc), 45),
		{Timestamp: time.Date(2024, 6, 2, 8, 0, 0, 0, testLoc), Metric: entity.MetricPages, Amount: 7},
	}

	totalsA, summariesA := Aggregate(events, window, buckets)
	totalsB, summariesB := Aggregate(events, window, buckets)

	assert.Equal(t, totalsA, totalsB)
	assert.Equal(t, summariesA, summariesB)
}
