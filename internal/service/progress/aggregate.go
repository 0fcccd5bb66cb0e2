package progress

import "github.com/grupo-estuda/study-backend/internal/entity"

type Totals struct {
	Time      float64
	Pages     float64
	Exercises float64
}

// Aggregate folds events into the window's fixed bucket sequence. Every
// expected bucket appears exactly once, zero-filled when empty, in strictly
// chronological order. Totals are summed directly from the events rather than
// from the bucket summaries.
func Aggregate(events []MetricEvent, window TimeWindow, buckets []Bucket) (Totals, []entity.BucketSummary) {
	summaries := make([]entity.BucketSummary, len(buckets))
	byKey := make(map[string]*entity.BucketSummary, len(buckets))
	for i, b := range buckets {
		summaries[i] = entity.BucketSummary{Label: b.Label, BucketKey: b.Key}
		byKey[b.Key] = &summaries[i]
	}

	var totals Totals
	for _, e := range events {
		if !window.Contains(e.Timestamp) {
			continue
		}

		switch e.Metric {
		case entity.MetricTime:
			totals.Time += e.Amount
		case entity.MetricPages:
			totals.Pages += e.Amount
		case entity.MetricExercises:
			totals.Exercises += e.Amount
		default:
			continue
		}

		summary, ok := byKey[window.bucketKey(e.Timestamp)]
		if !ok {
			continue
		}
		switch e.Metric {
		case entity.MetricTime:
			summary.Time += e.Amount
		case entity.MetricPages:
			summary.Pages += e.Amount
		case entity.MetricExercises:
			summary.Exercises += e.Amount
		}
	}

	return totals, summaries
}
