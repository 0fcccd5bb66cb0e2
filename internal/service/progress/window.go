package progress

import (
	"fmt"
	"time"

	"github.com/grupo-estuda/study-backend/internal/entity"
	"github.com/grupo-estuda/study-backend/pkg/utils"
)

const (
	dateKeyLayout  = "2006-01-02"
	monthKeyLayout = "2006-01"
)

// TimeWindow is a half-open [Start, EndExclusive) interval in the reference
// instant's local calendar. A zero EndExclusive means the window stays open
// through "now": week, month and year windows include everything up to the
// present instant.
type TimeWindow struct {
	Start        time.Time
	EndExclusive time.Time
	Granularity  entity.Granularity
}

func (w TimeWindow) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	if w.EndExclusive.IsZero() {
		return true
	}
	return t.Before(w.EndExclusive)
}

// Bucket is one expected calendar unit of the window. The resolver emits the
// full ordered sequence regardless of activity, so chart output length is
// fixed by the granularity (1, 7, 30 or 12).
type Bucket struct {
	Key   string
	Label string
}

// ResolveWindow turns a semantic range into concrete bounds and the expected
// bucket sequence. All calendar arithmetic happens in the reference instant's
// location.
func ResolveWindow(granularity entity.Granularity, reference time.Time) (TimeWindow, []Bucket, error) {
	loc := reference.Location()
	midnight := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}

	switch granularity {
	case entity.GranularityDay:
		start := midnight(reference)
		window := TimeWindow{
			Start:        start,
			EndExclusive: start.AddDate(0, 0, 1),
			Granularity:  granularity,
		}
		key := start.Format(dateKeyLayout)
		return window, []Bucket{{Key: key, Label: key}}, nil

	case entity.GranularityWeek:
		start := midnight(reference.AddDate(0, 0, -6))
		window := TimeWindow{Start: start, Granularity: granularity}

		buckets := make([]Bucket, 0, 7)
		for day := start; len(buckets) < 7; day = day.AddDate(0, 0, 1) {
			buckets = append(buckets, Bucket{
				Key:   day.Format(dateKeyLayout),
				Label: utils.WeekdayAbbrev(day.Weekday()),
			})
		}
		return window, buckets, nil

	case entity.GranularityMonth:
		start := midnight(reference.AddDate(0, 0, -29))
		window := TimeWindow{Start: start, Granularity: granularity}

		buckets := make([]Bucket, 0, 30)
		for day := start; len(buckets) < 30; day = day.AddDate(0, 0, 1) {
			buckets = append(buckets, Bucket{
				Key:   day.Format(dateKeyLayout),
				Label: day.Format("02/01"),
			})
		}
		return window, buckets, nil

	case entity.GranularityYear:
		start := time.Date(reference.Year(), reference.Month()-11, 1, 0, 0, 0, 0, loc)
		window := TimeWindow{Start: start, Granularity: granularity}

		buckets := make([]Bucket, 0, 12)
		for i := 0; i < 12; i++ {
			month := start.AddDate(0, i, 0)
			buckets = append(buckets, Bucket{
				Key:   month.Format(monthKeyLayout),
				Label: utils.MonthAbbrev(month.Month()),
			})
		}
		return window, buckets, nil
	}

	return TimeWindow{}, nil, fmt.Errorf("unknown granularity %q", granularity)
}

// bucketKey maps an event timestamp to the bucket containing it, evaluated in
// the window's calendar.
func (w TimeWindow) bucketKey(t time.Time) string {
	local := t.In(w.Start.Location())
	if w.Granularity == entity.GranularityYear {
		return local.Format(monthKeyLayout)
	}
	return local.Format(dateKeyLayout)
}

// DateKey returns the local calendar-day key for a timestamp.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}
