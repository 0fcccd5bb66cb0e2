package progress

import "time"

// CalculateStreak counts consecutive active study days ending at the
// reference date. A day not yet studied does not break the streak: when today
// is inactive the walk starts from yesterday. There is no equivalent forward
// grace, and a gap at yesterday yields 0.
func CalculateStreak(activeDates map[string]struct{}, reference time.Time) int {
	day := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, reference.Location())

	if _, ok := activeDates[day.Format(dateKeyLayout)]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := activeDates[day.Format(dateKeyLayout)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}
