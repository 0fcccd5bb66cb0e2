package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func dateSet(reference time.Time, daysAgo ...int) map[string]struct{} {
	set := make(map[string]struct{}, len(daysAgo))
	for _, d := range daysAgo {
		set[reference.AddDate(0, 0, -d).Format(dateKeyLayout)] = struct{}{}
	}
	return set
}

func TestCalculateStreak(t *testing.T) {
	reference := testReference()

	tests := []struct {
		name    string
		daysAgo []int
		want    int
	}{
		{"three days ending today", []int{0, 1, 2}, 3},
		{"today not yet studied keeps streak", []int{1, 2}, 2},
		{"gap at yesterday breaks streak", []int{2}, 0},
		{"no activity", nil, 0},
		{"only today", []int{0}, 1},
		{"gap in the middle stops the walk", []int{0, 1, 3, 4}, 2},
		{"long run", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 10},
		{"future-looking grace does not exist", []int{2, 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateStreak(dateSet(reference, tt.daysAgo...), reference))
		})
	}
}
