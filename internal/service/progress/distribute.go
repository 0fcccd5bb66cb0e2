package progress

import (
	"math"
	"sort"

	"github.com/grupo-estuda/study-backend/internal/entity"
)

// PaletteSize is the length of the UI chart palette. Color assignment is
// post-sort position modulo this length, so the same subject ranking always
// renders the same colors.
const PaletteSize = 5

// Distribute computes each subject's percentage share of the chosen metric.
// Subjects whose net sum is not positive (negative goal corrections can
// outweigh activity) are dropped and excluded from the total, keeping every
// percent in 0..100. Shares of a non-empty result sum to exactly 100: after
// rounding, any residual is added to the highest-ranked entry. Ties keep
// their first-appearance order (stable sort).
func Distribute(events []MetricEvent, metric entity.Metric) []entity.SubjectShare {
	type subjectSum struct {
		name string
		sum  float64
	}

	var (
		order []string
		sums  = make(map[string]*subjectSum)
	)
	for _, e := range events {
		if e.Metric != metric {
			continue
		}

		key := "other"
		if e.SubjectID != nil {
			key = e.SubjectID.String()
		}

		entry, ok := sums[key]
		if !ok {
			name := e.SubjectName
			if name == "" {
				name = SubjectOther
			}
			entry = &subjectSum{name: name}
			sums[key] = entry
			order = append(order, key)
		}
		entry.sum += e.Amount
	}

	var total float64
	positive := make([]string, 0, len(order))
	for _, key := range order {
		if sums[key].sum <= 0 {
			continue
		}
		positive = append(positive, key)
		total += sums[key].sum
	}
	if total <= 0 {
		return nil
	}

	shares := make([]entity.SubjectShare, 0, len(positive))
	for _, key := range positive {
		shares = append(shares, entity.SubjectShare{
			SubjectName: sums[key].name,
			Percent:     int(math.Round(sums[key].sum / total * 100)),
		})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Percent > shares[j].Percent
	})

	sum := 0
	for _, s := range shares {
		sum += s.Percent
	}
	if sum != 100 {
		shares[0].Percent += 100 - sum
	}

	for i := range shares {
		shares[i].ColorIndex = i % PaletteSize
	}

	return shares
}
