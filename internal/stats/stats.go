// Package stats aggregates meal entries into spending summaries. Spend
// figures are per-person: each entry contributes its per-person cost, not the
// table total.
package stats

import (
	"sort"

	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
)

// ForPeriod summarizes a slice of entries, typically pre-filtered to a
// reporting window.
func ForPeriod(entries []model.Entry) model.PeriodStats {
	if len(entries) == 0 {
		return model.PeriodStats{}
	}

	var totalSpent float64
	var totalPeople int
	for _, e := range entries {
		totalSpent += e.PerPersonCost
		totalPeople += e.PartySize
	}
	n := float64(len(entries))
	return model.PeriodStats{
		TotalSpent:       totalSpent,
		AveragePerMeal:   totalSpent / n,
		TotalCount:       len(entries),
		AverageGroupSize: float64(totalPeople) / n,
	}
}

// ByLocation groups entries per merchant and returns them ordered by spend
// descending. Percentage is the merchant's share of the overall spend.
func ByLocation(entries []model.Entry) []model.LocationStats {
	if len(entries) == 0 {
		return nil
	}

	type acc struct {
		count int
		total float64
	}
	byLoc := make(map[string]*acc)
	var totalSpent float64
	for _, e := range entries {
		a := byLoc[e.Location]
		if a == nil {
			a = &acc{}
			byLoc[e.Location] = a
		}
		a.count++
		a.total += e.PerPersonCost
		totalSpent += e.PerPersonCost
	}

	out := make([]model.LocationStats, 0, len(byLoc))
	for loc, a := range byLoc {
		pct := 0.0
		if totalSpent > 0 {
			pct = a.total / totalSpent * 100
		}
		out = append(out, model.LocationStats{
			Location:   loc,
			VisitCount: a.count,
			TotalSpent: a.total,
			Percentage: pct,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSpent != out[j].TotalSpent {
			return out[i].TotalSpent > out[j].TotalSpent
		}
		return out[i].Location < out[j].Location
	})
	return out
}
