package stats

import (
	"math"
	"testing"

	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
)

func entry(location string, perPerson float64, people int) model.Entry {
	return model.Entry{Location: location, PerPersonCost: perPerson, PartySize: people}
}

func TestForPeriod(t *testing.T) {
	got := ForPeriod([]model.Entry{
		entry("Bait Al Mandi", 250, 4),
		entry("Mandi Mahal", 300, 2),
		entry("Bait Al Mandi", 200, 3),
	})

	if got.TotalSpent != 750 {
		t.Errorf("TotalSpent = %v, want 750", got.TotalSpent)
	}
	if got.AveragePerMeal != 250 {
		t.Errorf("AveragePerMeal = %v, want 250", got.AveragePerMeal)
	}
	if got.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", got.TotalCount)
	}
	if math.Abs(got.AverageGroupSize-3) > 1e-9 {
		t.Errorf("AverageGroupSize = %v, want 3", got.AverageGroupSize)
	}
}

func TestForPeriodEmpty(t *testing.T) {
	got := ForPeriod(nil)
	if got != (model.PeriodStats{}) {
		t.Fatalf("empty input should produce zero stats, got %+v", got)
	}
}

func TestByLocation(t *testing.T) {
	got := ByLocation([]model.Entry{
		entry("Bait Al Mandi", 250, 4),
		entry("Mandi Mahal", 300, 2),
		entry("Bait Al Mandi", 150, 3),
	})

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// Bait Al Mandi spent 400 total, ahead of Mandi Mahal's 300.
	first := got[0]
	if first.Location != "Bait Al Mandi" || first.VisitCount != 2 || first.TotalSpent != 400 {
		t.Errorf("first = %+v", first)
	}
	if math.Abs(first.Percentage-400.0/700*100) > 1e-9 {
		t.Errorf("first percentage = %v", first.Percentage)
	}
	second := got[1]
	if second.Location != "Mandi Mahal" || second.VisitCount != 1 || second.TotalSpent != 300 {
		t.Errorf("second = %+v", second)
	}
}

func TestByLocationEmpty(t *testing.T) {
	if got := ByLocation(nil); got != nil {
		t.Fatalf("empty input should produce nil, got %+v", got)
	}
}

func TestByLocationTieBreaksByName(t *testing.T) {
	got := ByLocation([]model.Entry{
		entry("Zam Zam", 100, 1),
		entry("Al Taza", 100, 1),
	})
	if got[0].Location != "Al Taza" || got[1].Location != "Zam Zam" {
		t.Fatalf("tie order = [%s, %s]", got[0].Location, got[1].Location)
	}
}
