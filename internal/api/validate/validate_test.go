package validate

import (
	"math"
	"strings"
	"testing"

	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
)

func TestDate(t *testing.T) {
	if err := Date("2024-03-12"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"", "12-03-2024", "2024-3-12", "2024-13-01", "yesterday"} {
		if err := Date(bad); err == nil {
			t.Errorf("Date(%q) accepted", bad)
		}
	}
}

func TestAmount(t *testing.T) {
	if err := Amount(499.5); err != nil {
		t.Errorf("valid amount rejected: %v", err)
	}
	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := Amount(bad); err == nil {
			t.Errorf("Amount(%v) accepted", bad)
		}
	}
}

func TestEntryInsert(t *testing.T) {
	valid := model.EntryInsert{
		OwnerID:     "owner-1",
		Location:    "Bait Al Mandi",
		TotalAmount: 800,
		PartySize:   4,
	}
	if err := EntryInsert(valid); err != nil {
		t.Fatalf("valid insert rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*model.EntryInsert)
	}{
		{"missing owner", func(i *model.EntryInsert) { i.OwnerID = "" }},
		{"missing location", func(i *model.EntryInsert) { i.Location = "" }},
		{"zero amount", func(i *model.EntryInsert) { i.TotalAmount = 0 }},
		{"zero party", func(i *model.EntryInsert) { i.PartySize = 0 }},
		{"bad date", func(i *model.EntryInsert) { i.Date = "12/03/2024" }},
		{"long location", func(i *model.EntryInsert) { i.Location = strings.Repeat("x", 201) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := valid
			tt.mutate(&ins)
			if err := EntryInsert(ins); err == nil {
				t.Error("invalid insert accepted")
			}
		})
	}
}

func TestEntryPatch(t *testing.T) {
	if err := EntryPatch(model.EntryPatch{}); err != nil {
		t.Fatalf("empty patch rejected: %v", err)
	}

	good := "2024-04-01"
	if err := EntryPatch(model.EntryPatch{Date: &good}); err != nil {
		t.Fatalf("valid patch rejected: %v", err)
	}

	badAmount := -5.0
	if err := EntryPatch(model.EntryPatch{TotalAmount: &badAmount}); err == nil {
		t.Error("negative amount accepted")
	}
	empty := ""
	if err := EntryPatch(model.EntryPatch{Location: &empty}); err == nil {
		t.Error("empty location accepted")
	}
	zero := 0
	if err := EntryPatch(model.EntryPatch{PartySize: &zero}); err == nil {
		t.Error("zero party size accepted")
	}
}
