package money

import "testing"

func TestPerPersonCost(t *testing.T) {
	tests := []struct {
		name   string
		total  float64
		people int
		want   float64
	}{
		{name: "thousand split three ways", total: 1000, people: 3, want: 333.33},
		{name: "even split", total: 900, people: 3, want: 300},
		{name: "two-thirds rounds up", total: 200, people: 3, want: 66.67},
		{name: "single person", total: 450.5, people: 1, want: 450.5},
		{name: "half-up at the boundary", total: 100.005, people: 1, want: 100.01},
		{name: "zero people yields zero", total: 500, people: 0, want: 0},
		{name: "negative people yields zero", total: 500, people: -2, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PerPersonCost(tt.total, tt.people); got != tt.want {
				t.Errorf("PerPersonCost(%v, %d) = %v, want %v", tt.total, tt.people, got, tt.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(333.333333); got != 333.33 {
		t.Fatalf("Round2 = %v, want 333.33", got)
	}
	if got := Round2(66.665); got != 66.67 {
		t.Fatalf("Round2 half-up = %v, want 66.67", got)
	}
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₹0"},
		{120, "₹120"},
		{1234.5, "₹1,234.50"},
		{123456.5, "₹1,23,456.50"},
		{10000000, "₹1,00,00,000"},
		{-450.25, "₹-450.25"},
	}
	for _, tt := range tests {
		if got := FormatINR(tt.amount); got != tt.want {
			t.Errorf("FormatINR(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(1234567); got != "12,34,567" {
		t.Fatalf("FormatNumber = %q, want 12,34,567", got)
	}
	if got := FormatNumber(999); got != "999" {
		t.Fatalf("FormatNumber = %q, want 999", got)
	}
}
