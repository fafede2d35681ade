// Package money holds the per-person cost arithmetic and the Indian-format
// display helpers used across the service and the CLI.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PerPersonCost returns total/people rounded half-up to 2 decimal places.
// A non-positive people count yields 0; callers validate before storing.
func PerPersonCost(total float64, people int) float64 {
	if people <= 0 {
		return 0
	}
	share := decimal.NewFromFloat(total).
		Div(decimal.NewFromInt(int64(people))).
		Round(2)
	f, _ := share.Float64()
	return f
}

// Round2 rounds an amount to currency-minor-unit precision.
func Round2(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}

// FormatINR renders an amount as Indian rupees, e.g. "₹1,23,456.50".
// Whole-rupee amounts omit the fraction, matching the app's display rules.
func FormatINR(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	neg := d.IsNegative()
	if neg {
		d = d.Abs()
	}

	s := d.StringFixed(2)
	parts := strings.SplitN(s, ".", 2)
	out := groupIndian(parts[0])
	if parts[1] != "00" {
		out += "." + parts[1]
	}
	if neg {
		out = "-" + out
	}
	return "₹" + out
}

// FormatNumber renders an integer-ish value with Indian digit grouping.
func FormatNumber(n float64) string {
	d := decimal.NewFromFloat(n).Round(0)
	neg := d.IsNegative()
	if neg {
		d = d.Abs()
	}
	out := groupIndian(d.String())
	if neg {
		out = "-" + out
	}
	return out
}

// groupIndian inserts commas in the Indian numbering system: the last three
// digits form one group, then pairs of two (1,00,00,000).
func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	head := digits[:n-3]
	tail := digits[n-3:]

	var b strings.Builder
	// head is grouped in twos from the right
	rem := len(head) % 2
	if rem == 1 {
		b.WriteString(head[:1])
		head = head[1:]
		if len(head) > 0 {
			b.WriteByte(',')
		}
	}
	for i := 0; i < len(head); i += 2 {
		b.WriteString(head[i : i+2])
		if i+2 < len(head) {
			b.WriteByte(',')
		}
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}
