// Package billparse extracts structured fields from noisy receipt OCR text.
//
// Each field is handled by an ordered list of extractors; the first one that
// produces an acceptable value wins and the rest are skipped. Extraction never
// fails: a field that cannot be recovered is left absent (amount, location) or
// falls back to a default (date, party size).
package billparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParsedBill is the best-effort result of parsing one receipt.
// Amount and Location are nil when no pattern matched. Date defaults to the
// parse time and PartySize to 1.
type ParsedBill struct {
	Amount    *float64
	Location  *string
	Date      time.Time
	PartySize int
}

var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:grand\s*total|total\s*amount|total)[\s:]*₹?\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)(?:amount\s*payable|net\s*amount|amount)[\s:]*₹?\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`₹\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)(?:rs\.?|inr)[\s:]*([\d,]+\.?\d*)`),
}

var (
	leadingNumeralRx = regexp.MustCompile(`^\d+`)
	phoneLabelRx     = regexp.MustCompile(`(?i)phone|tel|mobile|fax`)
	taxLabelRx       = regexp.MustCompile(`(?i)gst|gstin`)
)

// dayFirstRx matches D-M-Y and D/M/Y; monthNameRx matches "D Mon Y" with any
// month-name suffix; isoRx matches Y-M-D. Tried in that order.
var (
	dayFirstRx  = regexp.MustCompile(`\b(\d{1,2})[-/](\d{1,2})[-/](\d{2,4})\b`)
	monthNameRx = regexp.MustCompile(`(?i)(\d{1,2})\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+(\d{2,4})`)
	isoRx       = regexp.MustCompile(`\b(\d{4})[-/](\d{1,2})[-/](\d{1,2})\b`)
)

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

var partyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*(?:person|people|pax|guests?|covers?)`),
	regexp.MustCompile(`(?i)(?:person|people|pax|guests?|covers?)[\s:]*(\d+)`),
}

// maxPartySize bounds plausible party sizes; larger integers near a people
// label are treated as OCR noise.
const maxPartySize = 50

// Parse extracts bill fields from OCR text. It is pure apart from reading the
// clock for the date fallback.
func Parse(text string) ParsedBill {
	return ParseAt(text, time.Now())
}

// ParseAt is Parse with an explicit "now" for the date fallback.
func ParseAt(text string, now time.Time) ParsedBill {
	result := ParsedBill{
		Date:      now,
		PartySize: 1,
	}

	if amount, ok := extractAmount(text); ok {
		result.Amount = &amount
	}
	if loc, ok := extractLocation(text); ok {
		result.Location = &loc
	}
	if d, ok := extractDate(text); ok {
		result.Date = d
	}
	if n, ok := extractPartySize(text); ok {
		result.PartySize = n
	}
	return result
}

func extractAmount(text string) (float64, bool) {
	for _, rx := range amountPatterns {
		m := rx.FindStringSubmatch(text)
		if m == nil || m[1] == "" {
			continue
		}
		cleaned := strings.ReplaceAll(m[1], ",", "")
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err == nil && parsed > 0 {
			return parsed, true
		}
	}
	return 0, false
}

// extractLocation takes the first of the first three meaningful lines that
// does not look like an address number, a phone label, or a tax id.
func extractLocation(text string) (string, bool) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if len(strings.TrimSpace(line)) > 3 {
			lines = append(lines, line)
		}
	}
	if len(lines) > 3 {
		lines = lines[:3]
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if leadingNumeralRx.MatchString(trimmed) ||
			phoneLabelRx.MatchString(trimmed) ||
			taxLabelRx.MatchString(trimmed) {
			continue
		}
		return trimmed, true
	}
	return "", false
}

func extractDate(text string) (time.Time, bool) {
	if m := dayFirstRx.FindStringSubmatch(text); m != nil {
		if d, ok := makeDate(m[3], atoiLoose(m[2]), atoiLoose(m[1])); ok {
			return d, true
		}
	}
	if m := monthNameRx.FindStringSubmatch(text); m != nil {
		month := monthNumbers[strings.ToLower(m[2])[:3]]
		if d, ok := makeDate(m[3], month, atoiLoose(m[1])); ok {
			return d, true
		}
	}
	if m := isoRx.FindStringSubmatch(text); m != nil {
		if d, ok := makeDate(m[1], atoiLoose(m[2]), atoiLoose(m[3])); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// makeDate expands two-digit years into the 2000s and rejects impossible
// calendar dates (so a failed pattern falls through to the next one).
func makeDate(yearStr string, month, day int) (time.Time, bool) {
	if len(yearStr) == 2 {
		yearStr = "20" + yearStr
	}
	year := atoiLoose(yearStr)
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. Feb 30 -> Mar 1); reject those.
	if d.Day() != day || d.Month() != time.Month(month) || d.Year() != year {
		return time.Time{}, false
	}
	return d, true
}

func extractPartySize(text string) (int, bool) {
	for _, rx := range partyPatterns {
		m := rx.FindStringSubmatch(text)
		if m == nil || m[1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 && n < maxPartySize {
			return n, true
		}
	}
	return 0, false
}

func atoiLoose(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
