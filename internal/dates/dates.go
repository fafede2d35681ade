// Package dates provides period windows and date formatting for entries.
// Entries carry date-only values as "YYYY-MM-DD" strings.
package dates

import (
	"fmt"
	"time"
)

// ISO is the wire layout for entry dates.
const ISO = "2006-01-02"

// Period selects a reporting window anchored at "now".
type Period string

const (
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// Range returns the inclusive [start, end] window for a period relative to now:
// weekly is the trailing 7 days, monthly the current calendar month, yearly the
// current calendar year.
func Range(p Period, now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	loc := now.Location()
	switch p {
	case Weekly:
		start = time.Date(y, m, d-7, 0, 0, 0, 0, loc)
		end = endOfDay(y, m, d, loc)
	case Monthly:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		lastDay := time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
		end = endOfDay(y, m, lastDay, loc)
	case Yearly:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		end = endOfDay(y, time.December, 31, loc)
	}
	return start, end
}

func endOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), loc)
}

// ParseISO parses a "YYYY-MM-DD" date string.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(ISO, s)
}

// FormatISO formats t as "YYYY-MM-DD".
func FormatISO(t time.Time) string {
	return t.Format(ISO)
}

// TodayISO returns the current date as "YYYY-MM-DD".
func TodayISO() string {
	return FormatISO(time.Now())
}

// InRange reports whether t lies within [start, end].
func InRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// RelativeTime renders a date as "Today", "Yesterday", "N days ago" and so on,
// relative to now.
func RelativeTime(t, now time.Time) string {
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return plural(days/7, "week")
	case days < 365:
		return plural(days/30, "month")
	default:
		return plural(days/365, "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
