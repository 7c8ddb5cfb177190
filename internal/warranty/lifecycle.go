// Package warranty derives warranty windows from sale dates and evaluates
// warranty status against a reference time.
package warranty

import (
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used for all stored dates.
const DateLayout = "2006-01-02"

// Status is the derived warranty state.
type Status string

const (
	StatusActive  Status = "Active"
	StatusExpired Status = "Expired"
	StatusNone    Status = "N/A"
)

// Window is the warranty coverage period as ISO dates.
type Window struct {
	Start string `json:"warranty_start_date"`
	End   string `json:"warranty_end_date"`
}

// Derive computes the one-year warranty window starting on saleDate. Dates
// that do not parse report false and leave the caller's fields untouched.
func Derive(saleDate string) (Window, bool) {
	sold, ok := ParseDate(saleDate)
	if !ok {
		return Window{}, false
	}
	return Window{
		Start: sold.Format(DateLayout),
		End:   AddTerm(sold).Format(DateLayout),
	}, true
}

// AddTerm advances t by the fixed one-year warranty term. A Feb 29 start ends
// on Feb 28 of the following year instead of rolling into March.
func AddTerm(t time.Time) time.Time {
	if t.Month() == time.February && t.Day() == 29 {
		return time.Date(t.Year()+1, time.February, 28, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	}
	return t.AddDate(1, 0, 0)
}

// StatusAt evaluates an end date against now. The end date is inclusive: a
// warranty ending today is still active. Missing or unparseable end dates
// yield StatusNone.
func StatusAt(endDate string, now time.Time) Status {
	end, ok := ParseDate(endDate)
	if !ok {
		return StatusNone
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if end.Before(today) {
		return StatusExpired
	}
	return StatusActive
}

// ParseDate reads an ISO date, tolerating a trailing time component. The
// result is a UTC midnight.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	if len(s) > len(DateLayout) {
		if t, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDisplay renders an ISO date as dd/MM/yyyy, or "-" when absent.
func FormatDisplay(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return "-"
	}
	return t.Format("02/01/2006")
}
