package conference

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date is a calendar date that serializes as "2006-01-02". The zero value
// means "no date".
type Date struct {
	time.Time
}

// NewDate builds a Date at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// MarshalJSON encodes the date as an ISO string, or null when absent.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// UnmarshalJSON accepts an ISO date string, an empty string, or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Date formats accepted by ParseDate, tried in order.
var dateLayouts = []string{
	"January 2, 2006", // October 1, 2025
	"Jan 2, 2006",     // Oct 1, 2025
	"2006-01-02",      // 2025-10-01
	"2 January 2006",  // 1 October 2025
	"2 Jan 2006",      // 1 Oct 2025
}

// Placeholder values that mean "no date yet".
var nonDateValues = map[string]bool{
	"tbd":  true,
	"n/a":  true,
	"none": true,
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ParseDate parses free-text into a Date. Internal whitespace runs are
// collapsed first; empty and placeholder values ("TBD", "N/A", "None")
// yield the zero Date, as does text matching none of the known layouts.
func ParseDate(text string) Date {
	cleaned := strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	if cleaned == "" || nonDateValues[strings.ToLower(cleaned)] {
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return Date{t}
		}
	}
	return Date{}
}

// Date-like tokens inside a free-text range, e.g. "Oct 12, 2026" in
// "Oct 12, 2026 - Oct 16, 2026 (Dubrovnik, Croatia)".
var dateTokenPattern = regexp.MustCompile(`\w+ \d+(?:, \d{4})?`)

// ParseDateRange pulls the first and last date-like token out of a range
// string and parses each independently. Both ends must parse for a range to
// be produced.
func ParseDateRange(text string) DateRange {
	tokens := dateTokenPattern.FindAllString(text, -1)
	if len(tokens) < 2 {
		return DateRange{}
	}
	start := ParseDate(tokens[0])
	end := ParseDate(tokens[len(tokens)-1])
	if start.IsZero() || end.IsZero() {
		return DateRange{}
	}
	return DateRange{Start: start, End: end}
}
