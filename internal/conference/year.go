package conference

import (
	"regexp"
	"strconv"
)

// YearSource identifies which signal produced a resolved event year, in
// decreasing order of confidence.
type YearSource int

const (
	YearFromTitle YearSource = iota + 1
	YearFromConferenceDate
	YearFromDeadline
)

func (s YearSource) String() string {
	switch s {
	case YearFromTitle:
		return "title"
	case YearFromConferenceDate:
		return "conference_date"
	case YearFromDeadline:
		return "deadline"
	default:
		return "unknown"
	}
}

// Only the head of the page title is searched for a year; titles tend to
// lead with "ACL 2025 : ..." and later digits are noise.
const titleYearWindow = 50

var titleYearPattern = regexp.MustCompile(`\b(20\d{2})\b`)

// ResolveYear infers which calendar year a candidate event describes.
// Priority: a 4-digit 20xx token near the start of the page title, then the
// year of the parsed conference start date, then the first parsed deadline's
// year plus one. The deadline fallback assumes a submission deadline
// precedes its conference by a year; it is a known-approximate heuristic
// kept as the last resort because dropping it loses sparse events entirely.
func ResolveYear(pageTitle string, dates DateRange, deadlines []Deadline) (int, YearSource, bool) {
	head := pageTitle
	if len(head) > titleYearWindow {
		head = head[:titleYearWindow]
	}
	if m := titleYearPattern.FindString(head); m != "" {
		year, err := strconv.Atoi(m)
		if err == nil {
			return year, YearFromTitle, true
		}
	}

	if !dates.Start.IsZero() {
		return dates.Start.Year(), YearFromConferenceDate, true
	}

	for _, d := range deadlines {
		if !d.Date.IsZero() {
			return d.Date.Year() + 1, YearFromDeadline, true
		}
	}

	return 0, 0, false
}
