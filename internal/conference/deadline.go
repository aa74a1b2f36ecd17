package conference

import "strings"

// A table row is treated as a deadline only if its label mentions one of
// these keywords.
var deadlineKeywords = []string{
	"deadline",
	"due",
	"submission",
	"notification",
	"registration",
	"camera",
	"final",
}

func isDeadlineLabel(label string) bool {
	for _, kw := range deadlineKeywords {
		if strings.Contains(label, kw) {
			return true
		}
	}
	return false
}

// ClassifyDeadline maps a row label to a deadline kind. The rules are
// ordered and the first match wins; anything that passed the keyword gate
// but matches no rule is "other".
func ClassifyDeadline(label string) DeadlineKind {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "abstract") && strings.Contains(l, "registration"):
		return KindAbstractRegistration
	case strings.Contains(l, "submission deadline") || strings.Contains(l, "submission due"):
		return KindSubmission
	case strings.Contains(l, "notification"):
		return KindNotification
	case strings.Contains(l, "final version") || strings.Contains(l, "camera ready"):
		return KindCameraReady
	case strings.Contains(l, "workshop"):
		return KindWorkshop
	case strings.Contains(l, "poster"):
		return KindPoster
	case strings.Contains(l, "demo"):
		return KindDemo
	default:
		return KindOther
	}
}

// ExtractFacts turns raw label/value table rows into typed deadlines and a
// conference date range. A row labeled exactly "when" supplies the date
// range rather than a deadline. Rows whose value does not parse as a date
// are skipped individually; one bad row never poisons the rest.
func ExtractFacts(rows []RawRow) ([]Deadline, DateRange) {
	var deadlines []Deadline
	var dates DateRange
	for _, row := range rows {
		label := strings.ToLower(strings.TrimSpace(row.Label))
		if label == "when" {
			if r := ParseDateRange(row.Value); !r.IsZero() {
				dates = r
			}
			continue
		}
		if !isDeadlineLabel(label) {
			continue
		}
		date := ParseDate(row.Value)
		if date.IsZero() {
			continue
		}
		deadlines = append(deadlines, Deadline{
			Kind:  ClassifyDeadline(label),
			Date:  date,
			Label: strings.TrimSpace(row.Label),
		})
	}
	return deadlines, dates
}

// DedupeDeadlines drops later duplicates of a (kind, date) key, preserving
// first-occurrence order. Label differences do not affect equality.
func DedupeDeadlines(deadlines []Deadline) []Deadline {
	type key struct {
		kind DeadlineKind
		date string
	}
	seen := make(map[key]bool, len(deadlines))
	unique := make([]Deadline, 0, len(deadlines))
	for _, d := range deadlines {
		k := key{d.Kind, d.Date.String()}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, d)
	}
	return unique
}
