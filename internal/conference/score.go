package conference

import (
	"strings"
	"time"
)

// Quality ranks how strongly a candidate's text ties it to a conference.
// A match in the link's visible text is the strongest signal; a match in a
// composite title like "WWW/Internet" is the weakest admissible one.
type Quality int

const (
	QualityNone Quality = iota
	QualityCompositeTitle
	QualityCleanTitle
	QualityLinkText
)

func (q Quality) String() string {
	switch q {
	case QualityLinkText:
		return "link_text"
	case QualityCleanTitle:
		return "clean_title"
	case QualityCompositeTitle:
		return "composite_title"
	default:
		return "none"
	}
}

// ScoreMatch computes a candidate's match quality from which fields matched
// and its event title. A "/" in the title marks an umbrella listing that
// spans several topics and demotes a title match.
func ScoreMatch(fields MatchFields, eventTitle string) Quality {
	switch {
	case fields.Link:
		return QualityLinkText
	case fields.Title && !strings.Contains(eventTitle, "/"):
		return QualityCleanTitle
	case fields.Title:
		return QualityCompositeTitle
	default:
		return QualityNone
	}
}

// Resolution is a candidate that matched a conference and resolved to a
// year, with its extracted facts attached. One Resolution per year survives
// selection; losers are dropped entirely, never merged.
type Resolution struct {
	Candidate Candidate
	Fields    MatchFields
	Year      int
	Source    YearSource
	Quality   Quality
	Deadlines []Deadline
	Dates     DateRange
}

// HasFutureDeadline reports whether any deadline falls strictly after
// today's date.
func HasFutureDeadline(deadlines []Deadline, today time.Time) bool {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	for _, d := range deadlines {
		if !d.Date.IsZero() && d.Date.After(day) {
			return true
		}
	}
	return false
}

// Preferred reports whether challenger should displace incumbent as the
// sole source for their shared year. Higher quality wins outright. On equal
// quality, a candidate with an open (not-yet-passed) deadline beats one
// without; if both or neither have one, the longer deadline list wins.
func Preferred(challenger, incumbent *Resolution, today time.Time) bool {
	if challenger.Quality != incumbent.Quality {
		return challenger.Quality > incumbent.Quality
	}
	challengerOpen := HasFutureDeadline(challenger.Deadlines, today)
	incumbentOpen := HasFutureDeadline(incumbent.Deadlines, today)
	if challengerOpen != incumbentOpen {
		return challengerOpen
	}
	return len(challenger.Deadlines) > len(incumbent.Deadlines)
}
