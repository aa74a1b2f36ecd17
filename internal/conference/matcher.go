package conference

import (
	"regexp"
	"strings"
)

// Matcher decides whether a text fragment plausibly names one conference.
// Build one per conference and reuse it across candidates.
type Matcher struct {
	name    string
	pattern *regexp.Regexp
}

// NormalizeName lowercases, drops a leading "ACM " token, and trims. It is
// applied to both the conference name and candidate text; internal spacing
// is kept so acronyms embedded in longer phrases still match.
func NormalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSpace(strings.TrimPrefix(s, "acm "))
}

// NewMatcher compiles the match pattern for a conference name. Names of
// three characters or fewer must be bounded by start/end of string,
// whitespace, or a colon on both sides, so "CC" matches ": CC 2026" but not
// "AI-CC". Longer names use plain word boundaries.
func NewMatcher(name string) *Matcher {
	normalized := NormalizeName(name)
	quoted := regexp.QuoteMeta(normalized)
	var expr string
	if len(normalized) <= 3 {
		expr = `(?:^|[\s:])` + quoted + `(?:[\s:]|$)`
	} else {
		expr = `\b` + quoted + `\b`
	}
	return &Matcher{name: normalized, pattern: regexp.MustCompile(expr)}
}

// Matches reports whether text contains the conference name.
func (m *Matcher) Matches(text string) bool {
	return m.pattern.MatchString(NormalizeName(text))
}

// MatchFields records which candidate fields matched the conference name.
// Which field matched feeds the quality score.
type MatchFields struct {
	Link  bool
	Title bool
	When  bool
}

// Any reports whether at least one field matched.
func (f MatchFields) Any() bool {
	return f.Link || f.Title || f.When
}

// MatchCandidate tests the three candidate text fields independently.
func (m *Matcher) MatchCandidate(c *Candidate) MatchFields {
	return MatchFields{
		Link:  m.Matches(c.LinkText),
		Title: m.Matches(c.EventTitle),
		When:  m.Matches(c.WhenText),
	}
}
