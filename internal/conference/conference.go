package conference

// Conference represents one tracked conference from the catalogue.
// The engine only mutates Information and URL; the identity fields are
// owned by the catalogue ingester.
type Conference struct {
	Name        string             `json:"name"`
	ShortName   string             `json:"short_name"`
	Themes      []string           `json:"themes"`
	Rank        string             `json:"rank,omitempty"`
	Category    string             `json:"category,omitempty"`
	Information map[int]YearRecord `json:"information"`
	URL         string             `json:"url"`
}

// SearchName returns the name used for remote lookups, preferring the short
// name (acronym) because that is what event listings key on.
func (c *Conference) SearchName() string {
	if c.ShortName != "" {
		return c.ShortName
	}
	return c.Name
}

// YearRecord holds the finalized deadline and date facts for one conference
// in one calendar year. Records are overwritten whole, never merged: a new
// winning candidate fully replaces whatever was there, and actual data
// always displaces a predicted record.
type YearRecord struct {
	Deadlines       []Deadline `json:"deadlines"`
	ConferenceDates DateRange  `json:"conference_dates"`
	IsPredicted     bool       `json:"is_predicted,omitempty"`
}

// IsEmpty reports whether the record carries no facts at all.
func (r YearRecord) IsEmpty() bool {
	return len(r.Deadlines) == 0 && r.ConferenceDates.IsZero()
}

// DateRange is a conference's start/end dates. Either end may be absent.
type DateRange struct {
	Start Date `json:"start,omitzero"`
	End   Date `json:"end,omitzero"`
}

// IsZero reports whether neither endpoint is set.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// DeadlineKind classifies a dated submission-process milestone.
type DeadlineKind string

const (
	KindAbstractRegistration DeadlineKind = "abstract_registration"
	KindSubmission           DeadlineKind = "submission"
	KindNotification         DeadlineKind = "notification"
	KindCameraReady          DeadlineKind = "camera_ready"
	KindWorkshop             DeadlineKind = "workshop"
	KindPoster               DeadlineKind = "poster"
	KindDemo                 DeadlineKind = "demo"
	KindOther                DeadlineKind = "other"
)

// Deadline is a single milestone. (Kind, Date) is the uniqueness key within
// a YearRecord; Label keeps the original source text for display.
type Deadline struct {
	Kind        DeadlineKind `json:"type"`
	Date        Date         `json:"date"`
	Label       string       `json:"label"`
	IsPredicted bool         `json:"is_predicted,omitempty"`
}

// Candidate is one scraped, unresolved event that may or may not belong to a
// tracked conference. Candidates are transient: consumed within a single
// update pass and never persisted.
type Candidate struct {
	SourceURL  string
	PageTitle  string
	EventTitle string
	WhenText   string
	LinkText   string
	Rows       []RawRow
}

// RawRow is one label/value pair scraped from an event page's detail table.
type RawRow struct {
	Label string
	Value string
}
