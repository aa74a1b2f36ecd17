package conference

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

type fakeFetcher struct {
	candidates []Candidate
	err        error
	calls      int
}

func (f *fakeFetcher) Lookup(name string) ([]Candidate, error) {
	f.calls++
	return f.candidates, f.err
}

func fixedNow(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func TestTargetYears(t *testing.T) {
	today := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	got := TargetYears(today, 3)
	want := []int{2025, 2026, 2027}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TargetYears() = %v, want %v", got, want)
	}
}

func TestUpdater_Update_ScrapedYearOnly(t *testing.T) {
	// One candidate with facts for a single year. Only that year is
	// written; the following year gets no prediction in the same pass
	// because its basis year was itself written this pass.
	fetcher := &fakeFetcher{
		candidates: []Candidate{
			{
				SourceURL:  "http://www.wikicfp.com/cfp/servlet/event.showcfp?eventid=12345",
				LinkText:   "WWW 2026",
				PageTitle:  "WWW 2026 : The Web Conference",
				EventTitle: "The Web 2026 : WWW 2026",
				Rows: []RawRow{
					{Label: "When", Value: "Apr 13, 2026 - Apr 17, 2026"},
					{Label: "Submission Deadline", Value: "October 1, 2025"},
					{Label: "Notification Due", Value: "December 15, 2025"},
				},
			},
		},
	}

	u := NewUpdater(fetcher, 3)
	u.Now = fixedNow(2025, time.March, 1)

	conf := &Conference{Name: "World Wide Web Conference", ShortName: "WWW"}
	out := u.Update(conf)

	if !reflect.DeepEqual(out.Found, []int{2026}) {
		t.Errorf("Found = %v, want [2026]", out.Found)
	}
	if out.Predicted != nil {
		t.Errorf("Predicted = %v, want none", out.Predicted)
	}

	rec, ok := conf.Information[2026]
	if !ok {
		t.Fatal("no record written for 2026")
	}
	if rec.IsPredicted {
		t.Error("scraped record flagged as predicted")
	}
	if len(rec.Deadlines) != 2 {
		t.Fatalf("record has %d deadlines, want 2", len(rec.Deadlines))
	}
	if !rec.ConferenceDates.Start.Equal(NewDate(2026, time.April, 13).Time) {
		t.Errorf("start = %v, want 2026-04-13", rec.ConferenceDates.Start)
	}

	if _, ok := conf.Information[2025]; ok {
		t.Error("record written for 2025, want none")
	}
	if _, ok := conf.Information[2027]; ok {
		t.Error("record written for 2027: prediction chained within a single pass")
	}

	if conf.URL != "http://www.wikicfp.com/cfp/servlet/event.showcfp?eventid=12345" {
		t.Errorf("URL = %q, want candidate source URL", conf.URL)
	}
}

func TestUpdater_Update_PredictsFromPriorPass(t *testing.T) {
	// 2026 was confirmed in an earlier pass; a second pass that finds
	// nothing predicts 2027 from it.
	fetcher := &fakeFetcher{}
	u := NewUpdater(fetcher, 3)
	u.Now = fixedNow(2025, time.March, 1)

	conf := &Conference{
		Name:      "World Wide Web Conference",
		ShortName: "WWW",
		Information: map[int]YearRecord{
			2026: {
				Deadlines: []Deadline{
					{Kind: KindSubmission, Date: NewDate(2025, time.October, 1), Label: "Submission Deadline"},
				},
				ConferenceDates: DateRange{
					Start: NewDate(2026, time.April, 13),
					End:   NewDate(2026, time.April, 17),
				},
			},
		},
	}

	out := u.Update(conf)

	if out.Found != nil {
		t.Errorf("Found = %v, want none", out.Found)
	}
	if !reflect.DeepEqual(out.Predicted, []int{2027}) {
		t.Errorf("Predicted = %v, want [2027]", out.Predicted)
	}

	rec, ok := conf.Information[2027]
	if !ok {
		t.Fatal("no record predicted for 2027")
	}
	if !rec.IsPredicted {
		t.Error("predicted record not flagged IsPredicted")
	}
	if len(rec.Deadlines) != 1 || !rec.Deadlines[0].Date.Equal(NewDate(2026, time.October, 1).Time) {
		t.Errorf("predicted deadlines = %+v, want one on 2026-10-01", rec.Deadlines)
	}

	// 2025 has no basis year on file, so it stays absent.
	if _, ok := conf.Information[2025]; ok {
		t.Error("record written for 2025, want none")
	}
}

func TestUpdater_Update_PredictionNeverChains(t *testing.T) {
	// 2026 is itself predicted; 2027 must not be derived from it.
	fetcher := &fakeFetcher{}
	u := NewUpdater(fetcher, 3)
	u.Now = fixedNow(2025, time.March, 1)

	conf := &Conference{
		ShortName: "WWW",
		Information: map[int]YearRecord{
			2026: {
				Deadlines: []Deadline{
					{Kind: KindSubmission, Date: NewDate(2025, time.October, 1), IsPredicted: true},
				},
				IsPredicted: true,
			},
		},
	}

	out := u.Update(conf)
	if out.Predicted != nil {
		t.Errorf("Predicted = %v, want none", out.Predicted)
	}
	if _, ok := conf.Information[2027]; ok {
		t.Error("2027 predicted from a predicted basis year")
	}
}

func TestUpdater_Update_ActualReplacesPredicted(t *testing.T) {
	fetcher := &fakeFetcher{
		candidates: []Candidate{
			{
				SourceURL:  "http://www.wikicfp.com/cfp/servlet/event.showcfp?eventid=67890",
				LinkText:   "WWW 2026",
				PageTitle:  "WWW 2026 : The Web Conference",
				EventTitle: "The Web 2026 : WWW 2026",
				Rows: []RawRow{
					{Label: "Submission Deadline", Value: "October 7, 2025"},
				},
			},
		},
	}
	u := NewUpdater(fetcher, 3)
	u.Now = fixedNow(2025, time.March, 1)

	conf := &Conference{
		ShortName: "WWW",
		Information: map[int]YearRecord{
			2026: {
				Deadlines: []Deadline{
					{Kind: KindSubmission, Date: NewDate(2025, time.October, 1), Label: "Submission Deadline", IsPredicted: true},
				},
				IsPredicted: true,
			},
		},
	}

	out := u.Update(conf)

	if !reflect.DeepEqual(out.Found, []int{2026}) {
		t.Errorf("Found = %v, want [2026]", out.Found)
	}
	if !reflect.DeepEqual(out.Replaced, []int{2026}) {
		t.Errorf("Replaced = %v, want [2026]", out.Replaced)
	}

	rec := conf.Information[2026]
	if rec.IsPredicted {
		t.Error("record still flagged predicted after actual data arrived")
	}
	if len(rec.Deadlines) != 1 || !rec.Deadlines[0].Date.Equal(NewDate(2025, time.October, 7).Time) {
		t.Errorf("deadlines = %+v, want one actual on 2025-10-07", rec.Deadlines)
	}
}

func TestUpdater_Update_BestCandidatePerYear(t *testing.T) {
	// Two candidates for the same year; the link-text match beats the
	// title-only match regardless of arrival order.
	fetcher := &fakeFetcher{
		candidates: []Candidate{
			{
				SourceURL:  "http://www.wikicfp.com/cfp/servlet/event.showcfp?eventid=1",
				LinkText:   "TheWebConf",
				PageTitle:  "WWW 2026 : The Web Conference",
				EventTitle: "The Web 2026 : WWW 2026",
				Rows: []RawRow{
					{Label: "Submission Deadline", Value: "October 1, 2025"},
					{Label: "Notification Due", Value: "December 15, 2025"},
				},
			},
			{
				SourceURL:  "http://www.wikicfp.com/cfp/servlet/event.showcfp?eventid=2",
				LinkText:   "WWW 2026",
				PageTitle:  "WWW 2026 : The Web Conference",
				EventTitle: "The Web Conference",
				Rows: []RawRow{
					{Label: "Submission Deadline", Value: "October 7, 2025"},
				},
			},
		},
	}
	u := NewUpdater(fetcher, 3)
	u.Now = fixedNow(2025, time.March, 1)

	conf := &Conference{ShortName: "WWW"}
	u.Update(conf)

	rec := conf.Information[2026]
	if len(rec.Deadlines) != 1 || !rec.Deadlines[0].Date.Equal(NewDate(2025, time.October, 7).Time) {
		t.Errorf("deadlines = %+v, want the link-text candidate's single deadline", rec.Deadlines)
	}
	if conf.URL != "http://www.wikicfp.com/cfp/servlet/event.showcfp?eventid=2" {
		t.Errorf("URL = %q, want winning candidate's URL", conf.URL)
	}
}

func TestUpdater_Update_OutOfWindowYearIgnored(t *testing.T) {
	fetcher := &fakeFetcher{
		candidates: []Candidate{
			{
				LinkText:  "WWW 2030",
				PageTitle: "WWW 2030 : The Web Conference",
				Rows: []RawRow{
					{Label: "Submission Deadline", Value: "October 1, 2029"},
				},
			},
		},
	}
	u := NewUpdater(fetcher, 3)
	u.Now = fixedNow(2025, time.March, 1)

	conf := &Conference{ShortName: "WWW"}
	out := u.Update(conf)

	if out.Found != nil {
		t.Errorf("Found = %v, want none", out.Found)
	}
	if len(conf.Information) != 0 {
		t.Errorf("Information = %v, want empty", conf.Information)
	}
}

func TestUpdater_Update_LookupErrorFallsBackToPrediction(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	u := NewUpdater(fetcher, 3)
	u.Now = fixedNow(2025, time.March, 1)

	conf := &Conference{
		ShortName: "WWW",
		Information: map[int]YearRecord{
			2025: {
				Deadlines: []Deadline{
					{Kind: KindSubmission, Date: NewDate(2024, time.October, 1), Label: "Submission Deadline"},
				},
			},
		},
	}

	out := u.Update(conf)

	if !reflect.DeepEqual(out.Predicted, []int{2026}) {
		t.Errorf("Predicted = %v, want [2026]", out.Predicted)
	}
	// The freshly predicted 2026 existed only within this pass, so 2027
	// stays absent.
	if _, ok := conf.Information[2027]; ok {
		t.Error("2027 predicted from a record created this pass")
	}
}

func TestUpdater_Update_SearchNamePrefersShortName(t *testing.T) {
	fetcher := &fakeFetcher{}
	u := NewUpdater(fetcher, 3)
	u.Now = fixedNow(2025, time.March, 1)

	conf := &Conference{Name: "International Conference on Management of Data", ShortName: "SIGMOD"}
	u.Update(conf)

	if fetcher.calls != 1 {
		t.Fatalf("Lookup called %d times, want 1", fetcher.calls)
	}
	if got := conf.SearchName(); got != "SIGMOD" {
		t.Errorf("SearchName() = %q, want %q", got, "SIGMOD")
	}
}

func TestUpdateAll(t *testing.T) {
	fetcher := &fakeFetcher{}
	u := NewUpdater(fetcher, 3)
	u.Now = fixedNow(2025, time.March, 1)

	confs := []*Conference{
		{ShortName: "WWW"},
		{ShortName: "SIGMOD"},
		{ShortName: "NeurIPS"},
	}
	u.UpdateAll(confs, 0)

	if fetcher.calls != 3 {
		t.Errorf("Lookup called %d times, want 3", fetcher.calls)
	}
}
