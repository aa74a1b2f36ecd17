package conference

import (
	"time"

	"github.com/yukimura/cfp-tracker/internal/logger"
)

// Fetcher supplies raw candidate events for a conference name. A failed
// lookup is treated the same as finding nothing.
type Fetcher interface {
	Lookup(name string) ([]Candidate, error)
}

// DefaultWindow is the number of target years reconciled per pass: the
// current calendar year and the next two.
const DefaultWindow = 3

// Updater reconciles fetched candidates into per-year conference records.
type Updater struct {
	fetcher Fetcher
	window  int

	// Now supplies the clock for target-year and tie-break decisions.
	// Overridable in tests.
	Now func() time.Time
}

// NewUpdater creates an Updater over the given fetcher. A non-positive
// window falls back to DefaultWindow.
func NewUpdater(fetcher Fetcher, window int) *Updater {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Updater{
		fetcher: fetcher,
		window:  window,
		Now:     time.Now,
	}
}

// TargetYears returns the window of years to reconcile, starting at today's.
func TargetYears(today time.Time, window int) []int {
	years := make([]int, 0, window)
	for i := 0; i < window; i++ {
		years = append(years, today.Year()+i)
	}
	return years
}

// Outcome summarizes one conference's update pass.
type Outcome struct {
	Found     []int // years written from actual scraped data
	Replaced  []int // subset of Found that displaced a predicted record
	Predicted []int // years synthesized from the prior year
}

// Update runs one reconciliation pass for a single conference. Nothing in
// here is fatal: lookup failures degrade to the prediction-only path, and
// unattributable candidates are skipped one at a time.
func (u *Updater) Update(conf *Conference) Outcome {
	today := u.Now()
	years := TargetYears(today, u.window)
	name := conf.SearchName()

	var out Outcome

	candidates, err := u.fetcher.Lookup(name)
	if err != nil {
		logger.Warn("lookup failed, continuing with no candidates", logger.Fields{
			"conference": name,
			"error":      err.Error(),
		})
		candidates = nil
	}

	if conf.Information == nil {
		conf.Information = make(map[int]YearRecord)
	}

	// Years that already had a record before this pass wrote anything.
	// Prediction may only build on these, so a year first found in this
	// pass never seeds its successor within the same pass.
	hadRecord := make(map[int]bool, len(conf.Information))
	for year := range conf.Information {
		hadRecord[year] = true
	}

	matcher := NewMatcher(name)
	best := make(map[int]*Resolution)
	for i := range candidates {
		cand := candidates[i]
		fields := matcher.MatchCandidate(&cand)
		if !fields.Any() {
			continue
		}

		deadlines, dates := ExtractFacts(cand.Rows)
		year, source, ok := ResolveYear(cand.PageTitle, dates, deadlines)
		if !ok {
			logger.Debug("candidate has no resolvable year", logger.Fields{
				"conference": name,
				"url":        cand.SourceURL,
			})
			continue
		}
		if !containsYear(years, year) {
			continue
		}

		res := &Resolution{
			Candidate: cand,
			Fields:    fields,
			Year:      year,
			Source:    source,
			Quality:   ScoreMatch(fields, cand.EventTitle),
			Deadlines: DedupeDeadlines(deadlines),
			Dates:     dates,
		}
		if cur, exists := best[year]; !exists || Preferred(res, cur, today) {
			best[year] = res
		}
	}

	// Refresh the conference URL from the most recent matched year.
	for i := len(years) - 1; i >= 0; i-- {
		if res, ok := best[years[i]]; ok && res.Candidate.SourceURL != "" {
			conf.URL = res.Candidate.SourceURL
			break
		}
	}

	// Write winners. Actual data fully replaces whatever the year held,
	// predicted or not.
	for _, year := range years {
		res, ok := best[year]
		if !ok {
			continue
		}
		if prev, exists := conf.Information[year]; exists && prev.IsPredicted {
			logger.Info("replacing predicted data with actual data", logger.Fields{
				"conference": name,
				"year":       year,
			})
			out.Replaced = append(out.Replaced, year)
		}
		conf.Information[year] = YearRecord{
			Deadlines:       res.Deadlines,
			ConferenceDates: res.Dates,
		}
		out.Found = append(out.Found, year)
		logger.Info("year resolved from scraped data", logger.Fields{
			"conference":  name,
			"year":        year,
			"quality":     res.Quality.String(),
			"year_source": res.Source.String(),
			"deadlines":   len(res.Deadlines),
		})
	}

	// Predict still-missing target years from the immediately preceding
	// year, reading its freshest contents but requiring that it existed
	// before this pass.
	for _, year := range years {
		if _, exists := conf.Information[year]; exists {
			continue
		}
		if !hadRecord[year-1] {
			continue
		}
		prev := conf.Information[year-1]
		predicted, ok := PredictNextYear(prev)
		if !ok {
			if prev.IsPredicted {
				logger.Debug("skipping prediction, prior year is itself predicted", logger.Fields{
					"conference": name,
					"year":       year,
				})
			}
			continue
		}
		conf.Information[year] = predicted
		out.Predicted = append(out.Predicted, year)
		logger.Info("year predicted from prior year", logger.Fields{
			"conference": name,
			"year":       year,
			"basis_year": year - 1,
			"deadlines":  len(predicted.Deadlines),
		})
	}

	return out
}

// UpdateAll reconciles every conference in order, pausing between entries
// to stay polite to the remote service. A single conference's failure never
// blocks the rest.
func (u *Updater) UpdateAll(confs []*Conference, delay time.Duration) {
	for i, conf := range confs {
		logger.Info("updating conference", logger.Fields{
			"conference": conf.SearchName(),
			"index":      i + 1,
			"total":      len(confs),
		})

		start := time.Now()
		out := u.Update(conf)
		logger.RecordTiming("conference.update", time.Since(start))

		for range out.Found {
			logger.IncrCounter("years.found")
		}
		for range out.Replaced {
			logger.IncrCounter("years.replaced")
		}
		for range out.Predicted {
			logger.IncrCounter("years.predicted")
		}
		if len(out.Found) == 0 && len(out.Predicted) == 0 {
			logger.IncrCounter("conferences.no_data")
			logger.Info("no data found", logger.Fields{"conference": conf.SearchName()})
		}

		if delay > 0 && i < len(confs)-1 {
			time.Sleep(delay)
		}
	}
}

func containsYear(years []int, year int) bool {
	for _, y := range years {
		if y == year {
			return true
		}
	}
	return false
}
