package conference

// PredictNextYear derives the following year's record from a confirmed one:
// every deadline keeps its kind and label with the date advanced by one
// calendar year, and the conference date range moves the same way, start
// and end independently. Everything produced is flagged predicted.
//
// No prediction is made from a record that is itself predicted or that
// carries no facts, which structurally limits prediction to a single hop
// past the last confirmed year.
func PredictNextYear(prev YearRecord) (YearRecord, bool) {
	if prev.IsPredicted || prev.IsEmpty() {
		return YearRecord{}, false
	}

	next := YearRecord{IsPredicted: true}
	for _, d := range prev.Deadlines {
		if d.Date.IsZero() {
			continue
		}
		next.Deadlines = append(next.Deadlines, Deadline{
			Kind:        d.Kind,
			Date:        addOneYear(d.Date),
			Label:       d.Label,
			IsPredicted: true,
		})
	}
	if !prev.ConferenceDates.Start.IsZero() {
		next.ConferenceDates.Start = addOneYear(prev.ConferenceDates.Start)
	}
	if !prev.ConferenceDates.End.IsZero() {
		next.ConferenceDates.End = addOneYear(prev.ConferenceDates.End)
	}

	if next.IsEmpty() {
		return YearRecord{}, false
	}
	return next, true
}

// addOneYear advances by one calendar year; Feb 29 normalizes to Mar 1.
func addOneYear(d Date) Date {
	return Date{d.AddDate(1, 0, 0)}
}
