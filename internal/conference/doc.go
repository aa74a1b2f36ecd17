// Package conference holds the matching and data-fusion engine that turns
// noisy scraped call-for-papers candidates into clean per-year conference
// records.
//
// The pipeline is: Matcher gates candidates, ExtractFacts pulls typed
// deadlines and a date range out of raw table rows, ResolveYear attributes
// each candidate to a calendar year, ScoreMatch/Preferred pick one winner
// per year, and PredictNextYear fills still-missing years by advancing the
// nearest confirmed prior year. The Updater orchestrates all of it for a
// window of target years.
package conference
