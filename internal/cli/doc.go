// Package cli implements the cfp-tracker command-line interface.
//
// Two subcommands cover the pipeline: "ingest" converts the source
// conference CSV into the catalogue JSON, and "update" scrapes WikiCFP for
// every catalogued conference and rewrites each one's per-year deadline
// records, predicting years that have no live data.
package cli
