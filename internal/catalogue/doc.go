// Package catalogue loads, builds, and persists the conference catalogue.
//
// The catalogue originates as a CSV export (possibly in a Japanese legacy
// encoding) and is normalized into a JSON document: one entry per
// conference, deduplicated by normalized full name, each carrying the
// per-year information map the update engine fills in. The JSON file is the
// single durable artifact; everything else is recomputed per run.
package catalogue
