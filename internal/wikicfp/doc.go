// Package wikicfp provides HTTP fetching and HTML parsing for WikiCFP
// call-for-papers listings.
//
// The client searches the public WikiCFP search servlet for a conference
// name across all years, follows each event link, and extracts the raw
// material the matching engine needs: page title, event heading, link text,
// and the label/value rows of the important-dates table. It performs no
// matching itself; everything it returns is a raw candidate.
package wikicfp
