package wikicfp

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"

	"github.com/yukimura/cfp-tracker/internal/conference"
	"github.com/yukimura/cfp-tracker/internal/logger"
)

const (
	DefaultBaseURL    = "http://www.wikicfp.com"
	DefaultTimeout    = 10 * time.Second
	DefaultMaxEvents  = 30
	DefaultMaxRetries = 2
	UserAgent         = "cfp-tracker/1.0 (github.com/yukimura/cfp-tracker)"
)

// Options configure a Client. Zero values fall back to the package
// defaults; MaxRetries < 0 disables retries entirely.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxEvents  int
	MaxRetries int
}

// Client fetches candidate events from WikiCFP.
type Client struct {
	client     *http.Client
	baseURL    string
	maxEvents  int
	maxRetries uint64
}

// New creates a new WikiCFP client.
func New(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxEvents := opts.MaxEvents
	if maxEvents <= 0 {
		maxEvents = DefaultMaxEvents
	}
	var maxRetries uint64 = DefaultMaxRetries
	if opts.MaxRetries > 0 {
		maxRetries = uint64(opts.MaxRetries)
	} else if opts.MaxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		client:     &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxEvents:  maxEvents,
		maxRetries: maxRetries,
	}
}

// Lookup searches WikiCFP for a conference name across all years and
// returns one Candidate per event page that could be fetched. Individual
// event pages that fail are skipped; only a failed search is an error.
func (c *Client) Lookup(name string) ([]conference.Candidate, error) {
	params := url.Values{}
	params.Set("q", name)
	// "a" means all years, so current and future events both appear.
	params.Set("year", "a")
	searchURL := fmt.Sprintf("%s/cfp/servlet/tool.search?%s", c.baseURL, params.Encode())

	doc, err := c.getDocument(searchURL)
	if err != nil {
		return nil, fmt.Errorf("searching for %q: %w", name, err)
	}

	type eventLink struct {
		href string
		text string
	}
	var links []eventLink
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if strings.Contains(href, "eventid") && strings.Contains(href, "showcfp") {
			links = append(links, eventLink{href: href, text: strings.TrimSpace(sel.Text())})
		}
		return len(links) < c.maxEvents
	})

	candidates := make([]conference.Candidate, 0, len(links))
	for _, l := range links {
		eventURL := l.href
		if !strings.HasPrefix(eventURL, "http") {
			eventURL = c.baseURL + eventURL
		}

		cand, err := c.fetchEvent(eventURL)
		if err != nil {
			logger.Debug("skipping event page", logger.Fields{
				"url":   eventURL,
				"error": err.Error(),
			})
			continue
		}
		cand.LinkText = l.text
		candidates = append(candidates, *cand)
	}

	return candidates, nil
}

// fetchEvent pulls the raw matching material off one event page.
func (c *Client) fetchEvent(eventURL string) (*conference.Candidate, error) {
	start := time.Now()
	doc, err := c.getDocument(eventURL)
	logger.RecordTiming("wikicfp.fetch", time.Since(start))
	if err != nil {
		return nil, err
	}

	cand := &conference.Candidate{SourceURL: eventURL}
	// Page title carries the year ("WWW 2026 : ..."); the first heading is
	// the event title used for name matching.
	cand.PageTitle = strings.TrimSpace(doc.Find("title").First().Text())
	cand.EventTitle = strings.TrimSpace(doc.Find("h1, h2, h3").First().Text())

	// WikiCFP lays out important dates as <th> label / <td> value rows.
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		th := row.Find("th").First()
		td := row.Find("td").First()
		if th.Length() == 0 || td.Length() == 0 {
			return
		}
		label := strings.TrimSpace(th.Text())
		value := strings.TrimSpace(td.Text())
		if label == "" {
			return
		}
		cand.Rows = append(cand.Rows, conference.RawRow{Label: label, Value: value})
		if strings.EqualFold(label, "when") {
			cand.WhenText = value
		}
	})

	return cand, nil
}

// getDocument GETs a URL with bounded exponential-backoff retry and parses
// the body as HTML. Client errors (4xx) and malformed requests are not
// retried.
func (c *Client) getDocument(rawURL string) (*goquery.Document, error) {
	var doc *goquery.Document
	operation := func() error {
		req, err := http.NewRequest(http.MethodGet, rawURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			statusErr := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(statusErr)
			}
			return statusErr
		}

		d, err := goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("parsing HTML: %w", err))
		}
		doc = d
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return doc, nil
}
