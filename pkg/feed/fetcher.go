package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
)

// Entry is a raw feed entry before normalization
type Entry struct {
	Title       string
	Link        string
	GUID        string
	Description string
	Content     string
	Published   *time.Time
	// raw date strings in priority order, for entries where the feed
	// library could not parse the timestamp itself
	DateCandidates []string
}

// defaultBaseURL is the production search feed endpoint
const defaultBaseURL = "https://news.google.com/rss/search"

// Config holds fetcher settings
type Config struct {
	BaseURL       string // search feed endpoint, defaults to Google News
	Language      string
	Region        string
	PerQueryLimit int
	Timeout       time.Duration
	UserAgent     string
}

// Fetcher retrieves search feeds for query strings
type Fetcher struct {
	cfg    Config
	client *http.Client
}

// NewFetcher creates a feed fetcher with a bounded per-request timeout
func NewFetcher(cfg Config) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.PerQueryLimit == 0 {
		cfg.PerQueryLimit = 50
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Fetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// SearchURL builds the search feed endpoint for a query string with the
// configured locale parameters.
func (f *Fetcher) SearchURL(query string) string {
	return fmt.Sprintf("%s?q=%s&hl=%s&gl=%s&ceid=%s:%s",
		f.cfg.BaseURL, url.QueryEscape(query), f.cfg.Language, f.cfg.Region, f.cfg.Region, f.cfg.Language)
}

// Fetch retrieves and parses the search feed for a single query. Returns at
// most PerQueryLimit raw entries. A timeout, HTTP or parse failure is returned
// to the caller; it never aborts other queries.
func (f *Fetcher) Fetch(ctx context.Context, query string) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	body, err := f.get(ctx, f.SearchURL(query))
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	entries := make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if len(entries) >= f.cfg.PerQueryLimit {
			break
		}

		entry := Entry{
			Title:       item.Title,
			Link:        item.Link,
			GUID:        item.GUID,
			Description: item.Description,
			Content:     item.Content,
		}

		// prefer timestamps the feed library already parsed
		if item.PublishedParsed != nil {
			entry.Published = item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			entry.Published = item.UpdatedParsed
		}
		if item.Published != "" {
			entry.DateCandidates = append(entry.DateCandidates, item.Published)
		}
		if item.Updated != "" {
			entry.DateCandidates = append(entry.DateCandidates, item.Updated)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// get retrieves content from a URL
func (f *Fetcher) get(ctx context.Context, feedURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.cfg.UserAgent)
	addFeedHeaders(req, f.cfg.Language)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
