// Package pipeline runs one ingestion pass: fetch each configured query feed,
// normalize and score the entries, dedup across queries and write the JSON
// artifact.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/newsradar/pkg/aggregator"
	"github.com/umputun/newsradar/pkg/domain"
	"github.com/umputun/newsradar/pkg/feed"
	"github.com/umputun/newsradar/pkg/signal"
)

// ErrNoItems signals a total-failure run: zero items produced with at least
// one configured query. Partial per-query failures are not errors.
var ErrNoItems = errors.New("no items produced")

// Fetcher retrieves raw entries for a query string
type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]feed.Entry, error)
	SearchURL(query string) string
}

// Extractor pulls full article text, used to backfill empty summaries
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Runner executes ingestion runs. Each run is a single-pass batch job with no
// state carried across runs.
type Runner struct {
	fetcher      Fetcher
	normalizer   *feed.Normalizer
	extractor    Extractor // nil when extraction is disabled
	queries      []string
	maxItems     int
	artifactPath string
}

// NewRunner creates a pipeline runner
func NewRunner(fetcher Fetcher, normalizer *feed.Normalizer, extractor Extractor,
	queries []string, maxItems int, artifactPath string) *Runner {
	return &Runner{
		fetcher:      fetcher,
		normalizer:   normalizer,
		extractor:    extractor,
		queries:      queries,
		maxItems:     maxItems,
		artifactPath: artifactPath,
	}
}

// Run executes one ingestion pass and writes the artifact. Queries are
// processed sequentially so error records keep configuration order. On total
// failure the previous artifact is left in place and ErrNoItems is returned.
func (r *Runner) Run(ctx context.Context) (*domain.Artifact, error) {
	started := time.Now()
	collected := make([]domain.Item, 0, len(r.queries)*16)
	queryErrors := []domain.QueryError{}

	for _, query := range r.queries {
		entries, err := r.fetchWithRetry(ctx, query)
		if err != nil {
			lgr.Printf("[WARN] fetch failed for query %q: %v", query, err)
			queryErrors = append(queryErrors, domain.QueryError{
				Query: query,
				URL:   r.fetcher.SearchURL(query),
				Error: err.Error(),
			})
			continue
		}

		kept := 0
		for _, entry := range entries {
			item, ok := r.normalizer.Normalize(entry, query)
			if !ok {
				continue // no usable identity, dropped silently
			}
			r.backfillSummary(ctx, &item)
			r.enrich(&item)
			collected = append(collected, item)
			kept++
		}
		lgr.Printf("[INFO] query %q: %d entries, %d kept", query, len(entries), kept)
	}

	items := aggregator.SortAndTruncate(aggregator.Merge(collected), r.maxItems)

	artifact := &domain.Artifact{
		GeneratedAt: time.Now().UTC(),
		ItemCount:   len(items),
		QueryCount:  len(r.queries),
		Errors:      queryErrors,
		Items:       items,
	}

	if len(items) == 0 && len(r.queries) > 0 {
		return artifact, ErrNoItems
	}

	if err := aggregator.Write(artifact, r.artifactPath); err != nil {
		return artifact, err
	}

	lgr.Printf("[INFO] run completed in %v: %d items, %d query errors",
		time.Since(started).Round(time.Millisecond), len(items), len(queryErrors))
	return artifact, nil
}

// fetchWithRetry retries transient fetch failures with backoff
func (r *Runner) fetchWithRetry(ctx context.Context, query string) ([]feed.Entry, error) {
	var entries []feed.Entry
	retrier := repeater.NewBackoff(3, time.Second, repeater.WithMaxDelay(5*time.Second))
	err := retrier.Do(ctx, func() error {
		var ferr error
		entries, ferr = r.fetcher.Fetch(ctx, query)
		return ferr
	})
	return entries, err
}

// backfillSummary fills an empty summary from extracted page text
func (r *Runner) backfillSummary(ctx context.Context, item *domain.Item) {
	if r.extractor == nil || item.Summary != "" {
		return
	}
	text, err := r.extractor.Extract(ctx, item.URL)
	if err != nil {
		lgr.Printf("[DEBUG] extraction failed for %s: %v", item.URL, err)
		return
	}
	item.Summary = r.normalizer.Summary(text)
}

// enrich computes score, bucket, tags and numeric metrics for an item
func (r *Runner) enrich(item *domain.Item) {
	res := signal.Score(item.Title, item.Summary)
	item.SignalScore = res.Score
	item.SignalBucket = res.Bucket
	item.Tags = signal.Tags(res.Score > 0, item.Title, item.Summary)
	item.Metrics = signal.ExtractMetrics(item.Title, item.Summary)
}
