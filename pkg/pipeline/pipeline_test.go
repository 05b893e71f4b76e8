package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsradar/pkg/domain"
	"github.com/umputun/newsradar/pkg/feed"
)

type fakeFetcher struct {
	entries map[string][]feed.Entry
	errs    map[string]error
	calls   map[string]int
}

func (f *fakeFetcher) Fetch(_ context.Context, query string) ([]feed.Entry, error) {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[query]++
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	return f.entries[query], nil
}

func (f *fakeFetcher) SearchURL(query string) string {
	return "https://feeds.example.com/rss?q=" + query
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(context.Context, string) (string, error) {
	return f.text, f.err
}

func entry(title, link, desc string, published time.Time) feed.Entry {
	return feed.Entry{Title: title, Link: link, Description: desc, Published: &published}
}

func readArtifact(t *testing.T, path string) domain.Artifact {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var artifact domain.Artifact
	require.NoError(t, json.Unmarshal(data, &artifact))
	return artifact
}

func TestRunner_Run(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 9, 0, 0, 0, time.UTC) }

	t.Run("merges items across queries", func(t *testing.T) {
		fetcher := &fakeFetcher{entries: map[string][]feed.Entry{
			"warehouse automation": {
				entry("Acme Corp - opens automated warehouse", "https://example.com/a", "AMR robotics inside", day(2)),
				entry("Quarterly roundup", "https://example.com/b", "nothing notable", day(1)),
			},
			"robotics": {
				entry("Acme Corp - opens automated warehouse", "https://example.com/a", "AMR robotics inside", day(2)),
			},
		}}

		path := filepath.Join(t.TempDir(), "items.json")
		runner := NewRunner(fetcher, feed.NewNormalizer(260), nil,
			[]string{"warehouse automation", "robotics"}, 100, path)

		artifact, err := runner.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, 2, artifact.ItemCount)
		assert.Empty(t, artifact.Errors)
		assert.Equal(t, 2, artifact.QueryCount)

		// the shared story carries both queries and the higher score
		top := artifact.Items[0]
		assert.Equal(t, "https://example.com/a", top.URL)
		assert.Equal(t, []string{"robotics", "warehouse automation"}, top.MatchedQueries)
		assert.Equal(t, domain.BucketHot, top.SignalBucket)
		assert.Contains(t, top.Tags, "signal")

		written := readArtifact(t, path)
		assert.Equal(t, artifact.ItemCount, written.ItemCount)
	})

	t.Run("failed query recorded, run continues", func(t *testing.T) {
		fetcher := &fakeFetcher{
			entries: map[string][]feed.Entry{
				"good": {entry("story", "https://example.com/s", "text", day(1))},
			},
			errs: map[string]error{"bad": errors.New("connection refused")},
		}

		path := filepath.Join(t.TempDir(), "items.json")
		runner := NewRunner(fetcher, feed.NewNormalizer(260), nil, []string{"bad", "good"}, 100, path)

		artifact, err := runner.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, artifact.ItemCount)
		require.Len(t, artifact.Errors, 1)
		assert.Equal(t, "bad", artifact.Errors[0].Query)
		assert.Equal(t, "https://feeds.example.com/rss?q=bad", artifact.Errors[0].URL)
		assert.Contains(t, artifact.Errors[0].Error, "connection refused")
		assert.GreaterOrEqual(t, fetcher.calls["bad"], 2, "transient failures are retried")
	})

	t.Run("total failure keeps previous artifact", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "items.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"item_count":42}`), 0o644))

		fetcher := &fakeFetcher{errs: map[string]error{"q": errors.New("down")}}
		runner := NewRunner(fetcher, feed.NewNormalizer(260), nil, []string{"q"}, 100, path)

		artifact, err := runner.Run(context.Background())
		require.ErrorIs(t, err, ErrNoItems)
		assert.Equal(t, 0, artifact.ItemCount)
		require.Len(t, artifact.Errors, 1)

		written := readArtifact(t, path)
		assert.Equal(t, 42, written.ItemCount, "failed run must not clobber the snapshot")
	})

	t.Run("entries without identity dropped", func(t *testing.T) {
		fetcher := &fakeFetcher{entries: map[string][]feed.Entry{
			"q": {
				{Title: "no link no guid", Description: "text"},
				entry("kept", "https://example.com/k", "text", day(1)),
			},
		}}

		path := filepath.Join(t.TempDir(), "items.json")
		runner := NewRunner(fetcher, feed.NewNormalizer(260), nil, []string{"q"}, 100, path)

		artifact, err := runner.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, artifact.ItemCount)
		assert.Equal(t, "kept", artifact.Items[0].Title)
	})

	t.Run("truncates to max items", func(t *testing.T) {
		fetcher := &fakeFetcher{entries: map[string][]feed.Entry{
			"q": {
				entry("oldest", "https://example.com/1", "t", day(1)),
				entry("newest", "https://example.com/2", "t", day(9)),
				entry("middle", "https://example.com/3", "t", day(5)),
			},
		}}

		path := filepath.Join(t.TempDir(), "items.json")
		runner := NewRunner(fetcher, feed.NewNormalizer(260), nil, []string{"q"}, 2, path)

		artifact, err := runner.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, 2, artifact.ItemCount)
		assert.Equal(t, "newest", artifact.Items[0].Title)
		assert.Equal(t, "middle", artifact.Items[1].Title)
	})

	t.Run("extractor backfills empty summary", func(t *testing.T) {
		fetcher := &fakeFetcher{entries: map[string][]feed.Entry{
			"q": {entry("bare story", "https://example.com/x", "", day(1))},
		}}

		path := filepath.Join(t.TempDir(), "items.json")
		runner := NewRunner(fetcher, feed.NewNormalizer(260), &fakeExtractor{text: "full article body"},
			[]string{"q"}, 100, path)

		artifact, err := runner.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, artifact.ItemCount)
		assert.Equal(t, "full article body", artifact.Items[0].Summary)
	})

	t.Run("extractor failure leaves summary empty", func(t *testing.T) {
		fetcher := &fakeFetcher{entries: map[string][]feed.Entry{
			"q": {entry("bare story", "https://example.com/x", "", day(1))},
		}}

		path := filepath.Join(t.TempDir(), "items.json")
		runner := NewRunner(fetcher, feed.NewNormalizer(260), &fakeExtractor{err: errors.New("paywall")},
			[]string{"q"}, 100, path)

		artifact, err := runner.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, artifact.ItemCount)
		assert.Empty(t, artifact.Items[0].Summary)
	})

	t.Run("no queries is a noop success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "items.json")
		runner := NewRunner(&fakeFetcher{}, feed.NewNormalizer(260), nil, nil, 100, path)

		artifact, err := runner.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, artifact.ItemCount)
		assert.Equal(t, 0, artifact.QueryCount)
	})
}
