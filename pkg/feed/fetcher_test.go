package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Search results</title>
		<link>https://example.com</link>
		<item>
			<title>Acme Corp opens new warehouse</title>
			<link>https://example.com/article1</link>
			<description>Article 1 description</description>
			<guid>article1</guid>
			<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		</item>
		<item>
			<title>Second story</title>
			<link>https://example.com/article2</link>
			<description>Article 2 description</description>
			<guid>article2</guid>
			<pubDate>Tue, 03 Jan 2006 15:04:05 -0700</pubDate>
		</item>
		<item>
			<title>Third story</title>
			<link>https://example.com/article3</link>
			<description>Article 3 description</description>
			<guid>article3</guid>
		</item>
	</channel>
</rss>`

func TestFetcher_SearchURL(t *testing.T) {
	f := NewFetcher(Config{Language: "en", Region: "US"})
	u := f.SearchURL("warehouse automation")
	assert.Equal(t, "https://news.google.com/rss/search?q=warehouse+automation&hl=en&gl=US&ceid=US:en", u)
}

func TestFetcher_Fetch(t *testing.T) {
	t.Run("valid feed", func(t *testing.T) {
		var gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(testRSS))
		}))
		defer srv.Close()

		f := NewFetcher(Config{BaseURL: srv.URL, Language: "en", Region: "US", Timeout: 5 * time.Second})
		entries, err := f.Fetch(context.Background(), "warehouse automation")
		require.NoError(t, err)
		assert.Equal(t, "warehouse automation", gotQuery)
		require.Len(t, entries, 3)

		assert.Equal(t, "Acme Corp opens new warehouse", entries[0].Title)
		assert.Equal(t, "https://example.com/article1", entries[0].Link)
		assert.Equal(t, "article1", entries[0].GUID)
		assert.Equal(t, "Article 1 description", entries[0].Description)
		require.NotNil(t, entries[0].Published)

		// third item has no pubDate at all
		assert.Nil(t, entries[2].Published)
		assert.Empty(t, entries[2].DateCandidates)
	})

	t.Run("per-query cap", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(testRSS))
		}))
		defer srv.Close()

		f := NewFetcher(Config{BaseURL: srv.URL, Language: "en", Region: "US", PerQueryLimit: 2, Timeout: 5 * time.Second})
		entries, err := f.Fetch(context.Background(), "robotics")
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		f := NewFetcher(Config{BaseURL: srv.URL, Language: "en", Region: "US", Timeout: 10 * time.Millisecond})
		entries, err := f.Fetch(context.Background(), "robotics")
		require.Error(t, err)
		assert.Nil(t, entries)
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		f := NewFetcher(Config{BaseURL: srv.URL, Language: "en", Region: "US", Timeout: 5 * time.Second})
		_, err := f.Fetch(context.Background(), "robotics")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 500")
	})

	t.Run("invalid feed content", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not xml content"))
		}))
		defer srv.Close()

		f := NewFetcher(Config{BaseURL: srv.URL, Language: "en", Region: "US", Timeout: 5 * time.Second})
		_, err := f.Fetch(context.Background(), "robotics")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})
}
