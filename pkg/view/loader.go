// Package view implements the read side: loading the persisted artifact,
// filtering it with composable predicates and projecting display records.
package view

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsradar/pkg/aggregator"
	"github.com/umputun/newsradar/pkg/domain"
)

// State is an immutable snapshot of loaded data. Filtering and rendering
// consume it as a value; a failed reload never leaves it half-updated.
type State struct {
	Items       []domain.Item
	Sources     []string
	Tags        []string
	GeneratedAt time.Time
	Errors      []domain.QueryError
	LastError   string // non-empty when the most recent load failed
	Loaded      bool   // true once any load succeeded
}

// Loader fetches the artifact and maintains the current state. Reads are
// cache-busted so a reload always observes the latest run, never a cached
// copy. On failure the last successfully loaded dataset is preserved and the
// error is surfaced alongside it.
type Loader struct {
	source string // http(s) URL or file path
	client *http.Client

	mu    sync.RWMutex
	state State
}

// NewLoader creates a loader for the given artifact source, either an
// http(s) URL or a local file path.
func NewLoader(source string, timeout time.Duration) *Loader {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Loader{
		source: source,
		client: &http.Client{Timeout: timeout},
	}
}

// Load fetches and parses the artifact, replacing the current state on
// success. On failure the previous dataset stays and LastError is set; a
// failure before any successful load leaves the defined empty state.
func (l *Loader) Load(ctx context.Context) error {
	data, err := l.read(ctx)
	if err == nil {
		var artifact domain.Artifact
		if jerr := json.Unmarshal(data, &artifact); jerr != nil {
			err = fmt.Errorf("parse artifact: %w", jerr)
		} else {
			l.apply(&artifact)
			return nil
		}
	}

	lgr.Printf("[WARN] artifact load failed: %v", err)
	l.mu.Lock()
	l.state.LastError = err.Error()
	l.mu.Unlock()
	return err
}

// State returns the current snapshot
func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// apply installs a freshly parsed artifact as the current state
func (l *Loader) apply(artifact *domain.Artifact) {
	// defensive re-sort: the artifact is trusted but not re-verified
	items := aggregator.SortAndTruncate(artifact.Items, 0)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = State{
		Items:       items,
		Sources:     distinctSources(items),
		Tags:        distinctTags(items),
		GeneratedAt: artifact.GeneratedAt,
		Errors:      artifact.Errors,
		Loaded:      true,
	}
}

// read fetches raw artifact bytes from the configured source
func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if !strings.HasPrefix(l.source, "http://") && !strings.HasPrefix(l.source, "https://") {
		data, err := os.ReadFile(l.source)
		if err != nil {
			return nil, fmt.Errorf("read artifact file: %w", err)
		}
		return data, nil
	}

	// cache-busting query param forces a fresh network read
	sep := "?"
	if strings.Contains(l.source, "?") {
		sep = "&"
	}
	reqURL := fmt.Sprintf("%s%st=%d", l.source, sep, time.Now().UnixNano())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch artifact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read artifact body: %w", err)
	}
	return buf, nil
}

func distinctSources(items []domain.Item) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, it := range items {
		if it.Source == "" {
			continue
		}
		if _, ok := seen[it.Source]; ok {
			continue
		}
		seen[it.Source] = struct{}{}
		out = append(out, it.Source)
	}
	sort.Strings(out)
	return out
}

func distinctTags(items []domain.Item) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, it := range items {
		for _, tag := range it.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}
