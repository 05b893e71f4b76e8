package feed

import (
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/newsradar/pkg/domain"
)

// Normalizer converts raw feed entries into canonical items
type Normalizer struct {
	policy   *bluemonday.Policy
	maxChars int
}

// NewNormalizer creates a normalizer with the given summary character budget
func NewNormalizer(maxChars int) *Normalizer {
	if maxChars == 0 {
		maxChars = 260
	}
	return &Normalizer{
		policy:   bluemonday.StrictPolicy(), // strips all tags, drops script/style content
		maxChars: maxChars,
	}
}

// Normalize converts a raw entry surfaced by query into a canonical item.
// Returns false when the entry has no usable identity (no link and no GUID);
// such entries are dropped silently, not reported as errors.
func (n *Normalizer) Normalize(e Entry, query string) (domain.Item, bool) {
	link := strings.TrimSpace(e.Link)
	if link == "" {
		link = strings.TrimSpace(e.GUID)
	}
	if link == "" {
		return domain.Item{}, false
	}

	item := domain.Item{
		ID:             domain.StableID(link),
		Title:          strings.TrimSpace(e.Title),
		URL:            link,
		Source:         sourceFromURL(link),
		CompanyGuess:   CompanyGuess(e.Title),
		MatchedQueries: []string{query},
		SignalBucket:   domain.BucketLow,
		PublishedAt:    n.parseDate(e),
		Summary:        n.Summary(firstNonEmpty(e.Description, e.Content)),
	}
	return item, true
}

// Summary strips markup from raw text and truncates it to the configured
// character budget, marking truncation with an ellipsis. Applying it to an
// already-normalized summary is a no-op.
func (n *Normalizer) Summary(raw string) string {
	text := n.policy.Sanitize(raw)
	text = html.UnescapeString(text)
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= n.maxChars {
		return text
	}
	return strings.TrimSpace(string(runes[:n.maxChars-1])) + "…"
}

// parseDate tries the pre-parsed timestamp first, then raw candidate strings
// in priority order. Anything unparsable normalizes to absent, never to a
// sentinel epoch that could masquerade as real data.
func (n *Normalizer) parseDate(e Entry) *time.Time {
	if e.Published != nil {
		utc := e.Published.UTC()
		return &utc
	}
	for _, raw := range e.DateCandidates {
		if ts, err := dateparse.ParseAny(strings.TrimSpace(raw)); err == nil {
			utc := ts.UTC()
			return &utc
		}
	}
	return nil
}

// capitalized run of 1-4 words, e.g. "Acme Corp" or "XPO Logistics Inc"
var companyRunRe = regexp.MustCompile(`(?:\b[A-Z][A-Za-z0-9&.'-]*)(?:\s+[A-Z][A-Za-z0-9&.'-]*){0,3}`)

// CompanyGuess extracts an organization name from an article title. This is
// explicitly a heuristic; false positives and negatives are acceptable.
func CompanyGuess(title string) *string {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	// publisher-style titles lead with the company before a delimiter
	for _, delim := range []string{" - ", ": "} {
		if idx := strings.Index(title, delim); idx > 0 {
			left := strings.TrimSpace(title[:idx])
			if len(left) >= 3 && len(left) <= 80 {
				return &left
			}
		}
	}

	if run := companyRunRe.FindString(title); run != "" {
		run = strings.TrimSpace(run)
		return &run
	}
	return nil
}

// sourceFromURL derives a source label from the link hostname
func sourceFromURL(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return "(unknown)"
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
