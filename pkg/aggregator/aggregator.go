// Package aggregator merges normalized items across queries and produces the
// persisted artifact.
package aggregator

import (
	"sort"
	"strings"

	"github.com/umputun/newsradar/pkg/domain"
)

// Merge groups items by trimmed URL. The first occurrence seeds the group;
// each later occurrence with the same key unions matched_queries and tags and
// replaces the score/bucket only when strictly greater. Items with an empty
// URL are dropped. Output order follows first occurrence.
func Merge(items []domain.Item) []domain.Item {
	byURL := make(map[string]int, len(items))
	merged := make([]domain.Item, 0, len(items))

	for _, it := range items {
		key := strings.TrimSpace(it.URL)
		if key == "" {
			continue
		}

		idx, seen := byURL[key]
		if !seen {
			byURL[key] = len(merged)
			merged = append(merged, it)
			continue
		}

		dst := &merged[idx]
		dst.MatchedQueries = unionSorted(dst.MatchedQueries, it.MatchedQueries)
		dst.Tags = unionSorted(dst.Tags, it.Tags)
		if it.SignalScore > dst.SignalScore {
			dst.SignalScore = it.SignalScore
			dst.SignalBucket = it.SignalBucket
		}
		// backfill fields the seed occurrence was missing
		if dst.PublishedAt == nil && it.PublishedAt != nil {
			dst.PublishedAt = it.PublishedAt
		}
		if dst.CompanyGuess == nil && it.CompanyGuess != nil {
			dst.CompanyGuess = it.CompanyGuess
		}
		if dst.Summary == "" && it.Summary != "" {
			dst.Summary = it.Summary
		}
	}

	return merged
}

// SortAndTruncate orders items newest-first (missing publish dates sort as
// oldest) and cuts the list down to max. Truncation happens after the sort,
// so only the most recent items survive regardless of source distribution.
func SortAndTruncate(items []domain.Item, max int) []domain.Item {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedOrZero().After(items[j].PublishedOrZero())
	})
	if max > 0 && len(items) > max {
		items = items[:max]
	}
	return items
}

// unionSorted merges two string sets into a sorted, duplicate-free slice
func unionSorted(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
