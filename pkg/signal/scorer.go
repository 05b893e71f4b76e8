// Package signal implements the heuristic relevance scoring, topic tagging
// and geography derivation for news items.
//
// All matching is case-insensitive substring containment, no tokenization or
// word-boundary checks. That keeps new categories purely additive data but is
// a known precision tradeoff: short patterns like "agv" also match inside
// longer words.
package signal

import (
	"strings"

	"github.com/umputun/newsradar/pkg/domain"
)

// Group is a weighted pattern group. The first matching pattern in a group
// adds the group weight once and short-circuits the rest of the group.
type Group struct {
	Label    string
	Patterns []string
	Weight   int
}

// ScoreGroups is the ordered rule set driving the signal score
var ScoreGroups = []Group{
	{
		Label:  "direct-automation",
		Weight: 3,
		Patterns: []string{
			"warehouse automation", "automated warehouse", "distribution automation",
			"warehouse robotics", "automated fulfillment", "automated fulfilment",
			"goods-to-person", "as/rs", "asrs",
		},
	},
	{
		Label:  "core-technology",
		Weight: 2,
		Patterns: []string{
			"amr", "agv", "robotics", "robotic", "sortation", "conveyor",
			"palletizing", "palletising", "shuttle system", "automated storage",
			"wms", "wes", "wcs",
		},
	},
	{
		Label:  "expansion",
		Weight: 2,
		Patterns: []string{
			"new warehouse", "new distribution center", "new distribution centre",
			"new fulfillment center", "new fulfilment centre", "opens new",
			"opening a new", "expansion", "expanding", "square feet", "sqft",
			"new plant", "new factory",
		},
	},
	{
		Label:  "pain-point",
		Weight: 1,
		Patterns: []string{
			"labor shortage", "labour shortage", "rising labor costs",
			"capacity constraints", "supply chain disruption", "order backlog",
			"throughput", "peak season",
		},
	},
}

// Result holds the outcome of scoring one item
type Result struct {
	Score   int
	Bucket  domain.Bucket
	Matched []string
}

// Score runs the weighted pattern groups over the given text fragments
// (typically title and summary) and returns the summed score, its bucket and
// the matched phrases.
func Score(parts ...string) Result {
	text := strings.ToLower(strings.Join(parts, " "))

	res := Result{}
	for _, g := range ScoreGroups {
		if phrase, ok := firstMatch(text, g.Patterns); ok {
			res.Score += g.Weight
			res.Matched = append(res.Matched, phrase)
		}
	}
	res.Bucket = domain.BucketForScore(res.Score)
	return res
}

// firstMatch returns the first pattern contained in text, if any
func firstMatch(text string, patterns []string) (string, bool) {
	for _, p := range patterns {
		if strings.Contains(text, p) {
			return p, true
		}
	}
	return "", false
}
