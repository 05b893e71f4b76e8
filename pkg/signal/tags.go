package signal

import (
	"sort"
	"strings"
)

// TagSignal is added to any item the scorer matched at all
const TagSignal = "signal"

// TagRule maps a topic label to its trigger patterns
type TagRule struct {
	Tag      string
	Patterns []string
}

// TagRules is the topic rule set, independent from the score groups
var TagRules = []TagRule{
	{Tag: "expansion", Patterns: []string{
		"expansion", "expanding", "expands", "opens new", "opening a new",
		"new warehouse", "new distribution", "new fulfillment", "new fulfilment",
		"new plant", "new factory", "square feet", "sqft",
	}},
	{Tag: "robotics", Patterns: []string{
		"robot", "amr", "agv", "cobot", "autonomous mobile",
	}},
	{Tag: "labor", Patterns: []string{
		"labor", "labour", "workforce", "staffing", "union", "jobs",
	}},
	{Tag: "ecommerce", Patterns: []string{
		"e-commerce", "ecommerce", "fulfillment", "fulfilment", "online order",
		"last mile", "same-day delivery",
	}},
	{Tag: "automation-hardware", Patterns: []string{
		"conveyor", "sortation", "palletiz", "palletis", "shuttle",
		"as/rs", "asrs", "automated storage", "pick station",
	}},
	{Tag: "material-handling", Patterns: []string{
		"material handling", "materials handling", "forklift", "pallet",
		"intralogistics", "racking",
	}},
	{Tag: "modernization", Patterns: []string{
		"modernization", "modernisation", "retrofit", "upgrade", "overhaul",
	}},
}

// Tags derives the topic labels for the given text fragments. When scored is
// true the generic signal tag is appended. The result is a sorted set.
func Tags(scored bool, parts ...string) []string {
	text := strings.ToLower(strings.Join(parts, " "))

	var tags []string
	for _, rule := range TagRules {
		if _, ok := firstMatch(text, rule.Patterns); ok {
			tags = append(tags, rule.Tag)
		}
	}
	if scored {
		tags = append(tags, TagSignal)
	}
	sort.Strings(tags)
	return tags
}
