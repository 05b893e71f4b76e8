package view

import (
	"strings"

	"github.com/umputun/newsradar/pkg/domain"
	"github.com/umputun/newsradar/pkg/signal"
)

// CompanyGeneral is the facet key of the general/uncategorized bucket
const CompanyGeneral = "general"

// companyStopwords disqualify a company guess from the per-company facet.
// Generic title lead-ins end up here instead of polluting the sidebar.
var companyStopwords = map[string]struct{}{
	"news": {}, "update": {}, "updates": {}, "report": {}, "reports": {},
	"breaking": {}, "opinion": {}, "analysis": {}, "market": {},
	"industry": {}, "business": {}, "press release": {}, "exclusive": {},
	"watch": {}, "video": {},
}

// FilterState holds the active filter selections. The zero value means no
// constraint on any dimension.
type FilterState struct {
	Query     string   // free-text, case-insensitive substring
	Source    string   // exact source match
	Tag       string   // tag set membership
	Bucket    string   // lowercase signal bucket
	Countries []string // selected countries; empty means all pass
	Company   string   // normalized company key or CompanyGeneral
}

// Reset clears all selections
func (f *FilterState) Reset() {
	*f = FilterState{}
}

// Apply recomputes the filtered view from the full item set, ANDing all
// active predicates. Filtering is synchronous and pure; every call starts
// from the complete set.
func Apply(items []domain.Item, f FilterState) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if matches(&it, &f) {
			out = append(out, it)
		}
	}
	return out
}

func matches(it *domain.Item, f *FilterState) bool {
	if f.Source != "" && it.Source != f.Source {
		return false
	}
	if f.Tag != "" && !contains(it.Tags, f.Tag) {
		return false
	}
	if f.Bucket != "" && string(it.SignalBucket) != strings.ToLower(f.Bucket) {
		return false
	}
	if f.Query != "" && !strings.Contains(haystack(it), strings.ToLower(f.Query)) {
		return false
	}
	if len(f.Countries) > 0 && !contains(f.Countries, string(Country(it))) {
		return false
	}
	if f.Company != "" {
		key, general := CompanyKey(it.CompanyGuess)
		if f.Company == CompanyGeneral {
			if !general {
				return false
			}
		} else if general || key != f.Company {
			return false
		}
	}
	return true
}

// Country derives the item geography from title, summary and company guess
func Country(it *domain.Item) signal.Country {
	company := ""
	if it.CompanyGuess != nil {
		company = *it.CompanyGuess
	}
	return signal.DeriveCountry(it.Title, it.Summary, company)
}

// CompanyKey normalizes a company guess into a facet key. The second return
// is true for the general/uncategorized bucket: empty guesses, stopwords,
// more than 6 words or over 60 characters.
func CompanyKey(guess *string) (key string, general bool) {
	if guess == nil {
		return "", true
	}
	name := strings.TrimSpace(*guess)
	if name == "" || len(name) > 60 || len(strings.Fields(name)) > 6 {
		return "", true
	}
	key = strings.ToLower(name)
	if _, ok := companyStopwords[key]; ok {
		return "", true
	}
	return key, false
}

// haystack builds the lowercase free-text search target: title, summary,
// source, company guess, tags and matched queries concatenated.
func haystack(it *domain.Item) string {
	parts := []string{it.Title, it.Summary, it.Source}
	if it.CompanyGuess != nil {
		parts = append(parts, *it.CompanyGuess)
	}
	parts = append(parts, it.Tags...)
	parts = append(parts, it.MatchedQueries...)
	return strings.ToLower(strings.Join(parts, " "))
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
