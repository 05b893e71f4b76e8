package signal

import "strings"

// Country is the coarse geography classification of an item
type Country string

// the classification is total: every item maps to exactly one of these
const (
	CountryUSA    Country = "USA"
	CountryCanada Country = "Canada"
	CountryOther  Country = "Other"
)

// canadaHints lists Canadian provinces/territories plus generic country terms.
// Checked first: a mention of a province outweighs anything else in the text.
var canadaHints = []string{
	"canada", "canadian",
	"alberta", "british columbia", "manitoba", "new brunswick",
	"newfoundland", "nova scotia", "northwest territories", "nunavut",
	"ontario", "prince edward island", "quebec", "saskatchewan", "yukon",
}

// otherHints lists non-North-American geography terms
var otherHints = []string{
	"united kingdom", "u.k.", "britain", "british", "england", "scotland",
	"ireland", "germany", "german", "france", "french", "netherlands",
	"belgium", "spain", "italy", "poland", "sweden", "norway", "denmark",
	"finland", "switzerland", "austria", "europe", "european",
	"china", "chinese", "japan", "japanese", "india", "indian", "korea",
	"singapore", "australia", "australian", "new zealand",
	"mexico", "mexican", "brazil", "middle east", "dubai", "saudi",
}

// usaHints lists explicit USA terms, checked last before the default
var usaHints = []string{
	"united states", "u.s.", "usa", "america",
}

// DeriveCountry classifies the given text fragments (title, summary, company
// guess) into USA, Canada or Other. Hint lists are checked in priority order;
// no hint, or empty text, defaults to USA. Never returns an empty value.
func DeriveCountry(parts ...string) Country {
	text := strings.ToLower(strings.Join(parts, " "))

	if _, ok := firstMatch(text, canadaHints); ok {
		return CountryCanada
	}
	if _, ok := firstMatch(text, otherHints); ok {
		return CountryOther
	}
	if _, ok := firstMatch(text, usaHints); ok {
		return CountryUSA
	}
	return CountryUSA
}
