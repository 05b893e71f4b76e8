package signal

import (
	"regexp"
	"strings"
)

// usStates are the US state names plus DC
var usStates = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado", "Connecticut",
	"Delaware", "Florida", "Georgia", "Hawaii", "Idaho", "Illinois", "Indiana", "Iowa",
	"Kansas", "Kentucky", "Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan",
	"Minnesota", "Mississippi", "Missouri", "Montana", "Nebraska", "Nevada",
	"New Hampshire", "New Jersey", "New Mexico", "New York", "North Carolina",
	"North Dakota", "Ohio", "Oklahoma", "Oregon", "Pennsylvania", "Rhode Island",
	"South Carolina", "South Dakota", "Tennessee", "Texas", "Utah", "Vermont",
	"Virginia", "Washington", "West Virginia", "Wisconsin", "Wyoming",
	"District of Columbia",
}

// caProvinces are the Canadian provinces and territories
var caProvinces = []string{
	"Alberta", "British Columbia", "Manitoba", "New Brunswick", "Newfoundland",
	"Newfoundland and Labrador", "Nova Scotia", "Northwest Territories", "Nunavut",
	"Ontario", "Prince Edward Island", "Quebec", "Saskatchewan", "Yukon",
}

var regionRes = buildRegionRes()

func buildRegionRes() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(usStates)+len(caProvinces))
	for _, name := range append(append([]string{}, caProvinces...), usStates...) {
		res[name] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	}
	return res
}

// Region returns the first US state or Canadian province named in the title,
// provinces first. Unlike the country hints this uses word boundaries, since
// state names are common English words ("Georgia", "Washington") and a bare
// substring check would be too noisy even for a heuristic.
func Region(title string) (string, bool) {
	if strings.TrimSpace(title) == "" {
		return "", false
	}
	for _, name := range caProvinces {
		if regionRes[name].MatchString(title) {
			return name, true
		}
	}
	for _, name := range usStates {
		if regionRes[name].MatchString(title) {
			return name, true
		}
	}
	return "", false
}
