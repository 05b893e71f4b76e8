package view

import (
	"sort"
	"time"

	"github.com/umputun/newsradar/pkg/domain"
	"github.com/umputun/newsradar/pkg/signal"
)

// maxTagChips caps the tag chips on a single card
const maxTagChips = 6

// missingDatePlaceholder is shown for items without a valid publish time
const missingDatePlaceholder = "—"

// DisplayRecord is one renderable unit. The UI toolkit binding is an
// external collaborator; this is the complete contract it renders from.
type DisplayRecord struct {
	Title     string   `json:"title"`
	URL       string   `json:"url"`
	Published string   `json:"published"`
	Summary   string   `json:"summary"`
	Bucket    string   `json:"bucket"`
	Score     int      `json:"score"`
	Source    string   `json:"source"`
	Company   string   `json:"company,omitempty"`
	Tags      []string `json:"tags"`
	Country   string   `json:"country"`
	Region    string   `json:"region,omitempty"`
}

// CompanyFacet is one entry of the company sidebar
type CompanyFacet struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Pinned   bool   `json:"pinned"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Project maps filtered items to display records, a pure projection with no
// side effects.
func Project(items []domain.Item) []DisplayRecord {
	records := make([]DisplayRecord, 0, len(items))
	for _, it := range items {
		rec := DisplayRecord{
			Title:     it.Title,
			URL:       it.URL,
			Published: FormatPublished(it.PublishedAt),
			Summary:   it.Summary,
			Bucket:    string(it.SignalBucket),
			Score:     it.SignalScore,
			Source:    it.Source,
			Tags:      it.Tags,
			Country:   string(Country(&it)),
		}
		if it.CompanyGuess != nil {
			rec.Company = *it.CompanyGuess
		}
		if len(rec.Tags) > maxTagChips {
			rec.Tags = rec.Tags[:maxTagChips]
		}
		if region, ok := signal.Region(it.Title); ok {
			rec.Region = region
		}
		records = append(records, rec)
	}
	return records
}

// FormatPublished renders a publish timestamp for display, falling back to
// an em-dash placeholder when missing.
func FormatPublished(ts *time.Time) string {
	if ts == nil || ts.IsZero() {
		return missingDatePlaceholder
	}
	return ts.Local().Format("Jan 2, 2006 15:04")
}

// CompanyFacets computes the company sidebar for the given (already
// filtered) items: two pinned entries on top, then non-general companies
// sorted by count descending with name as tie-break. Display names keep the
// first-seen raw casing.
func CompanyFacets(items []domain.Item) []CompanyFacet {
	counts := make(map[string]int)
	names := make(map[string]string)
	general := 0

	for _, it := range items {
		key, isGeneral := CompanyKey(it.CompanyGuess)
		if isGeneral {
			general++
			continue
		}
		counts[key]++
		if _, ok := names[key]; !ok {
			names[key] = *it.CompanyGuess
		}
	}

	companies := make([]CompanyFacet, 0, len(counts))
	for key, count := range counts {
		companies = append(companies, CompanyFacet{Key: key, Name: names[key], Count: count})
	}
	sort.Slice(companies, func(i, j int) bool {
		if companies[i].Count != companies[j].Count {
			return companies[i].Count > companies[j].Count
		}
		return companies[i].Name < companies[j].Name
	})

	out := make([]CompanyFacet, 0, len(companies)+2)
	out = append(out,
		CompanyFacet{Key: "all", Name: "All results", Count: len(items), Pinned: true},
		CompanyFacet{Key: CompanyGeneral, Name: "General / uncategorized", Count: general, Pinned: true, Disabled: general == 0},
	)
	return append(out, companies...)
}
