package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Bucket is the signal strength label derived from the numeric score
type Bucket string

// signal buckets, ordered by strength
const (
	BucketLow    Bucket = "low"
	BucketMedium Bucket = "medium"
	BucketHot    Bucket = "hot"
)

// BucketForScore maps a numeric signal score to its bucket.
// Total over all non-negative scores: >=5 hot, >=3 medium, else low.
func BucketForScore(score int) Bucket {
	switch {
	case score >= 5:
		return BucketHot
	case score >= 3:
		return BucketMedium
	default:
		return BucketLow
	}
}

// Metrics holds numeric figures extracted from item text, all best-effort
type Metrics struct {
	InvestmentUSD *float64 `json:"investment_usd"`
	SquareFeet    *float64 `json:"sqft"`
	Jobs          *float64 `json:"jobs"`
}

// Item is a single normalized news item. URL is the canonical identity and
// dedup key; an item without it is never retained. MatchedQueries and Tags
// behave as sorted sets that only grow on merge.
type Item struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	URL            string     `json:"url"`
	Source         string     `json:"source"`
	CompanyGuess   *string    `json:"company_guess"`
	MatchedQueries []string   `json:"matched_queries"`
	Tags           []string   `json:"tags"`
	SignalScore    int        `json:"signal_score"`
	SignalBucket   Bucket     `json:"signal_bucket"`
	PublishedAt    *time.Time `json:"published_at"`
	Summary        string     `json:"summary"`
	Metrics        Metrics    `json:"metrics"`
}

// StableID returns a short deterministic hash of the item URL,
// usable as an identifier across runs.
func StableID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])[:16]
}

// PublishedOrZero returns the publish time, with missing dates mapped to the
// epoch so they sort as oldest.
func (i *Item) PublishedOrZero() time.Time {
	if i.PublishedAt == nil {
		return time.Time{}
	}
	return *i.PublishedAt
}
