package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/newsradar/pkg/domain"
)

func TestScore(t *testing.T) {
	t.Run("no matches", func(t *testing.T) {
		res := Score("quarterly earnings call transcript")
		assert.Equal(t, 0, res.Score)
		assert.Equal(t, domain.BucketLow, res.Bucket)
		assert.Empty(t, res.Matched)
	})

	t.Run("single group", func(t *testing.T) {
		res := Score("company invests in warehouse automation project")
		assert.Equal(t, 3, res.Score)
		assert.Equal(t, domain.BucketMedium, res.Bucket)
		assert.Equal(t, []string{"warehouse automation"}, res.Matched)
	})

	t.Run("group short-circuits on first match", func(t *testing.T) {
		// two core-technology patterns in one text still add the weight once
		res := Score("conveyor and sortation systems installed")
		assert.Equal(t, 2, res.Score)
		assert.Len(t, res.Matched, 1)
	})

	t.Run("groups accumulate", func(t *testing.T) {
		res := Score("automated warehouse with AMR robotics", "opens new facility, labor shortage bites")
		// direct-automation(3) + core-technology(2) + expansion(2) + pain-point(1)
		assert.Equal(t, 8, res.Score)
		assert.Equal(t, domain.BucketHot, res.Bucket)
		assert.Len(t, res.Matched, 4)
	})

	t.Run("case insensitive", func(t *testing.T) {
		res := Score("WAREHOUSE AUTOMATION")
		assert.Equal(t, 3, res.Score)
	})

	t.Run("substring matching has no word boundaries", func(t *testing.T) {
		// "agv" inside a longer word still matches, a documented tradeoff
		res := Score("vagvine harvest report")
		assert.Equal(t, 2, res.Score)
	})
}

func TestScore_HotScenario(t *testing.T) {
	// a strong automation+expansion story lands in the hot bucket
	res := Score(
		"Acme Corp - opens new 500,000 sqft distribution center in Ontario",
		"Acme Corp announced a new automated warehouse with AMR robotics...",
	)
	assert.GreaterOrEqual(t, res.Score, 5)
	assert.Equal(t, domain.BucketHot, res.Bucket)
}
