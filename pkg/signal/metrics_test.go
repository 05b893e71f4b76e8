package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMetrics(t *testing.T) {
	t.Run("investment with multiplier", func(t *testing.T) {
		m := ExtractMetrics("Acme invests $1.5B in new plants")
		require.NotNil(t, m.InvestmentUSD)
		assert.InDelta(t, 1_500_000_000, *m.InvestmentUSD, 0.1)
	})

	t.Run("investment spelled out", func(t *testing.T) {
		m := ExtractMetrics("a $250 million expansion")
		require.NotNil(t, m.InvestmentUSD)
		assert.InDelta(t, 250_000_000, *m.InvestmentUSD, 0.1)
	})

	t.Run("square footage", func(t *testing.T) {
		m := ExtractMetrics("opens new 500,000 sq ft distribution center")
		require.NotNil(t, m.SquareFeet)
		assert.InDelta(t, 500_000, *m.SquareFeet, 0.1)
	})

	t.Run("jobs", func(t *testing.T) {
		m := ExtractMetrics("creating 1,200 jobs in the region")
		require.NotNil(t, m.Jobs)
		assert.InDelta(t, 1200, *m.Jobs, 0.1)
	})

	t.Run("all at once", func(t *testing.T) {
		m := ExtractMetrics("a $30M, 120,000 square feet site adding 450 jobs")
		require.NotNil(t, m.InvestmentUSD)
		require.NotNil(t, m.SquareFeet)
		require.NotNil(t, m.Jobs)
	})

	t.Run("nothing found", func(t *testing.T) {
		m := ExtractMetrics("no figures in this text")
		assert.Nil(t, m.InvestmentUSD)
		assert.Nil(t, m.SquareFeet)
		assert.Nil(t, m.Jobs)
	})
}
