package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWasteTable_KnownValues(t *testing.T) {
	rows := WasteTable(2000)
	require.Len(t, rows, 4)

	assert.Equal(t, 5, rows[0].WastePct)
	assert.Equal(t, 1.05, rows[0].Factor)
	assert.Equal(t, "Minimal waste (simple gable)", rows[0].Description)
	assert.Equal(t, 2100.0, rows[0].GrossSqft)
	assert.Equal(t, 21.0, rows[0].Squares)
	assert.Equal(t, 63, rows[0].Bundles)

	assert.Equal(t, 10, rows[1].WastePct)
	assert.Equal(t, 2200.0, rows[1].GrossSqft)
	assert.Equal(t, 66, rows[1].Bundles)

	assert.Equal(t, 15, rows[2].WastePct)
	assert.Equal(t, "Above average (hips/valleys)", rows[2].Description)
	assert.Equal(t, 2300.0, rows[2].GrossSqft)
	assert.Equal(t, 69, rows[2].Bundles)

	assert.Equal(t, 20, rows[3].WastePct)
	assert.Equal(t, 2400.0, rows[3].GrossSqft)
	assert.Equal(t, 24.0, rows[3].Squares)
	assert.Equal(t, 72, rows[3].Bundles)
}

func TestWasteTable_GrossStrictlyIncreases(t *testing.T) {
	rows := WasteTable(2236.8)
	require.Len(t, rows, 4)

	for i := 1; i < len(rows); i++ {
		assert.Greater(t, rows[i].GrossSqft, rows[i-1].GrossSqft)
		assert.GreaterOrEqual(t, rows[i].Bundles, rows[i-1].Bundles)
	}
}

func TestWasteTable_BundlesFromUnroundedSquares(t *testing.T) {
	// 2096.5 x 1.05 = 2201.325 sqft = 22.01325 squares. The squares column
	// displays 22.0 but bundles must come from the raw figure:
	// ceil(22.01325 * 3) = 67, not 3 * 22 = 66.
	rows := WasteTable(2096.5)

	assert.Equal(t, 22.0, rows[0].Squares)
	assert.Equal(t, 67, rows[0].Bundles)
}

func TestWasteTable_ZeroArea(t *testing.T) {
	rows := WasteTable(0)
	require.Len(t, rows, 4)
	for _, r := range rows {
		assert.Equal(t, 0.0, r.GrossSqft)
		assert.Equal(t, 0, r.Bundles)
	}
}
