package engine

import (
	"math"

	"github.com/reusecanada/roofline/internal/model"
)

// Standard overage scenarios quoted to customers alongside the estimate.
var wasteScenarios = []struct {
	pct         int
	factor      float64
	description string
}{
	{5, 1.05, "Minimal waste (simple gable)"},
	{10, 1.10, "Standard waste (moderate complexity)"},
	{15, 1.15, "Above average (hips/valleys)"},
	{20, 1.20, "High waste (complex/cut-up roof)"},
}

// WasteTable computes the shingle order at 5/10/15/20 percent overage so a
// buyer can see what each waste assumption costs in squares and bundles.
// Bundle counts come from the unrounded square figure; the squares column
// is rounded to one decimal for display only.
func WasteTable(totalSqft float64) []model.WasteRow {
	rows := make([]model.WasteRow, 0, len(wasteScenarios))
	for _, sc := range wasteScenarios {
		grossSqft := totalSqft * sc.factor
		squares := grossSqft / 100
		rows = append(rows, model.WasteRow{
			WastePct:    sc.pct,
			Factor:      sc.factor,
			Description: sc.description,
			GrossSqft:   math.Round(grossSqft),
			Squares:     round1(squares),
			Bundles:     int(math.Ceil(squares * 3)),
		})
	}
	return rows
}
