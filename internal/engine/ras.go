package engine

import (
	"math"

	"github.com/reusecanada/roofline/internal/model"
)

// RASAnalyzer estimates the recycled asphalt shingle yield of a tear-off:
// how much binder oil, granule and fiber the material recovers and what
// that stream is worth. Yield rates and market prices are injected so the
// processing line can recalibrate them from plant data.
type RASAnalyzer struct {
	Yields model.YieldTable
}

// NewRASAnalyzer creates an analyzer backed by the given yield table.
func NewRASAnalyzer(yields model.YieldTable) *RASAnalyzer {
	return &RASAnalyzer{Yields: yields}
}

// Analyze classifies each segment by slope and totals the recoverable
// material. Low-pitch planes (rise <= 4) weather the least and hold the
// most binder oil; steep planes (rise > 6) shed granules cleanly; the band
// between them processes as a mixed stream. Per-segment figures are rounded
// at emission and the totals sum the rounded figures, so the report's
// per-segment table always adds up to its own totals.
func (r *RASAnalyzer) Analyze(
	segments []model.Segment,
	trueAreaSqft float64,
	shingle model.ShingleType,
) (*model.RASYieldAnalysis, error) {
	weightPerSquare, err := r.Yields.SquareWeight(shingle)
	if err != nil {
		return nil, err
	}

	totalSquares := trueAreaSqft / 100
	totalWeight := totalSquares * weightPerSquare

	yields := make([]model.RASSegmentYield, 0, len(segments))
	var lowArea, medArea, highArea float64
	var totalOil, totalGranules, totalFiber float64

	for _, seg := range segments {
		rise := 12 * math.Tan(seg.PitchDegrees*math.Pi/180)

		var class model.RecoveryClass
		switch {
		case rise <= 4:
			class = model.RecoveryBinderOil
			lowArea += seg.TrueAreaSqft
		case rise > 6:
			class = model.RecoveryGranule
			highArea += seg.TrueAreaSqft
		default:
			class = model.RecoveryMixed
			medArea += seg.TrueAreaSqft
		}

		segWeight := seg.TrueAreaSqft / 100 * weightPerSquare
		rates := r.Yields.RatesFor(class)

		oilGal := segWeight * rates.Oil / r.Yields.OilLbsPerGallon
		y := model.RASSegmentYield{
			SegmentName:   seg.Name,
			PitchDegrees:  seg.PitchDegrees,
			PitchRatio:    seg.PitchRatio,
			AreaSqft:      seg.TrueAreaSqft,
			RecoveryClass: class,
			BinderOilGal:  round1(oilGal),
			GranulesLbs:   math.Round(segWeight * rates.Granule),
			FiberLbs:      math.Round(segWeight * rates.Fiber),
		}
		yields = append(yields, y)

		totalOil += y.BinderOilGal
		totalGranules += y.GranulesLbs
		totalFiber += y.FiberLbs
	}

	totalRecoverable := totalOil*r.Yields.OilLbsPerGallon + totalGranules + totalFiber

	oilValue := totalOil * r.Yields.OilPricePerGal
	granuleValue := totalGranules * r.Yields.GranulePricePerLb
	fiberValue := totalFiber * r.Yields.FiberPricePerLb

	classedArea := lowArea + medArea + highArea
	if classedArea == 0 {
		classedArea = 1
	}
	lowPct := lowArea / classedArea * 100
	medPct := medArea / classedArea * 100
	highPct := highArea / classedArea * 100

	var recommendation string
	switch {
	case lowPct > 60:
		recommendation = "Prioritize binder oil extraction - low-pitch dominant roof. " +
			"Route to Rotto Chopper for optimal oil recovery. " +
			"Ideal for cold patch and sealant production."
	case highPct > 60:
		recommendation = "Prioritize granule separation - steep-pitch dominant roof. " +
			"Run through screener line for clean granule recovery. " +
			"High-grade output for resale."
	default:
		recommendation = "Mixed recovery stream - process through full RAS line. " +
			"Extract binder oil first, then screen for granules and fiber. " +
			"Blend output suitable for cold patch formulation."
	}

	weightBase := totalWeight
	if weightBase == 0 {
		weightBase = 1
	}

	return &model.RASYieldAnalysis{
		TotalAreaSqft:       math.Round(trueAreaSqft),
		TotalSquares:        round1(totalSquares),
		EstimatedWeightLbs:  math.Round(totalWeight),
		Segments:            yields,
		TotalBinderOilGal:   round1(totalOil),
		TotalGranulesLbs:    math.Round(totalGranules),
		TotalFiberLbs:       math.Round(totalFiber),
		TotalRecoverableLbs: math.Round(totalRecoverable),
		RecoveryRatePct:     round1(totalRecoverable / weightBase * 100),
		MarketValueOil:      round2(oilValue),
		MarketValueGranules: round2(granuleValue),
		MarketValueFiber:    round2(fiberValue),
		MarketValueTotal:    round2(oilValue + granuleValue + fiberValue),
		Recommendation:      recommendation,
		SlopeDistribution: model.SlopeDistribution{
			LowPitchPct:    round1(lowPct),
			MediumPitchPct: round1(medPct),
			HighPitchPct:   round1(highPct),
		},
	}, nil
}
