package engine

import (
	"math"

	"github.com/reusecanada/roofline/internal/model"
)

// MaterialEstimator turns measured roof geometry into a bill of materials.
// Prices are injected so regional books can be swapped without touching the
// quantity math.
type MaterialEstimator struct {
	Prices model.PriceBook
}

// NewMaterialEstimator creates an estimator backed by the given price book.
func NewMaterialEstimator(prices model.PriceBook) *MaterialEstimator {
	return &MaterialEstimator{Prices: prices}
}

// Estimate computes the nine-line bill of materials for a roof:
//
//  1. Shingles (3 bundles per square)
//  2. Synthetic underlayment (1000 sqft rolls)
//  3. Ice & water shield (eaves + valleys, 3 ft wide, per Alberta code)
//  4. Starter strip (eaves + rakes, 105 ft per bundle)
//  5. Ridge/hip cap (33 ft per bundle)
//  6. Drip edge (10 ft sections)
//  7. Valley flashing (W-profile, 10 ft, only when valleys exist)
//  8. Roofing nails (1.5 lbs per square, 30 lb boxes)
//  9. Ridge vent (4 ft sections, only when ridges exist)
//
// The waste percentage applied to the shingle order comes from the
// complexity classification, never from a caller-supplied figure.
func (m *MaterialEstimator) Estimate(
	trueAreaSqft float64,
	edges []model.Edge,
	segments []model.Segment,
	shingle model.ShingleType,
) (*model.MaterialEstimate, error) {
	price, err := m.Prices.BundlePrice(shingle)
	if err != nil {
		return nil, err
	}

	var ridgeFt, hipFt, valleyFt, eaveFt, rakeFt float64
	var hipCount, valleyCount int
	for _, e := range edges {
		switch e.Type {
		case model.EdgeRidge:
			ridgeFt += e.TrueLengthFt
		case model.EdgeHip:
			hipFt += e.TrueLengthFt
			hipCount++
		case model.EdgeValley:
			valleyFt += e.TrueLengthFt
			valleyCount++
		case model.EdgeEave:
			eaveFt += e.TrueLengthFt
		case model.EdgeRake:
			rakeFt += e.TrueLengthFt
		}
	}

	var pitchVariation float64
	if len(segments) > 0 {
		minPitch, maxPitch := segments[0].PitchDegrees, segments[0].PitchDegrees
		for _, s := range segments[1:] {
			minPitch = math.Min(minPitch, s.PitchDegrees)
			maxPitch = math.Max(maxPitch, s.PitchDegrees)
		}
		pitchVariation = maxPitch - minPitch
	}

	cx := ClassifyComplexity(len(segments), hipCount, valleyCount, pitchVariation)
	baseWaste := float64(cx.WastePct)

	netArea := trueAreaSqft
	grossArea := netArea * (1 + baseWaste/100)
	grossSquares := math.Ceil(grossArea/100*10) / 10
	bundleCount := int(math.Ceil(grossSquares * 3))

	items := make([]model.MaterialLineItem, 0, 9)

	desc := "Architectural (Laminate) Shingles"
	if shingle == model.Shingle3Tab {
		desc = "3-Tab Standard Shingles"
	}
	items = append(items, model.MaterialLineItem{
		Category:      "shingles",
		Description:   desc,
		Unit:          "squares",
		NetQuantity:   round1(netArea / 100),
		WastePct:      baseWaste,
		GrossQuantity: grossSquares,
		OrderQuantity: float64(bundleCount),
		OrderUnit:     "bundles",
		UnitPrice:     price,
		LineTotal:     round2(float64(bundleCount) * price),
	})

	underlaymentRolls := math.Ceil(grossArea / 1000)
	items = append(items, model.MaterialLineItem{
		Category:      "underlayment",
		Description:   "Synthetic Underlayment",
		Unit:          "rolls",
		NetQuantity:   math.Ceil(netArea / 1000),
		WastePct:      10,
		GrossQuantity: underlaymentRolls,
		OrderQuantity: underlaymentRolls,
		OrderUnit:     "rolls",
		UnitPrice:     m.Prices.UnderlaymentRoll,
		LineTotal:     round2(underlaymentRolls * m.Prices.UnderlaymentRoll),
	})

	iceShieldSqft := (eaveFt + valleyFt) * 3
	iceShieldRolls := math.Ceil(iceShieldSqft / 75)
	items = append(items, model.MaterialLineItem{
		Category:      "ice_shield",
		Description:   "Ice & Water Shield Membrane",
		Unit:          "rolls",
		NetQuantity:   iceShieldRolls,
		WastePct:      5,
		GrossQuantity: iceShieldRolls,
		OrderQuantity: iceShieldRolls,
		OrderUnit:     "rolls",
		UnitPrice:     m.Prices.IceShieldRoll,
		LineTotal:     round2(iceShieldRolls * m.Prices.IceShieldRoll),
	})

	starterFt := eaveFt + rakeFt
	starterBundles := math.Ceil(starterFt / 105)
	items = append(items, model.MaterialLineItem{
		Category:      "starter_strip",
		Description:   "Starter Strip Shingles",
		Unit:          "linear_ft",
		NetQuantity:   math.Round(starterFt),
		WastePct:      5,
		GrossQuantity: math.Round(starterFt * 1.05),
		OrderQuantity: starterBundles,
		OrderUnit:     "bundles",
		UnitPrice:     m.Prices.StarterBundle,
		LineTotal:     round2(starterBundles * m.Prices.StarterBundle),
	})

	ridgeHipFt := ridgeFt + hipFt
	capBundles := math.Ceil(ridgeHipFt / 33)
	items = append(items, model.MaterialLineItem{
		Category:      "ridge_cap",
		Description:   "Ridge/Hip Cap Shingles",
		Unit:          "linear_ft",
		NetQuantity:   math.Round(ridgeHipFt),
		WastePct:      5,
		GrossQuantity: math.Round(ridgeHipFt * 1.05),
		OrderQuantity: capBundles,
		OrderUnit:     "bundles",
		UnitPrice:     m.Prices.RidgeCapBundle,
		LineTotal:     round2(capBundles * m.Prices.RidgeCapBundle),
	})

	dripEdgeFt := eaveFt + rakeFt
	dripEdgePieces := math.Ceil(dripEdgeFt / 10)
	items = append(items, model.MaterialLineItem{
		Category:      "drip_edge",
		Description:   "Aluminum Drip Edge (10 ft sections)",
		Unit:          "pieces",
		NetQuantity:   dripEdgePieces,
		WastePct:      5,
		GrossQuantity: dripEdgePieces,
		OrderQuantity: dripEdgePieces,
		OrderUnit:     "pieces",
		UnitPrice:     m.Prices.DripEdgePiece,
		LineTotal:     round2(dripEdgePieces * m.Prices.DripEdgePiece),
	})

	if valleyFt > 0 {
		valleyPieces := math.Ceil(valleyFt / 10)
		items = append(items, model.MaterialLineItem{
			Category:      "valley_metal",
			Description:   "Pre-bent Valley Flashing (W-valley, 10 ft)",
			Unit:          "pieces",
			NetQuantity:   valleyPieces,
			WastePct:      10,
			GrossQuantity: valleyPieces,
			OrderQuantity: valleyPieces,
			OrderUnit:     "pieces",
			UnitPrice:     m.Prices.ValleyFlashingPiece,
			LineTotal:     round2(valleyPieces * m.Prices.ValleyFlashingPiece),
		})
	}

	nailLbs := math.Ceil(grossSquares * 1.5)
	nailBoxes := math.Ceil(nailLbs / 30)
	items = append(items, model.MaterialLineItem{
		Category:      "nails",
		Description:   `1-1/4" Galvanized Roofing Nails (30 lb box)`,
		Unit:          "lbs",
		NetQuantity:   math.Round(grossSquares * 1.5),
		WastePct:      0,
		GrossQuantity: nailLbs,
		OrderQuantity: nailBoxes,
		OrderUnit:     "boxes",
		UnitPrice:     m.Prices.NailBox30Lb,
		LineTotal:     round2(nailBoxes * m.Prices.NailBox30Lb),
	})

	if ridgeFt > 0 {
		ventPieces := math.Ceil(ridgeFt / 4)
		items = append(items, model.MaterialLineItem{
			Category:      "ventilation",
			Description:   "Ridge Vent (4 ft sections)",
			Unit:          "pieces",
			NetQuantity:   ventPieces,
			WastePct:      5,
			GrossQuantity: ventPieces,
			OrderQuantity: ventPieces,
			OrderUnit:     "pieces",
			UnitPrice:     m.Prices.RidgeVentPiece,
			LineTotal:     round2(ventPieces * m.Prices.RidgeVentPiece),
		})
	}

	var totalCost float64
	for _, it := range items {
		totalCost += it.LineTotal
	}

	return &model.MaterialEstimate{
		NetAreaSqft:      math.Round(netArea),
		WastePct:         baseWaste,
		GrossAreaSqft:    math.Round(grossArea),
		GrossSquares:     round1(grossSquares),
		BundleCount:      bundleCount,
		LineItems:        items,
		TotalCost:        round2(totalCost),
		ComplexityFactor: cx.Factor,
		ComplexityClass:  cx.Class,
		ShingleType:      shingle,
	}, nil
}
