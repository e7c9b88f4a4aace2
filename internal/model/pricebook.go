package model

// PriceBook holds per-unit material pricing for one market region.
// Prices are injected into the estimator so regional repricing never
// touches the computation itself.
type PriceBook struct {
	Currency string `json:"currency" yaml:"currency"`
	Region   string `json:"region" yaml:"region"`

	ArchitecturalBundle float64 `json:"architectural_bundle" yaml:"architectural_bundle"`
	ThreeTabBundle      float64 `json:"3tab_bundle" yaml:"3tab_bundle"`
	UnderlaymentRoll    float64 `json:"underlayment_roll" yaml:"underlayment_roll"`
	IceShieldRoll       float64 `json:"ice_shield_roll" yaml:"ice_shield_roll"`
	StarterBundle       float64 `json:"starter_bundle" yaml:"starter_bundle"`
	RidgeCapBundle      float64 `json:"ridge_cap_bundle" yaml:"ridge_cap_bundle"`
	DripEdgePiece       float64 `json:"drip_edge_piece" yaml:"drip_edge_piece"`
	ValleyFlashingPiece float64 `json:"valley_flashing_piece" yaml:"valley_flashing_piece"`
	NailBox30Lb         float64 `json:"nail_box_30lb" yaml:"nail_box_30lb"`
	RidgeVentPiece      float64 `json:"ridge_vent_piece" yaml:"ridge_vent_piece"`
}

// BundlePrice returns the shingle bundle price for the given product line.
func (p PriceBook) BundlePrice(shingle ShingleType) (float64, error) {
	switch shingle {
	case ShingleArchitectural:
		return p.ArchitecturalBundle, nil
	case Shingle3Tab:
		return p.ThreeTabBundle, nil
	default:
		return 0, ErrUnknownShingle
	}
}

// DefaultPriceBook returns Alberta material pricing (CAD, 2026 estimates).
func DefaultPriceBook() PriceBook {
	return PriceBook{
		Currency:            "CAD",
		Region:              "Alberta",
		ArchitecturalBundle: 42.00,
		ThreeTabBundle:      32.00,
		UnderlaymentRoll:    85.00,  // Synthetic, ~1000 sqft/roll
		IceShieldRoll:       125.00, // ~75 sqft/roll
		StarterBundle:       35.00,  // ~105 linear ft/bundle
		RidgeCapBundle:      55.00,  // ~33 linear ft/bundle
		DripEdgePiece:       8.50,   // 10 ft section
		ValleyFlashingPiece: 22.00,  // W-valley, 10 ft
		NailBox30Lb:         65.00,  // 30 lb box
		RidgeVentPiece:      18.00,  // 4 ft section
	}
}

// RecoveryRates holds the fraction of shingle weight recovered into each
// material stream for one recovery class.
type RecoveryRates struct {
	Oil     float64 `json:"oil" yaml:"oil"`
	Granule float64 `json:"granule" yaml:"granule"`
	Fiber   float64 `json:"fiber" yaml:"fiber"`
}

// YieldTable holds the RAS processing assumptions: per-class recovery
// rates, shingle weights, and recovered-material market pricing.
type YieldTable struct {
	Rates map[RecoveryClass]RecoveryRates `json:"rates" yaml:"rates"`

	// Shingle weight per 100 sqft square, by product line.
	WeightPerSquare map[ShingleType]float64 `json:"weight_per_square" yaml:"weight_per_square"`

	OilLbsPerGallon float64 `json:"oil_lbs_per_gallon" yaml:"oil_lbs_per_gallon"`

	OilPricePerGal    float64 `json:"oil_price_per_gal" yaml:"oil_price_per_gal"`
	GranulePricePerLb float64 `json:"granule_price_per_lb" yaml:"granule_price_per_lb"`
	FiberPricePerLb   float64 `json:"fiber_price_per_lb" yaml:"fiber_price_per_lb"`
}

// RatesFor returns the recovery rates for a class. The three classes are
// a closed set; an unknown class falls back to mixed processing.
func (y YieldTable) RatesFor(class RecoveryClass) RecoveryRates {
	if r, ok := y.Rates[class]; ok {
		return r
	}
	return y.Rates[RecoveryMixed]
}

// SquareWeight returns the per-square shingle weight for the product line.
func (y YieldTable) SquareWeight(shingle ShingleType) (float64, error) {
	w, ok := y.WeightPerSquare[shingle]
	if !ok {
		return 0, ErrUnknownShingle
	}
	return w, nil
}

// DefaultYieldTable returns recovery assumptions validated against
// industry data: binder oil 25-32% of shingle weight, granules 33-40%,
// fiber 6-8%, with Alberta CAD market pricing.
func DefaultYieldTable() YieldTable {
	return YieldTable{
		Rates: map[RecoveryClass]RecoveryRates{
			RecoveryBinderOil: {Oil: 0.32, Granule: 0.33, Fiber: 0.08},
			RecoveryMixed:     {Oil: 0.28, Granule: 0.36, Fiber: 0.07},
			RecoveryGranule:   {Oil: 0.25, Granule: 0.40, Fiber: 0.06},
		},
		WeightPerSquare: map[ShingleType]float64{
			ShingleArchitectural: 250,
			Shingle3Tab:          230,
		},
		OilLbsPerGallon:   8,
		OilPricePerGal:    3.50,
		GranulePricePerLb: 0.08,
		FiberPricePerLb:   0.12,
	}
}
