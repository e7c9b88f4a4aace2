package model

// RecoveryClass groups roof segments by which recycled material stream
// they feed best. Classification is a pure function of pitch.
type RecoveryClass string

const (
	RecoveryBinderOil RecoveryClass = "binder_oil" // Low pitch, oil-rich tear-off
	RecoveryMixed     RecoveryClass = "mixed"
	RecoveryGranule   RecoveryClass = "granule" // Steep pitch, granule-rich
)

func (c RecoveryClass) String() string {
	return string(c)
}

// RASSegmentYield is the recovery projection for a single segment.
type RASSegmentYield struct {
	SegmentName   string        `json:"segment_name"`
	PitchDegrees  float64       `json:"pitch_degrees"`
	PitchRatio    string        `json:"pitch_ratio"`
	AreaSqft      float64       `json:"area_sqft"`
	RecoveryClass RecoveryClass `json:"recovery_class"`
	BinderOilGal  float64       `json:"binder_oil_gallons"`
	GranulesLbs   float64       `json:"granules_lbs"`
	FiberLbs      float64       `json:"fiber_lbs"`
}

// SlopeDistribution is the share of total roof area in each recovery class.
type SlopeDistribution struct {
	LowPitchPct    float64 `json:"low_pitch_pct"`
	MediumPitchPct float64 `json:"medium_pitch_pct"`
	HighPitchPct   float64 `json:"high_pitch_pct"`
}

// RASYieldAnalysis is the recycled-shingle recovery projection for an
// entire roof, with market valuation and a processing recommendation.
type RASYieldAnalysis struct {
	TotalAreaSqft       float64           `json:"total_area_sqft"`
	TotalSquares        float64           `json:"total_squares"`
	EstimatedWeightLbs  float64           `json:"estimated_weight_lbs"`
	Segments            []RASSegmentYield `json:"segments"`
	TotalBinderOilGal   float64           `json:"total_binder_oil_gallons"`
	TotalGranulesLbs    float64           `json:"total_granules_lbs"`
	TotalFiberLbs       float64           `json:"total_fiber_lbs"`
	TotalRecoverableLbs float64           `json:"total_recoverable_lbs"`
	RecoveryRatePct     float64           `json:"recovery_rate_pct"`
	MarketValueOil      float64           `json:"market_value_oil_cad"`
	MarketValueGranules float64           `json:"market_value_granules_cad"`
	MarketValueFiber    float64           `json:"market_value_fiber_cad"`
	MarketValueTotal    float64           `json:"market_value_total_cad"`
	Recommendation      string            `json:"processing_recommendation"`
	SlopeDistribution   SlopeDistribution `json:"slope_distribution"`
}
