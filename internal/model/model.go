package model

// Unit conversion constants for roof areas.
const (
	SqftPerSqm = 10.7639
	SqmPerSqft = 0.0929
)

// Segment represents a single planar roof face with 3D measurements.
type Segment struct {
	Name             string   `json:"name"`
	FootprintSqft    float64  `json:"footprint_area_sqft"` // Flat 2D footprint
	TrueAreaSqft     float64  `json:"true_area_sqft"`      // 3D surface after slope correction
	TrueAreaSqm      float64  `json:"true_area_sqm"`
	PitchDegrees     float64  `json:"pitch_degrees"`
	PitchRatio       string   `json:"pitch_ratio"` // Contractor "X:12" notation
	AzimuthDegrees   float64  `json:"azimuth_degrees"`
	AzimuthDirection string   `json:"azimuth_direction"` // 16-point cardinal
	PlaneHeightM     *float64 `json:"plane_height_meters,omitempty"`
}

// EdgeType identifies the kind of linear roof feature an edge measures.
type EdgeType string

const (
	EdgeRidge  EdgeType = "ridge"
	EdgeHip    EdgeType = "hip"
	EdgeValley EdgeType = "valley"
	EdgeEave   EdgeType = "eave"
	EdgeRake   EdgeType = "rake"
)

func (t EdgeType) String() string {
	return string(t)
}

// Edge represents a 3D linear measurement of one roof edge.
type Edge struct {
	Type             EdgeType `json:"edge_type"`
	Label            string   `json:"label"`
	PlanLengthFt     float64  `json:"plan_length_ft"` // 2D horizontal length
	TrueLengthFt     float64  `json:"true_length_ft"` // 3D length accounting for slope
	PitchFactor      float64  `json:"pitch_factor"`
	AdjacentSegments []int    `json:"adjacent_segments,omitempty"`
}

// EdgeSummary holds aggregated edge totals in linear feet.
// Each per-type total is rounded before the grand total is formed.
type EdgeSummary struct {
	RidgeFt  float64 `json:"total_ridge_ft"`
	HipFt    float64 `json:"total_hip_ft"`
	ValleyFt float64 `json:"total_valley_ft"`
	EaveFt   float64 `json:"total_eave_ft"`
	RakeFt   float64 `json:"total_rake_ft"`
	TotalFt  float64 `json:"total_linear_ft"`
}
