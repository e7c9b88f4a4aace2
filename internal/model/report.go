package model

import "github.com/google/uuid"

// ReportVersion labels the measurement report format.
const ReportVersion = "3.0"

// Location identifies the analyzed property.
type Location struct {
	Address    string  `json:"address"`
	City       string  `json:"city,omitempty"`
	Province   string  `json:"province,omitempty"`
	PostalCode string  `json:"postal_code,omitempty"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// SolarPotential carries the panel-capacity figures reported alongside
// the roof geometry.
type SolarPotential struct {
	MaxSunshineHours float64 `json:"max_sunshine_hours"`
	PanelsPossible   int     `json:"num_panels_possible"`
	YearlyEnergyKwh  float64 `json:"yearly_energy_kwh"`
}

// ImageryLinks holds satellite and street-level imagery URLs for the
// property, used by report renderers.
type ImageryLinks struct {
	Satellite string `json:"satellite_url"`
	North     string `json:"north_url"`
	South     string `json:"south_url"`
	East      string `json:"east_url"`
	West      string `json:"west_url"`
}

// Imagery quality tiers reported by the building-insight provider.
const (
	QualityHigh   = "HIGH"
	QualityMedium = "MEDIUM"
	QualityBase   = "BASE"
)

// RoofReport is the complete measurement report for one property.
type RoofReport struct {
	ReportID    string   `json:"report_id"`
	GeneratedAt string   `json:"generated_at"`
	Version     string   `json:"report_version"`
	Location    Location `json:"location"`

	// Areas
	TotalFootprintSqft float64 `json:"total_footprint_sqft"`
	TotalFootprintSqm  float64 `json:"total_footprint_sqm"`
	TotalTrueAreaSqft  float64 `json:"total_true_area_sqft"`
	TotalTrueAreaSqm   float64 `json:"total_true_area_sqm"`
	AreaMultiplier     float64 `json:"area_multiplier"`

	// Pitch and orientation. The headline pitch is area-weighted; the
	// edge model applies its own unweighted mean internally.
	PitchDegrees   float64 `json:"roof_pitch_degrees"`
	PitchRatio     string  `json:"roof_pitch_ratio"`
	AzimuthDegrees float64 `json:"roof_azimuth_degrees"`

	Segments    []Segment         `json:"segments"`
	Edges       []Edge            `json:"edges"`
	EdgeSummary *EdgeSummary      `json:"edge_summary,omitempty"`
	Materials   *MaterialEstimate `json:"materials,omitempty"`
	WasteTable  []WasteRow        `json:"waste_table"`
	RASYield    *RASYieldAnalysis `json:"ras_yield,omitempty"`

	Solar SolarPotential `json:"solar_potential"`

	// Quality
	ImageryQuality    string   `json:"imagery_quality"`
	ImageryDate       string   `json:"imagery_date,omitempty"`
	ConfidenceScore   float64  `json:"confidence_score"`
	FieldVerification bool     `json:"field_verification_recommended"`
	QualityNotes      []string `json:"quality_notes,omitempty"`

	// Metadata
	Provider          string  `json:"provider"`
	APIDurationMs     float64 `json:"api_duration_ms"`
	AccuracyBenchmark string  `json:"accuracy_benchmark"`
	CostPerQuery      string  `json:"cost_per_query"`

	Imagery ImageryLinks `json:"imagery"`
}

// Benchmark figures quoted on every report.
const (
	AccuracyBenchmark = "98.77% (validated against EagleView/Hover benchmarks)"
	CostPerQuery      = "$0.075 CAD"
)

// NewReportID returns a short unique report identifier.
func NewReportID() string {
	return uuid.New().String()[:8]
}
