package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownShingle is returned when a shingle type is not in the catalog.
// Shingle type changes pricing and weight assumptions, so it is never
// silently defaulted.
var ErrUnknownShingle = errors.New("unknown shingle type")

// ShingleType selects the shingle product line used for pricing and
// per-square weight.
type ShingleType string

const (
	ShingleArchitectural ShingleType = "architectural"
	Shingle3Tab          ShingleType = "3tab"
)

func (s ShingleType) String() string {
	return string(s)
}

// ParseShingleType normalizes user input to a ShingleType.
func ParseShingleType(s string) (ShingleType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "architectural", "arch", "laminate":
		return ShingleArchitectural, nil
	case "3tab", "3-tab", "three-tab":
		return Shingle3Tab, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownShingle, s)
	}
}

// ComplexityClass is the structural difficulty rating of a roof.
type ComplexityClass string

const (
	ComplexitySimple      ComplexityClass = "simple"
	ComplexityModerate    ComplexityClass = "moderate"
	ComplexityComplex     ComplexityClass = "complex"
	ComplexityVeryComplex ComplexityClass = "very_complex"
)

func (c ComplexityClass) String() string {
	return string(c)
}

// MaterialLineItem is a single priced row on the bill of materials.
type MaterialLineItem struct {
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Unit          string  `json:"unit"`
	NetQuantity   float64 `json:"net_quantity"`
	WastePct      float64 `json:"waste_pct"`
	GrossQuantity float64 `json:"gross_quantity"`
	OrderQuantity float64 `json:"order_quantity"` // Whole purchasable units
	OrderUnit     string  `json:"order_unit"`
	UnitPrice     float64 `json:"unit_price_cad"`
	LineTotal     float64 `json:"line_total_cad"`
}

// MaterialEstimate is the complete bill of materials for one roofing job.
type MaterialEstimate struct {
	NetAreaSqft      float64            `json:"net_area_sqft"`
	WastePct         float64            `json:"waste_pct"`
	GrossAreaSqft    float64            `json:"gross_area_sqft"`
	GrossSquares     float64            `json:"gross_squares"`
	BundleCount      int                `json:"bundle_count"`
	LineItems        []MaterialLineItem `json:"line_items"`
	TotalCost        float64            `json:"total_material_cost_cad"`
	ComplexityFactor float64            `json:"complexity_factor"`
	ComplexityClass  ComplexityClass    `json:"complexity_class"`
	ShingleType      ShingleType        `json:"shingle_type"`
}

// WasteRow is one fixed overage scenario in the waste comparison table.
type WasteRow struct {
	WastePct    int     `json:"waste_pct"`
	Factor      float64 `json:"factor"`
	Description string  `json:"description"`
	GrossSqft   float64 `json:"gross_sqft"`
	Squares     float64 `json:"squares"`
	Bundles     int     `json:"bundles"`
}
