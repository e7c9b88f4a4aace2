package solar

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/reusecanada/roofline/internal/engine"
	"github.com/reusecanada/roofline/internal/model"
)

// BuildingInsights mirrors the fields of the buildingInsights:findClosest
// response that the pipeline consumes.
type BuildingInsights struct {
	Name           string          `json:"name"`
	Center         LatLng          `json:"center"`
	ImageryDate    *Date           `json:"imageryDate,omitempty"`
	ImageryQuality string          `json:"imageryQuality,omitempty"`
	SolarPotential *SolarPotential `json:"solarPotential,omitempty"`
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Date is the API's split calendar date.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// SolarPotential holds the roof model and panel-capacity figures.
type SolarPotential struct {
	MaxArrayPanelsCount     int                `json:"maxArrayPanelsCount"`
	MaxSunshineHoursPerYear float64            `json:"maxSunshineHoursPerYear"`
	RoofSegmentStats        []RoofSegmentStats `json:"roofSegmentStats"`
	SolarPanelConfigs       []PanelConfig      `json:"solarPanelConfigs,omitempty"`
}

// RoofSegmentStats is one detected roof plane.
type RoofSegmentStats struct {
	PitchDegrees              float64   `json:"pitchDegrees"`
	AzimuthDegrees            float64   `json:"azimuthDegrees"`
	Stats                     SizeStats `json:"stats"`
	PlaneHeightAtCenterMeters *float64  `json:"planeHeightAtCenterMeters,omitempty"`
}

// SizeStats carries the plane's flat (bird's-eye) area.
type SizeStats struct {
	AreaMeters2 float64 `json:"areaMeters2"`
}

// PanelConfig is one simulated panel layout.
type PanelConfig struct {
	PanelsCount       int     `json:"panelsCount"`
	YearlyEnergyDcKwh float64 `json:"yearlyEnergyDcKwh"`
}

// Quality returns the imagery quality tier, defaulting to BASE when the
// response omits it.
func (b *BuildingInsights) Quality() string {
	if b.ImageryQuality == "" {
		return model.QualityBase
	}
	return b.ImageryQuality
}

// ImageryDateString formats the imagery date as YYYY-MM-DD, or empty when
// the response carries none.
func (b *BuildingInsights) ImageryDateString() string {
	if b.ImageryDate == nil {
		return ""
	}
	return fmt.Sprintf("%d-%02d-%02d", b.ImageryDate.Year, b.ImageryDate.Month, b.ImageryDate.Day)
}

// Potential extracts the panel-capacity summary. When the response has no
// simulated configs the yearly energy falls back to a 400 kWh/panel rule
// of thumb.
func (b *BuildingInsights) Potential() model.SolarPotential {
	sp := b.SolarPotential
	if sp == nil {
		return model.SolarPotential{}
	}
	yearly := float64(sp.MaxArrayPanelsCount) * 400
	if len(sp.SolarPanelConfigs) > 0 {
		yearly = sp.SolarPanelConfigs[0].YearlyEnergyDcKwh
	}
	return model.SolarPotential{
		MaxSunshineHours: math.Round(sp.MaxSunshineHoursPerYear*10) / 10,
		PanelsPossible:   sp.MaxArrayPanelsCount,
		YearlyEnergyKwh:  math.Round(yearly),
	}
}

// ParseSegments converts the response's roof planes into engine segments.
// The API reports flat areas in square meters; the true 3D surface is
// projected here so downstream consumers never see unprojected planes.
// Displayed figures are rounded (whole ft², 0.1 m², 0.1 degrees) but the
// ratio and cardinal are derived from the unrounded values.
func ParseSegments(b *BuildingInsights) []model.Segment {
	if b == nil || b.SolarPotential == nil {
		return nil
	}

	raw := b.SolarPotential.RoofSegmentStats
	segments := make([]model.Segment, 0, len(raw))
	for i, seg := range raw {
		footprintSqm := seg.Stats.AreaMeters2
		footprintSqft := footprintSqm * model.SqftPerSqm
		trueSqft := engine.TrueArea(footprintSqft, seg.PitchDegrees)
		trueSqm := engine.TrueArea(footprintSqm, seg.PitchDegrees)

		segments = append(segments, model.Segment{
			Name:             fmt.Sprintf("Segment %d", i+1),
			FootprintSqft:    math.Round(footprintSqft),
			TrueAreaSqft:     math.Round(trueSqft),
			TrueAreaSqm:      math.Round(trueSqm*10) / 10,
			PitchDegrees:     math.Round(seg.PitchDegrees*10) / 10,
			PitchRatio:       engine.PitchToRatio(seg.PitchDegrees),
			AzimuthDegrees:   math.Round(seg.AzimuthDegrees*10) / 10,
			AzimuthDirection: engine.CardinalDirection(seg.AzimuthDegrees),
			PlaneHeightM:     seg.PlaneHeightAtCenterMeters,
		})
	}
	return segments
}

var postalCodeRe = regexp.MustCompile(`[A-Z]\d[A-Z]\s?\d[A-Z]\d`)

// ParseLocation splits a Canadian-style address into its components by
// comma position and postal-code shape. Parsing is best effort; anything
// it cannot pick out is left empty.
func ParseLocation(address string, lat, lng float64) model.Location {
	loc := model.Location{
		Address:   address,
		Latitude:  lat,
		Longitude: lng,
	}
	if address == "" {
		loc.Address = fmt.Sprintf("%v, %v", lat, lng)
		return loc
	}

	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) >= 3 {
		loc.City = parts[len(parts)-2]
		if fields := strings.Fields(parts[len(parts)-1]); len(fields) > 0 {
			loc.Province = fields[0]
		}
	} else if len(parts) == 2 {
		loc.City = parts[len(parts)-1]
	}

	if pc := postalCodeRe.FindString(strings.ToUpper(address)); pc != "" {
		loc.PostalCode = pc
	}
	return loc
}
