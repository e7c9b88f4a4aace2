package engine

import (
	"math"
	"strconv"
)

// Compass sectors for azimuth classification, 22.5 degrees each.
var cardinalDirections = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CardinalDirection maps an azimuth in degrees to one of 16 compass
// directions. The azimuth is normalized into [0, 360) first, so negative
// and oversized inputs are accepted. Sector boundaries round half up, so
// 11.25 lands in NNE.
func CardinalDirection(azimuthDegrees float64) string {
	az := math.Mod(azimuthDegrees, 360)
	if az < 0 {
		az += 360
	}
	idx := int(math.Round(az/22.5)) % 16
	return cardinalDirections[idx]
}

// PitchToRatio converts a pitch in degrees to the roofing trade's
// rise-over-12 notation, e.g. 33.69 degrees -> "8:12". The rise is rounded
// to one decimal and trailing ".0" is trimmed. Pitches outside (0, 90) are
// reported as flat.
func PitchToRatio(pitchDegrees float64) string {
	if pitchDegrees <= 0 || pitchDegrees >= 90 {
		return "0:12"
	}
	rise := 12 * math.Tan(pitchDegrees*math.Pi/180)
	rise = math.Round(rise*10) / 10
	return strconv.FormatFloat(rise, 'f', -1, 64) + ":12"
}

// PitchRise returns the rise per 12 inches of run for a pitch in degrees,
// unrounded. Out-of-range pitches yield 0.
func PitchRise(pitchDegrees float64) float64 {
	if pitchDegrees <= 0 || pitchDegrees >= 90 {
		return 0
	}
	return 12 * math.Tan(pitchDegrees*math.Pi/180)
}

// TrueArea projects a flat footprint area onto the sloped roof plane:
// trueArea = footprint / cos(pitch). A pitch outside (0, 90) degrees is
// degenerate geometry and falls back to the footprint unchanged.
func TrueArea(footprintSqft, pitchDegrees float64) float64 {
	if pitchDegrees <= 0 || pitchDegrees >= 90 {
		return footprintSqft
	}
	return footprintSqft / math.Cos(pitchDegrees*math.Pi/180)
}

// RakeFactor is the plan-to-slope multiplier for a pitch in degrees,
// 1/cos(pitch). It applies to rake edges and to any measurement taken
// straight up the slope. Degenerate pitches return 1.
func RakeFactor(pitchDegrees float64) float64 {
	if pitchDegrees <= 0 || pitchDegrees >= 90 {
		return 1.0
	}
	return 1 / math.Cos(pitchDegrees*math.Pi/180)
}

// HipValleyFactor is the plan-to-true multiplier for hips and valleys,
// which run diagonally across the slope at 45 degrees in plan:
//
//	factor = sqrt(2*rise^2 + 288) / (12 * sqrt(2))
//
// where rise = 12*tan(pitch). A flat or degenerate pitch yields 1.
func HipValleyFactor(pitchDegrees float64) float64 {
	if pitchDegrees <= 0 || pitchDegrees >= 90 {
		return 1.0
	}
	rise := 12 * math.Tan(pitchDegrees*math.Pi/180)
	return math.Sqrt(2*rise*rise+288) / (12 * math.Sqrt2)
}

// round1 rounds to one decimal place, half away from zero.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// round2 rounds to two decimal places, for currency.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// round3 rounds to three decimal places, for display factors.
func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
