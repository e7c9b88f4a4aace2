package engine

import (
	"math"

	"github.com/reusecanada/roofline/internal/model"
)

// EdgeSynthesizer derives linear edge measurements (ridge, hip, valley,
// eave, rake) for a roof. Implementations may estimate edges from segment
// statistics or, eventually, trace them from real footprint polygons.
type EdgeSynthesizer interface {
	Synthesize(segments []model.Segment, totalFootprintSqft float64) []model.Edge
}

// SyntheticEdgeModel estimates edges from segment count and footprint area
// alone, assuming a rectangular building with a 1.5:1 length-to-width
// ratio. Four or more segments reads as a hip roof with an intersecting
// wing; three or fewer reads as a gable.
type SyntheticEdgeModel struct{}

// Synthesize builds the edge list. Plan and true lengths are rounded to
// whole feet at emission; true lengths are computed from the unrounded
// plan length so the rounding never compounds. Stored pitch factors are
// rounded to three decimals for display.
func (SyntheticEdgeModel) Synthesize(segments []model.Segment, totalFootprintSqft float64) []model.Edge {
	if len(segments) == 0 || totalFootprintSqft <= 0 {
		return nil
	}

	widthFt := math.Sqrt(totalFootprintSqft / 1.5)
	lengthFt := widthFt * 1.5

	var pitchSum float64
	for _, s := range segments {
		pitchSum += s.PitchDegrees
	}
	avgPitch := pitchSum / float64(len(segments))
	n := len(segments)

	var edges []model.Edge

	// Ridges run horizontally along the building length.
	mainRidgePlan := lengthFt * 0.85
	edges = append(edges, model.Edge{
		Type:             model.EdgeRidge,
		Label:            "Main Ridge Line",
		PlanLengthFt:     math.Round(mainRidgePlan),
		TrueLengthFt:     math.Round(mainRidgePlan),
		PitchFactor:      1.0,
		AdjacentSegments: []int{0, 1},
	})

	if n >= 4 {
		wingRidgePlan := widthFt * 0.5
		edges = append(edges, model.Edge{
			Type:             model.EdgeRidge,
			Label:            "Wing Ridge Line",
			PlanLengthFt:     math.Round(wingRidgePlan),
			TrueLengthFt:     math.Round(wingRidgePlan),
			PitchFactor:      1.0,
			AdjacentSegments: []int{2, 3},
		})

		// Hips run diagonally from the ridge ends to the corners.
		hipPlan := widthFt / 2 * math.Sqrt2
		hvFactor := HipValleyFactor(avgPitch)
		hipTrue := hipPlan * hvFactor
		for _, label := range []string{"NE Hip", "NW Hip", "SE Hip", "SW Hip"} {
			edges = append(edges, model.Edge{
				Type:         model.EdgeHip,
				Label:        label,
				PlanLengthFt: math.Round(hipPlan),
				TrueLengthFt: math.Round(hipTrue),
				PitchFactor:  round3(hvFactor),
			})
		}

		// Valleys where the wing planes meet the main planes.
		valleyPlan := widthFt * 0.35
		valleyTrue := valleyPlan * hvFactor
		for _, label := range []string{"East Valley", "West Valley"} {
			edges = append(edges, model.Edge{
				Type:         model.EdgeValley,
				Label:        label,
				PlanLengthFt: math.Round(valleyPlan),
				TrueLengthFt: math.Round(valleyTrue),
				PitchFactor:  round3(hvFactor),
			})
		}
	}

	// Eaves are horizontal, so plan length is true length.
	type eaveSection struct {
		label  string
		length float64
	}
	var eaveSections []eaveSection
	if n >= 4 {
		eaveSections = []eaveSection{
			{"South Eave", lengthFt * 0.9},
			{"North Eave", lengthFt * 0.9},
			{"East Eave", widthFt * 0.4},
			{"West Eave", widthFt * 0.4},
		}
	} else {
		eaveSections = []eaveSection{
			{"South Eave", lengthFt * 0.95},
			{"North Eave", lengthFt * 0.95},
		}
	}
	for _, sec := range eaveSections {
		edges = append(edges, model.Edge{
			Type:         model.EdgeEave,
			Label:        sec.label,
			PlanLengthFt: math.Round(sec.length),
			TrueLengthFt: math.Round(sec.length),
			PitchFactor:  1.0,
		})
	}

	// Gable roofs carry sloped rakes at each end instead of hips.
	if n <= 3 {
		rakePlan := widthFt / 2
		rf := RakeFactor(avgPitch)
		rakeTrue := rakePlan * rf
		for _, label := range []string{
			"East Rake (Left)", "East Rake (Right)",
			"West Rake (Left)", "West Rake (Right)",
		} {
			edges = append(edges, model.Edge{
				Type:         model.EdgeRake,
				Label:        label,
				PlanLengthFt: math.Round(rakePlan),
				TrueLengthFt: math.Round(rakeTrue),
				PitchFactor:  round3(rf),
			})
		}
	}

	return edges
}

// SummarizeEdges totals true edge length per edge type. Each per-type
// total is rounded to whole feet before the grand total is taken, so the
// summary always matches the printed per-type figures.
func SummarizeEdges(edges []model.Edge) model.EdgeSummary {
	var s model.EdgeSummary
	for _, e := range edges {
		switch e.Type {
		case model.EdgeRidge:
			s.RidgeFt += e.TrueLengthFt
		case model.EdgeHip:
			s.HipFt += e.TrueLengthFt
		case model.EdgeValley:
			s.ValleyFt += e.TrueLengthFt
		case model.EdgeEave:
			s.EaveFt += e.TrueLengthFt
		case model.EdgeRake:
			s.RakeFt += e.TrueLengthFt
		}
	}
	s.RidgeFt = math.Round(s.RidgeFt)
	s.HipFt = math.Round(s.HipFt)
	s.ValleyFt = math.Round(s.ValleyFt)
	s.EaveFt = math.Round(s.EaveFt)
	s.RakeFt = math.Round(s.RakeFt)
	s.TotalFt = math.Round(s.RidgeFt + s.HipFt + s.ValleyFt + s.EaveFt + s.RakeFt)
	return s
}
