package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reusecanada/roofline/internal/model"
)

// fourPlaneRoof is a 2000 sqft hip roof at a uniform 26.6 degree pitch.
func fourPlaneRoof() []model.Segment {
	seg := func(name string, azimuth float64, dir string) model.Segment {
		return model.Segment{
			Name:             name,
			FootprintSqft:    500,
			TrueAreaSqft:     559.2,
			TrueAreaSqm:      51.9,
			PitchDegrees:     26.6,
			PitchRatio:       "6:12",
			AzimuthDegrees:   azimuth,
			AzimuthDirection: dir,
		}
	}
	return []model.Segment{
		seg("Segment 1 (S)", 180, "S"),
		seg("Segment 2 (N)", 0, "N"),
		seg("Segment 3 (E)", 90, "E"),
		seg("Segment 4 (W)", 270, "W"),
	}
}

func countByType(edges []model.Edge) map[model.EdgeType]int {
	counts := make(map[model.EdgeType]int)
	for _, e := range edges {
		counts[e.Type]++
	}
	return counts
}

func TestSynthesize_HipRoofTopology(t *testing.T) {
	edges := SyntheticEdgeModel{}.Synthesize(fourPlaneRoof(), 2000)

	require.Len(t, edges, 12)
	counts := countByType(edges)
	assert.Equal(t, 2, counts[model.EdgeRidge])
	assert.Equal(t, 4, counts[model.EdgeHip])
	assert.Equal(t, 2, counts[model.EdgeValley])
	assert.Equal(t, 4, counts[model.EdgeEave])
	assert.Equal(t, 0, counts[model.EdgeRake])
}

func TestSynthesize_HipRoofMeasurements(t *testing.T) {
	// Footprint 2000 at 1.5:1 gives a 54.77 x 36.51 ft rectangle.
	edges := SyntheticEdgeModel{}.Synthesize(fourPlaneRoof(), 2000)
	require.Len(t, edges, 12)

	main := edges[0]
	assert.Equal(t, model.EdgeRidge, main.Type)
	assert.Equal(t, "Main Ridge Line", main.Label)
	assert.Equal(t, 47.0, main.PlanLengthFt)
	assert.Equal(t, 47.0, main.TrueLengthFt, "ridges are horizontal")
	assert.Equal(t, 1.0, main.PitchFactor)
	assert.Equal(t, []int{0, 1}, main.AdjacentSegments)

	wing := edges[1]
	assert.Equal(t, "Wing Ridge Line", wing.Label)
	assert.Equal(t, 18.0, wing.PlanLengthFt)
	assert.Equal(t, []int{2, 3}, wing.AdjacentSegments)

	hip := edges[2]
	assert.Equal(t, model.EdgeHip, hip.Type)
	assert.Equal(t, "NE Hip", hip.Label)
	assert.Equal(t, 26.0, hip.PlanLengthFt)
	assert.Equal(t, 29.0, hip.TrueLengthFt, "true length from unrounded plan")
	assert.Equal(t, 1.118, hip.PitchFactor, "factor stored at 3 decimals")

	valley := edges[6]
	assert.Equal(t, model.EdgeValley, valley.Type)
	assert.Equal(t, "East Valley", valley.Label)
	assert.Equal(t, 13.0, valley.PlanLengthFt)
	assert.Equal(t, 14.0, valley.TrueLengthFt)

	south := edges[8]
	assert.Equal(t, model.EdgeEave, south.Type)
	assert.Equal(t, "South Eave", south.Label)
	assert.Equal(t, 49.0, south.PlanLengthFt)

	east := edges[10]
	assert.Equal(t, "East Eave", east.Label)
	assert.Equal(t, 15.0, east.PlanLengthFt)
}

func TestSynthesize_GableRoofTopology(t *testing.T) {
	segments := fourPlaneRoof()[:2]
	edges := SyntheticEdgeModel{}.Synthesize(segments, 2000)

	require.Len(t, edges, 7)
	counts := countByType(edges)
	assert.Equal(t, 1, counts[model.EdgeRidge])
	assert.Equal(t, 0, counts[model.EdgeHip])
	assert.Equal(t, 0, counts[model.EdgeValley])
	assert.Equal(t, 2, counts[model.EdgeEave])
	assert.Equal(t, 4, counts[model.EdgeRake])

	// Gable eaves run nearly the full building length.
	assert.Equal(t, "South Eave", edges[1].Label)
	assert.Equal(t, 52.0, edges[1].PlanLengthFt)

	rake := edges[3]
	assert.Equal(t, model.EdgeRake, rake.Type)
	assert.Equal(t, "East Rake (Left)", rake.Label)
	assert.Equal(t, 18.0, rake.PlanLengthFt)
	assert.Equal(t, 20.0, rake.TrueLengthFt)
	assert.Equal(t, 1.118, rake.PitchFactor)
}

func TestSynthesize_EmptyInputs(t *testing.T) {
	assert.Empty(t, SyntheticEdgeModel{}.Synthesize(nil, 2000))
	assert.Empty(t, SyntheticEdgeModel{}.Synthesize(fourPlaneRoof(), 0))
	assert.Empty(t, SyntheticEdgeModel{}.Synthesize(fourPlaneRoof(), -100))
}

func TestSummarizeEdges(t *testing.T) {
	edges := SyntheticEdgeModel{}.Synthesize(fourPlaneRoof(), 2000)
	summary := SummarizeEdges(edges)

	assert.Equal(t, 65.0, summary.RidgeFt)
	assert.Equal(t, 116.0, summary.HipFt)
	assert.Equal(t, 28.0, summary.ValleyFt)
	assert.Equal(t, 128.0, summary.EaveFt)
	assert.Equal(t, 0.0, summary.RakeFt)
	assert.Equal(t, 337.0, summary.TotalFt)
}

func TestSummarizeEdges_Empty(t *testing.T) {
	summary := SummarizeEdges(nil)
	assert.Equal(t, 0.0, summary.TotalFt)
}
