package engine

import "github.com/reusecanada/roofline/internal/model"

// Complexity bundles the classification of a roof's structural difficulty
// with the multipliers a crew applies when quoting it.
type Complexity struct {
	Class    model.ComplexityClass
	Score    int
	Factor   float64
	WastePct int
}

// ClassifyComplexity scores a roof's structural features and maps the score
// onto a labor/waste class. Faces, hips and valleys each add points, valleys
// double because they trap debris and need flashing. Pitch variation above
// 5 degrees means stepped framing, above 10 degrees means mixed slope work.
//
//	simple       score <= 2  factor 1.00  waste 10%
//	moderate     score 3-5   factor 1.05  waste 12%
//	complex      score 6-8   factor 1.10  waste 14%
//	very_complex score > 8   factor 1.15  waste 15%
func ClassifyComplexity(segmentCount, hipCount, valleyCount int, pitchVariation float64) Complexity {
	score := 0

	switch {
	case segmentCount <= 2:
	case segmentCount <= 4:
		score++
	case segmentCount <= 6:
		score += 2
	default:
		score += 3
	}

	score += minInt(hipCount, 4)
	score += minInt(valleyCount*2, 6)

	if pitchVariation > 10 {
		score += 2
	} else if pitchVariation > 5 {
		score++
	}

	switch {
	case score <= 2:
		return Complexity{Class: model.ComplexitySimple, Score: score, Factor: 1.00, WastePct: 10}
	case score <= 5:
		return Complexity{Class: model.ComplexityModerate, Score: score, Factor: 1.05, WastePct: 12}
	case score <= 8:
		return Complexity{Class: model.ComplexityComplex, Score: score, Factor: 1.10, WastePct: 14}
	default:
		return Complexity{Class: model.ComplexityVeryComplex, Score: score, Factor: 1.15, WastePct: 15}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
