package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reusecanada/roofline/internal/model"
)

func TestClassifyComplexity_SimpleGable(t *testing.T) {
	cx := ClassifyComplexity(2, 0, 0, 0)

	assert.Equal(t, model.ComplexitySimple, cx.Class)
	assert.Equal(t, 0, cx.Score)
	assert.Equal(t, 1.00, cx.Factor)
	assert.Equal(t, 10, cx.WastePct)
}

func TestClassifyComplexity_VeryComplex(t *testing.T) {
	// 6 segments (+2), 4 hips (+4), 2 valleys (+4), 12 degree spread (+2).
	cx := ClassifyComplexity(6, 4, 2, 12)

	assert.Equal(t, model.ComplexityVeryComplex, cx.Class)
	assert.Equal(t, 12, cx.Score)
	assert.Equal(t, 1.15, cx.Factor)
	assert.Equal(t, 15, cx.WastePct)
}

func TestClassifyComplexity_ClassBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		segments  int
		hips      int
		valleys   int
		variation float64
		wantClass model.ComplexityClass
		wantScore int
	}{
		{"score 2 stays simple", 4, 1, 0, 0, model.ComplexitySimple, 2},
		{"score 3 tips moderate", 4, 2, 0, 0, model.ComplexityModerate, 3},
		{"score 5 stays moderate", 4, 4, 0, 0, model.ComplexityModerate, 5},
		{"score 6 tips complex", 4, 4, 0, 6, model.ComplexityComplex, 6},
		{"score 8 stays complex", 5, 4, 1, 0, model.ComplexityComplex, 8},
		{"score 9 tips very complex", 4, 4, 2, 0, model.ComplexityVeryComplex, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx := ClassifyComplexity(tt.segments, tt.hips, tt.valleys, tt.variation)
			assert.Equal(t, tt.wantClass, cx.Class)
			assert.Equal(t, tt.wantScore, cx.Score)
		})
	}
}

func TestClassifyComplexity_CapsHipAndValleyContributions(t *testing.T) {
	// 20 hips count as 4, 20 valleys count as 6.
	cx := ClassifyComplexity(2, 20, 20, 0)
	assert.Equal(t, 10, cx.Score)
	assert.Equal(t, model.ComplexityVeryComplex, cx.Class)
}

func TestClassifyComplexity_PitchVariationSteps(t *testing.T) {
	assert.Equal(t, 0, ClassifyComplexity(2, 0, 0, 5).Score)
	assert.Equal(t, 1, ClassifyComplexity(2, 0, 0, 5.1).Score)
	assert.Equal(t, 1, ClassifyComplexity(2, 0, 0, 10).Score)
	assert.Equal(t, 2, ClassifyComplexity(2, 0, 0, 10.1).Score)
}
