package engine

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/reusecanada/roofline/internal/model"
)

// Input carries everything the acquisition layer learned about one
// property. Segments must already be normalized (rounded pitch/azimuth,
// projected areas); the analyzer never talks to the network itself.
type Input struct {
	Location       model.Location
	Segments       []model.Segment
	Shingle        model.ShingleType
	Solar          model.SolarPotential
	ImageryQuality string
	ImageryDate    string
	Provider       string
	APIDurationMs  float64
	Imagery        model.ImageryLinks
}

// Analyzer runs the measurement chain for one property: surface areas,
// edge synthesis, bill of materials, waste scenarios and RAS yield, then
// assembles the report. The edge model sits behind an interface so a
// polygon-tracing implementation can replace the synthetic one without
// touching the rest of the chain.
type Analyzer struct {
	Edges     EdgeSynthesizer
	Materials *MaterialEstimator
	RAS       *RASAnalyzer

	log *zap.Logger
}

// NewAnalyzer wires the chain with the given price book and yield table.
// A nil logger is replaced with a no-op logger.
func NewAnalyzer(prices model.PriceBook, yields model.YieldTable, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{
		Edges:     SyntheticEdgeModel{},
		Materials: NewMaterialEstimator(prices),
		RAS:       NewRASAnalyzer(yields),
		log:       log,
	}
}

// Analyze produces the full measurement report. An empty segment list
// yields a report of zeros rather than an error, since a valid building
// lookup can legitimately return no roof planes (e.g. a cleared lot).
func (a *Analyzer) Analyze(in Input) (*model.RoofReport, error) {
	segments := in.Segments

	var footprintSqft, trueSqft, trueSqm float64
	for _, s := range segments {
		footprintSqft += s.FootprintSqft
		trueSqft += s.TrueAreaSqft
		trueSqm += s.TrueAreaSqm
	}

	// Headline pitch is weighted by plane area so a large low shed wing
	// is not drowned out by a steep dormer.
	var weightedPitch float64
	if trueSqft > 0 {
		var sum float64
		for _, s := range segments {
			sum += s.PitchDegrees * s.TrueAreaSqft
		}
		weightedPitch = sum / trueSqft
	}

	var azimuth float64
	if len(segments) > 0 {
		largest := segments[0]
		for _, s := range segments[1:] {
			if s.TrueAreaSqft > largest.TrueAreaSqft {
				largest = s
			}
		}
		azimuth = largest.AzimuthDegrees
	}

	footprintBase := footprintSqft
	if footprintBase == 0 {
		footprintBase = 1
	}
	multiplier := trueSqft / footprintBase

	edges := a.Edges.Synthesize(segments, footprintSqft)
	summary := SummarizeEdges(edges)
	a.log.Debug("synthesized edges",
		zap.Int("edges", len(edges)),
		zap.Float64("total_linear_ft", summary.TotalFt))

	materials, err := a.Materials.Estimate(trueSqft, edges, segments, in.Shingle)
	if err != nil {
		return nil, err
	}

	ras, err := a.RAS.Analyze(segments, trueSqft, in.Shingle)
	if err != nil {
		return nil, err
	}

	var notes []string
	if in.ImageryQuality != model.QualityHigh {
		notes = append(notes, "Imagery quality is "+in.ImageryQuality+
			". HIGH quality (0.1m/px) recommended for exact material orders.")
	}
	if len(segments) < 2 {
		notes = append(notes, "Low segment count may indicate incomplete building model.")
	}

	confidence := 60.0
	switch in.ImageryQuality {
	case model.QualityHigh:
		confidence = 90
	case model.QualityMedium:
		confidence = 75
	}

	report := &model.RoofReport{
		ReportID:    model.NewReportID(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     model.ReportVersion,
		Location:    in.Location,

		TotalFootprintSqft: math.Round(footprintSqft),
		TotalFootprintSqm:  math.Round(footprintSqft * model.SqmPerSqft),
		TotalTrueAreaSqft:  math.Round(trueSqft),
		TotalTrueAreaSqm:   round1(trueSqm),
		AreaMultiplier:     round3(multiplier),

		PitchDegrees:   round1(weightedPitch),
		PitchRatio:     PitchToRatio(weightedPitch),
		AzimuthDegrees: azimuth,

		Segments:    segments,
		Edges:       edges,
		EdgeSummary: &summary,
		Materials:   materials,
		WasteTable:  WasteTable(trueSqft),
		RASYield:    ras,

		Solar: in.Solar,

		ImageryQuality:    in.ImageryQuality,
		ImageryDate:       in.ImageryDate,
		ConfidenceScore:   confidence,
		FieldVerification: in.ImageryQuality != model.QualityHigh,
		QualityNotes:      notes,

		Provider:          in.Provider,
		APIDurationMs:     in.APIDurationMs,
		AccuracyBenchmark: model.AccuracyBenchmark,
		CostPerQuery:      model.CostPerQuery,
		Imagery:           in.Imagery,
	}

	a.log.Info("analysis complete",
		zap.String("report_id", report.ReportID),
		zap.Float64("true_area_sqft", report.TotalTrueAreaSqft),
		zap.Float64("area_multiplier", report.AreaMultiplier),
		zap.String("complexity", materials.ComplexityClass.String()),
		zap.Float64("material_total_cad", materials.TotalCost))

	return report, nil
}
