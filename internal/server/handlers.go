package server

import (
	"fmt"
	"math"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reusecanada/roofline/internal/catalog"
	"github.com/reusecanada/roofline/internal/engine"
	"github.com/reusecanada/roofline/internal/model"
	"github.com/reusecanada/roofline/internal/solar"
)

// Response is the envelope every API reply uses. Code 0 means success;
// error codes are HTTP status x100 plus a detail digit.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error envelope. The HTTP status is derived from the
// leading three digits of the code.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest writes a 400 envelope.
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// NotFound writes a 404 envelope.
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// InternalError writes a 500 envelope.
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// BadGateway writes a 502 envelope for upstream API failures.
func BadGateway(c *gin.Context, message string) {
	Error(c, 50200, message)
}

// Handler carries the dependencies the API routes use.
type Handler struct {
	analyzer *engine.Analyzer
	solar    *solar.Client
	catalog  catalog.Catalog
	log      *zap.Logger
}

// NewHandler builds the route handler set. The solar client may be nil
// when no API key is configured; address lookups then return 503.
func NewHandler(analyzer *engine.Analyzer, sc *solar.Client, cat catalog.Catalog, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		analyzer: analyzer,
		solar:    sc,
		catalog:  cat,
		log:      log,
	}
}

// SegmentInput is one caller-supplied roof plane for inline analysis.
type SegmentInput struct {
	FootprintSqft  float64 `json:"footprint_sqft" binding:"required"`
	PitchDegrees   float64 `json:"pitch_degrees"`
	AzimuthDegrees float64 `json:"azimuth_degrees"`
}

// AnalyzeRequest is the analyze endpoint's body. Exactly one geometry
// source is used, checked in order: inline segments, then address, then
// a coordinate pair.
type AnalyzeRequest struct {
	Address     string         `json:"address"`
	Lat         *float64       `json:"lat"`
	Lng         *float64       `json:"lng"`
	ShingleType string         `json:"shingle_type"`
	Segments    []SegmentInput `json:"segments"`
}

// Analyze runs the measurement chain for one property.
// POST /api/v1/analyze
func (h *Handler) Analyze(c *gin.Context) {
	start := time.Now()
	defer func() {
		analysisDuration.Observe(time.Since(start).Seconds())
	}()

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		analysesTotal.WithLabelValues("bad_request").Inc()
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	shingle := model.ShingleArchitectural
	if req.ShingleType != "" {
		var err error
		shingle, err = model.ParseShingleType(req.ShingleType)
		if err != nil {
			analysesTotal.WithLabelValues("bad_request").Inc()
			BadRequest(c, err.Error())
			return
		}
	}

	in := engine.Input{Shingle: shingle}

	switch {
	case len(req.Segments) > 0:
		var lat, lng float64
		if req.Lat != nil && req.Lng != nil {
			lat, lng = *req.Lat, *req.Lng
		}
		in.Segments = segmentsFromInput(req.Segments)
		in.Location = solar.ParseLocation(req.Address, lat, lng)
		in.Provider = "manual_input"
		in.ImageryQuality = model.QualityHigh

	case req.Address != "" || (req.Lat != nil && req.Lng != nil):
		if h.solar == nil {
			analysesTotal.WithLabelValues("unavailable").Inc()
			Error(c, 50300, "solar api not configured; supply inline segments instead")
			return
		}

		ctx := c.Request.Context()
		var lat, lng float64
		if req.Lat != nil && req.Lng != nil {
			lat, lng = *req.Lat, *req.Lng
		} else {
			var err error
			lat, lng, err = h.solar.Geocode(ctx, req.Address)
			if err != nil {
				analysesTotal.WithLabelValues("upstream_error").Inc()
				BadGateway(c, err.Error())
				return
			}
		}

		ins, err := h.solar.BuildingInsights(ctx, lat, lng)
		if err != nil {
			analysesTotal.WithLabelValues("upstream_error").Inc()
			BadGateway(c, err.Error())
			return
		}

		in.Segments = solar.ParseSegments(&ins.BuildingInsights)
		in.Location = solar.ParseLocation(req.Address, lat, lng)
		in.Solar = ins.Potential()
		in.ImageryQuality = ins.Quality()
		in.ImageryDate = ins.ImageryDateString()
		in.Provider = "google_solar_api"
		in.APIDurationMs = ins.DurationMs
		in.Imagery = solar.ImageryURLs(lat, lng, h.solar.MapsKey())

	default:
		analysesTotal.WithLabelValues("bad_request").Inc()
		BadRequest(c, "provide an address, a lat/lng pair, or inline segments")
		return
	}

	report, err := h.analyzer.Analyze(in)
	if err != nil {
		analysesTotal.WithLabelValues("error").Inc()
		InternalError(c, "analysis failed: "+err.Error())
		return
	}

	analysesTotal.WithLabelValues("ok").Inc()
	Success(c, report)
}

// Pricebook returns the active pricing and yield catalog.
// GET /api/v1/pricebook
func (h *Handler) Pricebook(c *gin.Context) {
	Success(c, h.catalog)
}

// Compare returns the manual-vs-automated method comparison table.
// GET /api/v1/compare
func (h *Handler) Compare(c *gin.Context) {
	Success(c, gin.H{"rows": engine.CompareMethods()})
}

// segmentsFromInput normalizes caller-supplied planes the same way the
// solar parser normalizes API planes, so both sources feed the analyzer
// identical shapes.
func segmentsFromInput(inputs []SegmentInput) []model.Segment {
	segments := make([]model.Segment, 0, len(inputs))
	for i, in := range inputs {
		trueSqft := engine.TrueArea(in.FootprintSqft, in.PitchDegrees)
		segments = append(segments, model.Segment{
			Name:             fmt.Sprintf("Segment %d", i+1),
			FootprintSqft:    math.Round(in.FootprintSqft),
			TrueAreaSqft:     math.Round(trueSqft),
			TrueAreaSqm:      math.Round(trueSqft*model.SqmPerSqft*10) / 10,
			PitchDegrees:     math.Round(in.PitchDegrees*10) / 10,
			PitchRatio:       engine.PitchToRatio(in.PitchDegrees),
			AzimuthDegrees:   math.Round(in.AzimuthDegrees*10) / 10,
			AzimuthDirection: engine.CardinalDirection(in.AzimuthDegrees),
		})
	}
	return segments
}
