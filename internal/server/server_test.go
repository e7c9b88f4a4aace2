package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reusecanada/roofline/internal/catalog"
	"github.com/reusecanada/roofline/internal/config"
	"github.com/reusecanada/roofline/internal/engine"
	"github.com/reusecanada/roofline/internal/solar"
)

const insightsPayload = `{
	"name": "buildings/abc123",
	"center": {"latitude": 53.5205, "longitude": -113.4937},
	"imageryDate": {"year": 2025, "month": 6, "day": 14},
	"imageryQuality": "HIGH",
	"solarPotential": {
		"maxArrayPanelsCount": 24,
		"maxSunshineHoursPerYear": 2100.52,
		"roofSegmentStats": [
			{"pitchDegrees": 26.6, "azimuthDegrees": 180, "stats": {"areaMeters2": 46.4515}},
			{"pitchDegrees": 26.6, "azimuthDegrees": 0, "stats": {"areaMeters2": 46.4515}}
		],
		"solarPanelConfigs": [{"panelsCount": 4, "yearlyEnergyDcKwh": 1632.4}]
	}
}`

func setupRouter(t *testing.T, sc *solar.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := catalog.Default()
	analyzer := engine.NewAnalyzer(cat.Prices, cat.Yields, nil)
	h := NewHandler(analyzer, sc, cat, nil)
	s := New(config.ServerConfig{Port: 8080}, h, BuildInfo{Version: "test", BuildTime: "now"}, zap.NewNop())
	return s.router
}

// stubSolarClient backs the client with canned geocode and insight
// responses. geocodeCalls counts geocoder hits.
func stubSolarClient(t *testing.T, geocodeCalls *int) *solar.Client {
	t.Helper()

	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if geocodeCalls != nil {
			*geocodeCalls++
		}
		w.Write([]byte(`{"status": "OK", "results": [{"geometry": {"location": {"lat": 53.5205, "lng": -113.4937}}}]}`))
	}))
	t.Cleanup(geo.Close)

	sol := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(insightsPayload))
	}))
	t.Cleanup(sol.Close)

	return solar.NewClient(solar.Config{
		APIKey:         "test-key",
		GeocodeBaseURL: geo.URL,
		SolarBaseURL:   sol.URL,
	})
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v (%s)", err, w.Body.String())
	}
	return resp
}

func TestHealthEndpoints(t *testing.T) {
	router := setupRouter(t, nil)

	for _, path := range []string{"/health/live", "/health/ready"} {
		w := doRequest(t, router, "GET", path, nil)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
		resp := parseEnvelope(t, w)
		if resp["status"] != "ok" {
			t.Errorf("%s: expected status ok, got %v", path, resp["status"])
		}
	}
}

func TestVersionEndpoint(t *testing.T) {
	router := setupRouter(t, nil)

	w := doRequest(t, router, "GET", "/version", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := parseEnvelope(t, w)
	if resp["version"] != "test" {
		t.Errorf("expected version 'test', got %v", resp["version"])
	}
	if resp["build_time"] != "now" {
		t.Errorf("expected build_time 'now', got %v", resp["build_time"])
	}
}

func TestAnalyze_InlineSegments(t *testing.T) {
	router := setupRouter(t, nil)

	body := map[string]interface{}{
		"address":      "8204 Argyll Rd NW, Edmonton, AB T6E 4G1",
		"shingle_type": "architectural",
		"segments": []map[string]float64{
			{"footprint_sqft": 500, "pitch_degrees": 26.6, "azimuth_degrees": 180},
			{"footprint_sqft": 500, "pitch_degrees": 26.6, "azimuth_degrees": 0},
			{"footprint_sqft": 500, "pitch_degrees": 26.6, "azimuth_degrees": 90},
			{"footprint_sqft": 500, "pitch_degrees": 26.6, "azimuth_degrees": 270},
		},
	}

	w := doRequest(t, router, "POST", "/api/v1/analyze", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseEnvelope(t, w)
	if resp["code"].(float64) != 0 {
		t.Errorf("expected code 0, got %v", resp["code"])
	}

	data := resp["data"].(map[string]interface{})
	if data["total_footprint_sqft"].(float64) != 2000 {
		t.Errorf("expected footprint 2000, got %v", data["total_footprint_sqft"])
	}
	if data["total_true_area_sqft"].(float64) != 2236 {
		t.Errorf("expected true area 2236, got %v", data["total_true_area_sqft"])
	}
	if data["provider"] != "manual_input" {
		t.Errorf("expected provider manual_input, got %v", data["provider"])
	}
	if data["confidence_score"].(float64) != 90 {
		t.Errorf("expected confidence 90, got %v", data["confidence_score"])
	}
	if data["roof_pitch_ratio"] != "6:12" {
		t.Errorf("expected pitch ratio 6:12, got %v", data["roof_pitch_ratio"])
	}

	segments := data["segments"].([]interface{})
	if len(segments) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(segments))
	}
	first := segments[0].(map[string]interface{})
	if first["azimuth_direction"] != "S" {
		t.Errorf("expected first segment facing S, got %v", first["azimuth_direction"])
	}

	summary := data["edge_summary"].(map[string]interface{})
	if summary["total_linear_ft"].(float64) != 337 {
		t.Errorf("expected 337 linear ft, got %v", summary["total_linear_ft"])
	}

	materials := data["materials"].(map[string]interface{})
	if materials["complexity_class"] != "very_complex" {
		t.Errorf("expected very_complex, got %v", materials["complexity_class"])
	}
	if materials["waste_pct"].(float64) != 15 {
		t.Errorf("expected 15%% waste, got %v", materials["waste_pct"])
	}

	loc := data["location"].(map[string]interface{})
	if loc["address"] != "8204 Argyll Rd NW, Edmonton, AB T6E 4G1" {
		t.Errorf("unexpected address: %v", loc["address"])
	}
}

func TestAnalyze_MissingInput(t *testing.T) {
	router := setupRouter(t, nil)

	w := doRequest(t, router, "POST", "/api/v1/analyze", map[string]interface{}{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := parseEnvelope(t, w)
	if resp["code"].(float64) != 40000 {
		t.Errorf("expected code 40000, got %v", resp["code"])
	}
}

func TestAnalyze_UnknownShingle(t *testing.T) {
	router := setupRouter(t, nil)

	body := map[string]interface{}{
		"shingle_type": "cedar",
		"segments": []map[string]float64{
			{"footprint_sqft": 500, "pitch_degrees": 20},
		},
	}
	w := doRequest(t, router, "POST", "/api/v1/analyze", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseEnvelope(t, w)
	if !strings.Contains(resp["message"].(string), "unknown shingle type") {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestAnalyze_SolarNotConfigured(t *testing.T) {
	router := setupRouter(t, nil)

	body := map[string]interface{}{"address": "8204 Argyll Rd NW, Edmonton"}
	w := doRequest(t, router, "POST", "/api/v1/analyze", body)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseEnvelope(t, w)
	if resp["code"].(float64) != 50300 {
		t.Errorf("expected code 50300, got %v", resp["code"])
	}
}

func TestAnalyze_AddressLookup(t *testing.T) {
	var geocodeCalls int
	router := setupRouter(t, stubSolarClient(t, &geocodeCalls))

	body := map[string]interface{}{"address": "8204 Argyll Rd NW, Edmonton, AB T6E 4G1"}
	w := doRequest(t, router, "POST", "/api/v1/analyze", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := parseEnvelope(t, w)["data"].(map[string]interface{})
	if data["provider"] != "google_solar_api" {
		t.Errorf("expected provider google_solar_api, got %v", data["provider"])
	}
	if data["imagery_quality"] != "HIGH" {
		t.Errorf("expected HIGH imagery, got %v", data["imagery_quality"])
	}
	if data["imagery_date"] != "2025-06-14" {
		t.Errorf("expected imagery date 2025-06-14, got %v", data["imagery_date"])
	}
	if geocodeCalls != 1 {
		t.Errorf("expected 1 geocode call, got %d", geocodeCalls)
	}

	segments := data["segments"].([]interface{})
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}

	potential := data["solar_potential"].(map[string]interface{})
	if potential["num_panels_possible"].(float64) != 24 {
		t.Errorf("expected 24 panels, got %v", potential["num_panels_possible"])
	}

	loc := data["location"].(map[string]interface{})
	if loc["latitude"].(float64) != 53.5205 {
		t.Errorf("expected geocoded latitude, got %v", loc["latitude"])
	}
}

func TestAnalyze_CoordinatesSkipGeocode(t *testing.T) {
	var geocodeCalls int
	router := setupRouter(t, stubSolarClient(t, &geocodeCalls))

	body := map[string]interface{}{"lat": 53.5205, "lng": -113.4937}
	w := doRequest(t, router, "POST", "/api/v1/analyze", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if geocodeCalls != 0 {
		t.Errorf("expected no geocode calls, got %d", geocodeCalls)
	}

	data := parseEnvelope(t, w)["data"].(map[string]interface{})
	loc := data["location"].(map[string]interface{})
	if loc["address"] != "53.5205, -113.4937" {
		t.Errorf("expected coordinate address fallback, got %v", loc["address"])
	}
}

func TestAnalyze_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "no building found"}}`, http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	sc := solar.NewClient(solar.Config{APIKey: "test-key", SolarBaseURL: srv.URL})
	router := setupRouter(t, sc)

	body := map[string]interface{}{"lat": 0.0, "lng": 0.0}
	w := doRequest(t, router, "POST", "/api/v1/analyze", body)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseEnvelope(t, w)
	if resp["code"].(float64) != 50200 {
		t.Errorf("expected code 50200, got %v", resp["code"])
	}
}

func TestPricebook(t *testing.T) {
	router := setupRouter(t, nil)

	w := doRequest(t, router, "GET", "/api/v1/pricebook", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	data := parseEnvelope(t, w)["data"].(map[string]interface{})
	if data["prices"] == nil {
		t.Error("expected prices in catalog response")
	}
	if data["yields"] == nil {
		t.Error("expected yields in catalog response")
	}
}

func TestCompare(t *testing.T) {
	router := setupRouter(t, nil)

	w := doRequest(t, router, "GET", "/api/v1/compare", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	data := parseEnvelope(t, w)["data"].(map[string]interface{})
	rows := data["rows"].([]interface{})
	if len(rows) != 10 {
		t.Fatalf("expected 10 comparison rows, got %d", len(rows))
	}
	first := rows[0].(map[string]interface{})
	if first["metric"] != "Cost per Property" {
		t.Errorf("unexpected first metric: %v", first["metric"])
	}
}

func TestNotFoundRoute(t *testing.T) {
	router := setupRouter(t, nil)

	w := doRequest(t, router, "GET", "/api/v1/nothing-here", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	resp := parseEnvelope(t, w)
	if resp["code"].(float64) != 40400 {
		t.Errorf("expected code 40400, got %v", resp["code"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := setupRouter(t, nil)

	w := doRequest(t, router, "GET", "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Error("expected standard runtime metrics in exposition")
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := setupRouter(t, nil)

	w := doRequest(t, router, "GET", "/health/live", nil)
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected generated request ID header")
	}

	req, _ := http.NewRequest("GET", "/health/live", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	if w2.Header().Get("X-Request-ID") != "abc-123" {
		t.Errorf("expected caller request ID echoed, got %q", w2.Header().Get("X-Request-ID"))
	}
}

func TestCORSPreflight(t *testing.T) {
	router := setupRouter(t, nil)

	req, _ := http.NewRequest("OPTIONS", "/api/v1/analyze", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected wildcard CORS origin header")
	}
}
