package solar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insightsFixture = `{
	"name": "buildings/abc123",
	"center": {"latitude": 53.5205, "longitude": -113.4937},
	"imageryDate": {"year": 2025, "month": 6, "day": 14},
	"imageryQuality": "HIGH",
	"solarPotential": {
		"maxArrayPanelsCount": 24,
		"maxSunshineHoursPerYear": 2100.52,
		"roofSegmentStats": [
			{"pitchDegrees": 26.6, "azimuthDegrees": 180, "stats": {"areaMeters2": 46.4515}, "planeHeightAtCenterMeters": 5.2},
			{"pitchDegrees": 26.6, "azimuthDegrees": 0, "stats": {"areaMeters2": 46.4515}}
		],
		"solarPanelConfigs": [{"panelsCount": 4, "yearlyEnergyDcKwh": 1632.4}]
	}
}`

// mapCache is an in-memory Cache for exercising the hit/miss paths.
type mapCache struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{m: make(map[string][]byte)} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *mapCache) Set(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
}

func TestGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "8821 104 St NW, Edmonton, AB", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{"status": "OK", "results": [{"geometry": {"location": {"lat": 53.52, "lng": -113.49}}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", GeocodeBaseURL: srv.URL})
	lat, lng, err := c.Geocode(context.Background(), "8821 104 St NW, Edmonton, AB")
	require.NoError(t, err)
	assert.Equal(t, 53.52, lat)
	assert.Equal(t, -113.49, lng)
}

func TestGeocode_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", GeocodeBaseURL: srv.URL})
	_, _, err := c.Geocode(context.Background(), "nowhere at all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZERO_RESULTS")
}

func TestBuildingInsights(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "HIGH", r.URL.Query().Get("requiredQuality"))
		assert.Equal(t, "53.5205", r.URL.Query().Get("location.latitude"))
		w.Write([]byte(insightsFixture))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", SolarBaseURL: srv.URL})
	ins, err := c.BuildingInsights(context.Background(), 53.5205, -113.4937)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.False(t, ins.FromCache)
	assert.Equal(t, "HIGH", ins.Quality())
	assert.Equal(t, "2025-06-14", ins.ImageryDateString())
	require.NotNil(t, ins.SolarPotential)
	assert.Len(t, ins.SolarPotential.RoofSegmentStats, 2)
	assert.GreaterOrEqual(t, ins.DurationMs, 0.0)
}

func TestBuildingInsights_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "no building found"}}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", SolarBaseURL: srv.URL})
	_, err := c.BuildingInsights(context.Background(), 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "no building found")
}

func TestBuildingInsights_CacheAvoidsSecondCall(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(insightsFixture))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", SolarBaseURL: srv.URL, Cache: newMapCache()})

	first, err := c.BuildingInsights(context.Background(), 53.5205, -113.4937)
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := c.BuildingInsights(context.Background(), 53.5205, -113.4937)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, 1, calls, "second lookup must not hit the API")
	assert.Equal(t, first.Quality(), second.Quality())

	// A different property is a different key.
	_, err = c.BuildingInsights(context.Background(), 51.0447, -114.0719)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{APIKey: "abc"})
	assert.Equal(t, "abc", c.MapsKey(), "maps key falls back to the API key")

	c = NewClient(Config{APIKey: "abc", MapsKey: "maps-only"})
	assert.Equal(t, "maps-only", c.MapsKey())
}
