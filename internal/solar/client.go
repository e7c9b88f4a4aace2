// Package solar acquires roof geometry from the Google Solar API and maps
// it onto the measurement engine's segment model. Everything network-bound
// lives here; the engine itself never performs I/O.
package solar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	geocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"
	solarBaseURL   = "https://solar.googleapis.com/v1/buildingInsights:findClosest"

	defaultTimeout = 30 * time.Second

	// Error bodies are truncated to keep log lines readable.
	maxErrBody = 300
)

// Config carries the client's credentials and knobs. MapsKey falls back to
// APIKey when empty; BaseURL overrides exist for tests.
type Config struct {
	APIKey  string
	MapsKey string
	Timeout time.Duration
	Cache   Cache
	Logger  *zap.Logger

	GeocodeBaseURL string
	SolarBaseURL   string
}

// Client talks to the geocoding and building-insight endpoints. A single
// buildingInsights query is billed (about $0.075 CAD), so responses are
// cached when a cache is configured.
type Client struct {
	apiKey     string
	mapsKey    string
	httpc      *http.Client
	cache      Cache
	log        *zap.Logger
	geocodeURL string
	solarURL   string
}

// NewClient builds a Client from cfg, filling in defaults for anything
// left zero.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Cache == nil {
		cfg.Cache = NopCache{}
	}
	if cfg.GeocodeBaseURL == "" {
		cfg.GeocodeBaseURL = geocodeBaseURL
	}
	if cfg.SolarBaseURL == "" {
		cfg.SolarBaseURL = solarBaseURL
	}
	mapsKey := cfg.MapsKey
	if mapsKey == "" {
		mapsKey = cfg.APIKey
	}
	return &Client{
		apiKey:     cfg.APIKey,
		mapsKey:    mapsKey,
		httpc:      &http.Client{Timeout: cfg.Timeout},
		cache:      cfg.Cache,
		log:        cfg.Logger,
		geocodeURL: cfg.GeocodeBaseURL,
		solarURL:   cfg.SolarBaseURL,
	}
}

// MapsKey returns the key used for imagery URLs.
func (c *Client) MapsKey() string { return c.mapsKey }

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a street address to coordinates. A response status
// other than OK, or an empty result list, is an error.
func (c *Client) Geocode(ctx context.Context, address string) (lat, lng float64, err error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.geocodeURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, 0, fmt.Errorf("geocode %q: decode response: %w", address, err)
	}
	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return 0, 0, fmt.Errorf("geocode %q failed: status %s", address, decoded.Status)
	}

	loc := decoded.Results[0].Geometry.Location
	c.log.Debug("geocoded address",
		zap.String("address", address),
		zap.Float64("lat", loc.Lat),
		zap.Float64("lng", loc.Lng))
	return loc.Lat, loc.Lng, nil
}

// Insights is a building-insight response plus acquisition metadata.
type Insights struct {
	BuildingInsights
	DurationMs float64
	FromCache  bool
}

// BuildingInsights fetches the closest building's roof model for the given
// coordinates, requesting HIGH quality imagery (0.1 m/pixel). A cached
// response is served without touching the API.
func (c *Client) BuildingInsights(ctx context.Context, lat, lng float64) (*Insights, error) {
	key := cacheKey(lat, lng)
	if body, ok := c.cache.Get(ctx, key); ok {
		var ins Insights
		if err := json.Unmarshal(body, &ins.BuildingInsights); err == nil {
			ins.FromCache = true
			c.log.Debug("building insights served from cache", zap.String("key", key))
			return &ins, nil
		}
		// A corrupt entry falls through to a fresh fetch.
	}

	q := url.Values{}
	q.Set("location.latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("location.longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("requiredQuality", "HIGH")
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.solarURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building insights request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("building insights (%.4f, %.4f): %w", lat, lng, err)
	}
	defer resp.Body.Close()
	durationMs := float64(time.Since(start)) / float64(time.Millisecond)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("building insights: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		snip := body
		if len(snip) > maxErrBody {
			snip = snip[:maxErrBody]
		}
		return nil, fmt.Errorf("solar api error %d: %s", resp.StatusCode, snip)
	}

	ins := &Insights{DurationMs: durationMs}
	if err := json.Unmarshal(body, &ins.BuildingInsights); err != nil {
		return nil, fmt.Errorf("building insights: decode response: %w", err)
	}

	c.cache.Set(ctx, key, body)
	c.log.Info("building insights fetched",
		zap.Float64("lat", lat),
		zap.Float64("lng", lng),
		zap.Float64("duration_ms", durationMs),
		zap.String("quality", ins.Quality()))
	return ins, nil
}

func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("roofline:insights:%.6f,%.6f", lat, lng)
}
