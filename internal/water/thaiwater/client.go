// Package thaiwater provides a client for the ThaiWater open-data
// water-level feed.
package thaiwater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/floodwatch/floodwatch/internal/geo"
	"github.com/floodwatch/floodwatch/internal/provider/resilience"
	"github.com/floodwatch/floodwatch/internal/water"
)

const (
	// DefaultBaseURL is the base URL for the ThaiWater public API.
	DefaultBaseURL = "https://api-v3.thaiwater.net/api/v1/thaiwater30/public"

	// ProviderName identifies this provider.
	ProviderName = "thaiwater"
)

// ClientConfig holds configuration for the ThaiWater water-level client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a default resilient
	// client is created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration
}

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a ThaiWater water-level API client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new water-level client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:            "thaiwater-waterlevel",
			Timeout:         timeout,
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		})
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Name returns the provider name for logging.
func (c *Client) Name() string {
	return ProviderName
}

// API response types. The feed serializes numbers as strings.

type waterlevelResponse struct {
	WaterlevelData struct {
		Data []waterlevelEntry `json:"data"`
	} `json:"waterlevel_data"`
}

type waterlevelEntry struct {
	ID             int         `json:"id"`
	WaterlevelMSL  string      `json:"waterlevel_msl"`
	StoragePercent string      `json:"storage_percent"`
	SituationLevel string      `json:"situation_level"`
	Station        stationInfo `json:"station"`
}

type stationInfo struct {
	ID   int `json:"id"`
	Name struct {
		TH string `json:"th"`
		EN string `json:"en"`
	} `json:"tele_station_name"`
	Lat string `json:"tele_station_lat"`
	Lon string `json:"tele_station_long"`
}

// FetchStations retrieves the current water-level gauges. Entries without
// usable coordinates or a situation level are dropped here so the risk core
// only ever sees validated stations; out-of-range situation levels are
// clamped to the 1-5 scale.
func (c *Client) FetchStations(ctx context.Context) ([]water.Station, error) {
	url := c.baseURL + "/waterlevel_load"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch water levels: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from waterlevel endpoint", resp.StatusCode)
	}

	var result waterlevelResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode waterlevel response: %w", err)
	}

	stations := make([]water.Station, 0, len(result.WaterlevelData.Data))
	for i := range result.WaterlevelData.Data {
		if s, ok := toStation(&result.WaterlevelData.Data[i]); ok {
			stations = append(stations, s)
		}
	}

	return stations, nil
}

// toStation converts a feed entry to a domain station. ok is false for
// entries that fail the upstream contract of the risk core.
func toStation(e *waterlevelEntry) (water.Station, bool) {
	lat, err := strconv.ParseFloat(e.Station.Lat, 64)
	if err != nil {
		return water.Station{}, false
	}
	lon, err := strconv.ParseFloat(e.Station.Lon, 64)
	if err != nil {
		return water.Station{}, false
	}

	severity, err := strconv.Atoi(e.SituationLevel)
	if err != nil {
		return water.Station{}, false
	}
	if severity < water.SeverityMin {
		severity = water.SeverityMin
	}
	if severity > water.SeverityMax {
		severity = water.SeverityMax
	}

	levelMSL, _ := strconv.ParseFloat(e.WaterlevelMSL, 64)

	var storage *float64
	if e.StoragePercent != "" {
		if v, err := strconv.ParseFloat(e.StoragePercent, 64); err == nil {
			storage = &v
		}
	}

	name := e.Station.Name.EN
	if name == "" {
		name = e.Station.Name.TH
	}

	return water.Station{
		ID:             e.ID,
		Name:           name,
		Location:       geo.Point{Lat: lat, Lon: lon},
		Severity:       severity,
		LevelMSL:       levelMSL,
		StoragePercent: storage,
	}, true
}
