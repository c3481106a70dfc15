// Package thaiwater provides a client for the ThaiWater open-data 24-hour
// rainfall feed.
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
	"github.com/floodwatch/floodwatch/internal/rain"
)

const (
	// DefaultBaseURL is the base URL for the ThaiWater public API.
	DefaultBaseURL = "https://api-v3.thaiwater.net/api/v1/thaiwater30/public"

	// ProviderName identifies this provider.
	ProviderName = "thaiwater"
)

// ClientConfig holds configuration for the ThaiWater rainfall client.
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

// Client is a ThaiWater rainfall API client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new rainfall client.
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
			Name:            "thaiwater-rainfall",
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

type rain24hResponse struct {
	Rain24hData struct {
		Data []rain24hEntry `json:"data"`
	} `json:"rain24h_data"`
}

type rain24hEntry struct {
	ID      int         `json:"id"`
	Rain24h string      `json:"rain_24h"`
	Station stationInfo `json:"station"`
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

// FetchStations retrieves the current rain gauges. Entries without usable
// coordinates or a readable rainfall value are dropped; sensor glitches
// reporting negative rainfall are floored at zero, keeping the risk core's
// non-negativity contract.
func (c *Client) FetchStations(ctx context.Context) ([]rain.Station, error) {
	url := c.baseURL + "/rain_24h"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rainfall: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from rain_24h endpoint", resp.StatusCode)
	}

	var result rain24hResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode rain_24h response: %w", err)
	}

	stations := make([]rain.Station, 0, len(result.Rain24hData.Data))
	for i := range result.Rain24hData.Data {
		if s, ok := toStation(&result.Rain24hData.Data[i]); ok {
			stations = append(stations, s)
		}
	}

	return stations, nil
}

func toStation(e *rain24hEntry) (rain.Station, bool) {
	lat, err := strconv.ParseFloat(e.Station.Lat, 64)
	if err != nil {
		return rain.Station{}, false
	}
	lon, err := strconv.ParseFloat(e.Station.Lon, 64)
	if err != nil {
		return rain.Station{}, false
	}

	rain24h, err := strconv.ParseFloat(e.Rain24h, 64)
	if err != nil {
		return rain.Station{}, false
	}
	if rain24h < 0 {
		rain24h = 0
	}

	name := e.Station.Name.EN
	if name == "" {
		name = e.Station.Name.TH
	}

	return rain.Station{
		ID:       e.ID,
		Name:     name,
		Location: geo.Point{Lat: lat, Lon: lon},
		Rain24h:  rain24h,
	}, true
}
