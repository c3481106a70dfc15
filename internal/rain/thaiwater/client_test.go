package thaiwater_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floodwatch/floodwatch/internal/rain/thaiwater"
)

const rain24hPayload = `{
	"rain24h_data": {
		"data": [
			{
				"id": 201,
				"rain_24h": "42.5",
				"station": {
					"id": 601,
					"tele_station_name": {"th": "สถานีฝนเมือง", "en": "Mueang Rain"},
					"tele_station_lat": "9.1400",
					"tele_station_long": "99.3300"
				}
			},
			{
				"id": 202,
				"rain_24h": "-0.5",
				"station": {
					"id": 602,
					"tele_station_name": {"th": "สถานีฝนกาญจนดิษฐ์"},
					"tele_station_lat": "9.1650",
					"tele_station_long": "99.4720"
				}
			},
			{
				"id": 203,
				"rain_24h": "",
				"station": {
					"id": 603,
					"tele_station_name": {"en": "Broken gauge"},
					"tele_station_lat": "9.2000",
					"tele_station_long": "99.5000"
				}
			}
		]
	}
}`

func TestClient_FetchStations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rain_24h", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(rain24hPayload))
	}))
	defer server.Close()

	client := thaiwater.NewClient(thaiwater.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	stations, err := client.FetchStations(context.Background())
	require.NoError(t, err)

	// The gauge without a readable rainfall value is dropped.
	require.Len(t, stations, 2)

	assert.Equal(t, 201, stations[0].ID)
	assert.Equal(t, "Mueang Rain", stations[0].Name)
	assert.Equal(t, 9.14, stations[0].Location.Lat)
	assert.Equal(t, 99.33, stations[0].Location.Lon)
	assert.Equal(t, 42.5, stations[0].Rain24h)

	// Negative sensor readings are floored at zero.
	assert.Equal(t, "สถานีฝนกาญจนดิษฐ์", stations[1].Name)
	assert.Equal(t, 0.0, stations[1].Rain24h)
}

func TestClient_FetchStations_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := thaiwater.NewClient(thaiwater.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.FetchStations(context.Background())
	require.Error(t, err)
}
