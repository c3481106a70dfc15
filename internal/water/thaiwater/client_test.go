package thaiwater_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floodwatch/floodwatch/internal/water/thaiwater"
)

const waterlevelPayload = `{
	"waterlevel_data": {
		"data": [
			{
				"id": 101,
				"waterlevel_msl": "1.25",
				"storage_percent": "45.2",
				"situation_level": "3",
				"station": {
					"id": 501,
					"tele_station_name": {"th": "สถานีตาปี", "en": "Tapi River"},
					"tele_station_lat": "9.1380",
					"tele_station_long": "99.3208"
				}
			},
			{
				"id": 102,
				"waterlevel_msl": "4.80",
				"storage_percent": "",
				"situation_level": "5",
				"station": {
					"id": 502,
					"tele_station_name": {"th": "สถานีพุนพิน"},
					"tele_station_lat": "9.1130",
					"tele_station_long": "99.2331"
				}
			},
			{
				"id": 103,
				"waterlevel_msl": "2.10",
				"storage_percent": "",
				"situation_level": "2",
				"station": {
					"id": 503,
					"tele_station_name": {"th": "ไม่มีพิกัด"},
					"tele_station_lat": "",
					"tele_station_long": ""
				}
			},
			{
				"id": 104,
				"waterlevel_msl": "0.40",
				"storage_percent": "",
				"situation_level": "9",
				"station": {
					"id": 504,
					"tele_station_name": {"en": "Out of scale"},
					"tele_station_lat": "9.2000",
					"tele_station_long": "99.4000"
				}
			}
		]
	}
}`

func TestClient_FetchStations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/waterlevel_load", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(waterlevelPayload))
	}))
	defer server.Close()

	client := thaiwater.NewClient(thaiwater.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	stations, err := client.FetchStations(context.Background())
	require.NoError(t, err)

	// The entry without coordinates is dropped.
	require.Len(t, stations, 3)

	assert.Equal(t, 101, stations[0].ID)
	assert.Equal(t, "Tapi River", stations[0].Name)
	assert.Equal(t, 9.138, stations[0].Location.Lat)
	assert.Equal(t, 99.3208, stations[0].Location.Lon)
	assert.Equal(t, 3, stations[0].Severity)
	assert.Equal(t, 1.25, stations[0].LevelMSL)
	require.NotNil(t, stations[0].StoragePercent)
	assert.Equal(t, 45.2, *stations[0].StoragePercent)

	// Thai name used when no English name is present; empty storage is nil.
	assert.Equal(t, "สถานีพุนพิน", stations[1].Name)
	assert.Equal(t, 5, stations[1].Severity)
	assert.Nil(t, stations[1].StoragePercent)

	// Situation level beyond the scale is clamped to 5.
	assert.Equal(t, 104, stations[2].ID)
	assert.Equal(t, 5, stations[2].Severity)
}

func TestClient_FetchStations_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := thaiwater.NewClient(thaiwater.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.FetchStations(context.Background())
	require.Error(t, err)
}

func TestClient_FetchStations_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := thaiwater.NewClient(thaiwater.ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.FetchStations(context.Background())
	require.Error(t, err)
}
