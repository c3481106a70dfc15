package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floodwatch/floodwatch/internal/api"
	"github.com/floodwatch/floodwatch/internal/api/models"
	"github.com/floodwatch/floodwatch/internal/geo"
	"github.com/floodwatch/floodwatch/internal/rain"
	"github.com/floodwatch/floodwatch/internal/water"
)

// stubWaterProvider serves a fixed station list.
type stubWaterProvider struct {
	stations []water.Station
	err      error
}

func (p *stubWaterProvider) FetchStations(_ context.Context) ([]water.Station, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.stations, nil
}

func (p *stubWaterProvider) Name() string { return "stub-water" }

type stubRainProvider struct {
	stations []rain.Station
	err      error
}

func (p *stubRainProvider) FetchStations(_ context.Context) ([]rain.Station, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.stations, nil
}

func (p *stubRainProvider) Name() string { return "stub-rain" }

// Fixtures around the Tapi river basin reference point used in tests.
var (
	testWaterStations = []water.Station{
		{ID: 101, Name: "Tha Kham", Location: geo.Point{Lat: 9.10, Lon: 99.32}, Severity: 2, LevelMSL: 2.1},
		{ID: 102, Name: "Phunphin", Location: geo.Point{Lat: 9.14, Lon: 99.30}, Severity: 5, LevelMSL: 7.9},
		{ID: 103, Name: "Khiri Rat", Location: geo.Point{Lat: 8.95, Lon: 98.95}, Severity: 1, LevelMSL: 1.2},
	}
	testRainStations = []rain.Station{
		{ID: 201, Name: "Mueang Surat", Location: geo.Point{Lat: 9.13, Lon: 99.33}, Rain24h: 12.5},
		{ID: 202, Name: "Ban Na San", Location: geo.Point{Lat: 8.80, Lon: 99.36}, Rain24h: 95.0},
	}
)

func newTestRouter(waterProv water.Provider, rainProv rain.Provider) http.Handler {
	logger := zerolog.New(io.Discard)

	waterSvc := water.NewService(water.ServiceConfig{
		Provider: waterProv,
		Logger:   logger,
	})
	rainSvc := rain.NewService(rain.ServiceConfig{
		Provider: rainProv,
		Logger:   logger,
	})

	return api.NewRouter(api.RouterConfig{
		Version:         "test",
		BuildTime:       "2025-01-01T00:00:00Z",
		Logger:          logger,
		WaterService:    waterSvc,
		RainService:     rainSvc,
		DefaultRadiusKM: 30,
	})
}

func defaultTestRouter() http.Handler {
	return newTestRouter(
		&stubWaterProvider{stations: testWaterStations},
		&stubRainProvider{stations: testRainStations},
	)
}

func TestRouter_HealthCheck(t *testing.T) {
	router := defaultTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)
	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.Equal(t, "test", health.Details["version"])
}

func TestRouter_ReadinessCheck_NoDataYet(t *testing.T) {
	router := defaultTestRouter()

	// Nothing has populated the caches yet.
	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var health models.Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, models.HealthStatusFail, health.Status)
}

func TestRouter_ReadinessCheck_AfterWarmup(t *testing.T) {
	router := defaultTestRouter()

	// Warm both caches via the listing endpoints.
	for _, path := range []string{"/v1/stations/water", "/v1/stations/rain"} {
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var health models.Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, models.HealthStatusOK, health.Status)
}

func TestRouter_SystemStatus(t *testing.T) {
	router := defaultTestRouter()

	// Warm the water cache only; rain stays empty.
	req := httptest.NewRequest(http.MethodGet, "/v1/stations/water", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, models.HealthStatusDegraded, status.Status)
	require.Len(t, status.Providers, 2)

	byKind := map[string]models.ProviderStatus{}
	for _, p := range status.Providers {
		byKind[p.Kind] = p
	}
	assert.Equal(t, models.HealthStatusOK, byKind["water"].Status)
	assert.Equal(t, 3, byKind["water"].StationCount)
	assert.Equal(t, "stub-water", byKind["water"].Provider)
	assert.Equal(t, models.HealthStatusFail, byKind["rain"].Status)
}

func TestRouter_RiskAssessment(t *testing.T) {
	router := defaultTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/risk/assessment?lat=9.138&lon=99.3208", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var assessment models.RiskAssessment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assessment))

	// Severity 5 at Phunphin dominates within the default 30 km radius.
	assert.Equal(t, models.RiskHighWater, assessment.Category)
	require.NotNil(t, assessment.Water.Worst)
	assert.Equal(t, 102, assessment.Water.Worst.Station.ID)
	require.NotNil(t, assessment.DrivingWater)
	assert.Equal(t, 102, assessment.DrivingWater.Station.ID)

	// Phunphin is both closest and worst, so no divergence.
	require.NotNil(t, assessment.Water.Nearest)
	assert.Equal(t, 102, assessment.Water.Nearest.Station.ID)
	assert.False(t, assessment.Water.Diverges)

	assert.Equal(t, 30.0, assessment.Thresholds.RadiusKM)
	assert.Equal(t, 5, assessment.Thresholds.SeverityCritical)
}

func TestRouter_RiskAssessment_CustomRadius(t *testing.T) {
	router := defaultTestRouter()

	// 1 km around a point far from every gauge.
	req := httptest.NewRequest(http.MethodGet, "/v1/risk/assessment?lat=15.0&lon=100.0&radius_km=1", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var assessment models.RiskAssessment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assessment))
	assert.Equal(t, models.RiskInsufficientData, assessment.Category)
	assert.Nil(t, assessment.Water.Nearest)
	assert.Nil(t, assessment.DrivingWater)
}

func TestRouter_RiskAssessment_ZeroRadius(t *testing.T) {
	router := defaultTestRouter()

	// A zero radius is a valid query that matches nothing.
	req := httptest.NewRequest(http.MethodGet, "/v1/risk/assessment?lat=9.138&lon=99.3208&radius_km=0", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var assessment models.RiskAssessment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assessment))
	assert.Equal(t, models.RiskInsufficientData, assessment.Category)
}

func TestRouter_RiskAssessment_ValidationErrors(t *testing.T) {
	router := defaultTestRouter()

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"missing lat", "lon=99.3208", "lat"},
		{"missing lon", "lat=9.138", "lon"},
		{"lat out of range", "lat=95&lon=99.3208", "lat"},
		{"lon out of range", "lat=9.138&lon=190", "lon"},
		{"non-numeric lat", "lat=abc&lon=99.3208", "lat"},
		{"non-numeric radius", "lat=9.138&lon=99.3208&radius_km=wide", "radius_km"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/risk/assessment?"+tt.query, http.NoBody)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

			var problem models.Problem
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
			assert.Equal(t, http.StatusBadRequest, problem.Status)
			assert.Contains(t, w.Body.String(), tt.field)
		})
	}
}

func TestRouter_RiskAssessment_ProviderDown(t *testing.T) {
	router := newTestRouter(
		&stubWaterProvider{err: errors.New("connection refused")},
		&stubRainProvider{stations: testRainStations},
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/risk/assessment?lat=9.138&lon=99.3208", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "water telemetry feed unavailable")
}

func TestRouter_ListWaterStations(t *testing.T) {
	router := defaultTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/stations/water", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var list models.StationList[models.WaterStation]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 3, list.Count)
	assert.Len(t, list.Items, 3)
	assert.Equal(t, "stub-water", list.Provider)
}

func TestRouter_ListWaterStations_Filtered(t *testing.T) {
	router := defaultTestRouter()

	// 10 km around the city centre excludes Khiri Rat.
	req := httptest.NewRequest(http.MethodGet, "/v1/stations/water?lat=9.138&lon=99.3208&radius_km=10", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var list models.StationList[models.RankedWaterStation]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Count)
	for _, item := range list.Items {
		assert.NotEqual(t, 103, item.Station.ID)
		assert.LessOrEqual(t, item.DistanceKM, 10.0)
	}
}

func TestRouter_ListRainStations(t *testing.T) {
	router := defaultTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/stations/rain", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var list models.StationList[models.RainStation]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, "stub-rain", list.Provider)
}

func TestRouter_SecurityHeaders(t *testing.T) {
	router := defaultTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestRouter_RateLimit_RiskEndpoint(t *testing.T) {
	router := defaultTestRouter()

	var limited bool
	for i := 0; i < 40; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/risk/assessment?lat=9.138&lon=99.3208", http.NoBody)
		req.RemoteAddr = "198.51.100.7:4000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code == http.StatusTooManyRequests {
			limited = true
			assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
			break
		}
		require.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("request %d", i+1))
	}

	assert.True(t, limited, "expected the rate limiter to trip within 40 requests")
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := defaultTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/nope", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
