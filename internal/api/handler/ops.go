// Package handler provides HTTP handlers for the FloodWatch API.
package handler

import (
	"net/http"
	"time"

	"github.com/floodwatch/floodwatch/internal/api/models"
	"github.com/floodwatch/floodwatch/internal/api/response"
	"github.com/floodwatch/floodwatch/internal/rain"
	"github.com/floodwatch/floodwatch/internal/water"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	water     *water.Service
	rain      *rain.Service
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, waterSvc *water.Service, rainSvc *rain.Service) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		water:     waterSvc,
		rain:      rainSvc,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// Ready means at least one telemetry feed has data to serve.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	waterStatus := h.water.CacheStatus()
	rainStatus := h.rain.CacheStatus()

	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	switch {
	case !waterStatus.HasData && !rainStatus.HasData:
		health.Status = models.HealthStatusFail
		response.JSON(w, r, http.StatusServiceUnavailable, health)
		return
	case !waterStatus.HasData || !rainStatus.HasData:
		health.Status = models.HealthStatusDegraded
	}

	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - provider and cache status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())

	waterProvider := providerStatus("water", feedStatus(h.water.CacheStatus()))
	rainProvider := providerStatus("rain", feedStatus(h.rain.CacheStatus()))

	overall := models.HealthStatusOK
	if waterProvider.Status != models.HealthStatusOK || rainProvider.Status != models.HealthStatusOK {
		overall = models.HealthStatusDegraded
	}
	if waterProvider.Status == models.HealthStatusFail && rainProvider.Status == models.HealthStatusFail {
		overall = models.HealthStatusFail
	}

	status := models.SystemStatus{
		Status:    overall,
		Time:      now,
		Providers: []models.ProviderStatus{waterProvider, rainProvider},
	}
	response.JSON(w, r, http.StatusOK, status)
}

// feedStatus is the cache state shared by both snapshot services. The water
// and rain CacheStatus structs are field-identical, so both convert here.
type feedStatus struct {
	HasData      bool
	FetchedAt    time.Time
	ExpiresAt    time.Time
	IsExpired    bool
	StationCount int
	Provider     string
}

// providerStatus maps a snapshot cache state onto the ops wire model. A feed
// with no data at all is FAIL, an expired cache is DEGRADED.
func providerStatus(kind string, cs feedStatus) models.ProviderStatus {
	ps := models.ProviderStatus{
		Kind:     kind,
		Provider: cs.Provider,
		Status:   models.HealthStatusOK,
	}

	if !cs.HasData {
		ps.Status = models.HealthStatusFail
		return ps
	}

	fetchedAt := models.Timestamp(cs.FetchedAt)
	expiresAt := models.Timestamp(cs.ExpiresAt)
	ps.FetchedAt = &fetchedAt
	ps.ExpiresAt = &expiresAt
	ps.StationCount = cs.StationCount

	if cs.IsExpired {
		ps.Status = models.HealthStatusDegraded
	}
	return ps
}
