package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/floodwatch/floodwatch/internal/api/models"
	"github.com/floodwatch/floodwatch/internal/api/response"
	"github.com/floodwatch/floodwatch/internal/geo"
	"github.com/floodwatch/floodwatch/internal/provider/resilience"
	"github.com/floodwatch/floodwatch/internal/rain"
	"github.com/floodwatch/floodwatch/internal/risk"
	"github.com/floodwatch/floodwatch/internal/water"
)

// RiskHandler handles risk assessment endpoints.
type RiskHandler struct {
	water           *water.Service
	rain            *rain.Service
	defaultRadiusKM float64
}

// NewRiskHandler creates a new RiskHandler.
func NewRiskHandler(waterSvc *water.Service, rainSvc *rain.Service, defaultRadiusKM float64) *RiskHandler {
	return &RiskHandler{
		water:           waterSvc,
		rain:            rainSvc,
		defaultRadiusKM: defaultRadiusKM,
	}
}

// GetAssessment handles GET /v1/risk/assessment - classify flood risk around
// a reference point.
//
// Query parameters:
//   - lat, lon: reference point (required)
//   - radius_km: search radius (optional, defaults to the configured radius)
func (h *RiskHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	ref, fieldErrs := parsePoint(r)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid reference point", fieldErrs)
		return
	}

	radiusKM := h.defaultRadiusKM
	if raw := r.URL.Query().Get("radius_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.BadRequest(w, r, "invalid radius", []models.FieldError{
				{Field: "radius_km", Message: "must be a number"},
			})
			return
		}
		// A non-positive radius is a valid query: nothing is in range and
		// the assessment reports INSUFFICIENT_DATA.
		radiusKM = parsed
	}

	waterSnap, err := h.water.GetSnapshot(r.Context())
	if err != nil {
		writeProviderError(w, r, "water", err)
		return
	}

	rainSnap, err := h.rain.GetSnapshot(r.Context())
	if err != nil {
		writeProviderError(w, r, "rain", err)
		return
	}

	result := risk.Assess(risk.Input{
		Reference:     ref,
		RadiusKM:      radiusKM,
		WaterStations: waterSnap.Stations,
		RainStations:  rainSnap.Stations,
	})

	resp := models.RiskAssessment{
		Reference: models.Point{Lat: ref.Lat, Lon: ref.Lon},
		Category:  models.RiskCategory(result.Assessment.Category),
		Water: models.KindSelection[models.RankedWaterStation]{
			Nearest:  toRankedWater(result.NearestWater),
			Worst:    toRankedWater(result.WorstWater),
			Diverges: result.WaterDiverges,
		},
		Rain: models.KindSelection[models.RankedRainStation]{
			Nearest:  toRankedRain(result.NearestRain),
			Worst:    toRankedRain(result.WorstRain),
			Diverges: result.RainDiverges,
		},
		DrivingWater: toRankedWater(result.Assessment.DrivingWater),
		DrivingRain:  toRankedRain(result.Assessment.DrivingRain),
		Thresholds: models.RiskThresholds{
			RadiusKM:         result.Assessment.Explanation.RadiusKM,
			SeverityCritical: result.Assessment.Explanation.SeverityCritical,
			SeverityWatch:    result.Assessment.Explanation.SeverityWatch,
			RainTorrentialMM: result.Assessment.Explanation.RainTorrentialMM,
			RainHeavyMM:      result.Assessment.Explanation.RainHeavyMM,
		},
		WaterFetchedAt: models.Timestamp(waterSnap.FetchedAt),
		RainFetchedAt:  models.Timestamp(rainSnap.FetchedAt),
	}

	w.Header().Set("Cache-Control", "private, max-age=60")
	response.JSON(w, r, http.StatusOK, resp)
}

// parsePoint extracts and validates the lat/lon query parameters.
func parsePoint(r *http.Request) (geo.Point, []models.FieldError) {
	var errs []models.FieldError

	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	switch {
	case q.Get("lat") == "":
		errs = append(errs, models.FieldError{Field: "lat", Message: "required"})
	case err != nil:
		errs = append(errs, models.FieldError{Field: "lat", Message: "must be a number"})
	case lat < -90 || lat > 90:
		errs = append(errs, models.FieldError{Field: "lat", Message: "must be between -90 and 90"})
	}

	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	switch {
	case q.Get("lon") == "":
		errs = append(errs, models.FieldError{Field: "lon", Message: "required"})
	case err != nil:
		errs = append(errs, models.FieldError{Field: "lon", Message: "must be a number"})
	case lon < -180 || lon > 180:
		errs = append(errs, models.FieldError{Field: "lon", Message: "must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return geo.Point{}, errs
	}
	return geo.Point{Lat: lat, Lon: lon}, nil
}

// writeProviderError maps a failed snapshot fetch to a 503.
func writeProviderError(w http.ResponseWriter, r *http.Request, kind string, err error) {
	detail := kind + " telemetry feed unavailable"
	if errors.Is(err, resilience.ErrCircuitOpen) {
		detail = kind + " telemetry feed unavailable (circuit open)"
	}
	response.ServiceUnavailable(w, r, detail)
}

func toWaterModel(s water.Station) models.WaterStation {
	return models.WaterStation{
		ID:             s.ID,
		Name:           s.Name,
		Point:          models.Point{Lat: s.Location.Lat, Lon: s.Location.Lon},
		Severity:       s.Severity,
		LevelMSL:       s.LevelMSL,
		StoragePercent: s.StoragePercent,
	}
}

func toRainModel(s rain.Station) models.RainStation {
	return models.RainStation{
		ID:      s.ID,
		Name:    s.Name,
		Point:   models.Point{Lat: s.Location.Lat, Lon: s.Location.Lon},
		Rain24h: s.Rain24h,
	}
}

func toRankedWater(r *risk.Ranked[water.Station]) *models.RankedWaterStation {
	if r == nil {
		return nil
	}
	return &models.RankedWaterStation{
		Station:    toWaterModel(r.Station),
		DistanceKM: r.DistanceKM,
	}
}

func toRankedRain(r *risk.Ranked[rain.Station]) *models.RankedRainStation {
	if r == nil {
		return nil
	}
	return &models.RankedRainStation{
		Station:    toRainModel(r.Station),
		DistanceKM: r.DistanceKM,
	}
}
