package handler

import (
	"net/http"
	"strconv"

	"github.com/floodwatch/floodwatch/internal/api/models"
	"github.com/floodwatch/floodwatch/internal/api/response"
	"github.com/floodwatch/floodwatch/internal/geo"
	"github.com/floodwatch/floodwatch/internal/rain"
	"github.com/floodwatch/floodwatch/internal/risk"
	"github.com/floodwatch/floodwatch/internal/water"
)

// StationsHandler handles station listing endpoints.
type StationsHandler struct {
	water           *water.Service
	rain            *rain.Service
	defaultRadiusKM float64
}

// NewStationsHandler creates a new StationsHandler.
func NewStationsHandler(waterSvc *water.Service, rainSvc *rain.Service, defaultRadiusKM float64) *StationsHandler {
	return &StationsHandler{
		water:           waterSvc,
		rain:            rainSvc,
		defaultRadiusKM: defaultRadiusKM,
	}
}

// ListWater handles GET /v1/stations/water - list water-level gauges.
//
// Without query parameters the full snapshot is returned. With lat and lon
// the listing is restricted to the radius around that point and each item
// carries its distance (radius_km optional, defaults to the configured
// radius).
func (h *StationsHandler) ListWater(w http.ResponseWriter, r *http.Request) {
	snap, err := h.water.GetSnapshot(r.Context())
	if err != nil {
		writeProviderError(w, r, "water", err)
		return
	}

	filter, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	if filter == nil {
		items := make([]models.WaterStation, 0, len(snap.Stations))
		for _, s := range snap.Stations {
			items = append(items, toWaterModel(s))
		}
		response.JSON(w, r, http.StatusOK, models.StationList[models.WaterStation]{
			Items:     items,
			Count:     len(items),
			FetchedAt: models.Timestamp(snap.FetchedAt),
			Provider:  snap.Provider,
		})
		return
	}

	ranked := risk.WithinRadius(filter.ref, snap.Stations, filter.radiusKM)
	items := make([]models.RankedWaterStation, 0, len(ranked))
	for i := range ranked {
		items = append(items, *toRankedWater(&ranked[i]))
	}
	response.JSON(w, r, http.StatusOK, models.StationList[models.RankedWaterStation]{
		Items:     items,
		Count:     len(items),
		FetchedAt: models.Timestamp(snap.FetchedAt),
		Provider:  snap.Provider,
	})
}

// ListRain handles GET /v1/stations/rain - list rain gauges. Same query
// parameters as ListWater.
func (h *StationsHandler) ListRain(w http.ResponseWriter, r *http.Request) {
	snap, err := h.rain.GetSnapshot(r.Context())
	if err != nil {
		writeProviderError(w, r, "rain", err)
		return
	}

	filter, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	if filter == nil {
		items := make([]models.RainStation, 0, len(snap.Stations))
		for _, s := range snap.Stations {
			items = append(items, toRainModel(s))
		}
		response.JSON(w, r, http.StatusOK, models.StationList[models.RainStation]{
			Items:     items,
			Count:     len(items),
			FetchedAt: models.Timestamp(snap.FetchedAt),
			Provider:  snap.Provider,
		})
		return
	}

	ranked := risk.WithinRadius(filter.ref, snap.Stations, filter.radiusKM)
	items := make([]models.RankedRainStation, 0, len(ranked))
	for i := range ranked {
		items = append(items, *toRankedRain(&ranked[i]))
	}
	response.JSON(w, r, http.StatusOK, models.StationList[models.RankedRainStation]{
		Items:     items,
		Count:     len(items),
		FetchedAt: models.Timestamp(snap.FetchedAt),
		Provider:  snap.Provider,
	})
}

// radiusFilter is a parsed proximity filter for a station listing.
type radiusFilter struct {
	ref      geo.Point
	radiusKM float64
}

// parseFilter reads the optional lat/lon/radius_km parameters. Returns
// (nil, true) when no filter was requested, (nil, false) after writing a 400.
func (h *StationsHandler) parseFilter(w http.ResponseWriter, r *http.Request) (*radiusFilter, bool) {
	q := r.URL.Query()
	if q.Get("lat") == "" && q.Get("lon") == "" {
		return nil, true
	}

	ref, fieldErrs := parsePoint(r)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid reference point", fieldErrs)
		return nil, false
	}

	radiusKM := h.defaultRadiusKM
	if raw := q.Get("radius_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.BadRequest(w, r, "invalid radius", []models.FieldError{
				{Field: "radius_km", Message: "must be a number"},
			})
			return nil, false
		}
		radiusKM = parsed
	}

	return &radiusFilter{ref: ref, radiusKM: radiusKM}, true
}
