// Package api provides the HTTP API for FloodWatch.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/floodwatch/floodwatch/internal/api/handler"
	"github.com/floodwatch/floodwatch/internal/api/middleware"
	"github.com/floodwatch/floodwatch/internal/rain"
	"github.com/floodwatch/floodwatch/internal/water"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version         string
	BuildTime       string
	Logger          zerolog.Logger
	ServiceName     string
	Metrics         *middleware.Metrics
	WaterService    *water.Service
	RainService     *rain.Service
	DefaultRadiusKM float64
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "floodwatch-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.WaterService, cfg.RainService)
	riskHandler := handler.NewRiskHandler(cfg.WaterService, cfg.RainService, cfg.DefaultRadiusKM)
	stationsHandler := handler.NewStationsHandler(cfg.WaterService, cfg.RainService, cfg.DefaultRadiusKM)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public, unthrottled for orchestrator probes)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Risk assessment - runs the full ranking pipeline per request
		r.Route("/risk", func(r chi.Router) {
			r.Use(expensiveRateLimit)
			r.Get("/assessment", riskHandler.GetAssessment)
		})

		// Station listings
		r.Route("/stations", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/water", stationsHandler.ListWater)
			r.Get("/rain", stationsHandler.ListRain)
		})
	})

	return r
}
