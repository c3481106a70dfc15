// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Port string
	Env  string

	// OTELEnabled turns on trace/metric export; OTLPEndpoint is the
	// collector address.
	OTELEnabled  bool
	OTLPEndpoint string

	// ThaiWaterBaseURL is the base URL of the telemetry feeds.
	ThaiWaterBaseURL string

	// Snapshot cache TTLs per station kind.
	WaterCacheTTL time.Duration
	RainCacheTTL  time.Duration

	// DefaultRadiusKM is the search radius applied when a request does
	// not supply one.
	DefaultRadiusKM float64

	// Worker settings.
	PubSubProjectID    string
	PubSubSubscription string
	RefreshInterval    time.Duration

	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	waterTTL, err := parseDuration("WATER_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	rainTTL, err := parseDuration("RAIN_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	refreshInterval, err := parseDuration("REFRESH_INTERVAL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	defaultRadius, err := parseFloat("DEFAULT_RADIUS_KM", 25)
	if err != nil {
		return nil, err
	}
	if defaultRadius <= 0 {
		return nil, errors.New("DEFAULT_RADIUS_KM must be positive")
	}

	return &Config{
		Port:               envOrDefault("APP_PORT", "8080"),
		Env:                envOrDefault("APP_ENV", "development"),
		OTELEnabled:        os.Getenv("OTEL_ENABLED") == "true",
		OTLPEndpoint:       envOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		ThaiWaterBaseURL:   envOrDefault("THAIWATER_BASE_URL", "https://api-v3.thaiwater.net/api/v1/thaiwater30/public"),
		WaterCacheTTL:      waterTTL,
		RainCacheTTL:       rainTTL,
		DefaultRadiusKM:    defaultRadius,
		PubSubProjectID:    os.Getenv("PUBSUB_PROJECT_ID"),
		PubSubSubscription: envOrDefault("PUBSUB_SUBSCRIPTION", "floodwatch-refresh"),
		RefreshInterval:    refreshInterval,
		ShutdownTimeout:    shutdownTimeout,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return f, nil
}
