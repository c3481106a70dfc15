package rain

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Provider defines the interface for rainfall data providers.
type Provider interface {
	// FetchStations fetches the current list of rain gauges. Gauges
	// without coordinates must already be excluded, and 24-hour rainfall
	// is never negative.
	FetchStations(ctx context.Context) ([]Station, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the rain gauge service.
type ServiceConfig struct {
	Provider Provider
	Logger   zerolog.Logger

	// CacheTTL is how long to cache the snapshot (default: 10 minutes).
	// Accumulated rainfall moves slower than river levels, so a longer
	// cache is acceptable.
	CacheTTL time.Duration

	// StaleIfErrorTTL allows serving stale data on provider errors
	// (default: 1 hour).
	StaleIfErrorTTL time.Duration
}

// Service provides rain gauge snapshots with caching.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cacheTTL        time.Duration
	staleIfErrorTTL time.Duration

	mu          sync.RWMutex
	snapshot    *Snapshot
	cacheExpiry time.Time
}

// NewService creates a new rain gauge service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 1 * time.Hour
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		staleIfErrorTTL: staleIfErrorTTL,
	}
}

// GetSnapshot returns the current rain gauge snapshot, cached if fresh.
func (s *Service) GetSnapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	if s.snapshot != nil && time.Now().Before(s.cacheExpiry) {
		snapshot := s.snapshot
		s.mu.RUnlock()
		return snapshot, nil
	}
	s.mu.RUnlock()

	return s.refreshSnapshot(ctx)
}

// RefreshSnapshot forces a cache refresh.
func (s *Service) RefreshSnapshot(ctx context.Context) error {
	s.mu.Lock()
	s.cacheExpiry = time.Time{}
	s.mu.Unlock()

	_, err := s.refreshSnapshot(ctx)
	return err
}

// CacheStatus describes the current cache state for ops reporting.
type CacheStatus struct {
	HasData      bool
	FetchedAt    time.Time
	ExpiresAt    time.Time
	IsExpired    bool
	StationCount int
	Provider     string
}

// CacheStatus returns information about the current cache state.
func (s *Service) CacheStatus() CacheStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return CacheStatus{HasData: false}
	}

	return CacheStatus{
		HasData:      true,
		FetchedAt:    s.snapshot.FetchedAt,
		ExpiresAt:    s.cacheExpiry,
		IsExpired:    time.Now().After(s.cacheExpiry),
		StationCount: len(s.snapshot.Stations),
		Provider:     s.snapshot.Provider,
	}
}

func (s *Service) refreshSnapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil && time.Now().Before(s.cacheExpiry) {
		return s.snapshot, nil
	}

	s.logger.Debug().Str("provider", s.provider.Name()).Msg("refreshing rain gauge snapshot")

	stations, err := s.provider.FetchStations(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch rain gauges")

		if s.snapshot != nil && time.Now().Before(s.snapshot.FetchedAt.Add(s.staleIfErrorTTL)) {
			s.logger.Warn().
				Time("fetched_at", s.snapshot.FetchedAt).
				Msg("serving stale rain gauge data due to provider error")
			return s.snapshot, nil
		}

		return nil, ErrProviderUnavailable
	}

	s.snapshot = &Snapshot{
		Stations:  stations,
		FetchedAt: time.Now(),
		Provider:  s.provider.Name(),
	}
	s.cacheExpiry = time.Now().Add(s.cacheTTL)

	s.logger.Info().
		Int("stations", len(stations)).
		Time("expires_at", s.cacheExpiry).
		Msg("rain gauge snapshot refreshed")

	return s.snapshot, nil
}
