package water

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Provider defines the interface for water-level data providers.
type Provider interface {
	// FetchStations fetches the current list of water-level gauges.
	// Implementations must only return stations with numeric coordinates
	// and a severity within the 1-5 scale.
	FetchStations(ctx context.Context) ([]Station, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the water station service.
type ServiceConfig struct {
	// Provider is the water-level data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache the snapshot (default: 5 minutes).
	CacheTTL time.Duration

	// StaleIfErrorTTL allows serving stale data on provider errors
	// (default: 30 minutes).
	StaleIfErrorTTL time.Duration
}

// Service provides water station snapshots with caching. Snapshot returns an
// immutable snapshot, so callers can hand the station list to the risk
// pipeline without copying or locking.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cacheTTL        time.Duration
	staleIfErrorTTL time.Duration

	mu          sync.RWMutex
	snapshot    *Snapshot
	cacheExpiry time.Time
}

// NewService creates a new water station service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 30 * time.Minute
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		staleIfErrorTTL: staleIfErrorTTL,
	}
}

// GetSnapshot returns the current water station snapshot, using the cached
// version if it has not expired.
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

// refreshSnapshot fetches fresh data from the provider.
func (s *Service) refreshSnapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine might have refreshed while we waited for the lock.
	if s.snapshot != nil && time.Now().Before(s.cacheExpiry) {
		return s.snapshot, nil
	}

	s.logger.Debug().Str("provider", s.provider.Name()).Msg("refreshing water station snapshot")

	stations, err := s.provider.FetchStations(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch water stations")

		if s.snapshot != nil && time.Now().Before(s.snapshot.FetchedAt.Add(s.staleIfErrorTTL)) {
			s.logger.Warn().
				Time("fetched_at", s.snapshot.FetchedAt).
				Msg("serving stale water station data due to provider error")
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
		Msg("water station snapshot refreshed")

	return s.snapshot, nil
}
