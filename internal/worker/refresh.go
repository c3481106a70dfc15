package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/floodwatch/floodwatch/internal/rain"
	"github.com/floodwatch/floodwatch/internal/water"
)

// RefreshJob forces both telemetry feed caches fresh so API requests never
// pay the provider round trip.
type RefreshJob struct {
	config RefreshConfig
	logger zerolog.Logger

	// Services (optional, nil if not configured)
	waterService *water.Service
	rainService  *rain.Service

	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	TotalRuns      int64
	SuccessfulRuns int64
	FailedRuns     int64
	WaterRefreshes int64
	RainRefreshes  int64

	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config       RefreshConfig
	Logger       zerolog.Logger
	WaterService *water.Service
	RainService  *rain.Service
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if config.Timeout == 0 {
		config = DefaultRefreshConfig()
	}

	return &RefreshJob{
		config:       config,
		logger:       cfg.Logger,
		waterService: cfg.WaterService,
		rainService:  cfg.RainService,
		metrics:      &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a refresh run.
type RefreshResult struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Successful int
	Failed     int
	Errors     []RefreshError
}

// RefreshError represents an error during refresh.
type RefreshError struct {
	Feed  string
	Error string
}

// Run refreshes all configured feeds. The feeds are independent, so they
// refresh concurrently and a failure in one does not stop the other.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()
	result := &RefreshResult{StartTime: startTime}

	j.logger.Info().Msg("starting snapshot refresh job")

	type feedResult struct {
		feed string
		err  error
	}

	var wg sync.WaitGroup
	results := make(chan feedResult, 2)

	if j.config.RefreshWater && j.waterService != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- feedResult{feed: "water", err: j.refreshWater(ctx)}
		}()
	}

	if j.config.RefreshRain && j.rainService != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- feedResult{feed: "rain", err: j.refreshRain(ctx)}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for fr := range results {
		if fr.err != nil {
			result.Failed++
			result.Errors = append(result.Errors, RefreshError{
				Feed:  fr.feed,
				Error: fr.err.Error(),
			})
			continue
		}
		result.Successful++
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("snapshot refresh job completed")

	return result
}

func (j *RefreshJob) refreshWater(ctx context.Context) error {
	feedCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	if err := j.waterService.RefreshSnapshot(feedCtx); err != nil {
		j.logger.Error().Err(err).Msg("water snapshot refresh failed")
		return err
	}

	j.metrics.mu.Lock()
	j.metrics.WaterRefreshes++
	j.metrics.mu.Unlock()
	return nil
}

func (j *RefreshJob) refreshRain(ctx context.Context) error {
	feedCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	if err := j.rainService.RefreshSnapshot(feedCtx); err != nil {
		j.logger.Error().Err(err).Msg("rain snapshot refresh failed")
		return err
	}

	j.metrics.mu.Lock()
	j.metrics.RainRefreshes++
	j.metrics.mu.Unlock()
	return nil
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	if result.Failed == 0 {
		j.metrics.SuccessfulRuns++
	} else {
		j.metrics.FailedRuns++
	}
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRuns:       j.metrics.TotalRuns,
		SuccessfulRuns:  j.metrics.SuccessfulRuns,
		FailedRuns:      j.metrics.FailedRuns,
		WaterRefreshes:  j.metrics.WaterRefreshes,
		RainRefreshes:   j.metrics.RainRefreshes,
		LastRunAt:       j.metrics.LastRunAt,
		LastRunDuration: j.metrics.LastRunDuration,
		TotalDuration:   j.metrics.TotalDuration,
	}
}
