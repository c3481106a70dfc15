// Package worker provides background snapshot refresh for FloodWatch.
package worker

import (
	"time"
)

// RefreshConfig holds configuration for the snapshot refresh job.
type RefreshConfig struct {
	// Timeout is the timeout for each feed refresh.
	// Default: 30 seconds
	Timeout time.Duration

	// RefreshWater enables the water-level feed refresh.
	// Default: true
	RefreshWater bool

	// RefreshRain enables the rainfall feed refresh.
	// Default: true
	RefreshRain bool
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Timeout:      30 * time.Second,
		RefreshWater: true,
		RefreshRain:  true,
	}
}
