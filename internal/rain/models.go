// Package rain provides rain gauge data access and caching.
package rain

import (
	"errors"
	"time"

	"github.com/floodwatch/floodwatch/internal/geo"
)

// Provider errors.
var (
	ErrNoStations          = errors.New("no rain stations available")
	ErrProviderUnavailable = errors.New("rainfall provider unavailable")
)

// Station represents a rain gauge.
type Station struct {
	// ID is unique within one fetch cycle. It is not guaranteed stable
	// across provider refreshes.
	ID       int
	Name     string
	Location geo.Point

	// Rain24h is accumulated rainfall over the trailing 24 hours in
	// millimeters. Never negative.
	Rain24h float64
}

// Coordinates returns the station location.
func (s Station) Coordinates() geo.Point {
	return s.Location
}

// Snapshot is a point-in-time view of all rain stations from one provider
// fetch. Snapshots are immutable once published.
type Snapshot struct {
	Stations  []Station
	FetchedAt time.Time
	Provider  string
}
