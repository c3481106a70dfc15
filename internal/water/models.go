// Package water provides river water-level station data access and caching.
package water

import (
	"errors"
	"time"

	"github.com/floodwatch/floodwatch/internal/geo"
)

// Provider errors.
var (
	ErrNoStations          = errors.New("no water stations available")
	ErrProviderUnavailable = errors.New("water level provider unavailable")
)

// Severity bounds of the five-level situation scale.
// 5 is overflow/critical, 4 is high, 3 is normal, 1-2 is low/dry.
const (
	SeverityMin = 1
	SeverityMax = 5
)

// Station represents a river water-level gauge.
type Station struct {
	// ID is unique within one fetch cycle. It is not guaranteed stable
	// across provider refreshes.
	ID       int
	Name     string
	Location geo.Point

	// Severity is the situation level on the 1-5 scale, 5 being the worst.
	Severity int

	// LevelMSL is the water level in meters above mean sea level.
	LevelMSL float64

	// StoragePercent is reservoir storage, nil for stations without one.
	StoragePercent *float64
}

// Coordinates returns the station location.
func (s Station) Coordinates() geo.Point {
	return s.Location
}

// Snapshot is a point-in-time view of all water stations from one provider
// fetch. Snapshots are immutable once published; consumers must not modify
// the station slice.
type Snapshot struct {
	Stations  []Station
	FetchedAt time.Time
	Provider  string
}
