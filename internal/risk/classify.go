package risk

import (
	"github.com/floodwatch/floodwatch/internal/rain"
	"github.com/floodwatch/floodwatch/internal/water"
)

// Category is the overall risk classification for a reference point.
type Category string

const (
	CategoryLow                Category = "LOW"
	CategoryWatch              Category = "WATCH"
	CategoryHighWater          Category = "HIGH_WATER"
	CategoryHighRainFlashFlood Category = "HIGH_RAIN_FLASH_FLOOD"
	CategoryHeavyRain          Category = "HEAVY_RAIN"
	CategoryInsufficientData   Category = "INSUFFICIENT_DATA"
)

// Classification thresholds. These encode the five-level official water
// situation scale and the standard meteorological heavy/very-heavy rainfall
// bands; they are domain constants, not configuration.
const (
	// SeverityCritical is the water severity meaning overflow/critical.
	SeverityCritical = 5

	// SeverityWatch is the water severity meaning high, worth watching.
	SeverityWatch = 4

	// RainTorrentialMM is the 24-hour rainfall above which flash flooding
	// becomes likely, in millimeters.
	RainTorrentialMM = 90

	// RainHeavyMM is the 24-hour rainfall of a heavy-rain event, in
	// millimeters.
	RainHeavyMM = 35
)

// Assessment is the combined risk classification plus the stations that
// drove it. DrivingWater and DrivingRain are nil when no station of that
// kind contributed to the matched rule.
type Assessment struct {
	Category     Category
	DrivingWater *Ranked[water.Station]
	DrivingRain  *Ranked[rain.Station]
	Explanation  Explanation
}

// Explanation carries the numeric context behind an assessment so a
// presentation layer can render its own narrative. No prose lives here.
type Explanation struct {
	RadiusKM         float64
	SeverityCritical int
	SeverityWatch    int
	RainTorrentialMM float64
	RainHeavyMM      float64
}

// Classify derives the overall category from the selector outputs. Rules are
// a strict priority cascade; the first match wins:
//
//  1. no water station in radius            -> INSUFFICIENT_DATA
//  2. worst water severity 5                -> HIGH_WATER
//  3. worst water severity 4                -> WATCH
//  4. worst rain >= 90 mm/24h               -> HIGH_RAIN_FLASH_FLOOD
//  5. worst rain >= 35 mm/24h               -> HEAVY_RAIN
//  6. otherwise                             -> LOW
//
// Rule 1 is checked on water presence alone: a torrential rain gauge inside
// the radius still yields INSUFFICIENT_DATA when no water gauge is present.
// Severities 1-3 are deliberately undifferentiated; low water (severity 1-2)
// is not a flood risk even though it is operationally "bad".
//
// worstWater and nearestWater must be selected from the same filtered set:
// either both nil (no water gauge in radius) or both non-nil. Assess upholds
// this; callers invoking Classify directly must too.
//
// The result is a pure function of its inputs: identical inputs always
// produce an identical Assessment.
func Classify(worstWater, nearestWater *Ranked[water.Station], worstRain *Ranked[rain.Station], radiusKM float64) Assessment {
	a := Assessment{
		Explanation: Explanation{
			RadiusKM:         radiusKM,
			SeverityCritical: SeverityCritical,
			SeverityWatch:    SeverityWatch,
			RainTorrentialMM: RainTorrentialMM,
			RainHeavyMM:      RainHeavyMM,
		},
	}

	switch {
	case nearestWater == nil:
		a.Category = CategoryInsufficientData

	case worstWater.Station.Severity == SeverityCritical:
		a.Category = CategoryHighWater
		a.DrivingWater = worstWater

	case worstWater.Station.Severity == SeverityWatch:
		a.Category = CategoryWatch
		a.DrivingWater = worstWater

	case worstRain != nil && worstRain.Station.Rain24h >= RainTorrentialMM:
		a.Category = CategoryHighRainFlashFlood
		a.DrivingRain = worstRain

	case worstRain != nil && worstRain.Station.Rain24h >= RainHeavyMM:
		a.Category = CategoryHeavyRain
		a.DrivingRain = worstRain

	default:
		a.Category = CategoryLow
		// Nearest station shown for explanatory display in the calm case.
		a.DrivingWater = nearestWater
	}

	return a
}
