package risk

import (
	"github.com/floodwatch/floodwatch/internal/rain"
	"github.com/floodwatch/floodwatch/internal/water"
)

// DivergesWater reports whether the worst water station is a different gauge
// than the nearest one and meaningfully more dangerous: its severity is at
// the warning floor or above, and strictly exceeds the nearest station's
// severity. The signal tells a presentation layer "the closest gauge looks
// fine, but a worse one is still inside your radius".
func DivergesWater(nearest, worst *Ranked[water.Station]) bool {
	if nearest == nil || worst == nil {
		return false
	}
	return worst.Station.ID != nearest.Station.ID &&
		worst.Station.Severity >= SeverityWatch &&
		worst.Station.Severity > nearest.Station.Severity
}

// DivergesRain is the rain-gauge counterpart of DivergesWater. The warning
// floor is strict: 24-hour rainfall must exceed the heavy-rain band, not
// merely reach it.
func DivergesRain(nearest, worst *Ranked[rain.Station]) bool {
	if nearest == nil || worst == nil {
		return false
	}
	return worst.Station.ID != nearest.Station.ID &&
		worst.Station.Rain24h > RainHeavyMM &&
		worst.Station.Rain24h > nearest.Station.Rain24h
}
