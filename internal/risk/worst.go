package risk

import (
	"github.com/floodwatch/floodwatch/internal/rain"
	"github.com/floodwatch/floodwatch/internal/water"
)

// WorstWater returns the ranked water station with the highest severity, or
// nil when the input is empty. Among stations of equal severity the closer
// one wins: for the same flood situation the nearer gauge is operationally
// more relevant. Stations tied on both severity and distance resolve to the
// earlier input position.
func WorstWater(ranked []Ranked[water.Station]) *Ranked[water.Station] {
	if len(ranked) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(ranked); i++ {
		cur, b := ranked[i], ranked[best]
		if cur.Station.Severity > b.Station.Severity ||
			(cur.Station.Severity == b.Station.Severity && cur.DistanceKM < b.DistanceKM) {
			best = i
		}
	}
	return &ranked[best]
}

// WorstRain returns the ranked rain station with the highest 24-hour
// rainfall, or nil when the input is empty. Rainfall has no secondary key:
// ties resolve to the earlier position in the radius-filtered input, the
// same stable-order fallback Nearest uses.
func WorstRain(ranked []Ranked[rain.Station]) *Ranked[rain.Station] {
	if len(ranked) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Station.Rain24h > ranked[best].Station.Rain24h {
			best = i
		}
	}
	return &ranked[best]
}
