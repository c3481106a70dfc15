// Package risk ranks telemetry stations around a reference point and derives
// an overall flood risk classification. Every function here is pure: no I/O,
// no clock, no retained state. The host re-runs Assess whenever the reference
// point, radius, or station lists change; callers embedding it in a
// concurrent host must pass each call an immutable snapshot of its inputs.
package risk

import (
	"github.com/floodwatch/floodwatch/internal/geo"
	"github.com/floodwatch/floodwatch/internal/rain"
	"github.com/floodwatch/floodwatch/internal/water"
)

// Input is one immutable set of inputs for an assessment. Station slices are
// borrowed read-only for the duration of the call and never retained.
type Input struct {
	Reference     geo.Point
	RadiusKM      float64
	WaterStations []water.Station
	RainStations  []rain.Station
}

// Result holds everything one assessment pass produces: the four selector
// outputs, the classification, and the per-kind divergence flags. Selector
// fields are nil when no station of that kind is within radius.
type Result struct {
	NearestWater *Ranked[water.Station]
	WorstWater   *Ranked[water.Station]
	NearestRain  *Ranked[rain.Station]
	WorstRain    *Ranked[rain.Station]

	Assessment Assessment

	WaterDiverges bool
	RainDiverges  bool
}

// Assess runs the full pipeline: radius filter per kind, nearest and
// worst-case selection, classification, divergence detection. It is
// deterministic; repeated calls with identical input yield identical output.
func Assess(in Input) Result {
	rankedWater := WithinRadius(in.Reference, in.WaterStations, in.RadiusKM)
	rankedRain := WithinRadius(in.Reference, in.RainStations, in.RadiusKM)

	r := Result{
		NearestWater: Nearest(rankedWater),
		WorstWater:   WorstWater(rankedWater),
		NearestRain:  Nearest(rankedRain),
		WorstRain:    WorstRain(rankedRain),
	}

	r.Assessment = Classify(r.WorstWater, r.NearestWater, r.WorstRain, in.RadiusKM)
	r.WaterDiverges = DivergesWater(r.NearestWater, r.WorstWater)
	r.RainDiverges = DivergesRain(r.NearestRain, r.WorstRain)

	return r
}
