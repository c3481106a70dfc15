package risk

import "github.com/floodwatch/floodwatch/internal/geo"

// Locatable is any station with geographic coordinates.
type Locatable interface {
	Coordinates() geo.Point
}

// Ranked pairs a station with its computed distance from the reference
// point. Ranked values are derived per assessment and discarded afterwards;
// they carry no identity beyond a single computation pass.
type Ranked[S Locatable] struct {
	Station    S
	DistanceKM float64
}

// WithinRadius returns the stations whose great-circle distance from ref is
// at most radiusKM (inclusive), each paired with that distance. The relative
// order of the input is preserved; later selectors rely on this as their
// tie-break fallback. A non-positive radius or empty input yields an empty
// result, never an error.
func WithinRadius[S Locatable](ref geo.Point, stations []S, radiusKM float64) []Ranked[S] {
	if radiusKM <= 0 {
		return nil
	}

	var ranked []Ranked[S]
	for _, s := range stations {
		d := geo.Distance(ref, s.Coordinates())
		if d <= radiusKM {
			ranked = append(ranked, Ranked[S]{Station: s, DistanceKM: d})
		}
	}
	return ranked
}

// Nearest returns the ranked station with minimum distance, or nil when the
// input is empty. Nil is a normal outcome meaning no station in radius.
// Equal distances resolve to the earlier input position, matching a stable
// ascending sort by distance.
func Nearest[S Locatable](ranked []Ranked[S]) *Ranked[S] {
	if len(ranked) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(ranked); i++ {
		if ranked[i].DistanceKM < ranked[best].DistanceKM {
			best = i
		}
	}
	return &ranked[best]
}
