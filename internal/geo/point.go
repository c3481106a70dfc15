// Package geo provides geographic primitives shared across the service.
package geo

import "math"

// earthRadiusKM is the mean Earth radius used by the haversine formula.
const earthRadiusKM = 6371.0

// Point represents a geographic coordinate in WGS-84 degrees.
// It is an immutable value type.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Distance returns the great-circle distance between two points in kilometers,
// computed with the haversine formula. It is symmetric, returns 0 for
// identical points, and never produces NaN for finite inputs. Coordinates
// outside the valid latitude/longitude ranges are the caller's responsibility.
func Distance(a, b Point) float64 {
	if a == b {
		return 0
	}

	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	deltaLat := radians(b.Lat - a.Lat)
	deltaLon := radians(b.Lon - a.Lon)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	// Rounding can push h a hair above 1 for near-antipodal points, which
	// would make Sqrt(1-h) NaN.
	if h > 1 {
		h = 1
	}

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKM * c
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
