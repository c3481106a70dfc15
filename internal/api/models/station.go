package models

// WaterStation represents a river water-level gauge on the wire.
type WaterStation struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Point          Point    `json:"point"`
	Severity       int      `json:"severity"`
	LevelMSL       float64  `json:"levelMsl"`
	StoragePercent *float64 `json:"storagePercent,omitempty"`
}

// RainStation represents a rain gauge on the wire.
type RainStation struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Point   Point   `json:"point"`
	Rain24h float64 `json:"rain24hMm"`
}

// RankedWaterStation pairs a water station with its distance from the
// requested reference point.
type RankedWaterStation struct {
	Station    WaterStation `json:"station"`
	DistanceKM float64      `json:"distanceKm"`
}

// RankedRainStation pairs a rain station with its distance from the
// requested reference point.
type RankedRainStation struct {
	Station    RainStation `json:"station"`
	DistanceKM float64     `json:"distanceKm"`
}

// StationList is the response of the station listing endpoints.
type StationList[S any] struct {
	Items     []S       `json:"items"`
	Count     int       `json:"count"`
	FetchedAt Timestamp `json:"fetchedAt"`
	Provider  string    `json:"provider"`
}
