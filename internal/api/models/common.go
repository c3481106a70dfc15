// Package models provides request and response models for the FloodWatch API.
package models

import "time"

// Point represents a geographic coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// HealthStatus represents the health status of the service or a subsystem.
type HealthStatus string

const (
	HealthStatusOK       HealthStatus = "OK"
	HealthStatusDegraded HealthStatus = "DEGRADED"
	HealthStatusFail     HealthStatus = "FAIL"
)

// RiskCategory mirrors the risk core's classification categories on the wire.
type RiskCategory string

const (
	RiskLow                RiskCategory = "LOW"
	RiskWatch              RiskCategory = "WATCH"
	RiskHighWater          RiskCategory = "HIGH_WATER"
	RiskHighRainFlashFlood RiskCategory = "HIGH_RAIN_FLASH_FLOOD"
	RiskHeavyRain          RiskCategory = "HEAVY_RAIN"
	RiskInsufficientData   RiskCategory = "INSUFFICIENT_DATA"
)

// Timestamp is a helper type for time.Time with RFC3339 JSON formatting.
type Timestamp time.Time

// MarshalJSON implements json.Marshaler for Timestamp.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(time.RFC3339) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for Timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, string(data[1:len(data)-1]))
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}
