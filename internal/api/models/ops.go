package models

// Health is the response of the health and readiness endpoints.
type Health struct {
	Status  HealthStatus           `json:"status"`
	Time    Timestamp              `json:"time"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ProviderStatus describes one telemetry feed's cache state.
type ProviderStatus struct {
	Provider     string       `json:"provider"`
	Kind         string       `json:"kind"`
	Status       HealthStatus `json:"status"`
	StationCount int          `json:"stationCount"`
	FetchedAt    *Timestamp   `json:"fetchedAt,omitempty"`
	ExpiresAt    *Timestamp   `json:"expiresAt,omitempty"`
}

// SystemStatus is the response of the ops status endpoint.
type SystemStatus struct {
	Status    HealthStatus     `json:"status"`
	Time      Timestamp        `json:"time"`
	Providers []ProviderStatus `json:"providers"`
}
