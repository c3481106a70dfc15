package models

// RiskThresholds is the numeric context behind an assessment, so clients can
// render their own narrative without hard-coding the domain constants.
type RiskThresholds struct {
	RadiusKM         float64 `json:"radiusKm"`
	SeverityCritical int     `json:"severityCritical"`
	SeverityWatch    int     `json:"severityWatch"`
	RainTorrentialMM float64 `json:"rainTorrentialMm"`
	RainHeavyMM      float64 `json:"rainHeavyMm"`
}

// KindSelection carries the nearest/worst pair and divergence flag for one
// station kind.
type KindSelection[S any] struct {
	Nearest  *S   `json:"nearest,omitempty"`
	Worst    *S   `json:"worst,omitempty"`
	Diverges bool `json:"diverges"`
}

// RiskAssessment is the response of the risk assessment endpoint.
type RiskAssessment struct {
	Reference Point        `json:"reference"`
	Category  RiskCategory `json:"category"`

	Water KindSelection[RankedWaterStation] `json:"water"`
	Rain  KindSelection[RankedRainStation]  `json:"rain"`

	// DrivingWater/DrivingRain identify the station that triggered the
	// matched classification rule.
	DrivingWater *RankedWaterStation `json:"drivingWater,omitempty"`
	DrivingRain  *RankedRainStation  `json:"drivingRain,omitempty"`

	Thresholds RiskThresholds `json:"thresholds"`

	// Snapshot ages let clients surface staleness.
	WaterFetchedAt Timestamp `json:"waterFetchedAt"`
	RainFetchedAt  Timestamp `json:"rainFetchedAt"`
}
