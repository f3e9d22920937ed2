package models

// ForecastPoint is one entry of the 24-hour projection.
type ForecastPoint struct {
	Time    string  `json:"time"`
	Battery float64 `json:"battery"`
}

// ForecastResult is the oracle's structured answer. The JSON field names are
// part of the declared response schema sent to the oracle, so they must not
// drift from what the model is asked to produce.
type ForecastResult struct {
	CurrentLevel   float64         `json:"currentLevel"`
	Label          string          `json:"label"`
	StatusTag      string          `json:"statusTag"`
	InsightText    string          `json:"insightText"`
	CollapseMoment string          `json:"collapseMoment,omitempty"`
	Tips           []string        `json:"tips"`
	Forecast       []ForecastPoint `json:"forecast"`
}
