package models

import "time"

// PredictionType is the closed set of prediction categories.
type PredictionType string

const (
	PredictionActivity   PredictionType = "activity"
	PredictionSleep      PredictionType = "sleep"
	PredictionMood       PredictionType = "mood"
	PredictionFinancial  PredictionType = "financial"
	PredictionPrayer     PredictionType = "prayer"
	PredictionStress     PredictionType = "stress"
	PredictionHealthRisk PredictionType = "health_risk"
)

// Valid reports whether the prediction type is a known category.
func (t PredictionType) Valid() bool {
	switch t {
	case PredictionActivity, PredictionSleep, PredictionMood,
		PredictionFinancial, PredictionPrayer, PredictionStress,
		PredictionHealthRisk:
		return true
	}
	return false
}

// Impact is the expected direction of a predicted behavior's effect.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNeutral  Impact = "neutral"
	ImpactNegative Impact = "negative"
)

// Prediction is a dated, confidence-scored forecast of near-term behavior
// derived from a user's stored patterns. Predictions are append-only: each
// generation run creates new rows for the current date, and only a user
// confirmation mutates an existing one (sets Confirmed).
type Prediction struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	Date            time.Time      `json:"date"`
	PredictionType  PredictionType `json:"prediction_type"`
	Category        string         `json:"category"`
	PredictedValue  string         `json:"predicted_value"`
	Confidence      int            `json:"confidence"`
	Factors         []string       `json:"factors,omitempty"`
	Details         string         `json:"details"`
	Impact          Impact         `json:"impact"`
	Recommendations []string       `json:"recommendations,omitempty"`
	Confirmed       bool           `json:"confirmed"`
	CreatedAt       time.Time      `json:"created_at"`
}

// ForecastMetric selects which numeric forecast the regression model runs.
type ForecastMetric string

const (
	ForecastActivity ForecastMetric = "activity"
	ForecastSleep    ForecastMetric = "sleep"
)

// Valid reports whether the metric is supported by the regression model.
func (m ForecastMetric) Valid() bool {
	return m == ForecastActivity || m == ForecastSleep
}

// Forecast is the numeric next-day projection produced by the regression
// model, supplementing the rule-based predictions.
type Forecast struct {
	Metric        ForecastMetric `json:"metric"`
	Steps         int            `json:"steps"`
	Calories      int            `json:"calories"`
	HeartRate     int            `json:"heart_rate"`
	SleepDuration float64        `json:"sleep_duration"`
	Confidence    int            `json:"confidence"`
	Details       string         `json:"details"`
}
