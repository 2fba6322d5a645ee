package service

import (
	"context"
	"time"

	"github.com/lifelens/backend/internal/models"
)

// BehaviorService runs the analysis pipeline: feature extraction, pattern
// synthesis and reconciliation, prediction generation, and the numeric
// regression forecast.
type BehaviorService interface {
	// Analyze derives and reconciles behavior patterns over a trailing
	// window of the given number of days (non-positive means the 30-day
	// default). Returns the reconciled pattern set; an empty slice means
	// insufficient data, not failure.
	Analyze(ctx context.Context, userID string, windowDays int) ([]models.BehaviorPattern, error)

	// GetPatterns returns the user's stored behavior patterns.
	GetPatterns(ctx context.Context, userID string) ([]models.BehaviorPattern, error)

	// Predict generates and stores dated predictions for today from the
	// user's stored patterns, running Analyze first when none exist yet.
	Predict(ctx context.Context, userID string) ([]models.Prediction, error)

	// Forecast trains the regression model over a trailing window
	// (non-positive means the 90-day default) and projects the next day's
	// numeric metrics.
	Forecast(ctx context.Context, userID string, metric models.ForecastMetric, windowDays int) (*models.Forecast, error)
}

// RecordService defines the interface for raw record business logic.
type RecordService interface {
	CreateHealthRecord(ctx context.Context, userID string, req *models.CreateHealthRecordRequest) (*models.HealthRecord, error)
	CreateMoodRecord(ctx context.Context, userID string, req *models.CreateMoodRecordRequest) (*models.MoodRecord, error)
	CreateFinancialRecord(ctx context.Context, userID string, req *models.CreateFinancialRecordRequest) (*models.FinancialRecord, error)
	CreatePrayerRecord(ctx context.Context, userID string, req *models.CreatePrayerRecordRequest) (*models.PrayerRecord, error)

	GetHealthRecords(ctx context.Context, userID string, start, end time.Time) ([]models.HealthRecord, error)
	GetMoodRecords(ctx context.Context, userID string, start, end time.Time) ([]models.MoodRecord, error)
	GetFinancialRecords(ctx context.Context, userID string, start, end time.Time) ([]models.FinancialRecord, error)
	GetPrayerRecords(ctx context.Context, userID string, start, end time.Time) ([]models.PrayerRecord, error)
}

// PredictionService exposes stored predictions and the user confirmation
// action, which lives outside the analysis pipeline.
type PredictionService interface {
	GetPredictions(ctx context.Context, userID string, predictionType models.PredictionType) ([]models.Prediction, error)
	ConfirmPrediction(ctx context.Context, userID, predictionID string) (*models.Prediction, error)
}
