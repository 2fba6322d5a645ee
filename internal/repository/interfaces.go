package repository

import (
	"context"
	"time"

	"github.com/lifelens/backend/internal/models"
)

// HealthRepository defines data access for health records.
type HealthRepository interface {
	Create(ctx context.Context, record *models.HealthRecord) (*models.HealthRecord, error)
	GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.HealthRecord, error)
}

// MoodRepository defines data access for mood records.
type MoodRepository interface {
	Create(ctx context.Context, record *models.MoodRecord) (*models.MoodRecord, error)
	GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.MoodRecord, error)
}

// FinancialRepository defines data access for financial records.
type FinancialRepository interface {
	Create(ctx context.Context, record *models.FinancialRecord) (*models.FinancialRecord, error)
	GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.FinancialRecord, error)
}

// PrayerRepository defines data access for prayer records.
type PrayerRepository interface {
	Create(ctx context.Context, record *models.PrayerRecord) (*models.PrayerRecord, error)
	GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.PrayerRecord, error)
}

// PatternRepository defines data access for behavior patterns. Upsert keys
// on (user_id, pattern_type, name) so reanalysis refreshes existing rows
// instead of duplicating them.
type PatternRepository interface {
	GetByUserID(ctx context.Context, userID string) ([]models.BehaviorPattern, error)
	Upsert(ctx context.Context, pattern *models.BehaviorPattern) (*models.BehaviorPattern, error)
}

// PredictionRepository defines data access for predictions. Predictions are
// append-only apart from the user confirmation flag.
type PredictionRepository interface {
	Create(ctx context.Context, prediction *models.Prediction) (*models.Prediction, error)
	GetByUserID(ctx context.Context, userID string, predictionType models.PredictionType) ([]models.Prediction, error)
	Confirm(ctx context.Context, id string) (*models.Prediction, error)
}
