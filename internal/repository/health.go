package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lifelens/backend/internal/models"
	"github.com/lifelens/backend/pkg/supabase"
)

type healthRepository struct {
	client *supabase.Client
}

// NewHealthRepository creates a new health record repository
func NewHealthRepository(client *supabase.Client) HealthRepository {
	return &healthRepository{client: client}
}

func (r *healthRepository) Create(ctx context.Context, record *models.HealthRecord) (*models.HealthRecord, error) {
	data := map[string]interface{}{
		"user_id":        record.UserID,
		"date":           record.Date,
		"steps":          record.Steps,
		"calories":       record.Calories,
		"heart_rate":     record.HeartRate,
		"active_minutes": record.ActiveMinutes,
		"sleep_duration": record.SleepDuration,
		"sleep_quality":  record.SleepQuality,
		"deep_sleep":     record.DeepSleep,
	}
	if len(record.ActivityTypes) > 0 {
		data["activity_types"] = record.ActivityTypes
	}
	if len(record.HeartRateZones) > 0 {
		data["heart_rate_zones"] = record.HeartRateZones
	}

	body, err := r.client.Insert("health_data", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create health record: %w", err)
	}

	var records []models.HealthRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no health record returned")
	}

	return &records[0], nil
}

func (r *healthRepository) GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.HealthRecord, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(date.gte.%s,date.lte.%s)", start.Format(time.RFC3339), end.Format(time.RFC3339)),
		"select":  "*",
		"order":   "date.asc",
	}

	body, err := r.client.Query("health_data", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get health records: %w", err)
	}

	records := make([]models.HealthRecord, 0)
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return records, nil
}
