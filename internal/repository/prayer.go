package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lifelens/backend/internal/models"
	"github.com/lifelens/backend/pkg/supabase"
)

type prayerRepository struct {
	client *supabase.Client
}

// NewPrayerRepository creates a new prayer record repository
func NewPrayerRepository(client *supabase.Client) PrayerRepository {
	return &prayerRepository{client: client}
}

func (r *prayerRepository) Create(ctx context.Context, record *models.PrayerRecord) (*models.PrayerRecord, error) {
	data := map[string]interface{}{
		"user_id":     record.UserID,
		"date":        record.Date,
		"prayer_type": record.PrayerType,
		"completed":   record.Completed,
	}
	if record.DurationMinutes != nil {
		data["duration_minutes"] = *record.DurationMinutes
	}
	if record.Notes != nil {
		data["notes"] = *record.Notes
	}

	body, err := r.client.Insert("prayer_data", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create prayer record: %w", err)
	}

	var records []models.PrayerRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no prayer record returned")
	}

	return &records[0], nil
}

func (r *prayerRepository) GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.PrayerRecord, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(date.gte.%s,date.lte.%s)", start.Format(time.RFC3339), end.Format(time.RFC3339)),
		"select":  "*",
		"order":   "date.asc",
	}

	body, err := r.client.Query("prayer_data", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get prayer records: %w", err)
	}

	records := make([]models.PrayerRecord, 0)
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return records, nil
}
