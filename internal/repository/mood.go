package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lifelens/backend/internal/models"
	"github.com/lifelens/backend/pkg/supabase"
)

type moodRepository struct {
	client *supabase.Client
}

// NewMoodRepository creates a new mood record repository
func NewMoodRepository(client *supabase.Client) MoodRepository {
	return &moodRepository{client: client}
}

func (r *moodRepository) Create(ctx context.Context, record *models.MoodRecord) (*models.MoodRecord, error) {
	data := map[string]interface{}{
		"user_id":    record.UserID,
		"date":       record.Date,
		"mood_score": record.MoodScore,
	}
	if len(record.Triggers) > 0 {
		data["triggers"] = record.Triggers
	}
	if len(record.CopingMechanisms) > 0 {
		data["coping_mechanisms"] = record.CopingMechanisms
	}
	if record.Notes != nil {
		data["notes"] = *record.Notes
	}

	body, err := r.client.Insert("mood_data", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create mood record: %w", err)
	}

	var records []models.MoodRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no mood record returned")
	}

	return &records[0], nil
}

func (r *moodRepository) GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.MoodRecord, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(date.gte.%s,date.lte.%s)", start.Format(time.RFC3339), end.Format(time.RFC3339)),
		"select":  "*",
		"order":   "date.asc",
	}

	body, err := r.client.Query("mood_data", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood records: %w", err)
	}

	records := make([]models.MoodRecord, 0)
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return records, nil
}
