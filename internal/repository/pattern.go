package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lifelens/backend/internal/models"
	"github.com/lifelens/backend/pkg/supabase"
)

type patternRepository struct {
	client *supabase.Client
}

// NewPatternRepository creates a new behavior pattern repository
func NewPatternRepository(client *supabase.Client) PatternRepository {
	return &patternRepository{client: client}
}

func (r *patternRepository) GetByUserID(ctx context.Context, userID string) ([]models.BehaviorPattern, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
		"order":   "discovered_at.asc",
	}

	body, err := r.client.Query("behavior_patterns", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get behavior patterns: %w", err)
	}

	patterns := make([]models.BehaviorPattern, 0)
	if err := json.Unmarshal(body, &patterns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return patterns, nil
}

func (r *patternRepository) Upsert(ctx context.Context, pattern *models.BehaviorPattern) (*models.BehaviorPattern, error) {
	data := map[string]interface{}{
		"user_id":         pattern.UserID,
		"pattern_type":    pattern.PatternType,
		"name":            pattern.Name,
		"description":     pattern.Description,
		"confidence":      pattern.Confidence,
		"frequency":       pattern.Frequency,
		"triggers":        pattern.Triggers,
		"impacts":         pattern.Impacts,
		"recommendations": pattern.Recommendations,
	}

	// discovered_at carries a database default, so existing rows keep their
	// original discovery timestamp on update.
	body, err := r.client.Upsert("behavior_patterns", data, "user_id,pattern_type,name")
	if err != nil {
		return nil, fmt.Errorf("failed to upsert behavior pattern: %w", err)
	}

	var patterns []models.BehaviorPattern
	if err := json.Unmarshal(body, &patterns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no behavior pattern returned")
	}

	return &patterns[0], nil
}
