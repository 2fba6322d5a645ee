package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lifelens/backend/internal/models"
	"github.com/lifelens/backend/pkg/supabase"
)

type predictionRepository struct {
	client *supabase.Client
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(client *supabase.Client) PredictionRepository {
	return &predictionRepository{client: client}
}

func (r *predictionRepository) Create(ctx context.Context, prediction *models.Prediction) (*models.Prediction, error) {
	data := map[string]interface{}{
		"user_id":         prediction.UserID,
		"date":            prediction.Date,
		"prediction_type": prediction.PredictionType,
		"category":        prediction.Category,
		"predicted_value": prediction.PredictedValue,
		"confidence":      prediction.Confidence,
		"factors":         prediction.Factors,
		"details":         prediction.Details,
		"impact":          prediction.Impact,
		"recommendations": prediction.Recommendations,
		"confirmed":       prediction.Confirmed,
	}

	body, err := r.client.Insert("predictions", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction: %w", err)
	}

	var predictions []models.Prediction
	if err := json.Unmarshal(body, &predictions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(predictions) == 0 {
		return nil, fmt.Errorf("no prediction returned")
	}

	return &predictions[0], nil
}

func (r *predictionRepository) GetByUserID(ctx context.Context, userID string, predictionType models.PredictionType) ([]models.Prediction, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
		"order":   "date.desc",
	}
	if predictionType != "" {
		query["prediction_type"] = fmt.Sprintf("eq.%s", predictionType)
	}

	body, err := r.client.Query("predictions", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get predictions: %w", err)
	}

	predictions := make([]models.Prediction, 0)
	if err := json.Unmarshal(body, &predictions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return predictions, nil
}

func (r *predictionRepository) Confirm(ctx context.Context, id string) (*models.Prediction, error) {
	body, err := r.client.Update("predictions", id, map[string]interface{}{
		"confirmed": true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to confirm prediction: %w", err)
	}

	var predictions []models.Prediction
	if err := json.Unmarshal(body, &predictions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(predictions) == 0 {
		return nil, fmt.Errorf("prediction not found")
	}

	return &predictions[0], nil
}
