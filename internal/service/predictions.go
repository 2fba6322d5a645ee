package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lifelens/backend/internal/models"
	"github.com/lifelens/backend/internal/repository"
)

var (
	// ErrUnknownPredictionType is returned for a filter outside the closed
	// prediction type set.
	ErrUnknownPredictionType = errors.New("unknown prediction type")

	// ErrPredictionNotOwned is returned when a confirmation targets a
	// prediction belonging to another user.
	ErrPredictionNotOwned = errors.New("prediction does not belong to user")
)

type predictionService struct {
	predictionRepo repository.PredictionRepository
}

// NewPredictionService creates a new prediction service
func NewPredictionService(predictionRepo repository.PredictionRepository) PredictionService {
	return &predictionService{predictionRepo: predictionRepo}
}

func (s *predictionService) GetPredictions(ctx context.Context, userID string, predictionType models.PredictionType) ([]models.Prediction, error) {
	if predictionType != "" && !predictionType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPredictionType, predictionType)
	}
	return s.predictionRepo.GetByUserID(ctx, userID, predictionType)
}

func (s *predictionService) ConfirmPrediction(ctx context.Context, userID, predictionID string) (*models.Prediction, error) {
	// Ownership check before the write: predictions can only be confirmed
	// by the user they were generated for.
	existing, err := s.predictionRepo.GetByUserID(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("read predictions: %w", err)
	}

	owned := false
	for _, p := range existing {
		if p.ID == predictionID {
			owned = true
			break
		}
	}
	if !owned {
		return nil, ErrPredictionNotOwned
	}

	confirmed, err := s.predictionRepo.Confirm(ctx, predictionID)
	if err != nil {
		return nil, fmt.Errorf("confirm prediction: %w", err)
	}
	return confirmed, nil
}
