package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lifelens/backend/internal/models"
)

func seedPredictions(repo *mockPredictionRepository) {
	repo.predictions = []models.Prediction{
		{ID: "p-1", UserID: "user-1", PredictionType: models.PredictionActivity, Date: time.Now()},
		{ID: "p-2", UserID: "user-1", PredictionType: models.PredictionMood, Date: time.Now()},
		{ID: "p-3", UserID: "user-2", PredictionType: models.PredictionActivity, Date: time.Now()},
	}
}

func TestGetPredictions(t *testing.T) {
	repo := &mockPredictionRepository{}
	seedPredictions(repo)
	svc := NewPredictionService(repo)

	predictions, err := svc.GetPredictions(context.Background(), "user-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(predictions) != 2 {
		t.Errorf("expected 2 predictions for user-1, got %d", len(predictions))
	}
}

func TestGetPredictionsFiltersByType(t *testing.T) {
	repo := &mockPredictionRepository{}
	seedPredictions(repo)
	svc := NewPredictionService(repo)

	predictions, err := svc.GetPredictions(context.Background(), "user-1", models.PredictionMood)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(predictions) != 1 || predictions[0].ID != "p-2" {
		t.Errorf("expected only the mood prediction, got %v", predictions)
	}
}

func TestGetPredictionsUnknownType(t *testing.T) {
	svc := NewPredictionService(&mockPredictionRepository{})

	_, err := svc.GetPredictions(context.Background(), "user-1", "horoscope")
	if !errors.Is(err, ErrUnknownPredictionType) {
		t.Errorf("expected ErrUnknownPredictionType, got %v", err)
	}
}

func TestConfirmPrediction(t *testing.T) {
	repo := &mockPredictionRepository{}
	seedPredictions(repo)
	svc := NewPredictionService(repo)

	confirmed, err := svc.ConfirmPrediction(context.Background(), "user-1", "p-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !confirmed.Confirmed {
		t.Error("expected prediction to be confirmed")
	}
}

func TestConfirmPredictionOwnership(t *testing.T) {
	repo := &mockPredictionRepository{}
	seedPredictions(repo)
	svc := NewPredictionService(repo)

	// p-3 belongs to user-2; user-1 must not be able to confirm it.
	_, err := svc.ConfirmPrediction(context.Background(), "user-1", "p-3")
	if !errors.Is(err, ErrPredictionNotOwned) {
		t.Errorf("expected ErrPredictionNotOwned, got %v", err)
	}
	if repo.predictions[2].Confirmed {
		t.Error("prediction was confirmed despite failed ownership check")
	}
}

func TestConfirmUnknownPrediction(t *testing.T) {
	repo := &mockPredictionRepository{}
	seedPredictions(repo)
	svc := NewPredictionService(repo)

	_, err := svc.ConfirmPrediction(context.Background(), "user-1", "p-404")
	if !errors.Is(err, ErrPredictionNotOwned) {
		t.Errorf("expected ErrPredictionNotOwned, got %v", err)
	}
}
