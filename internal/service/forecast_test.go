package service

import (
	"testing"

	"github.com/lifelens/backend/internal/models"
)

func healthHistory(days int) []models.HealthRecord {
	records := make([]models.HealthRecord, days)
	for i := range records {
		records[i] = models.HealthRecord{
			Date:          day(i),
			Steps:         6000 + 200*i,
			Calories:      2000 + 30*i,
			HeartRate:     68 + i%4,
			SleepDuration: 7 + 0.1*float64(i%5),
		}
	}
	return records
}

func TestForecastConfidence(t *testing.T) {
	tests := []struct {
		pairs, want int
	}{
		{0, 60},
		{1, 65},
		{5, 85},
		{7, 95},
		{100, 95},
	}

	for _, tt := range tests {
		if got := forecastConfidence(tt.pairs); got != tt.want {
			t.Errorf("forecastConfidence(%d) = %d, want %d", tt.pairs, got, tt.want)
		}
	}
}

func TestRunForecastNoHistory(t *testing.T) {
	forecast := runForecast(models.ForecastActivity, nil)

	if forecast.Confidence != 60 {
		t.Errorf("Confidence = %d, want 60", forecast.Confidence)
	}
	if forecast.Details != "Insufficient data for high confidence prediction" {
		t.Errorf("unexpected details %q", forecast.Details)
	}
	if forecast.Steps != 0 || forecast.Calories != 0 || forecast.HeartRate != 0 || forecast.SleepDuration != 0 {
		t.Errorf("expected zero metrics with no history, got %+v", forecast)
	}
}

func TestRunForecastSingleDay(t *testing.T) {
	records := []models.HealthRecord{
		{Date: day(0), Steps: 7500, Calories: 2100, HeartRate: 70, SleepDuration: 7.4},
	}

	forecast := runForecast(models.ForecastSleep, records)

	// One day cannot train the model; the observation is echoed back.
	if forecast.Confidence != 60 {
		t.Errorf("Confidence = %d, want 60", forecast.Confidence)
	}
	if forecast.Steps != 7500 || forecast.Calories != 2100 || forecast.HeartRate != 70 {
		t.Errorf("expected the single observation echoed, got %+v", forecast)
	}
	if forecast.SleepDuration != 7.4 {
		t.Errorf("SleepDuration = %v, want 7.4", forecast.SleepDuration)
	}
	if forecast.Metric != models.ForecastSleep {
		t.Errorf("Metric = %q, want sleep", forecast.Metric)
	}
}

func TestRunForecastDeterministic(t *testing.T) {
	records := healthHistory(14)

	first := runForecast(models.ForecastActivity, records)
	second := runForecast(models.ForecastActivity, records)

	if *first != *second {
		t.Errorf("forecast is not deterministic: %+v vs %+v", first, second)
	}
}

func TestRunForecastTrainedOutput(t *testing.T) {
	records := healthHistory(10)

	forecast := runForecast(models.ForecastActivity, records)

	if forecast.Confidence != forecastConfidence(9) {
		t.Errorf("Confidence = %d, want %d", forecast.Confidence, forecastConfidence(9))
	}
	if forecast.Details != "Based on your historical activity patterns" {
		t.Errorf("unexpected details %q", forecast.Details)
	}
	if forecast.Steps < 0 || forecast.Calories < 0 || forecast.HeartRate < 0 || forecast.SleepDuration < 0 {
		t.Errorf("metrics must be non-negative, got %+v", forecast)
	}

	// Min-max normalization bounds predictions near the observed range; a
	// forecast wildly outside it means training diverged.
	if forecast.Steps > 20000 {
		t.Errorf("Steps = %d, far outside the training range", forecast.Steps)
	}
}

func TestRegressionModelLearnsBounds(t *testing.T) {
	vectors := []featureVector{
		{1000, 1800, 60, 6},
		{3000, 2200, 80, 9},
		{2000, 2000, 70, 7},
	}

	model := newRegressionModel()
	model.learnBounds(vectors)

	if model.min != (featureVector{1000, 1800, 60, 6}) {
		t.Errorf("min bounds = %v", model.min)
	}
	if model.max != (featureVector{3000, 2200, 80, 9}) {
		t.Errorf("max bounds = %v", model.max)
	}
}

func TestRegressionModelNormalizeConstantColumn(t *testing.T) {
	vectors := []featureVector{
		{1000, 2000, 70, 7},
		{2000, 2000, 70, 8},
	}

	model := newRegressionModel()
	model.learnBounds(vectors)

	normalized := model.normalize(vectors[0])
	// Constant columns normalize to 0 instead of dividing by zero.
	if normalized[1] != 0 || normalized[2] != 0 {
		t.Errorf("constant columns should normalize to 0, got %v", normalized)
	}
	if model.denormalize(1, 0) != 2000 {
		t.Errorf("constant column should denormalize to its value, got %v", model.denormalize(1, 0))
	}
}
