package service

import (
	"fmt"
	"math"
	"time"

	"github.com/lifelens/backend/internal/models"
)

// =============================================================================
// Confidence Aggregation
// =============================================================================

// defaultConfidence is returned when no patterns support a prediction.
const defaultConfidence = 50

// aggregateConfidence combines the confidences of the patterns backing a
// prediction: the arithmetic mean, boosted by corroboration from multiple
// patterns. The corroboration bonus saturates at 3 patterns, and the result
// is clamped to [0, 100].
func aggregateConfidence(patterns []models.BehaviorPattern) int {
	if len(patterns) == 0 {
		return defaultConfidence
	}

	var sum float64
	for _, p := range patterns {
		sum += float64(p.Confidence)
	}
	avg := sum / float64(len(patterns))

	countFactor := math.Min(float64(len(patterns))/3, 1)
	confidence := int(math.Round(avg * (0.8 + 0.2*countFactor)))

	return clampConfidence(confidence)
}

// =============================================================================
// Prediction Builders
// =============================================================================

// predictionBuilder emits one category's prediction from the stored
// patterns relevant to it. Builders form a closed set, one per prediction
// variant; a builder that finds no relevant patterns declines.
type predictionBuilder interface {
	Build(userID string, now time.Time, patterns []models.BehaviorPattern) (*models.Prediction, bool)
}

// predictionBuilders is applied in order on every generation run.
var predictionBuilders = []predictionBuilder{
	activityPrediction{},
	sleepPrediction{},
	moodPrediction{},
	financialPrediction{},
	prayerPrediction{},
}

// buildPredictions runs every builder against the stored pattern set.
func buildPredictions(userID string, now time.Time, patterns []models.BehaviorPattern) []models.Prediction {
	var predictions []models.Prediction
	for _, builder := range predictionBuilders {
		if p, ok := builder.Build(userID, now, patterns); ok {
			predictions = append(predictions, *p)
		}
	}
	return predictions
}

// filterPatterns selects the stored patterns whose type is in the given set.
func filterPatterns(patterns []models.BehaviorPattern, types ...models.PatternType) []models.BehaviorPattern {
	var matched []models.BehaviorPattern
	for _, p := range patterns {
		for _, t := range types {
			if p.PatternType == t {
				matched = append(matched, p)
				break
			}
		}
	}
	return matched
}

type activityPrediction struct{}

func (activityPrediction) Build(userID string, now time.Time, patterns []models.BehaviorPattern) (*models.Prediction, bool) {
	relevant := filterPatterns(patterns, models.PatternActivity, models.PatternHealth)
	if len(relevant) == 0 {
		return nil, false
	}

	timing := "within the next few hours"
	if now.Hour() < 12 {
		timing = "in the evening"
	}

	return &models.Prediction{
		UserID:         userID,
		Date:           now,
		PredictionType: models.PredictionActivity,
		Category:       "exercise",
		PredictedValue: fmt.Sprintf("You are likely to exercise today %s", timing),
		Confidence:     aggregateConfidence(relevant),
		Factors:        []string{"past behavior", "day of week", "weather"},
		Details:        fmt.Sprintf("Based on your patterns, you typically exercise on %ss", now.Weekday()),
		Impact:         models.ImpactPositive,
		Recommendations: []string{
			"Prepare your workout clothes",
			"Stay hydrated throughout the day",
			"Plan a healthy post-workout meal",
		},
	}, true
}

type sleepPrediction struct{}

func (sleepPrediction) Build(userID string, now time.Time, patterns []models.BehaviorPattern) (*models.Prediction, bool) {
	relevant := filterPatterns(patterns, models.PatternSleep)
	if len(relevant) == 0 {
		return nil, false
	}

	return &models.Prediction{
		UserID:         userID,
		Date:           now,
		PredictionType: models.PredictionSleep,
		Category:       "rest",
		PredictedValue: "You are likely to sleep around 11:15 PM tonight",
		Confidence:     aggregateConfidence(relevant),
		Factors:        []string{"screen time", "physical activity", "typical schedule"},
		Details:        "Based on your sleep patterns over the past 30 days",
		Impact:         models.ImpactNeutral,
		Recommendations: []string{
			"Reduce screen time after 10:00 PM",
			"Keep your bedroom cool and dark",
			"Avoid caffeine after 2:00 PM",
		},
	}, true
}

type moodPrediction struct{}

func (moodPrediction) Build(userID string, now time.Time, patterns []models.BehaviorPattern) (*models.Prediction, bool) {
	relevant := filterPatterns(patterns, models.PatternMood)
	if len(relevant) == 0 {
		return nil, false
	}

	return &models.Prediction{
		UserID:         userID,
		Date:           now,
		PredictionType: models.PredictionMood,
		Category:       "wellness",
		PredictedValue: "Your mood is likely to improve this afternoon",
		Confidence:     aggregateConfidence(relevant),
		Factors:        []string{"social interactions", "physical activity", "rest quality"},
		Details:        "Your mood tends to improve following physical activity and social interactions",
		Impact:         models.ImpactPositive,
		Recommendations: []string{
			"Schedule a brief walk outside",
			"Connect with a friend or family member",
			"Take short breaks throughout your day",
		},
	}, true
}

type financialPrediction struct{}

func (financialPrediction) Build(userID string, now time.Time, patterns []models.BehaviorPattern) (*models.Prediction, bool) {
	relevant := filterPatterns(patterns,
		models.PatternFinance, models.PatternSpending, models.PatternSaving)
	if len(relevant) == 0 {
		return nil, false
	}

	return &models.Prediction{
		UserID:         userID,
		Date:           now,
		PredictionType: models.PredictionFinancial,
		Category:       "spending",
		PredictedValue: "You are likely to spend on dining out today",
		Confidence:     aggregateConfidence(relevant),
		Factors:        []string{"day of week", "historical spending", "income timing"},
		Details:        fmt.Sprintf("Your spending on dining increases on %ss", now.Weekday()),
		Impact:         models.ImpactNeutral,
		Recommendations: []string{
			"Check your dining budget before going out",
			"Consider cooking at home as an alternative",
			"Look for social dining deals or promotions",
		},
	}, true
}

type prayerPrediction struct{}

func (prayerPrediction) Build(userID string, now time.Time, patterns []models.BehaviorPattern) (*models.Prediction, bool) {
	relevant := filterPatterns(patterns, models.PatternPrayer)
	if len(relevant) == 0 {
		return nil, false
	}

	return &models.Prediction{
		UserID:         userID,
		Date:           now,
		PredictionType: models.PredictionPrayer,
		Category:       "spiritual",
		PredictedValue: "You are likely to pray during the evening",
		Confidence:     aggregateConfidence(relevant),
		Factors:        []string{"daily schedule", "stress levels", "habit formation"},
		Details:        "Your prayer consistency is highest in the morning and evening",
		Impact:         models.ImpactPositive,
		Recommendations: []string{
			"Set up a dedicated prayer space",
			"Use a prayer app for reminders",
			"Join an online prayer community",
		},
	}, true
}
