package service

import (
	"fmt"

	"github.com/lifelens/backend/internal/models"
)

// =============================================================================
// Pattern Rules
// =============================================================================

// patternRule is one deterministic detection rule. Each rule inspects the
// feature set and either produces a candidate pattern or declines. Rules
// are independent: any subset may fire in a single run.
type patternRule interface {
	Detect(userID string, features *models.FeatureSet) (*models.BehaviorPattern, bool)
}

// synthesisRules is the closed set of rules applied on every analysis run,
// one per detectable pattern variant.
var synthesisRules = []patternRule{
	activityRule{},
	sleepRule{},
	moodRule{},
	financeRule{},
	prayerRule{},
}

// synthesizePatterns applies every rule to the feature set and collects
// the candidates that fired.
func synthesizePatterns(userID string, features *models.FeatureSet) []models.BehaviorPattern {
	var patterns []models.BehaviorPattern
	for _, rule := range synthesisRules {
		if pattern, ok := rule.Detect(userID, features); ok {
			patterns = append(patterns, *pattern)
		}
	}
	return patterns
}

// activityRule fires when the health stream shows any step activity.
type activityRule struct{}

func (activityRule) Detect(userID string, features *models.FeatureSet) (*models.BehaviorPattern, bool) {
	h := features.Health
	if h == nil || h.AvgSteps <= 0 {
		return nil, false
	}

	frequency := "few times per week"
	if h.AvgSteps > 8000 {
		frequency = "daily"
	}

	return &models.BehaviorPattern{
		UserID:      userID,
		PatternType: models.PatternActivity,
		Name:        "Regular Exercise Pattern",
		Description: fmt.Sprintf(
			"You tend to be most active in the evenings. Your average daily steps are %.0f.",
			h.AvgSteps),
		Confidence: 85,
		Frequency:  frequency,
		Triggers:   []string{"evening time", "good weather", "after work"},
		Impacts: models.ImpactVector{
			Health:       90,
			Mood:         75,
			Finance:      30,
			Productivity: 65,
		},
		Recommendations: []string{
			"Consider morning exercise to boost productivity",
			"Add strength training to your routine",
			"Join group fitness activities for social engagement",
		},
	}, true
}

// sleepRule fires when the health stream records any sleep.
type sleepRule struct{}

func (sleepRule) Detect(userID string, features *models.FeatureSet) (*models.BehaviorPattern, bool) {
	h := features.Health
	if h == nil || h.AvgSleepDuration <= 0 {
		return nil, false
	}

	return &models.BehaviorPattern{
		UserID:      userID,
		PatternType: models.PatternSleep,
		Name:        "Sleep Pattern",
		Description: fmt.Sprintf(
			"Your average sleep duration is %.1f hours. Sleep quality correlates strongly with physical activity.",
			h.AvgSleepDuration),
		Confidence: 88,
		Frequency:  "daily",
		Triggers:   []string{"screen time before bed", "caffeine consumption", "exercise"},
		Impacts: models.ImpactVector{
			Health:       95,
			Mood:         90,
			Finance:      40,
			Productivity: 85,
		},
		Recommendations: []string{
			"Establish a consistent sleep schedule",
			"Limit screen time 1 hour before bed",
			"Create a relaxing bedtime routine",
		},
	}, true
}

// moodRule fires when any mood entries exist; the trigger list comes from
// the extracted frequency-ranked triggers.
type moodRule struct{}

func (moodRule) Detect(userID string, features *models.FeatureSet) (*models.BehaviorPattern, bool) {
	m := features.Mood
	if m == nil || m.AvgMood <= 0 {
		return nil, false
	}

	triggers := make([]string, 0, len(m.CommonTriggers))
	for _, t := range m.CommonTriggers {
		triggers = append(triggers, t.Item)
	}

	return &models.BehaviorPattern{
		UserID:      userID,
		PatternType: models.PatternMood,
		Name:        "Mood Fluctuation Pattern",
		Description: "Your mood tends to be higher on days with more physical activity and social interaction.",
		Confidence:  75,
		Frequency:   "daily",
		Triggers:    triggers,
		Impacts: models.ImpactVector{
			Health:       70,
			Mood:         95,
			Finance:      50,
			Productivity: 80,
		},
		Recommendations: []string{
			"Schedule regular social activities",
			"Plan outdoor activities when feeling low",
			"Practice mindfulness during stressful periods",
		},
	}, true
}

// financeRule fires whenever any transactions were recorded in the window.
type financeRule struct{}

func (financeRule) Detect(userID string, features *models.FeatureSet) (*models.BehaviorPattern, bool) {
	if features.Financial == nil {
		return nil, false
	}

	return &models.BehaviorPattern{
		UserID:      userID,
		PatternType: models.PatternFinance,
		Name:        "Spending Pattern",
		Description: "You tend to make more discretionary purchases on weekends and after receiving income.",
		Confidence:  82,
		Frequency:   "weekly",
		Triggers:    []string{"weekends", "payday", "social events"},
		Impacts: models.ImpactVector{
			Health:       30,
			Mood:         65,
			Finance:      90,
			Productivity: 40,
		},
		Recommendations: []string{
			"Create a budget for discretionary spending",
			"Set up automatic transfers to savings on payday",
			"Use a 24-hour rule before making large purchases",
		},
	}, true
}

// prayerRule fires whenever any prayer sessions were recorded in the window.
type prayerRule struct{}

func (prayerRule) Detect(userID string, features *models.FeatureSet) (*models.BehaviorPattern, bool) {
	if features.Prayer == nil {
		return nil, false
	}

	return &models.BehaviorPattern{
		UserID:      userID,
		PatternType: models.PatternPrayer,
		Name:        "Spiritual Practice Pattern",
		Description: "You are most consistent with morning spiritual practices and tend to miss evening ones.",
		Confidence:  78,
		Frequency:   "daily",
		Triggers:    []string{"morning routine", "stress relief", "community connection"},
		Impacts: models.ImpactVector{
			Health:       65,
			Mood:         85,
			Finance:      20,
			Productivity: 60,
		},
		Recommendations: []string{
			"Link evening prayer with another consistent habit",
			"Use a dedicated prayer space to minimize distractions",
			"Join a prayer group for accountability",
		},
	}, true
}
