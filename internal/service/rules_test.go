package service

import (
	"strings"
	"testing"

	"github.com/lifelens/backend/internal/models"
)

func fullFeatureSet() *models.FeatureSet {
	return &models.FeatureSet{
		Health: &models.HealthFeatures{
			AvgSteps:         9000,
			AvgSleepDuration: 7.3,
		},
		Mood: &models.MoodFeatures{
			AvgMood: 6.5,
			CommonTriggers: []models.ItemCount{
				{Item: "work", Count: 3},
				{Item: "sleep", Count: 1},
			},
		},
		Financial: &models.FinancialFeatures{AvgExpense: 500},
		Prayer:    &models.PrayerFeatures{CompletionRate: 0.8},
	}
}

func TestSynthesizePatternsAllRulesFire(t *testing.T) {
	patterns := synthesizePatterns("user-1", fullFeatureSet())

	if len(patterns) != 5 {
		t.Fatalf("expected 5 patterns, got %d", len(patterns))
	}

	byType := make(map[models.PatternType]models.BehaviorPattern)
	for _, p := range patterns {
		if p.UserID != "user-1" {
			t.Errorf("pattern %q has user %q, want user-1", p.Name, p.UserID)
		}
		byType[p.PatternType] = p
	}

	for _, pt := range []models.PatternType{
		models.PatternActivity, models.PatternSleep, models.PatternMood,
		models.PatternFinance, models.PatternPrayer,
	} {
		if _, ok := byType[pt]; !ok {
			t.Errorf("missing pattern type %q", pt)
		}
	}
}

func TestSynthesizePatternsEmptyFeatures(t *testing.T) {
	patterns := synthesizePatterns("user-1", &models.FeatureSet{})

	if len(patterns) != 0 {
		t.Errorf("expected no patterns from empty features, got %d", len(patterns))
	}
}

func TestActivityRuleFrequencyThreshold(t *testing.T) {
	tests := []struct {
		name     string
		avgSteps float64
		want     string
	}{
		{name: "high step count", avgSteps: 8001, want: "daily"},
		{name: "at the threshold", avgSteps: 8000, want: "few times per week"},
		{name: "low step count", avgSteps: 3000, want: "few times per week"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := &models.FeatureSet{Health: &models.HealthFeatures{AvgSteps: tt.avgSteps}}
			pattern, ok := activityRule{}.Detect("u", features)
			if !ok {
				t.Fatal("expected rule to fire")
			}
			if pattern.Frequency != tt.want {
				t.Errorf("Frequency = %q, want %q", pattern.Frequency, tt.want)
			}
		})
	}
}

func TestActivityRuleDeclinesWithoutSteps(t *testing.T) {
	features := &models.FeatureSet{Health: &models.HealthFeatures{AvgSteps: 0}}
	if _, ok := (activityRule{}).Detect("u", features); ok {
		t.Error("expected rule to decline with zero steps")
	}
}

func TestActivityRuleDescriptionIncludesSteps(t *testing.T) {
	features := &models.FeatureSet{Health: &models.HealthFeatures{AvgSteps: 9542.6}}
	pattern, _ := activityRule{}.Detect("u", features)

	if !strings.Contains(pattern.Description, "9543") {
		t.Errorf("description should include rounded step count: %q", pattern.Description)
	}
}

func TestSleepRuleDescriptionIncludesDuration(t *testing.T) {
	features := &models.FeatureSet{Health: &models.HealthFeatures{AvgSleepDuration: 7.25}}
	pattern, ok := sleepRule{}.Detect("u", features)
	if !ok {
		t.Fatal("expected rule to fire")
	}

	if !strings.Contains(pattern.Description, "7.2") {
		t.Errorf("description should include sleep duration to one decimal: %q", pattern.Description)
	}
	if pattern.Confidence != 88 {
		t.Errorf("Confidence = %d, want 88", pattern.Confidence)
	}
}

func TestMoodRuleUsesExtractedTriggers(t *testing.T) {
	features := &models.FeatureSet{
		Mood: &models.MoodFeatures{
			AvgMood: 5,
			CommonTriggers: []models.ItemCount{
				{Item: "deadlines", Count: 4},
				{Item: "traffic", Count: 2},
			},
		},
	}

	pattern, ok := moodRule{}.Detect("u", features)
	if !ok {
		t.Fatal("expected rule to fire")
	}

	if len(pattern.Triggers) != 2 || pattern.Triggers[0] != "deadlines" || pattern.Triggers[1] != "traffic" {
		t.Errorf("Triggers = %v, want ranked trigger items", pattern.Triggers)
	}
}

func TestRuleConfidences(t *testing.T) {
	patterns := synthesizePatterns("u", fullFeatureSet())

	want := map[models.PatternType]int{
		models.PatternActivity: 85,
		models.PatternSleep:    88,
		models.PatternMood:     75,
		models.PatternFinance:  82,
		models.PatternPrayer:   78,
	}

	for _, p := range patterns {
		if p.Confidence != want[p.PatternType] {
			t.Errorf("%s confidence = %d, want %d", p.PatternType, p.Confidence, want[p.PatternType])
		}
	}
}
