package models

import "time"

// PatternType is the closed set of behavior pattern categories.
type PatternType string

const (
	PatternActivity  PatternType = "activity"
	PatternSleep     PatternType = "sleep"
	PatternMood      PatternType = "mood"
	PatternFinance   PatternType = "finance"
	PatternPrayer    PatternType = "prayer"
	PatternStress    PatternType = "stress"
	PatternNutrition PatternType = "nutrition"
	PatternSpending  PatternType = "spending"
	PatternSaving    PatternType = "saving"
	PatternHealth    PatternType = "health"
)

// Valid reports whether the pattern type is a known category.
func (t PatternType) Valid() bool {
	switch t {
	case PatternActivity, PatternSleep, PatternMood, PatternFinance,
		PatternPrayer, PatternStress, PatternNutrition, PatternSpending,
		PatternSaving, PatternHealth:
		return true
	}
	return false
}

// ImpactVector scores how strongly a pattern affects each life area,
// 0-100 per axis.
type ImpactVector struct {
	Health       int `json:"health"`
	Mood         int `json:"mood"`
	Finance      int `json:"finance"`
	Productivity int `json:"productivity"`
}

// BehaviorPattern is a persisted, named regularity derived from a user's
// records. Patterns are keyed by (UserID, PatternType, Name): reanalysis
// updates the existing row in place rather than inserting a duplicate.
type BehaviorPattern struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id"`
	PatternType     PatternType  `json:"pattern_type"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Confidence      int          `json:"confidence"`
	Frequency       string       `json:"frequency"`
	Triggers        []string     `json:"triggers,omitempty"`
	Impacts         ImpactVector `json:"impacts"`
	Recommendations []string     `json:"recommendations,omitempty"`
	DiscoveredAt    time.Time    `json:"discovered_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// Key returns the reconciliation identity of the pattern within a user's
// pattern set.
func (p *BehaviorPattern) Key() string {
	return string(p.PatternType) + "|" + p.Name
}
