package models

import "time"

// FeatureSet holds the per-category aggregate statistics extracted from a
// user's raw records for one analysis window. Feature sets are ephemeral:
// they are recomputed on every run and never persisted. A nil section means
// the category had no records in the window.
type FeatureSet struct {
	Health    *HealthFeatures
	Mood      *MoodFeatures
	Financial *FinancialFeatures
	Prayer    *PrayerFeatures
}

// Empty reports whether no category produced any features.
func (f *FeatureSet) Empty() bool {
	return f.Health == nil && f.Mood == nil && f.Financial == nil && f.Prayer == nil
}

// HealthFeatures aggregates the health record stream.
type HealthFeatures struct {
	AvgSteps             float64
	AvgHeartRate         float64
	AvgSleepDuration     float64
	AvgActiveMinutes     float64
	StepsTrend           float64
	HeartRateTrend       float64
	SleepTrend           float64
	ActivityDistribution map[string]int
}

// ItemCount is a label with its occurrence count, used for frequency-ranked
// lists of mood triggers and coping mechanisms.
type ItemCount struct {
	Item  string
	Count int
}

// MoodFeatures aggregates the mood record stream.
type MoodFeatures struct {
	AvgMood          float64
	MoodVariability  float64
	MoodTrend        float64
	StepsCorrelation float64
	SleepCorrelation float64
	CommonTriggers   []ItemCount
	CommonCoping     []ItemCount
}

// RecurringExpense is an accumulated group of repeating expenses keyed by
// (recurring type, category).
type RecurringExpense struct {
	RecurringType string
	Category      string
	Count         int
	AvgAmount     float64
	TotalAmount   float64
}

// FinancialFeatures aggregates the transaction stream.
type FinancialFeatures struct {
	AvgIncome          float64
	AvgExpense         float64
	SavingsRate        float64
	ExpensesByCategory map[string]float64
	RecurringExpenses  []RecurringExpense
}

// PrayerTypeStats is the per-prayer-type completion breakdown.
type PrayerTypeStats struct {
	Count         int
	Completed     int
	AvgDuration   float64
	TotalDuration float64
}

// WeekdayStats is the per-weekday completion breakdown.
type WeekdayStats struct {
	Count     int
	Completed int
}

// PrayerFeatures aggregates the spiritual-practice stream.
type PrayerFeatures struct {
	CompletionRate     float64
	ByType             map[string]PrayerTypeStats
	ByWeekday          map[time.Weekday]WeekdayStats
	AvgDuration        float64
	WeekdayConsistency float64
}
