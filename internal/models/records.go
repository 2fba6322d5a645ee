package models

import "time"

// RecordCategory identifies one of the raw record streams a user can log.
type RecordCategory string

const (
	CategoryHealth    RecordCategory = "health"
	CategoryMood      RecordCategory = "mood"
	CategoryFinancial RecordCategory = "financial"
	CategoryPrayer    RecordCategory = "prayer"
)

// Valid reports whether the category is one of the known record streams.
func (c RecordCategory) Valid() bool {
	switch c {
	case CategoryHealth, CategoryMood, CategoryFinancial, CategoryPrayer:
		return true
	}
	return false
}

// HealthRecord is a single day's health observation (steps, heart rate,
// sleep, etc.). Records are immutable once written; the analysis pipeline
// only ever reads them.
type HealthRecord struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	Date           time.Time      `json:"date"`
	Steps          int            `json:"steps"`
	Calories       int            `json:"calories"`
	HeartRate      int            `json:"heart_rate"`
	ActiveMinutes  int            `json:"active_minutes"`
	SleepDuration  float64        `json:"sleep_duration"`
	SleepQuality   int            `json:"sleep_quality"`
	DeepSleep      float64        `json:"deep_sleep"`
	ActivityTypes  map[string]int `json:"activity_types,omitempty"`
	HeartRateZones map[string]int `json:"heart_rate_zones,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// MoodRecord is a single mood check-in with optional triggers and coping
// mechanisms the user noted at the time.
type MoodRecord struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Date             time.Time `json:"date"`
	MoodScore        int       `json:"mood_score"`
	Triggers         []string  `json:"triggers,omitempty"`
	CopingMechanisms []string  `json:"coping_mechanisms,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// FinancialRecord is a single transaction. IsIncome distinguishes income
// from expenses; RecurringType (e.g. "monthly", "weekly") is set for
// subscriptions and other repeating transactions.
type FinancialRecord struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Date          time.Time `json:"date"`
	Amount        float64   `json:"amount"`
	IsIncome      bool      `json:"is_income"`
	Category      string    `json:"category"`
	RecurringType *string   `json:"recurring_type,omitempty"`
	Description   *string   `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// PrayerRecord is a single planned or completed spiritual-practice session.
type PrayerRecord struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Date            time.Time `json:"date"`
	PrayerType      string    `json:"prayer_type"`
	Completed       bool      `json:"completed"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateHealthRecordRequest is the request body for logging a health record.
type CreateHealthRecordRequest struct {
	Date           time.Time      `json:"date" binding:"required"`
	Steps          int            `json:"steps"`
	Calories       int            `json:"calories"`
	HeartRate      int            `json:"heart_rate"`
	ActiveMinutes  int            `json:"active_minutes"`
	SleepDuration  float64        `json:"sleep_duration"`
	SleepQuality   int            `json:"sleep_quality"`
	DeepSleep      float64        `json:"deep_sleep"`
	ActivityTypes  map[string]int `json:"activity_types"`
	HeartRateZones map[string]int `json:"heart_rate_zones"`
}

// CreateMoodRecordRequest is the request body for logging a mood check-in.
type CreateMoodRecordRequest struct {
	Date             time.Time `json:"date" binding:"required"`
	MoodScore        int       `json:"mood_score" binding:"required,min=1,max=10"`
	Triggers         []string  `json:"triggers"`
	CopingMechanisms []string  `json:"coping_mechanisms"`
	Notes            *string   `json:"notes"`
}

// CreateFinancialRecordRequest is the request body for logging a transaction.
type CreateFinancialRecordRequest struct {
	Date          time.Time `json:"date" binding:"required"`
	Amount        float64   `json:"amount" binding:"required"`
	IsIncome      bool      `json:"is_income"`
	Category      string    `json:"category" binding:"required"`
	RecurringType *string   `json:"recurring_type"`
	Description   *string   `json:"description"`
}

// CreatePrayerRecordRequest is the request body for logging a prayer session.
type CreatePrayerRecordRequest struct {
	Date            time.Time `json:"date" binding:"required"`
	PrayerType      string    `json:"prayer_type" binding:"required"`
	Completed       bool      `json:"completed"`
	DurationMinutes *int      `json:"duration_minutes"`
	Notes           *string   `json:"notes"`
}
