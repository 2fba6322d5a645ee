package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lifelens/backend/internal/models"
)

// mockHealthRepository is an in-memory HealthRepository for testing
type mockHealthRepository struct {
	records     []models.HealthRecord
	createCalls int
	err         error
}

func (m *mockHealthRepository) Create(ctx context.Context, record *models.HealthRecord) (*models.HealthRecord, error) {
	m.createCalls++
	if m.err != nil {
		return nil, m.err
	}
	record.ID = fmt.Sprintf("health-%d", len(m.records)+1)
	m.records = append(m.records, *record)
	return record, nil
}

func (m *mockHealthRepository) GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.HealthRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]models.HealthRecord, 0)
	for _, r := range m.records {
		if r.UserID == userID && !r.Date.Before(start) && !r.Date.After(end) {
			result = append(result, r)
		}
	}
	return result, nil
}

type mockMoodRepository struct {
	records []models.MoodRecord
	err     error
}

func (m *mockMoodRepository) Create(ctx context.Context, record *models.MoodRecord) (*models.MoodRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	record.ID = fmt.Sprintf("mood-%d", len(m.records)+1)
	m.records = append(m.records, *record)
	return record, nil
}

func (m *mockMoodRepository) GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.MoodRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]models.MoodRecord, 0)
	for _, r := range m.records {
		if r.UserID == userID && !r.Date.Before(start) && !r.Date.After(end) {
			result = append(result, r)
		}
	}
	return result, nil
}

type mockFinancialRepository struct {
	records []models.FinancialRecord
	err     error
}

func (m *mockFinancialRepository) Create(ctx context.Context, record *models.FinancialRecord) (*models.FinancialRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	record.ID = fmt.Sprintf("financial-%d", len(m.records)+1)
	m.records = append(m.records, *record)
	return record, nil
}

func (m *mockFinancialRepository) GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.FinancialRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]models.FinancialRecord, 0)
	for _, r := range m.records {
		if r.UserID == userID && !r.Date.Before(start) && !r.Date.After(end) {
			result = append(result, r)
		}
	}
	return result, nil
}

type mockPrayerRepository struct {
	records []models.PrayerRecord
	err     error
}

func (m *mockPrayerRepository) Create(ctx context.Context, record *models.PrayerRecord) (*models.PrayerRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	record.ID = fmt.Sprintf("prayer-%d", len(m.records)+1)
	m.records = append(m.records, *record)
	return record, nil
}

func (m *mockPrayerRepository) GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.PrayerRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]models.PrayerRecord, 0)
	for _, r := range m.records {
		if r.UserID == userID && !r.Date.Before(start) && !r.Date.After(end) {
			result = append(result, r)
		}
	}
	return result, nil
}

// mockPatternRepository upserts by the (user, type, name) key exactly like
// the real table's unique constraint.
type mockPatternRepository struct {
	patterns    map[string]*models.BehaviorPattern // userID + "|" + key -> pattern
	upsertCalls int
	err         error
}

func newMockPatternRepository() *mockPatternRepository {
	return &mockPatternRepository{patterns: make(map[string]*models.BehaviorPattern)}
}

func (m *mockPatternRepository) GetByUserID(ctx context.Context, userID string) ([]models.BehaviorPattern, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]models.BehaviorPattern, 0)
	for _, p := range m.patterns {
		if p.UserID == userID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPatternRepository) Upsert(ctx context.Context, pattern *models.BehaviorPattern) (*models.BehaviorPattern, error) {
	m.upsertCalls++
	if m.err != nil {
		return nil, m.err
	}

	key := pattern.UserID + "|" + pattern.Key()
	if existing, ok := m.patterns[key]; ok {
		pattern.ID = existing.ID
		pattern.DiscoveredAt = existing.DiscoveredAt
	} else {
		pattern.ID = fmt.Sprintf("pattern-%d", len(m.patterns)+1)
		pattern.DiscoveredAt = time.Now()
	}
	pattern.UpdatedAt = time.Now()

	stored := *pattern
	m.patterns[key] = &stored
	return &stored, nil
}

type mockPredictionRepository struct {
	predictions []models.Prediction
	createCalls int
	err         error
}

func (m *mockPredictionRepository) Create(ctx context.Context, prediction *models.Prediction) (*models.Prediction, error) {
	m.createCalls++
	if m.err != nil {
		return nil, m.err
	}
	prediction.ID = fmt.Sprintf("prediction-%d", len(m.predictions)+1)
	prediction.CreatedAt = time.Now()
	m.predictions = append(m.predictions, *prediction)
	return prediction, nil
}

func (m *mockPredictionRepository) GetByUserID(ctx context.Context, userID string, predictionType models.PredictionType) ([]models.Prediction, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]models.Prediction, 0)
	for _, p := range m.predictions {
		if p.UserID != userID {
			continue
		}
		if predictionType != "" && p.PredictionType != predictionType {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (m *mockPredictionRepository) Confirm(ctx context.Context, id string) (*models.Prediction, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.predictions {
		if m.predictions[i].ID == id {
			m.predictions[i].Confirmed = true
			return &m.predictions[i], nil
		}
	}
	return nil, errors.New("prediction not found")
}

type behaviorFixture struct {
	health     *mockHealthRepository
	mood       *mockMoodRepository
	financial  *mockFinancialRepository
	prayer     *mockPrayerRepository
	pattern    *mockPatternRepository
	prediction *mockPredictionRepository
	service    *behaviorService
}

func newBehaviorFixture(t *testing.T) *behaviorFixture {
	t.Helper()
	return newBehaviorFixtureWithWindows(t, AnalysisWindows{})
}

func newBehaviorFixtureWithWindows(t *testing.T, windows AnalysisWindows) *behaviorFixture {
	t.Helper()

	f := &behaviorFixture{
		health:     &mockHealthRepository{},
		mood:       &mockMoodRepository{},
		financial:  &mockFinancialRepository{},
		prayer:     &mockPrayerRepository{},
		pattern:    newMockPatternRepository(),
		prediction: &mockPredictionRepository{},
	}

	svc := NewBehaviorService(f.health, f.mood, f.financial, f.prayer, f.pattern, f.prediction, windows)
	f.service = svc.(*behaviorService)
	f.service.now = func() time.Time {
		return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	}
	return f
}

func (f *behaviorFixture) seedRecords(userID string) {
	now := f.service.now()
	for i := 0; i < 7; i++ {
		date := now.AddDate(0, 0, -i-1)
		f.health.records = append(f.health.records, models.HealthRecord{
			UserID: userID, Date: date,
			Steps: 9000, HeartRate: 70, SleepDuration: 7.5, Calories: 2100,
		})
		f.mood.records = append(f.mood.records, models.MoodRecord{
			UserID: userID, Date: date, MoodScore: 7, Triggers: []string{"work"},
		})
	}
	f.financial.records = append(f.financial.records, models.FinancialRecord{
		UserID: userID, Date: now.AddDate(0, 0, -3), Amount: 50, Category: "dining",
	})
	f.prayer.records = append(f.prayer.records, models.PrayerRecord{
		UserID: userID, Date: now.AddDate(0, 0, -2), PrayerType: "morning", Completed: true,
	})
}

func TestAnalyzeSynthesizesAndStoresPatterns(t *testing.T) {
	f := newBehaviorFixture(t)
	f.seedRecords("user-1")

	patterns, err := f.service.Analyze(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(patterns) != 5 {
		t.Fatalf("expected 5 patterns, got %d", len(patterns))
	}
	for _, p := range patterns {
		if p.ID == "" {
			t.Errorf("pattern %q was not stored", p.Name)
		}
	}

	stored, _ := f.pattern.GetByUserID(context.Background(), "user-1")
	if len(stored) != 5 {
		t.Errorf("expected 5 stored patterns, got %d", len(stored))
	}
}

func TestAnalyzeRerunDoesNotDuplicate(t *testing.T) {
	f := newBehaviorFixture(t)
	f.seedRecords("user-1")

	ctx := context.Background()
	if _, err := f.service.Analyze(ctx, "user-1", 0); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := f.service.Analyze(ctx, "user-1", 0); err != nil {
		t.Fatalf("second run: %v", err)
	}

	stored, _ := f.pattern.GetByUserID(ctx, "user-1")
	if len(stored) != 5 {
		t.Errorf("rerun duplicated patterns: got %d rows, want 5", len(stored))
	}
	if f.pattern.upsertCalls != 10 {
		t.Errorf("expected 10 upsert calls across two runs, got %d", f.pattern.upsertCalls)
	}
}

func TestAnalyzeNoRecords(t *testing.T) {
	f := newBehaviorFixture(t)

	patterns, err := f.service.Analyze(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patterns == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(patterns) != 0 {
		t.Errorf("expected no patterns, got %d", len(patterns))
	}
	if f.pattern.upsertCalls != 0 {
		t.Errorf("no upserts expected for empty window, got %d", f.pattern.upsertCalls)
	}
}

func TestAnalyzeRespectsWindow(t *testing.T) {
	f := newBehaviorFixture(t)

	// One record just inside a 7-day window, one outside it.
	now := f.service.now()
	f.health.records = append(f.health.records,
		models.HealthRecord{UserID: "user-1", Date: now.AddDate(0, 0, -3), Steps: 5000},
		models.HealthRecord{UserID: "user-1", Date: now.AddDate(0, 0, -20), Steps: 5000},
	)

	patterns, err := f.service.Analyze(context.Background(), "user-1", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only the activity rule fires from a single steps-only record.
	if len(patterns) != 1 || patterns[0].PatternType != models.PatternActivity {
		t.Fatalf("expected one activity pattern, got %v", patterns)
	}
}

func TestAnalyzeUsesConfiguredWindow(t *testing.T) {
	f := newBehaviorFixtureWithWindows(t, AnalysisWindows{AnalysisDays: 7})

	// A high-step record inside the configured 7-day window and a low-step
	// one outside it. Averaging both would drop under the daily-frequency
	// threshold.
	now := f.service.now()
	f.health.records = append(f.health.records,
		models.HealthRecord{UserID: "user-1", Date: now.AddDate(0, 0, -3), Steps: 9000},
		models.HealthRecord{UserID: "user-1", Date: now.AddDate(0, 0, -20), Steps: 1000},
	)

	patterns, err := f.service.Analyze(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patterns) != 1 || patterns[0].PatternType != models.PatternActivity {
		t.Fatalf("expected one activity pattern, got %v", patterns)
	}
	if patterns[0].Frequency != "daily" {
		t.Errorf("expected daily frequency from the 7-day window, got %q", patterns[0].Frequency)
	}
}

func TestForecastUsesConfiguredWindow(t *testing.T) {
	f := newBehaviorFixtureWithWindows(t, AnalysisWindows{ForecastDays: 3})

	now := f.service.now()
	for i := 1; i <= 9; i++ {
		f.health.records = append(f.health.records, models.HealthRecord{
			UserID: "user-1", Date: now.AddDate(0, 0, -i),
			Steps: 6000 + 200*i, Calories: 2000, HeartRate: 70, SleepDuration: 7.2,
		})
	}

	forecast, err := f.service.Forecast(context.Background(), "user-1", models.ForecastActivity, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only the three most recent days fall inside the configured window,
	// which pins the confidence to two training pairs.
	if forecast.Confidence != forecastConfidence(2) {
		t.Errorf("expected confidence %d from 3-day window, got %d", forecastConfidence(2), forecast.Confidence)
	}
}

func TestAnalyzeIsolatesUsers(t *testing.T) {
	f := newBehaviorFixture(t)
	f.seedRecords("user-1")
	f.seedRecords("user-2")

	ctx := context.Background()
	if _, err := f.service.Analyze(ctx, "user-1", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	otherPatterns, _ := f.pattern.GetByUserID(ctx, "user-2")
	if len(otherPatterns) != 0 {
		t.Errorf("analysis for user-1 produced %d patterns for user-2", len(otherPatterns))
	}
}

func TestAnalyzeSerializesPerUser(t *testing.T) {
	f := newBehaviorFixture(t)
	f.seedRecords("user-1")

	// The per-user lock serializes these calls, so the unsynchronized mocks
	// see one Analyze at a time and the upsert key keeps rows stable.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.service.Analyze(context.Background(), "user-1", 0); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	stored, _ := f.pattern.GetByUserID(context.Background(), "user-1")
	if len(stored) != 5 {
		t.Fatalf("expected 5 patterns after concurrent runs, got %d", len(stored))
	}
	if f.pattern.upsertCalls != 40 {
		t.Errorf("expected 40 upsert calls, got %d", f.pattern.upsertCalls)
	}
}

func TestUserLocksReleasedAfterUse(t *testing.T) {
	f := newBehaviorFixture(t)
	f.seedRecords("user-1")
	f.seedRecords("user-2")

	var wg sync.WaitGroup
	for _, userID := range []string{"user-1", "user-2"} {
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				if _, err := f.service.Analyze(context.Background(), id, 0); err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}(userID)
		}
	}
	wg.Wait()

	f.service.mu.Lock()
	remaining := len(f.service.userLocks)
	f.service.mu.Unlock()
	if remaining != 0 {
		t.Errorf("expected user lock map to be empty after runs, got %d entries", remaining)
	}
}

func TestPredictFromStoredPatterns(t *testing.T) {
	f := newBehaviorFixture(t)

	ctx := context.Background()
	for _, p := range storedPatternSet() {
		p.UserID = "user-1"
		if _, err := f.pattern.Upsert(ctx, &p); err != nil {
			t.Fatalf("seed pattern: %v", err)
		}
	}

	predictions, err := f.service.Predict(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(predictions) != 5 {
		t.Fatalf("expected 5 predictions, got %d", len(predictions))
	}
	for _, p := range predictions {
		if p.ID == "" {
			t.Errorf("prediction %q was not stored", p.PredictionType)
		}
	}
	if f.prediction.createCalls != 5 {
		t.Errorf("expected 5 stored predictions, got %d", f.prediction.createCalls)
	}
}

func TestPredictAnalyzesOnDemand(t *testing.T) {
	f := newBehaviorFixture(t)
	f.seedRecords("user-1")

	ctx := context.Background()
	predictions, err := f.service.Predict(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.pattern.upsertCalls == 0 {
		t.Error("expected on-demand analysis for a user without patterns")
	}
	if len(predictions) == 0 {
		t.Error("expected predictions after on-demand analysis")
	}
}

func TestPredictNoDataAtAll(t *testing.T) {
	f := newBehaviorFixture(t)

	predictions, err := f.service.Predict(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if predictions == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(predictions) != 0 {
		t.Errorf("expected no predictions, got %d", len(predictions))
	}
}

func TestPredictRepositoryError(t *testing.T) {
	f := newBehaviorFixture(t)
	f.pattern.err = errors.New("connection reset")

	if _, err := f.service.Predict(context.Background(), "user-1"); err == nil {
		t.Error("expected error when pattern reads fail")
	}
}

func TestForecastUnknownMetric(t *testing.T) {
	f := newBehaviorFixture(t)

	_, err := f.service.Forecast(context.Background(), "user-1", "steps", 0)
	if !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got %v", err)
	}
}

func TestForecastInsufficientData(t *testing.T) {
	f := newBehaviorFixture(t)

	forecast, err := f.service.Forecast(context.Background(), "user-1", models.ForecastActivity, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if forecast.Confidence != 60 {
		t.Errorf("Confidence = %d, want 60", forecast.Confidence)
	}
}

func TestForecastWithHistory(t *testing.T) {
	f := newBehaviorFixture(t)

	now := f.service.now()
	for i := 0; i < 10; i++ {
		f.health.records = append(f.health.records, models.HealthRecord{
			UserID: "user-1", Date: now.AddDate(0, 0, -10+i),
			Steps: 6000 + 200*i, Calories: 2000, HeartRate: 70, SleepDuration: 7,
		})
	}

	forecast, err := f.service.Forecast(context.Background(), "user-1", models.ForecastActivity, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if forecast.Confidence != forecastConfidence(9) {
		t.Errorf("Confidence = %d, want %d", forecast.Confidence, forecastConfidence(9))
	}
	if forecast.Metric != models.ForecastActivity {
		t.Errorf("Metric = %q, want activity", forecast.Metric)
	}
}
