package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lifelens/backend/internal/logger"
	"github.com/lifelens/backend/internal/models"
	"github.com/lifelens/backend/internal/repository"
)

const (
	// DefaultAnalysisWindowDays is the trailing window for pattern analysis.
	DefaultAnalysisWindowDays = 30

	// DefaultForecastWindowDays is the trailing window for the regression
	// forecast.
	DefaultForecastWindowDays = 90
)

// ErrUnknownMetric is returned when a forecast is requested for a metric
// outside the supported set.
var ErrUnknownMetric = errors.New("unknown forecast metric")

// AnalysisWindows carries the configured default trailing windows, in days.
// Non-positive values fall back to DefaultAnalysisWindowDays and
// DefaultForecastWindowDays.
type AnalysisWindows struct {
	AnalysisDays int
	ForecastDays int
}

type behaviorService struct {
	healthRepo     repository.HealthRepository
	moodRepo       repository.MoodRepository
	financialRepo  repository.FinancialRepository
	prayerRepo     repository.PrayerRepository
	patternRepo    repository.PatternRepository
	predictionRepo repository.PredictionRepository

	analysisWindowDays int
	forecastWindowDays int

	// One analyze-then-predict cycle per user at a time; the upsert-by-key
	// reconciliation is only safe when runs for a single user are
	// serialized. Different users proceed concurrently. Entries are
	// refcounted and removed once the last holder releases, so the map
	// does not grow with every user ever seen.
	mu        sync.Mutex
	userLocks map[string]*userLock

	now func() time.Time
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

// NewBehaviorService creates a new behavior analysis service
func NewBehaviorService(
	healthRepo repository.HealthRepository,
	moodRepo repository.MoodRepository,
	financialRepo repository.FinancialRepository,
	prayerRepo repository.PrayerRepository,
	patternRepo repository.PatternRepository,
	predictionRepo repository.PredictionRepository,
	windows AnalysisWindows,
) BehaviorService {
	if windows.AnalysisDays <= 0 {
		windows.AnalysisDays = DefaultAnalysisWindowDays
	}
	if windows.ForecastDays <= 0 {
		windows.ForecastDays = DefaultForecastWindowDays
	}
	return &behaviorService{
		healthRepo:         healthRepo,
		moodRepo:           moodRepo,
		financialRepo:      financialRepo,
		prayerRepo:         prayerRepo,
		patternRepo:        patternRepo,
		predictionRepo:     predictionRepo,
		analysisWindowDays: windows.AnalysisDays,
		forecastWindowDays: windows.ForecastDays,
		userLocks:          make(map[string]*userLock),
		now:                time.Now,
	}
}

func (s *behaviorService) acquireUser(userID string) *userLock {
	s.mu.Lock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &userLock{}
		s.userLocks[userID] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (s *behaviorService) releaseUser(userID string, lock *userLock) {
	lock.mu.Unlock()

	s.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(s.userLocks, userID)
	}
	s.mu.Unlock()
}

func (s *behaviorService) GetPatterns(ctx context.Context, userID string) ([]models.BehaviorPattern, error) {
	patterns, err := s.patternRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read patterns: %w", err)
	}
	return patterns, nil
}

// Analyze runs the full derivation pipeline for one user.
func (s *behaviorService) Analyze(ctx context.Context, userID string, windowDays int) ([]models.BehaviorPattern, error) {
	lock := s.acquireUser(userID)
	defer s.releaseUser(userID, lock)

	return s.analyzeLocked(ctx, userID, windowDays)
}

// analyzeLocked is the analysis body; callers must hold the user's lock.
func (s *behaviorService) analyzeLocked(ctx context.Context, userID string, windowDays int) ([]models.BehaviorPattern, error) {
	if windowDays <= 0 {
		windowDays = s.analysisWindowDays
	}

	log := logger.Ctx(ctx)
	end := s.now()
	start := end.AddDate(0, 0, -windowDays)

	health, err := s.healthRepo.GetRange(ctx, userID, start, end)
	if err != nil {
		log.Error("failed to read health records", logger.Err(err), logger.String("user_id", userID))
		return nil, fmt.Errorf("read health records: %w", err)
	}
	mood, err := s.moodRepo.GetRange(ctx, userID, start, end)
	if err != nil {
		log.Error("failed to read mood records", logger.Err(err), logger.String("user_id", userID))
		return nil, fmt.Errorf("read mood records: %w", err)
	}
	financial, err := s.financialRepo.GetRange(ctx, userID, start, end)
	if err != nil {
		log.Error("failed to read financial records", logger.Err(err), logger.String("user_id", userID))
		return nil, fmt.Errorf("read financial records: %w", err)
	}
	prayer, err := s.prayerRepo.GetRange(ctx, userID, start, end)
	if err != nil {
		log.Error("failed to read prayer records", logger.Err(err), logger.String("user_id", userID))
		return nil, fmt.Errorf("read prayer records: %w", err)
	}

	features := extractFeatures(health, mood, financial, prayer)
	if features.Empty() {
		log.Debug("no records in analysis window", logger.String("user_id", userID))
		return []models.BehaviorPattern{}, nil
	}

	candidates := synthesizePatterns(userID, &features)
	if len(candidates) == 0 {
		return []models.BehaviorPattern{}, nil
	}

	reconciled, err := reconcilePatterns(ctx, s.patternRepo, userID, candidates)
	if err != nil {
		return reconciled, fmt.Errorf("reconcile patterns: %w", err)
	}

	log.Info("behavior analysis complete",
		logger.String("user_id", userID),
		logger.Int("patterns", len(reconciled)),
		logger.Int("window_days", windowDays),
	)

	return reconciled, nil
}

// Predict generates today's predictions from stored patterns, synthesizing
// patterns on demand for users who have none yet.
func (s *behaviorService) Predict(ctx context.Context, userID string) ([]models.Prediction, error) {
	lock := s.acquireUser(userID)
	defer s.releaseUser(userID, lock)

	log := logger.Ctx(ctx)

	patterns, err := s.patternRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.Error("failed to read behavior patterns", logger.Err(err), logger.String("user_id", userID))
		return nil, fmt.Errorf("read behavior patterns: %w", err)
	}

	if len(patterns) == 0 {
		if _, err := s.analyzeLocked(ctx, userID, s.analysisWindowDays); err != nil {
			return nil, err
		}
		patterns, err = s.patternRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("read behavior patterns: %w", err)
		}
		if len(patterns) == 0 {
			// Still nothing to go on; a valid outcome for new users.
			return []models.Prediction{}, nil
		}
	}

	predictions := buildPredictions(userID, s.now(), patterns)

	stored := make([]models.Prediction, 0, len(predictions))
	for i := range predictions {
		created, err := s.predictionRepo.Create(ctx, &predictions[i])
		if err != nil {
			log.Error("failed to store prediction",
				logger.Err(err),
				logger.String("user_id", userID),
				logger.String("prediction_type", string(predictions[i].PredictionType)),
			)
			return stored, fmt.Errorf("store prediction: %w", err)
		}
		stored = append(stored, *created)
	}

	log.Info("predictions generated",
		logger.String("user_id", userID),
		logger.Int("predictions", len(stored)),
	)

	return stored, nil
}

// Forecast projects the next day's numeric health metrics with the
// regression model.
func (s *behaviorService) Forecast(ctx context.Context, userID string, metric models.ForecastMetric, windowDays int) (*models.Forecast, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	if windowDays <= 0 {
		windowDays = s.forecastWindowDays
	}

	end := s.now()
	start := end.AddDate(0, 0, -windowDays)

	records, err := s.healthRepo.GetRange(ctx, userID, start, end)
	if err != nil {
		logger.Ctx(ctx).Error("failed to read health records for forecast",
			logger.Err(err), logger.String("user_id", userID))
		return nil, fmt.Errorf("read health records: %w", err)
	}

	return runForecast(metric, records), nil
}
