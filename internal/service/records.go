package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lifelens/backend/internal/models"
	"github.com/lifelens/backend/internal/repository"
)

// ErrInvalidRange is returned when a requested date range is malformed.
var ErrInvalidRange = errors.New("invalid date range")

type recordService struct {
	healthRepo    repository.HealthRepository
	moodRepo      repository.MoodRepository
	financialRepo repository.FinancialRepository
	prayerRepo    repository.PrayerRepository
}

// NewRecordService creates a new record service
func NewRecordService(
	healthRepo repository.HealthRepository,
	moodRepo repository.MoodRepository,
	financialRepo repository.FinancialRepository,
	prayerRepo repository.PrayerRepository,
) RecordService {
	return &recordService{
		healthRepo:    healthRepo,
		moodRepo:      moodRepo,
		financialRepo: financialRepo,
		prayerRepo:    prayerRepo,
	}
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidRange)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date precedes start date", ErrInvalidRange)
	}
	return nil
}

func (s *recordService) CreateHealthRecord(ctx context.Context, userID string, req *models.CreateHealthRecordRequest) (*models.HealthRecord, error) {
	record := &models.HealthRecord{
		UserID:         userID,
		Date:           req.Date,
		Steps:          req.Steps,
		Calories:       req.Calories,
		HeartRate:      req.HeartRate,
		ActiveMinutes:  req.ActiveMinutes,
		SleepDuration:  req.SleepDuration,
		SleepQuality:   req.SleepQuality,
		DeepSleep:      req.DeepSleep,
		ActivityTypes:  req.ActivityTypes,
		HeartRateZones: req.HeartRateZones,
	}

	created, err := s.healthRepo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("create health record: %w", err)
	}
	return created, nil
}

func (s *recordService) CreateMoodRecord(ctx context.Context, userID string, req *models.CreateMoodRecordRequest) (*models.MoodRecord, error) {
	record := &models.MoodRecord{
		UserID:           userID,
		Date:             req.Date,
		MoodScore:        req.MoodScore,
		Triggers:         req.Triggers,
		CopingMechanisms: req.CopingMechanisms,
		Notes:            req.Notes,
	}

	created, err := s.moodRepo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("create mood record: %w", err)
	}
	return created, nil
}

func (s *recordService) CreateFinancialRecord(ctx context.Context, userID string, req *models.CreateFinancialRecordRequest) (*models.FinancialRecord, error) {
	record := &models.FinancialRecord{
		UserID:        userID,
		Date:          req.Date,
		Amount:        req.Amount,
		IsIncome:      req.IsIncome,
		Category:      req.Category,
		RecurringType: req.RecurringType,
		Description:   req.Description,
	}

	created, err := s.financialRepo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("create financial record: %w", err)
	}
	return created, nil
}

func (s *recordService) CreatePrayerRecord(ctx context.Context, userID string, req *models.CreatePrayerRecordRequest) (*models.PrayerRecord, error) {
	record := &models.PrayerRecord{
		UserID:          userID,
		Date:            req.Date,
		PrayerType:      req.PrayerType,
		Completed:       req.Completed,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}

	created, err := s.prayerRepo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("create prayer record: %w", err)
	}
	return created, nil
}

func (s *recordService) GetHealthRecords(ctx context.Context, userID string, start, end time.Time) ([]models.HealthRecord, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	return s.healthRepo.GetRange(ctx, userID, start, end)
}

func (s *recordService) GetMoodRecords(ctx context.Context, userID string, start, end time.Time) ([]models.MoodRecord, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	return s.moodRepo.GetRange(ctx, userID, start, end)
}

func (s *recordService) GetFinancialRecords(ctx context.Context, userID string, start, end time.Time) ([]models.FinancialRecord, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	return s.financialRepo.GetRange(ctx, userID, start, end)
}

func (s *recordService) GetPrayerRecords(ctx context.Context, userID string, start, end time.Time) ([]models.PrayerRecord, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	return s.prayerRepo.GetRange(ctx, userID, start, end)
}
