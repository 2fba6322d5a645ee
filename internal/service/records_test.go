package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lifelens/backend/internal/models"
)

func newRecordServiceFixture() (*mockHealthRepository, *mockMoodRepository, *mockFinancialRepository, *mockPrayerRepository, RecordService) {
	health := &mockHealthRepository{}
	mood := &mockMoodRepository{}
	financial := &mockFinancialRepository{}
	prayer := &mockPrayerRepository{}
	svc := NewRecordService(health, mood, financial, prayer)
	return health, mood, financial, prayer, svc
}

func TestCreateHealthRecord(t *testing.T) {
	health, _, _, _, svc := newRecordServiceFixture()

	req := &models.CreateHealthRecordRequest{
		Date:          day(0),
		Steps:         8000,
		SleepDuration: 7.5,
	}

	record, err := svc.CreateHealthRecord(context.Background(), "user-1", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.ID == "" {
		t.Error("expected an assigned ID")
	}
	if record.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", record.UserID)
	}
	if record.Steps != 8000 || record.SleepDuration != 7.5 {
		t.Errorf("record fields not carried over: %+v", record)
	}
	if health.createCalls != 1 {
		t.Errorf("expected 1 repository create, got %d", health.createCalls)
	}
}

func TestCreateHealthRecordRepositoryError(t *testing.T) {
	health, _, _, _, svc := newRecordServiceFixture()
	health.err = errors.New("insert failed")

	_, err := svc.CreateHealthRecord(context.Background(), "user-1", &models.CreateHealthRecordRequest{Date: day(0)})
	if err == nil {
		t.Error("expected error from repository failure")
	}
}

func TestCreateMoodRecord(t *testing.T) {
	_, mood, _, _, svc := newRecordServiceFixture()

	record, err := svc.CreateMoodRecord(context.Background(), "user-1", &models.CreateMoodRecordRequest{
		Date:      day(0),
		MoodScore: 8,
		Triggers:  []string{"sunshine"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.MoodScore != 8 || len(record.Triggers) != 1 {
		t.Errorf("record fields not carried over: %+v", record)
	}
	if len(mood.records) != 1 {
		t.Errorf("expected 1 stored record, got %d", len(mood.records))
	}
}

func TestGetRecordsValidatesRange(t *testing.T) {
	_, _, _, _, svc := newRecordServiceFixture()
	ctx := context.Background()

	tests := []struct {
		name       string
		start, end time.Time
	}{
		{name: "zero start", start: time.Time{}, end: day(1)},
		{name: "zero end", start: day(0), end: time.Time{}},
		{name: "end before start", start: day(5), end: day(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.GetHealthRecords(ctx, "user-1", tt.start, tt.end); !errors.Is(err, ErrInvalidRange) {
				t.Errorf("GetHealthRecords: expected ErrInvalidRange, got %v", err)
			}
			if _, err := svc.GetPrayerRecords(ctx, "user-1", tt.start, tt.end); !errors.Is(err, ErrInvalidRange) {
				t.Errorf("GetPrayerRecords: expected ErrInvalidRange, got %v", err)
			}
		})
	}
}

func TestGetRecordsReturnsRange(t *testing.T) {
	_, _, financial, _, svc := newRecordServiceFixture()

	financial.records = []models.FinancialRecord{
		{UserID: "user-1", Date: day(1), Amount: 10, Category: "coffee"},
		{UserID: "user-1", Date: day(9), Amount: 20, Category: "coffee"},
		{UserID: "user-2", Date: day(1), Amount: 30, Category: "coffee"},
	}

	records, err := svc.GetFinancialRecords(context.Background(), "user-1", day(0), day(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Amount != 10 {
		t.Errorf("expected only user-1's in-range record, got %v", records)
	}
}

func TestGetRecordsEmptyRangeIsNotNil(t *testing.T) {
	_, _, _, _, svc := newRecordServiceFixture()

	records, err := svc.GetMoodRecords(context.Background(), "user-1", day(0), day(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records == nil {
		t.Error("expected empty slice, got nil")
	}
}
