package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lifelens/backend/internal/models"
	"github.com/lifelens/backend/pkg/supabase"
)

type financialRepository struct {
	client *supabase.Client
}

// NewFinancialRepository creates a new financial record repository
func NewFinancialRepository(client *supabase.Client) FinancialRepository {
	return &financialRepository{client: client}
}

func (r *financialRepository) Create(ctx context.Context, record *models.FinancialRecord) (*models.FinancialRecord, error) {
	data := map[string]interface{}{
		"user_id":   record.UserID,
		"date":      record.Date,
		"amount":    record.Amount,
		"is_income": record.IsIncome,
		"category":  record.Category,
	}
	if record.RecurringType != nil {
		data["recurring_type"] = *record.RecurringType
	}
	if record.Description != nil {
		data["description"] = *record.Description
	}

	body, err := r.client.Insert("financial_data", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create financial record: %w", err)
	}

	var records []models.FinancialRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no financial record returned")
	}

	return &records[0], nil
}

func (r *financialRepository) GetRange(ctx context.Context, userID string, start, end time.Time) ([]models.FinancialRecord, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(date.gte.%s,date.lte.%s)", start.Format(time.RFC3339), end.Format(time.RFC3339)),
		"select":  "*",
		"order":   "date.asc",
	}

	body, err := r.client.Query("financial_data", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get financial records: %w", err)
	}

	records := make([]models.FinancialRecord, 0)
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return records, nil
}
