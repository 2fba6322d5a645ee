package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifelens/backend/internal/apierror"
	"github.com/lifelens/backend/internal/logger"
	"github.com/lifelens/backend/internal/models"
	"github.com/lifelens/backend/internal/service"
)

// RecordHandler handles raw record HTTP requests
type RecordHandler struct {
	recordService service.RecordService
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(recordService service.RecordService) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
	}
}

// CreateHealthRecord handles POST /api/v1/records/health
func (h *RecordHandler) CreateHealthRecord(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	var req models.CreateHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid request body"))
		return
	}

	record, err := h.recordService.CreateHealthRecord(c.Request.Context(), userID.(string), &req)
	if err != nil {
		h.writeCreateError(c, err, "health")
		return
	}

	c.JSON(http.StatusCreated, record)
}

// CreateMoodRecord handles POST /api/v1/records/mood
func (h *RecordHandler) CreateMoodRecord(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	var req models.CreateMoodRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid request body"))
		return
	}

	record, err := h.recordService.CreateMoodRecord(c.Request.Context(), userID.(string), &req)
	if err != nil {
		h.writeCreateError(c, err, "mood")
		return
	}

	c.JSON(http.StatusCreated, record)
}

// CreateFinancialRecord handles POST /api/v1/records/financial
func (h *RecordHandler) CreateFinancialRecord(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	var req models.CreateFinancialRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid request body"))
		return
	}

	record, err := h.recordService.CreateFinancialRecord(c.Request.Context(), userID.(string), &req)
	if err != nil {
		h.writeCreateError(c, err, "financial")
		return
	}

	c.JSON(http.StatusCreated, record)
}

// CreatePrayerRecord handles POST /api/v1/records/prayer
func (h *RecordHandler) CreatePrayerRecord(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	var req models.CreatePrayerRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid request body"))
		return
	}

	record, err := h.recordService.CreatePrayerRecord(c.Request.Context(), userID.(string), &req)
	if err != nil {
		h.writeCreateError(c, err, "prayer")
		return
	}

	c.JSON(http.StatusCreated, record)
}

// ListRecords handles GET /api/v1/records/:category
func (h *RecordHandler) ListRecords(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	category := models.RecordCategory(c.Param("category"))
	if !category.Valid() {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID,
			"unknown record category", "Category must be one of health, mood, financial, prayer"))
		return
	}

	start, end, fieldErrors := parseDateRange(c)
	if len(fieldErrors) > 0 {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	ctx := c.Request.Context()
	uid := userID.(string)

	var (
		result any
		err    error
	)
	switch category {
	case models.CategoryHealth:
		result, err = h.recordService.GetHealthRecords(ctx, uid, start, end)
	case models.CategoryMood:
		result, err = h.recordService.GetMoodRecords(ctx, uid, start, end)
	case models.CategoryFinancial:
		result, err = h.recordService.GetFinancialRecords(ctx, uid, start, end)
	case models.CategoryPrayer:
		result, err = h.recordService.GetPrayerRecords(ctx, uid, start, end)
	}
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrInvalidRange) {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid date range"))
			return
		}
		log := logger.Ctx(ctx)
		log.Error("failed to list records",
			logger.Err(err),
			logger.String("category", string(category)),
			logger.String("user_id", uid),
		)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RecordHandler) writeCreateError(c *gin.Context, err error, category string) {
	requestID := apierror.GetRequestID(c)
	log := logger.Ctx(c.Request.Context())
	log.Error("failed to create record",
		logger.Err(err),
		logger.String("category", category),
	)
	apierror.WriteProblem(c, apierror.NewInternalError(requestID))
}

// parseDateRange reads required start_date and end_date query parameters as
// RFC3339 timestamps.
func parseDateRange(c *gin.Context) (time.Time, time.Time, []apierror.FieldError) {
	var fieldErrors []apierror.FieldError

	start, err := time.Parse(time.RFC3339, c.Query("start_date"))
	if err != nil {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "start_date",
			Message: "must be a valid RFC3339 timestamp",
			Code:    "invalid_format",
		})
	}

	end, err := time.Parse(time.RFC3339, c.Query("end_date"))
	if err != nil {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "end_date",
			Message: "must be a valid RFC3339 timestamp",
			Code:    "invalid_format",
		})
	}

	return start, end, fieldErrors
}
