package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lifelens/backend/internal/apierror"
	"github.com/lifelens/backend/internal/logger"
	"github.com/lifelens/backend/internal/models"
	"github.com/lifelens/backend/internal/service"
)

// BehaviorHandler handles pattern analysis and forecast HTTP requests
type BehaviorHandler struct {
	behaviorService service.BehaviorService
}

// NewBehaviorHandler creates a new behavior handler
func NewBehaviorHandler(behaviorService service.BehaviorService) *BehaviorHandler {
	return &BehaviorHandler{
		behaviorService: behaviorService,
	}
}

// GetPatterns returns the stored behavior patterns for the authenticated user
// GET /api/v1/patterns
func (h *BehaviorHandler) GetPatterns(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	patterns, err := h.behaviorService.GetPatterns(c.Request.Context(), userID.(string))
	if err != nil {
		log := logger.Ctx(c.Request.Context())
		log.Error("failed to get patterns", logger.Err(err), logger.String("user_id", userID.(string)))
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, patterns)
}

// AnalyzePatterns runs the analysis pipeline and returns the reconciled
// pattern set
// POST /api/v1/patterns/analyze
func (h *BehaviorHandler) AnalyzePatterns(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	windowDays, fieldErr := parseWindow(c)
	if fieldErr != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{*fieldErr}))
		return
	}

	patterns, err := h.behaviorService.Analyze(c.Request.Context(), userID.(string), windowDays)
	if err != nil {
		log := logger.Ctx(c.Request.Context())
		log.Error("pattern analysis failed", logger.Err(err), logger.String("user_id", userID.(string)))
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, patterns)
}

// GetForecast trains the regression model and returns next-day metrics
// GET /api/v1/forecast
func (h *BehaviorHandler) GetForecast(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	metric := models.ForecastMetric(c.DefaultQuery("metric", string(models.ForecastActivity)))

	windowDays, fieldErr := parseWindow(c)
	if fieldErr != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{*fieldErr}))
		return
	}

	forecast, err := h.behaviorService.Forecast(c.Request.Context(), userID.(string), metric, windowDays)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrUnknownMetric) {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID,
				err.Error(), "Metric must be one of activity, sleep"))
			return
		}
		log := logger.Ctx(c.Request.Context())
		log.Error("forecast failed",
			logger.Err(err),
			logger.String("metric", string(metric)),
			logger.String("user_id", userID.(string)),
		)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, forecast)
}

// parseWindow reads the optional window query parameter in days. Zero means
// the service default.
func parseWindow(c *gin.Context) (int, *apierror.FieldError) {
	raw := c.Query("window")
	if raw == "" {
		return 0, nil
	}

	windowDays, err := strconv.Atoi(raw)
	if err != nil || windowDays <= 0 {
		return 0, &apierror.FieldError{
			Field:   "window",
			Message: "must be a positive integer number of days",
			Code:    "invalid_format",
		}
	}
	return windowDays, nil
}
