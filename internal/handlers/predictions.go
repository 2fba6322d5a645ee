package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifelens/backend/internal/apierror"
	"github.com/lifelens/backend/internal/logger"
	"github.com/lifelens/backend/internal/models"
	"github.com/lifelens/backend/internal/service"
)

// PredictionHandler handles prediction HTTP requests
type PredictionHandler struct {
	predictionService service.PredictionService
	behaviorService   service.BehaviorService
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionService service.PredictionService, behaviorService service.BehaviorService) *PredictionHandler {
	return &PredictionHandler{
		predictionService: predictionService,
		behaviorService:   behaviorService,
	}
}

// GetPredictions returns stored predictions, optionally filtered by type
// GET /api/v1/predictions
func (h *PredictionHandler) GetPredictions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	predictionType := models.PredictionType(c.Query("type"))

	predictions, err := h.predictionService.GetPredictions(c.Request.Context(), userID.(string), predictionType)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrUnknownPredictionType) {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID,
				err.Error(), "Unknown prediction type"))
			return
		}
		log := logger.Ctx(c.Request.Context())
		log.Error("failed to get predictions", logger.Err(err), logger.String("user_id", userID.(string)))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, predictions)
}

// GeneratePredictions runs prediction generation from stored patterns,
// analyzing on demand when none exist yet
// POST /api/v1/predictions/generate
func (h *PredictionHandler) GeneratePredictions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	predictions, err := h.behaviorService.Predict(c.Request.Context(), userID.(string))
	if err != nil {
		log := logger.Ctx(c.Request.Context())
		log.Error("prediction generation failed", logger.Err(err), logger.String("user_id", userID.(string)))
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, predictions)
}

// ConfirmPrediction marks a prediction as confirmed by the user
// POST /api/v1/predictions/:id/confirm
func (h *PredictionHandler) ConfirmPrediction(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	predictionID := c.Param("id")

	prediction, err := h.predictionService.ConfirmPrediction(c.Request.Context(), userID.(string), predictionID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrPredictionNotOwned) {
			// Not distinguishing "someone else's" from "nonexistent"
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "prediction", predictionID))
			return
		}
		log := logger.Ctx(c.Request.Context())
		log.Error("failed to confirm prediction",
			logger.Err(err),
			logger.String("prediction_id", predictionID),
			logger.String("user_id", userID.(string)),
		)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, prediction)
}
