package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Debottam1234567890/Scam-Detector/internal/models"
	"github.com/Debottam1234567890/Scam-Detector/internal/predictor"
	"github.com/Debottam1234567890/Scam-Detector/internal/registry"
	"github.com/Debottam1234567890/Scam-Detector/internal/repository"
)

// PredictionHandler serves inference and health requests.
type PredictionHandler struct {
	predictor *predictor.Predictor
	reg       *registry.Registry
	history   repository.PredictionRepository
	logger    *zap.Logger
}

// NewPredictionHandler creates a new prediction handler. history may be nil
// when the service runs without a database.
func NewPredictionHandler(p *predictor.Predictor, reg *registry.Registry, history repository.PredictionRepository, logger *zap.Logger) *PredictionHandler {
	return &PredictionHandler{
		predictor: p,
		reg:       reg,
		history:   history,
		logger:    logger,
	}
}

// Predict classifies a single message.
// POST /predict
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req models.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No message provided"})
		return
	}

	result, err := h.predictor.Predict(req.Message)
	if err != nil {
		h.writePredictError(c, err)
		return
	}

	if h.history != nil {
		rec := &models.PredictionRecord{
			ID:            uuid.NewString(),
			Message:       req.Message,
			Prediction:    result.Prediction,
			Confidence:    result.Confidence,
			MessageLength: result.MessageLength,
		}
		if err := h.history.Save(rec); err != nil {
			// History is best-effort; the classification still succeeded.
			h.logger.Warn("Failed to store prediction record", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, result)
}

// writePredictError maps each predictor error kind to its own status. The
// body carries the kind and a human-readable message, never internals.
func (h *PredictionHandler) writePredictError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, predictor.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No message provided",
			"kind":  "invalid_input",
		})
	case errors.Is(err, predictor.ErrModelUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Model not available",
			"kind":  "model_unavailable",
		})
	default:
		h.logger.Error("Prediction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Error processing request",
			"kind":  "compute_error",
		})
	}
}

// Health reports whether a model is serving and whether it is the degraded
// fallback rather than a properly trained one.
// GET /health
func (h *PredictionHandler) Health(c *gin.Context) {
	state := h.reg.State()
	resp := gin.H{
		"status":       "healthy",
		"model_state":  state.String(),
		"model_loaded": false,
		"degraded":     false,
	}

	if snap, ok := h.reg.Snapshot(); ok {
		resp["model_loaded"] = true
		resp["degraded"] = snap.Degraded
		resp["model_source"] = snap.Source
		resp["trained_at"] = snap.TrainedAt
	}

	c.JSON(http.StatusOK, resp)
}
