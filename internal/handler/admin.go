package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Debottam1234567890/Scam-Detector/internal/repository"
	"github.com/Debottam1234567890/Scam-Detector/internal/trainer"
)

// AdminHandler serves the authenticated operator API: retraining and the
// stored prediction history.
type AdminHandler struct {
	manager *trainer.Manager
	history repository.PredictionRepository
	logger  *zap.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(manager *trainer.Manager, history repository.PredictionRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		manager: manager,
		history: history,
		logger:  logger,
	}
}

// Retrain refits the model from the dataset file and swaps it in atomically.
// A failed retrain leaves the previous model serving.
// POST /api/retrain
func (h *AdminHandler) Retrain(c *gin.Context) {
	report, err := h.manager.Retrain()
	if err != nil {
		if errors.Is(err, trainer.ErrNoDataset) {
			c.JSON(http.StatusConflict, gin.H{"error": "Training dataset unavailable, previous model kept"})
			return
		}
		h.logger.Error("Retraining failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Retraining failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Model retrained successfully",
		"report":  report,
	})
}

// ListPredictions returns recent stored classifications.
// GET /api/predictions?limit=
func (h *AdminHandler) ListPredictions(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	records, err := h.history.Recent(limit)
	if err != nil {
		h.logger.Error("Failed to get prediction history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch predictions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"predictions": records,
		"count":       len(records),
	})
}

// GetStats summarizes the stored history.
// GET /api/predictions/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.history.Stats()
	if err != nil {
		h.logger.Error("Failed to get prediction stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportCSV exports the prediction history as CSV.
// GET /api/export/csv
func (h *AdminHandler) ExportCSV(c *gin.Context) {
	records, err := h.history.Recent(0)
	if err != nil {
		h.logger.Error("Failed to export predictions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=predictions.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"id", "message", "prediction", "confidence", "message_length", "created_at"})
	for _, rec := range records {
		writer.Write([]string{
			rec.ID,
			rec.Message,
			rec.Prediction,
			fmt.Sprintf("%.1f", rec.Confidence),
			strconv.Itoa(rec.MessageLength),
			rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
}
