package repository

import (
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Debottam1234567890/Scam-Detector/internal/models"
)

// PredictionRepository handles storage of classification results.
type PredictionRepository interface {
	Save(rec *models.PredictionRecord) error
	Recent(limit int) ([]*models.PredictionRecord, error)
	Stats() (*models.PredictionStats, error)
}

type predictionRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewPredictionRepository creates a new prediction history repository.
func NewPredictionRepository(db *sqlx.DB, logger *zap.Logger) PredictionRepository {
	return &predictionRepository{db: db, logger: logger}
}

// Save stores one classification result.
func (r *predictionRepository) Save(rec *models.PredictionRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.NamedExec(`
		INSERT INTO predictions (id, message, prediction, confidence, message_length, created_at)
		VALUES (:id, :message, :prediction, :confidence, :message_length, :created_at)
	`, rec)
	return err
}

// Recent returns the newest records, most recent first.
func (r *predictionRepository) Recent(limit int) ([]*models.PredictionRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var records []*models.PredictionRecord
	err := r.db.Select(&records, `
		SELECT id, message, prediction, confidence, message_length, created_at
		FROM predictions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	return records, err
}

// Stats summarizes the stored history.
func (r *predictionRepository) Stats() (*models.PredictionStats, error) {
	stats := &models.PredictionStats{}

	err := r.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN prediction = 'SCAM' THEN 1 ELSE 0 END), 0),
		       COALESCE(AVG(confidence), 0)
		FROM predictions
	`).Scan(&stats.Total, &stats.Scam, &stats.AvgConfidence)
	if err != nil {
		return nil, err
	}

	stats.Benign = stats.Total - stats.Scam
	return stats, nil
}
