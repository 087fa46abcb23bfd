// Package predictor runs one message through feature extraction and the
// current model snapshot to produce a classification result.
package predictor

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Debottam1234567890/Scam-Detector/internal/features"
	"github.com/Debottam1234567890/Scam-Detector/internal/models"
	"github.com/Debottam1234567890/Scam-Detector/internal/registry"
)

// Error kinds surfaced to callers. Each maps to a distinct status at the
// HTTP boundary, and none carries internal detail.
var (
	// ErrInvalidInput rejects an empty or blank message before extraction.
	ErrInvalidInput = errors.New("predictor: no message provided")
	// ErrModelUnavailable means no model snapshot is serving yet.
	ErrModelUnavailable = errors.New("predictor: model not available")
	// ErrCompute wraps an unexpected classifier failure.
	ErrCompute = errors.New("predictor: classification failed")
)

// Labels in the binary taxonomy.
const (
	LabelScam    = "SCAM"
	LabelNotScam = "NOT SCAM"
)

// Predictor classifies individual messages against the registry's current
// snapshot. It holds no state of its own and is safe for concurrent use.
type Predictor struct {
	reg    *registry.Registry
	logger *zap.Logger
}

func New(reg *registry.Registry, logger *zap.Logger) *Predictor {
	return &Predictor{reg: reg, logger: logger}
}

// Predict classifies one message. The message must be non-blank and a model
// must be serving; violations return ErrInvalidInput and ErrModelUnavailable
// respectively, both checked before any computation.
func (p *Predictor) Predict(message string) (*models.Classification, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrInvalidInput
	}

	snap, ok := p.reg.Snapshot()
	if !ok {
		return nil, ErrModelUnavailable
	}

	vec := features.Extract(message)

	result, err := p.classify(snap, vec)
	if err != nil {
		p.logger.Error("Classifier failure", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCompute, err)
	}

	result.Features = vec.Slice()
	result.MessageLength = utf8.RuneCountInString(message)
	return result, nil
}

// classify isolates the model calls so an unexpected panic inside the
// classifier surfaces as ErrCompute instead of killing the request worker.
func (p *Predictor) classify(snap *registry.Snapshot, vec features.Vector) (result *models.Classification, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	label, err := snap.Forest.Predict(vec[:])
	if err != nil {
		return nil, err
	}
	proba, err := snap.Forest.PredictProba(vec[:])
	if err != nil {
		return nil, err
	}

	maxProba := 0.0
	for _, pr := range proba {
		if pr > maxProba {
			maxProba = pr
		}
	}

	prediction := LabelNotScam
	if label == 1 {
		prediction = LabelScam
	}

	return &models.Classification{
		Prediction: prediction,
		Confidence: math.Round(maxProba*1000) / 10,
	}, nil
}
