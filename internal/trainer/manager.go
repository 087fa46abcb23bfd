package trainer

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Debottam1234567890/Scam-Detector/internal/dataset"
	"github.com/Debottam1234567890/Scam-Detector/internal/features"
	"github.com/Debottam1234567890/Scam-Detector/internal/forest"
	"github.com/Debottam1234567890/Scam-Detector/internal/registry"
)

// Snapshot sources recorded in the registry and surfaced by /health.
const (
	SourceArtifact = "artifact"
	SourceTrained  = "trained"
	SourceFallback = "fallback"
)

// ErrNoDataset is returned by Retrain when the corpus cannot be used; the
// previous model stays in service.
var ErrNoDataset = errors.New("trainer: dataset unavailable for retraining")

// Manager coordinates the model lifecycle against the registry: the startup
// bootstrap and explicit retrains. Training never runs concurrently with
// itself; the registry transitions enforce that.
type Manager struct {
	reg         *registry.Registry
	modelPath   string
	datasetPath string
	opts        forest.Options
	logger      *zap.Logger
}

// NewManager creates a lifecycle manager for the given artifact and corpus
// paths.
func NewManager(reg *registry.Registry, modelPath, datasetPath string, opts forest.Options, logger *zap.Logger) *Manager {
	return &Manager{
		reg:         reg,
		modelPath:   modelPath,
		datasetPath: datasetPath,
		opts:        opts,
		logger:      logger,
	}
}

// Bootstrap brings the registry from Uninitialized to Ready. Each named
// condition maps to its own policy:
//
//	artifact present        -> load it
//	artifact absent         -> train from the dataset file
//	artifact corrupt        -> warn, retrain from the dataset file
//	dataset absent/empty/unreadable -> degraded single-example fallback
//
// The fallback keeps the predictor callable but is flagged Degraded so
// health checks can tell it apart from a properly trained model.
func (m *Manager) Bootstrap() error {
	if err := m.reg.BeginLoading(); err != nil {
		return err
	}

	snap, err := m.buildSnapshot()
	if err != nil {
		m.reg.Fail()
		return err
	}
	return m.reg.SetReady(snap)
}

func (m *Manager) buildSnapshot() (*registry.Snapshot, error) {
	model, err := forest.Load(m.modelPath)
	if err == nil {
		m.logger.Info("Loaded existing model artifact",
			zap.String("path", m.modelPath),
			zap.Int("trees", len(model.Trees)))
		return &registry.Snapshot{
			Forest:    model,
			TrainedAt: time.Now(),
			Source:    SourceArtifact,
		}, nil
	}
	switch {
	case errors.Is(err, forest.ErrArtifactNotFound):
		m.logger.Info("No model artifact found, training from dataset", zap.String("path", m.modelPath))
	case errors.Is(err, forest.ErrArtifactCorrupt):
		m.logger.Warn("Model artifact unreadable, retraining from dataset",
			zap.String("path", m.modelPath), zap.Error(err))
	default:
		return nil, err
	}

	model, report, err := m.trainFromDataset()
	if err == nil {
		m.logReport(report)
		return &registry.Snapshot{
			Forest:    model,
			TrainedAt: time.Now(),
			Source:    SourceTrained,
		}, nil
	}

	m.logger.Warn("Training data unavailable, fitting degraded placeholder model",
		zap.String("dataset", m.datasetPath),
		zap.Error(err))
	model, err = m.fallbackModel()
	if err != nil {
		return nil, err
	}
	return &registry.Snapshot{
		Forest:    model,
		TrainedAt: time.Now(),
		Degraded:  true,
		Source:    SourceFallback,
	}, nil
}

// Retrain fits a new model from the dataset file and atomically swaps it in.
// Requests in flight keep reading the previous snapshot until the swap. A
// retrain with no usable dataset keeps the old model and reports the error;
// it never downgrades a trained model to the fallback.
func (m *Manager) Retrain() (Report, error) {
	if err := m.reg.BeginRetraining(); err != nil {
		return Report{}, err
	}

	model, report, err := m.trainFromDataset()
	if err != nil {
		if abortErr := m.reg.AbortRetraining(); abortErr != nil {
			m.logger.Error("Failed to restore registry state after retrain failure", zap.Error(abortErr))
		}
		return Report{}, errors.Join(ErrNoDataset, err)
	}

	m.logReport(report)
	if err := m.reg.SetReady(&registry.Snapshot{
		Forest:    model,
		TrainedAt: time.Now(),
		Source:    SourceTrained,
	}); err != nil {
		return Report{}, err
	}
	return report, nil
}

func (m *Manager) trainFromDataset() (*forest.Forest, Report, error) {
	examples, err := dataset.Load(m.datasetPath)
	if err != nil {
		return nil, Report{}, err
	}

	model, report, err := Train(examples, m.opts)
	if err != nil {
		return nil, Report{}, err
	}

	if err := model.Save(m.modelPath); err != nil {
		// A model that trained but failed to persist still serves; the
		// next startup will just retrain.
		m.logger.Warn("Failed to persist model artifact", zap.String("path", m.modelPath), zap.Error(err))
	}
	return model, report, nil
}

// fallbackModel fits the minimal placeholder: one benign synthetic example,
// so every prediction comes back NOT SCAM until real data arrives.
func (m *Manager) fallbackModel() (*forest.Forest, error) {
	x := make([]float64, features.NumCategories)
	x[0], x[1] = 0.1, 0.2
	return forest.Train([][]float64{x}, []int{0}, m.opts)
}

func (m *Manager) logReport(r Report) {
	m.logger.Info("Classification report",
		zap.Float64("accuracy", r.Accuracy),
		zap.Int("train_size", r.TrainSize),
		zap.Int("test_size", r.TestSize),
		zap.Float64("benign_precision", r.Classes[0].Precision),
		zap.Float64("benign_recall", r.Classes[0].Recall),
		zap.Float64("benign_f1", r.Classes[0].F1),
		zap.Float64("scam_precision", r.Classes[1].Precision),
		zap.Float64("scam_recall", r.Classes[1].Recall),
		zap.Float64("scam_f1", r.Classes[1].F1))
}
