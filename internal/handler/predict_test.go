package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Debottam1234567890/Scam-Detector/internal/features"
	"github.com/Debottam1234567890/Scam-Detector/internal/forest"
	"github.com/Debottam1234567890/Scam-Detector/internal/models"
	"github.com/Debottam1234567890/Scam-Detector/internal/predictor"
	"github.com/Debottam1234567890/Scam-Detector/internal/registry"
)

const scamMessage = "Congratulations! You have won $1,000,000 in our lottery! " +
	"Send $50 processing fee to claim your prize immediately!"

// fakeHistory is an in-memory PredictionRepository for handler tests.
type fakeHistory struct {
	records []*models.PredictionRecord
	failing bool
}

func (f *fakeHistory) Save(rec *models.PredictionRecord) error {
	if f.failing {
		return errors.New("storage down")
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeHistory) Recent(limit int) ([]*models.PredictionRecord, error) {
	if f.failing {
		return nil, errors.New("storage down")
	}
	if limit <= 0 || limit > len(f.records) {
		limit = len(f.records)
	}
	out := make([]*models.PredictionRecord, 0, limit)
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.records[i])
	}
	return out, nil
}

func (f *fakeHistory) Stats() (*models.PredictionStats, error) {
	if f.failing {
		return nil, errors.New("storage down")
	}
	stats := &models.PredictionStats{Total: len(f.records)}
	for _, rec := range f.records {
		if rec.Prediction == predictor.LabelScam {
			stats.Scam++
		}
		stats.AvgConfidence += rec.Confidence
	}
	stats.Benign = stats.Total - stats.Scam
	if stats.Total > 0 {
		stats.AvgConfidence /= float64(stats.Total)
	}
	return stats, nil
}

// readyRegistry serves a model fit on the scenario message so it classifies
// as SCAM.
func readyRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	scam := features.Extract(scamMessage).Slice()
	benign := make([]float64, features.NumCategories)

	var X [][]float64
	var y []int
	for i := 0; i < 10; i++ {
		X = append(X, scam, benign)
		y = append(y, 1, 0)
	}
	model, err := forest.Train(X, y, forest.Options{Trees: 100, Seed: 42})
	require.NoError(t, err)

	reg := registry.New()
	require.NoError(t, reg.BeginLoading())
	require.NoError(t, reg.SetReady(&registry.Snapshot{
		Forest:    model,
		TrainedAt: time.Now(),
		Source:    "trained",
	}))
	return reg
}

func predictRouter(reg *registry.Registry, history *fakeHistory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPredictionHandler(predictor.New(reg, zap.NewNop()), reg, history, zap.NewNop())
	r := gin.New()
	r.POST("/predict", h.Predict)
	r.GET("/health", h.Health)
	return r
}

func postJSON(router *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestPredictEndpoint(t *testing.T) {
	history := &fakeHistory{}
	router := predictRouter(readyRegistry(t), history)

	body, err := json.Marshal(models.PredictRequest{Message: scamMessage})
	require.NoError(t, err)

	w := postJSON(router, "/predict", string(body))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.Equal(t, predictor.LabelScam, resp["prediction"])
	assert.GreaterOrEqual(t, resp["confidence"].(float64), 50.0)
	assert.Len(t, resp["features"].([]any), features.NumCategories)
	assert.Positive(t, resp["message_length"].(float64))

	// The classification was recorded.
	require.Len(t, history.records, 1)
	rec := history.records[0]
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, scamMessage, rec.Message)
	assert.Equal(t, predictor.LabelScam, rec.Prediction)
}

func TestPredictEndpointEmptyMessage(t *testing.T) {
	router := predictRouter(readyRegistry(t), &fakeHistory{})

	for _, body := range []string{`{"message":""}`, `{"message":"   "}`, `{}`} {
		w := postJSON(router, "/predict", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)

		resp := decode(t, w)
		assert.Equal(t, "invalid_input", resp["kind"], "body %s", body)
	}
}

func TestPredictEndpointMalformedJSON(t *testing.T) {
	router := predictRouter(readyRegistry(t), &fakeHistory{})
	w := postJSON(router, "/predict", `{"message":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictEndpointModelUnavailable(t *testing.T) {
	router := predictRouter(registry.New(), &fakeHistory{})

	w := postJSON(router, "/predict", `{"message":"hello there"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "model_unavailable", decode(t, w)["kind"])
}

// History persistence is best-effort: a storage failure must not fail the
// classification.
func TestPredictEndpointHistoryFailure(t *testing.T) {
	router := predictRouter(readyRegistry(t), &fakeHistory{failing: true})

	w := postJSON(router, "/predict", `{"message":"`+scamMessage+`"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := predictRouter(registry.New(), &fakeHistory{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "uninitialized", resp["model_state"])
	assert.Equal(t, false, resp["model_loaded"])
}

func TestHealthEndpointModelLoaded(t *testing.T) {
	router := predictRouter(readyRegistry(t), &fakeHistory{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.Equal(t, "ready", resp["model_state"])
	assert.Equal(t, true, resp["model_loaded"])
	assert.Equal(t, false, resp["degraded"])
	assert.Equal(t, "trained", resp["model_source"])
}
