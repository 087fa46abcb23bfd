package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Debottam1234567890/Scam-Detector/internal/forest"
	"github.com/Debottam1234567890/Scam-Detector/internal/handler"
	"github.com/Debottam1234567890/Scam-Detector/internal/predictor"
	"github.com/Debottam1234567890/Scam-Detector/internal/registry"
	"github.com/Debottam1234567890/Scam-Detector/internal/repository"
	"github.com/Debottam1234567890/Scam-Detector/internal/service"
	"github.com/Debottam1234567890/Scam-Detector/internal/trainer"
)

const testCorpusCSV = `message,tag
"URGENT: act now to recieve your lottery prize from Elon Musk, send money for the processing fee via WhatsApp, official government notice, click here",scam
"Congratulations! You win the jackpot, wire the registration fee immediately, contact me on telegram, verification by the IRS, Bill Gates, definately open link, last chance",scam
"Final notice from the FBI: pay upfront now, claim prize, message me on viber, Taylor Swift seperated, http://bit.ly, hurry, western union transfer",scam
"Hi, this is John from the office. Can you call me back when you get this message?",legit
"The meeting moved to three pm tomorrow.",legit
"Thanks for lunch, see you next week.",legit
`

// testRouter wires the whole HTTP surface against temp storage, the way
// cmd/server does.
func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	dir := t.TempDir()

	datasetPath := filepath.Join(dir, "labeled_dataset.csv")
	require.NoError(t, os.WriteFile(datasetPath, []byte(testCorpusCSV), 0o644))

	logger := zap.NewNop()
	db, err := repository.NewSQLiteDB(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	reg := registry.New()
	manager := trainer.NewManager(reg, filepath.Join(dir, "model.json"), datasetPath,
		forest.Options{Trees: 10, Seed: 42}, logger)
	require.NoError(t, manager.Bootstrap())

	authService := service.NewAuthService(repository.NewAuthRepository(db, logger),
		"test-secret", time.Hour, logger)

	gin.SetMode(gin.TestMode)
	return NewRouter(Deps{
		Predictions: handler.NewPredictionHandler(predictor.New(reg, logger), reg,
			repository.NewPredictionRepository(db, logger), logger),
		Admin:       handler.NewAdminHandler(manager, repository.NewPredictionRepository(db, logger), logger),
		Auth:        handler.NewAuthHandler(authService, logger),
		AuthService: authService,
		Logger:      logger,
	})
}

func do(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPublicSurface(t *testing.T) {
	router := testRouter(t)

	w := do(router, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodPost, "/predict",
		`{"message":"URGENT: send money for the processing fee now, you win the lottery, click here"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"prediction"`)
}

func TestOperatorAPIRequiresAuth(t *testing.T) {
	router := testRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/retrain"},
		{http.MethodGet, "/api/predictions"},
		{http.MethodGet, "/api/predictions/stats"},
		{http.MethodGet, "/api/export/csv"},
	} {
		w := do(router, tc.method, tc.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRegisterLoginRetrainFlow(t *testing.T) {
	router := testRouter(t)

	w := do(router, http.MethodPost, "/api/auth/register",
		`{"username":"alice","password":"longenough1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(router, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"longenough1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	w = do(router, http.MethodPost, "/api/retrain", "", login.Token)
	assert.Equal(t, http.StatusOK, w.Code)

	// Prediction history is visible to the operator.
	w = do(router, http.MethodPost, "/predict",
		`{"message":"wire the processing fee now to claim your prize"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/api/predictions", "", login.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wire the processing fee")
}

func TestCORSPreflight(t *testing.T) {
	router := testRouter(t)

	w := do(router, http.MethodOptions, "/predict", "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
