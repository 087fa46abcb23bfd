package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Debottam1234567890/Scam-Detector/internal/models"
)

var testSecret = []byte("test-secret")

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(testSecret, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username": c.GetString("username"),
			"role":     c.GetString("role"),
		})
	})
	return r
}

func signToken(t *testing.T, secret []byte, expiresAt time.Time) string {
	t.Helper()
	claims := &models.Claims{
		Username: "alice",
		Role:     "operator",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func get(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	router := protectedRouter()
	token := signToken(t, testSecret, time.Now().Add(time.Hour))

	w := get(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.Contains(t, w.Body.String(), `"role":"operator"`)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	w := get(protectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBadFormat(t *testing.T) {
	router := protectedRouter()
	token := signToken(t, testSecret, time.Now().Add(time.Hour))

	for _, header := range []string{token, "Basic " + token, "Bearer"} {
		w := get(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	router := protectedRouter()
	token := signToken(t, testSecret, time.Now().Add(-time.Hour))

	w := get(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	router := protectedRouter()
	token := signToken(t, []byte("other-secret"), time.Now().Add(time.Hour))

	w := get(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareWrongSigningMethod(t *testing.T) {
	router := protectedRouter()

	// alg=none style tokens must be rejected by the HMAC method check.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &models.Claims{Username: "alice"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	w := get(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
