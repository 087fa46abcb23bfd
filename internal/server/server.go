// Package server assembles the gin router from the individual handlers.
package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Debottam1234567890/Scam-Detector/internal/handler"
	"github.com/Debottam1234567890/Scam-Detector/internal/middleware"
	"github.com/Debottam1234567890/Scam-Detector/internal/service"
)

// Deps are the wired components the router exposes.
type Deps struct {
	Predictions *handler.PredictionHandler
	Admin       *handler.AdminHandler
	Auth        *handler.AuthHandler
	AuthService service.AuthService
	Logger      *zap.Logger
}

// NewRouter builds the HTTP surface: the public prediction endpoint, the
// health check and the authenticated operator API.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Public surface.
	router.POST("/predict", deps.Predictions.Predict)
	router.GET("/health", deps.Predictions.Health)

	// Authentication.
	authGroup := router.Group("/api/auth")
	authGroup.POST("/register", deps.Auth.Register)
	authGroup.POST("/login", deps.Auth.Login)

	// Operator API.
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(deps.AuthService.Secret(), deps.Logger))
	{
		api.POST("/retrain", deps.Admin.Retrain)
		api.GET("/predictions", deps.Admin.ListPredictions)
		api.GET("/predictions/stats", deps.Admin.GetStats)
		api.GET("/export/csv", deps.Admin.ExportCSV)
	}

	return router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
