package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Debottam1234567890/Scam-Detector/internal/config"
	"github.com/Debottam1234567890/Scam-Detector/internal/forest"
	"github.com/Debottam1234567890/Scam-Detector/internal/handler"
	"github.com/Debottam1234567890/Scam-Detector/internal/predictor"
	"github.com/Debottam1234567890/Scam-Detector/internal/registry"
	"github.com/Debottam1234567890/Scam-Detector/internal/repository"
	"github.com/Debottam1234567890/Scam-Detector/internal/server"
	"github.com/Debottam1234567890/Scam-Detector/internal/service"
	"github.com/Debottam1234567890/Scam-Detector/internal/trainer"
)

func main() {
	configPath := flag.String("config", "configs/config.yml", "path to the YAML configuration file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("Starting Scam Detector service...")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if cfg.Auth.JWTSecret == "" {
		logger.Fatal("auth.jwt_secret is not configured")
	}

	// Database connection
	db, err := repository.NewSQLiteDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	historyRepo := repository.NewPredictionRepository(db, logger)
	authRepo := repository.NewAuthRepository(db, logger)

	// Model lifecycle: registry holds the served snapshot, the manager
	// bootstraps and retrains it.
	reg := registry.New()
	manager := trainer.NewManager(reg, cfg.Model.Path, cfg.Model.Dataset, forest.Options{
		Trees: cfg.Model.Trees,
		Seed:  cfg.Model.Seed,
	}, logger)

	// Load or train in the background so /health answers during Loading;
	// /predict returns 503 until the registry is Ready.
	go func() {
		if err := manager.Bootstrap(); err != nil {
			logger.Error("Model bootstrap failed", zap.Error(err))
			return
		}
		if snap, ok := reg.Snapshot(); ok {
			logger.Info("Model ready",
				zap.String("source", snap.Source),
				zap.Bool("degraded", snap.Degraded))
		}
	}()

	// HTTP surface
	authService := service.NewAuthService(authRepo, cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour, logger)
	pred := predictor.New(reg, logger)

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(server.Deps{
		Predictions: handler.NewPredictionHandler(pred, reg, historyRepo, logger),
		Admin:       handler.NewAdminHandler(manager, historyRepo, logger),
		Auth:        handler.NewAuthHandler(authService, logger),
		AuthService: authService,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
