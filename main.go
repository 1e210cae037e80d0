package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"backend/internal/analytics"
	"backend/internal/config"
	"backend/internal/groq_client"
	"backend/internal/handler"
	"backend/internal/repository"
	"backend/internal/server"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	log := logrus.New()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Initialize repository
	analyticsRepo := repository.NewAnalyticsRepository(db, logger)

	// Initialize Groq client for pain-point classification
	groqClient := groq_client.NewClient(cfg.Groq.URL, cfg.Groq.APIKey, cfg.Groq.Model)

	// Lexicon sentiment scorer (local, no network calls)
	scorer := analytics.NewVaderScorer()

	// Initialize analytics service and handlers
	analyticsService := analytics.NewAnalyticsService(analyticsRepo, groqClient, scorer, logger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, logger)
	healthHandler := handler.NewHealthHandler(analyticsRepo, logger)

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize and run the server
	srv := server.NewServer(cfg, analyticsHandler, healthHandler, logger, log)
	go srv.Run(cfg.Server.Port)

	<-ctx.Done()
	logger.Info("Application stopped.")
}
