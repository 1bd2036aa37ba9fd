package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/maternal-risk-mcp-server/internal/api"
	"github.com/maternal-risk-mcp-server/internal/config"
	"github.com/maternal-risk-mcp-server/internal/domain"
	"github.com/maternal-risk-mcp-server/internal/service"
	"github.com/maternal-risk-mcp-server/pkg/external"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := newLogger(&cfg.Logging)

	// Fit the scoring model before serving. A model that fails its fit
	// gates must never serve; refusing to start is the correct failure.
	encoder := service.NewFeatureEncoder()
	trainer := service.NewTrainer(logger, encoder)
	model, err := trainer.Train(*configManager.GetModelConfig())
	if err != nil {
		log.Fatalf("Model training failed: %v", err)
	}

	predictor := service.NewPredictorService(
		logger,
		encoder,
		service.NewFactorAttributor(logger),
		service.NewRecommendationGenerator(logger),
		model,
	)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	translator := newTranslator(ctx, configManager, logger)

	log.Printf("Starting Maternal Risk server on %s:%d", cfg.Server.Host, cfg.Server.Port)

	server := api.NewServer(logger, configManager, predictor, translator)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	// Start server
	if err := server.Start(ctx); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}

	log.Println("Server stopped")
}

// newLogger builds the application logger from the logging section.
func newLogger(cfg *domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

// newTranslator wires the optional Gemini-backed translation service. A
// missing API key or a failed client setup disables translation without
// taking the server down.
func newTranslator(ctx context.Context, configManager domain.ConfigManager, logger *logrus.Logger) domain.Translator {
	tcfg := configManager.GetTranslationConfig()

	var generator external.TextGenerator
	if tcfg.APIKey != "" {
		client, err := external.NewGeminiClient(ctx, external.GeminiConfig{
			APIKey:    tcfg.APIKey,
			Model:     tcfg.Model,
			Timeout:   tcfg.Timeout,
			RateLimit: tcfg.RateLimit,
		}, logger)
		if err != nil {
			logger.WithError(err).Warn("Gemini client initialization failed, translation disabled")
		} else {
			generator = client
		}
	}

	translator, err := external.NewTranslationService(generator, tcfg.CacheSize, logger)
	if err != nil {
		logger.WithError(err).Warn("Translation service initialization failed, translation disabled")
		return nil
	}

	return translator
}
