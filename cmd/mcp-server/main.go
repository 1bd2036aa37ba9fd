// Package main provides the MCP stdio entry point for the maternal risk
// predictor. Logs go to stderr; stdout carries the protocol.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/maternal-risk-mcp-server/internal/config"
	"github.com/maternal-risk-mcp-server/internal/domain"
	"github.com/maternal-risk-mcp-server/internal/mcp"
	"github.com/maternal-risk-mcp-server/internal/service"
	"github.com/maternal-risk-mcp-server/internal/setup"
)

func main() {
	// Check for setup subcommand
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		cli := setup.NewCLI()
		if err := cli.Run(os.Args[2:]); err != nil {
			log.Fatalf("Setup failed: %v", err)
		}
		return
	}

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

	// Fit the scoring model before serving tools.
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

	// Create MCP server
	mcpServer := mcp.NewServer(predictor, mcp.WithLogger(logger))

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutdown signal received, gracefully shutting down MCP server...")
		cancel()
	}()

	// Start MCP server
	if err := mcpServer.Start(ctx); err != nil {
		log.Fatalf("MCP server failed to start: %v", err)
	}

	log.Println("Maternal Risk MCP Server stopped")
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
