package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/maternal-risk-mcp-server/internal/domain"
	"github.com/maternal-risk-mcp-server/internal/middleware"
)

const serverVersion = "1.0.0"

// Server represents the HTTP server
type Server struct {
	logger        *logrus.Logger
	configManager domain.ConfigManager
	predictor     domain.RiskPredictor
	translator    domain.Translator
	router        *gin.Engine
	server        *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(
	logger *logrus.Logger,
	configManager domain.ConfigManager,
	predictor domain.RiskPredictor,
	translator domain.Translator,
) *Server {
	cfg := configManager.GetConfig()

	// Set Gin mode based on environment
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.AuditLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS())
	router.Use(middleware.CorrelationID())

	server := &Server{
		logger:        logger,
		configManager: configManager,
		predictor:     predictor,
		translator:    translator,
		router:        router,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// Start starts the HTTP server and blocks until the context is cancelled,
// then drains connections gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleRoot)

	api := s.router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/model-info", s.handleModelInfo)
		api.POST("/predict", s.handlePredict)
		api.GET("/example-profiles", s.handleExampleProfiles)
		api.GET("/languages", s.handleLanguages)
		api.POST("/translate", s.handleTranslate)
	}
}

// predictRequest is a patient observation plus an optional response
// language.
type predictRequest struct {
	domain.PatientObservation
	Language string `json:"language"`
}

// predictResponse echoes the validated observation alongside the
// prediction.
type predictResponse struct {
	domain.Prediction
	PatientProfile *domain.PatientObservation `json:"patient_profile"`
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language"`
}

// handleRoot returns the service banner
func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Maternal Health Risk Prediction API",
		"status":  "running",
		"version": serverVersion,
	})
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	info, err := s.predictor.ModelInfo()
	modelLoaded := err == nil

	status := "healthy"
	if !modelLoaded {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         status,
		"model_loaded":   modelLoaded,
		"features_count": len(info.Features),
	})
}

// handleModelInfo returns metadata about the loaded model
func (s *Server) handleModelInfo(c *gin.Context) {
	info, err := s.predictor.ModelInfo()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "prediction model is not available"})
		return
	}

	c.JSON(http.StatusOK, info)
}

// handlePredict runs a risk assessment for the posted observation
func (s *Server) handlePredict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	prediction, err := s.predictor.Predict(c.Request.Context(), &req.PatientObservation)
	if err != nil {
		s.respondPredictionError(c, err)
		return
	}

	// Localize the narrative surfaces when a language is requested. A
	// missing translator or a failed translation leaves the English text.
	if req.Language != "" && req.Language != "en" && s.translator != nil && s.translator.IsAvailable() {
		prediction = s.translator.TranslatePrediction(c.Request.Context(), prediction, req.Language)
	}

	c.JSON(http.StatusOK, predictResponse{
		Prediction:     *prediction,
		PatientProfile: &req.PatientObservation,
	})
}

// handleExampleProfiles returns the fixed demonstration patients
func (s *Server) handleExampleProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"examples": domain.ExampleProfiles()})
}

// handleLanguages lists the languages predictions can be localized into
func (s *Server) handleLanguages(c *gin.Context) {
	languages := []domain.Language{}
	if s.translator != nil {
		languages = s.translator.SupportedLanguages()
	}

	c.JSON(http.StatusOK, gin.H{"languages": languages})
}

// handleTranslate translates a single text
func (s *Server) handleTranslate(c *gin.Context) {
	if s.translator == nil || !s.translator.IsAvailable() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "translation service is not configured"})
		return
	}

	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if req.Text == "" || req.TargetLanguage == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text and target_language are required"})
		return
	}
	if req.SourceLanguage == "" {
		req.SourceLanguage = "en"
	}

	supported := false
	for _, language := range s.translator.SupportedLanguages() {
		if language.Code == req.TargetLanguage {
			supported = true
			break
		}
	}
	if !supported {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported language: %s", req.TargetLanguage)})
		return
	}

	translated, err := s.translator.TranslateText(c.Request.Context(), req.Text, req.TargetLanguage, req.SourceLanguage)
	if err != nil {
		s.logger.WithError(err).WithField("language", req.TargetLanguage).Error("Translation request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "translation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"translated_text": translated,
		"target_language": req.TargetLanguage,
	})
}

// respondPredictionError maps prediction errors onto HTTP statuses
func (s *Server) respondPredictionError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
	case errors.Is(err, domain.ErrModelUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "prediction model is not available"})
	default:
		s.logger.WithError(err).Error("Risk prediction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
