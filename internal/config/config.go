package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/maternal-risk-mcp-server/internal/domain"
)

// Manager implements the ConfigManager interface using Viper
type Manager struct {
	config *domain.Config
}

// NewManager creates a new configuration manager
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	// Set configuration file name and paths
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/maternal-risk-mcp-server/")

	// Set environment variable prefix and enable automatic env binding
	viper.SetEnvPrefix("MATERNAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// The Gemini key is also accepted under its conventional unprefixed name
	_ = viper.BindEnv("translation.api_key", "MATERNAL_TRANSLATION_API_KEY", "GEMINI_API_KEY")

	// Set default values
	m.setDefaults()

	// Read configuration file (optional - will use defaults and env vars if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using defaults and environment variables
	}

	// Unmarshal configuration into struct
	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Model training defaults
	viper.SetDefault("model.seed", 42)
	viper.SetDefault("model.samples", 1000)
	viper.SetDefault("model.learning_rate", 0.05)
	viper.SetDefault("model.epochs", 600)
	viper.SetDefault("model.batch_size", 32)
	viper.SetDefault("model.validation_split", 0.2)
	viper.SetDefault("model.min_accuracy", 0.70)

	// Translation defaults
	viper.SetDefault("translation.api_key", "")
	viper.SetDefault("translation.model", "gemini-2.5-flash")
	viper.SetDefault("translation.rate_limit", 5)
	viper.SetDefault("translation.timeout", "30s")
	viper.SetDefault("translation.cache_size", 500)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetServerConfig returns server configuration
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// GetModelConfig returns model training configuration
func (m *Manager) GetModelConfig() *domain.ModelConfig {
	return &m.config.Model
}

// GetTranslationConfig returns translation configuration
func (m *Manager) GetTranslationConfig() *domain.TranslationConfig {
	return &m.config.Translation
}

// GetLoggingConfig returns logging configuration
func (m *Manager) GetLoggingConfig() *domain.LoggingConfig {
	return &m.config.Logging
}

// Reload reloads the configuration
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	// Validate server configuration
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	// Validate model training configuration
	if config.Model.Samples < domain.MinTrainingSamples {
		return fmt.Errorf("model.samples must be at least %d, got %d", domain.MinTrainingSamples, config.Model.Samples)
	}
	if config.Model.Epochs <= 0 {
		return fmt.Errorf("model.epochs must be positive, got %d", config.Model.Epochs)
	}
	if config.Model.BatchSize <= 0 {
		return fmt.Errorf("model.batch_size must be positive, got %d", config.Model.BatchSize)
	}
	if config.Model.LearningRate <= 0 {
		return fmt.Errorf("model.learning_rate must be positive, got %g", config.Model.LearningRate)
	}
	if config.Model.ValidationSplit <= 0 || config.Model.ValidationSplit > 0.5 {
		return fmt.Errorf("model.validation_split must be in (0, 0.5], got %g", config.Model.ValidationSplit)
	}
	if config.Model.MinAccuracy < 0 || config.Model.MinAccuracy > 1 {
		return fmt.Errorf("model.min_accuracy must be in [0, 1], got %g", config.Model.MinAccuracy)
	}

	// Validate translation configuration
	if config.Translation.RateLimit <= 0 {
		return fmt.Errorf("translation.rate_limit must be positive, got %d", config.Translation.RateLimit)
	}
	if config.Translation.CacheSize <= 0 {
		return fmt.Errorf("translation.cache_size must be positive, got %d", config.Translation.CacheSize)
	}

	// Validate logging configuration
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// IsProduction returns true if running in production mode
func (m *Manager) IsProduction() bool {
	return strings.ToLower(viper.GetString("environment")) == "production"
}

// IsDevelopment returns true if running in development mode
func (m *Manager) IsDevelopment() bool {
	env := strings.ToLower(viper.GetString("environment"))
	return env == "development" || env == "dev" || env == ""
}
