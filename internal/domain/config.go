package domain

import (
	"time"
)

// Config represents the main application configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Model       ModelConfig       `mapstructure:"model"`
	Translation TranslationConfig `mapstructure:"translation"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// MinTrainingSamples is the smallest corpus a model may be fitted on.
const MinTrainingSamples = 500

// ModelConfig controls synthetic corpus generation and model fitting.
// The seed pins the whole pipeline: identical config trains identical
// weights, bit for bit.
type ModelConfig struct {
	Seed            int64   `mapstructure:"seed"`
	Samples         int     `mapstructure:"samples"`
	LearningRate    float64 `mapstructure:"learning_rate"`
	Epochs          int     `mapstructure:"epochs"`
	BatchSize       int     `mapstructure:"batch_size"`
	ValidationSplit float64 `mapstructure:"validation_split"`
	MinAccuracy     float64 `mapstructure:"min_accuracy"`
}

// TranslationConfig represents the Gemini translation collaborator
// configuration. An empty APIKey disables translation.
type TranslationConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	RateLimit int           `mapstructure:"rate_limit"`
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheSize int           `mapstructure:"cache_size"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
