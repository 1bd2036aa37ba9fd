package domain

import (
	"context"
)

// RiskPredictor scores validated patient observations and exposes the
// loaded model's metadata.
type RiskPredictor interface {
	Predict(ctx context.Context, obs *PatientObservation) (*Prediction, error)
	ModelInfo() (ModelInfo, error)
}

// Translator localizes prediction narratives. Implementations must degrade
// gracefully: translation failures return the original text, never an
// unusable prediction.
type Translator interface {
	IsAvailable() bool
	SupportedLanguages() []Language
	TranslateText(ctx context.Context, text, targetLang, sourceLang string) (string, error)
	TranslatePrediction(ctx context.Context, prediction *Prediction, targetLang string) *Prediction
}

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	GetModelConfig() *ModelConfig
	GetTranslationConfig() *TranslationConfig
	GetLoggingConfig() *LoggingConfig
	Validate() error
	IsProduction() bool
	IsDevelopment() bool
}
