package external

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/maternal-risk-mcp-server/internal/domain"
)

// supportedLanguages lists the languages predictions can be localized
// into. English is the source language of every generated text.
var supportedLanguages = []domain.Language{
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "Hindi"},
	{Code: "bn", Name: "Bengali"},
	{Code: "mr", Name: "Marathi"},
	{Code: "ta", Name: "Tamil"},
}

// TranslationService localizes prediction narratives through a text
// generator. Translations are cached per language and every failure falls
// back to the original English text, so a broken upstream never blocks a
// prediction.
type TranslationService struct {
	generator TextGenerator
	cache     *lru.Cache[string, string]
	logger    *logrus.Logger
}

// NewTranslationService creates a new translation service. A nil generator
// yields a disabled service that leaves all texts untranslated.
func NewTranslationService(generator TextGenerator, cacheSize int, logger *logrus.Logger) (*TranslationService, error) {
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation cache: %w", err)
	}

	return &TranslationService{
		generator: generator,
		cache:     cache,
		logger:    logger,
	}, nil
}

// IsAvailable reports whether a text generator is configured.
func (s *TranslationService) IsAvailable() bool {
	return s.generator != nil
}

// SupportedLanguages returns the languages predictions can be localized into.
func (s *TranslationService) SupportedLanguages() []domain.Language {
	languages := make([]domain.Language, len(supportedLanguages))
	copy(languages, supportedLanguages)
	return languages
}

// TranslateText translates one text into the target language. The original
// text is returned alongside any error so callers can always display
// something.
func (s *TranslationService) TranslateText(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	if text == "" || targetLang == "" || targetLang == sourceLang || targetLang == "en" {
		return text, nil
	}
	if !s.IsAvailable() {
		return text, fmt.Errorf("translation service is not configured")
	}

	targetName := languageName(targetLang)
	if targetName == "" {
		return text, fmt.Errorf("unsupported language: %s", targetLang)
	}

	cacheKey := targetLang + ":" + text
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached, nil
	}

	prompt := fmt.Sprintf(
		"Translate the following maternal health text into %s. "+
			"Keep medical terms accurate and reply with only the translation.\n\n%s",
		targetName, text)

	translated, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.WithError(err).WithField("language", targetLang).Debug("Translation failed, keeping original text")
		return text, err
	}

	s.cache.Add(cacheKey, translated)
	return translated, nil
}

// TranslatePrediction returns a copy of the prediction with factor names,
// factor descriptions and recommendations localized. Measured values and
// the risk category are never translated. Texts that fail to translate
// stay in English.
func (s *TranslationService) TranslatePrediction(ctx context.Context, prediction *domain.Prediction, targetLang string) *domain.Prediction {
	if prediction == nil || targetLang == "" || targetLang == "en" || !s.IsAvailable() {
		return prediction
	}
	if languageName(targetLang) == "" {
		s.logger.WithField("language", targetLang).Warn("Unsupported language requested, returning English prediction")
		return prediction
	}

	translated := *prediction
	translated.ContributingFactors = make([]domain.ContributingFactor, len(prediction.ContributingFactors))
	copy(translated.ContributingFactors, prediction.ContributingFactors)
	translated.Recommendations = make([]string, len(prediction.Recommendations))
	copy(translated.Recommendations, prediction.Recommendations)

	failures := 0
	for i := range translated.ContributingFactors {
		factor := &translated.ContributingFactors[i]

		if name, err := s.TranslateText(ctx, string(factor.Factor), targetLang, "en"); err == nil {
			factor.Factor = domain.FactorKind(name)
		} else {
			failures++
		}
		if description, err := s.TranslateText(ctx, factor.Description, targetLang, "en"); err == nil {
			factor.Description = description
		} else {
			failures++
		}
	}

	for i, text := range translated.Recommendations {
		if localized, err := s.TranslateText(ctx, text, targetLang, "en"); err == nil {
			translated.Recommendations[i] = localized
		} else {
			failures++
		}
	}

	if failures > 0 {
		s.logger.WithFields(logrus.Fields{
			"language": targetLang,
			"failures": failures,
		}).Warn("Prediction partially translated, untranslated texts kept in English")
	}

	return &translated
}

func languageName(code string) string {
	for _, language := range supportedLanguages {
		if language.Code == code {
			return language.Name
		}
	}
	return ""
}
