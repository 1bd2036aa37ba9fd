package external

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maternal-risk-mcp-server/internal/domain"
)

type stubGenerator struct {
	calls int
	fail  bool
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.fail {
		return "", fmt.Errorf("generator down")
	}
	return "translated", nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestTranslationService_IsAvailable(t *testing.T) {
	disabled, err := NewTranslationService(nil, 10, quietLogger())
	require.NoError(t, err)
	assert.False(t, disabled.IsAvailable())

	enabled, err := NewTranslationService(&stubGenerator{}, 10, quietLogger())
	require.NoError(t, err)
	assert.True(t, enabled.IsAvailable())
}

func TestTranslationService_SupportedLanguages(t *testing.T) {
	service, err := NewTranslationService(nil, 10, quietLogger())
	require.NoError(t, err)

	languages := service.SupportedLanguages()
	require.Len(t, languages, 5)
	assert.Equal(t, domain.Language{Code: "en", Name: "English"}, languages[0])

	codes := make([]string, 0, len(languages))
	for _, language := range languages {
		codes = append(codes, language.Code)
	}
	assert.ElementsMatch(t, []string{"en", "hi", "bn", "mr", "ta"}, codes)
}

func TestTranslationService_TranslateText(t *testing.T) {
	generator := &stubGenerator{}
	service, err := NewTranslationService(generator, 10, quietLogger())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("English passthrough", func(t *testing.T) {
		text, err := service.TranslateText(ctx, "Continue routine antenatal care", "en", "en")
		require.NoError(t, err)
		assert.Equal(t, "Continue routine antenatal care", text)
		assert.Zero(t, generator.calls)
	})

	t.Run("Empty text passthrough", func(t *testing.T) {
		text, err := service.TranslateText(ctx, "", "hi", "en")
		require.NoError(t, err)
		assert.Empty(t, text)
		assert.Zero(t, generator.calls)
	})

	t.Run("Unsupported language", func(t *testing.T) {
		text, err := service.TranslateText(ctx, "hello", "fr", "en")
		assert.Error(t, err)
		assert.Equal(t, "hello", text)
		assert.Zero(t, generator.calls)
	})

	t.Run("Translates and caches", func(t *testing.T) {
		first, err := service.TranslateText(ctx, "Iron supplementation", "hi", "en")
		require.NoError(t, err)
		assert.Equal(t, "translated", first)
		assert.Equal(t, 1, generator.calls)

		second, err := service.TranslateText(ctx, "Iron supplementation", "hi", "en")
		require.NoError(t, err)
		assert.Equal(t, "translated", second)
		assert.Equal(t, 1, generator.calls, "second lookup must hit the cache")

		_, err = service.TranslateText(ctx, "Iron supplementation", "ta", "en")
		require.NoError(t, err)
		assert.Equal(t, 2, generator.calls, "each language caches separately")
	})
}

func TestTranslationService_TranslateText_GeneratorFailure(t *testing.T) {
	service, err := NewTranslationService(&stubGenerator{fail: true}, 10, quietLogger())
	require.NoError(t, err)

	text, err := service.TranslateText(context.Background(), "hello", "hi", "en")
	assert.Error(t, err)
	assert.Equal(t, "hello", text, "failures fall back to the original text")
}

func TestTranslationService_TranslateText_Unavailable(t *testing.T) {
	service, err := NewTranslationService(nil, 10, quietLogger())
	require.NoError(t, err)

	text, err := service.TranslateText(context.Background(), "hello", "hi", "en")
	assert.Error(t, err)
	assert.Equal(t, "hello", text)
}

func TestTranslationService_TranslatePrediction(t *testing.T) {
	service, err := NewTranslationService(&stubGenerator{}, 10, quietLogger())
	require.NoError(t, err)

	original := &domain.Prediction{
		RiskScore:    85,
		RiskCategory: domain.RISK_HIGH,
		Probability:  0.85,
		ContributingFactors: []domain.ContributingFactor{
			{
				Factor:      domain.SEVERE_ANEMIA,
				Value:       "8.5 g/dL",
				Impact:      domain.IMPACT_HIGH,
				Description: "Hemoglobin below 10 g/dL indicates severe anemia",
			},
		},
		Recommendations: []string{"Immediate medical consultation required"},
	}

	translated := service.TranslatePrediction(context.Background(), original, "hi")
	require.NotNil(t, translated)

	assert.Equal(t, domain.FactorKind("translated"), translated.ContributingFactors[0].Factor)
	assert.Equal(t, "translated", translated.ContributingFactors[0].Description)
	assert.Equal(t, []string{"translated"}, translated.Recommendations)

	// Values, category and score are never localized.
	assert.Equal(t, "8.5 g/dL", translated.ContributingFactors[0].Value)
	assert.Equal(t, domain.RISK_HIGH, translated.RiskCategory)
	assert.Equal(t, 85, translated.RiskScore)

	// The source prediction stays untouched.
	assert.Equal(t, domain.SEVERE_ANEMIA, original.ContributingFactors[0].Factor)
	assert.Equal(t, []string{"Immediate medical consultation required"}, original.Recommendations)
}

func TestTranslationService_TranslatePrediction_Passthrough(t *testing.T) {
	service, err := NewTranslationService(&stubGenerator{}, 10, quietLogger())
	require.NoError(t, err)

	prediction := &domain.Prediction{RiskCategory: domain.RISK_LOW}

	assert.Same(t, prediction, service.TranslatePrediction(context.Background(), prediction, "en"))
	assert.Same(t, prediction, service.TranslatePrediction(context.Background(), prediction, ""))
	assert.Same(t, prediction, service.TranslatePrediction(context.Background(), prediction, "xx"))

	disabled, err := NewTranslationService(nil, 10, quietLogger())
	require.NoError(t, err)
	assert.Same(t, prediction, disabled.TranslatePrediction(context.Background(), prediction, "hi"))
}

func TestTranslationService_TranslatePrediction_GeneratorFailure(t *testing.T) {
	service, err := NewTranslationService(&stubGenerator{fail: true}, 10, quietLogger())
	require.NoError(t, err)

	original := &domain.Prediction{
		RiskCategory:    domain.RISK_MEDIUM,
		Recommendations: []string{"Schedule additional antenatal visits for closer monitoring"},
	}

	translated := service.TranslatePrediction(context.Background(), original, "hi")
	require.NotNil(t, translated)
	assert.Equal(t, original.Recommendations, translated.Recommendations, "failed texts stay in English")
}

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), GeminiConfig{Model: "gemini-2.5-flash"}, quietLogger())
	assert.Error(t, err)
}
