package external

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// TextGenerator produces text for a prompt. GeminiClient is the production
// implementation; tests substitute a stub.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiConfig represents configuration for the Gemini API client
type GeminiConfig struct {
	APIKey    string
	Model     string
	Timeout   time.Duration
	RateLimit int
}

// GeminiClient handles interactions with the Google Gemini API
type GeminiClient struct {
	client    *genai.Client
	model     string
	timeout   time.Duration
	rateLimit *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
	logger    *logrus.Logger
}

// NewGeminiClient creates a new Gemini API client
func NewGeminiClient(ctx context.Context, config GeminiConfig, logger *logrus.Logger) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "Gemini",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return &GeminiClient{
		client:    client,
		model:     config.Model,
		timeout:   config.Timeout,
		rateLimit: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
		breaker:   breaker,
		logger:    logger,
	}, nil
}

// Generate sends one prompt to the configured model and returns the
// response text.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	// Rate limiting
	if err := g.rateLimit.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait failed: %w", err)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	result, err := g.breaker.Execute(func() (interface{}, error) {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			return nil, err
		}

		text := strings.TrimSpace(resp.Text())
		if text == "" {
			return nil, fmt.Errorf("empty response from model %s", g.model)
		}
		return text, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			return "", fmt.Errorf("gemini service unavailable (circuit breaker open)")
		}
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	return result.(string), nil
}
