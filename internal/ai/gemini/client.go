// Package gemini implements the LLM gateway on top of the Google GenAI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/talentscout/screening-assistant/internal/logger"
	"github.com/talentscout/screening-assistant/internal/utils"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.5-flash"

	// Fixed generation parameters for screening calls. Every prompt
	// document mandates a JSON object reply, so JSON output mode is forced.
	defaultTemperature     = 0.8
	defaultMaxOutputTokens = 500
	defaultTimeout         = 20 * time.Second

	retryBackoff = 2 * time.Second
)

// contentCaller is the slice of the GenAI SDK the generator needs. Kept small
// so tests can substitute a fake.
type contentCaller interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config carries the tunable knobs for the gateway. Zero values fall back to
// the defaults above.
type Config struct {
	Model           string
	Temperature     float64
	MaxOutputTokens int
	Timeout         time.Duration
	MaxRetries      int
	MaxLogLength    int
}

// Generator wraps the Google GenAI client to provide single prompt-in,
// text-out interactions with forced JSON output.
type Generator struct {
	models      contentCaller
	model       string
	temperature float32
	maxTokens   int32
	timeout     time.Duration
	maxRetries  int
	maxLogLen   int
	logger      *zap.Logger
}

// NewGenerator creates a Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey string, cfg Config, log *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, cfg, log), nil
}

func newGenerator(models contentCaller, cfg Config, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	temperature := float32(cfg.Temperature)
	if cfg.Temperature <= 0 {
		temperature = defaultTemperature
	}

	maxTokens := int32(cfg.MaxOutputTokens)
	if cfg.MaxOutputTokens <= 0 {
		maxTokens = defaultMaxOutputTokens
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}

	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = logger.DefaultMaxLogLength
	}

	return &Generator{
		models:      models,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		timeout:     timeout,
		maxRetries:  maxRetries,
		maxLogLen:   maxLogLen,
		logger:      log,
	}
}

// Complete sends the prompt to Gemini and returns the raw text reply. One
// logical completion per call; transient API errors are retried up to the
// configured attempt budget before the failure is reported.
func (g *Generator) Complete(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	g.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, g.maxLogLen)),
	)

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.temperature),
		MaxOutputTokens:  g.maxTokens,
		ResponseMIMEType: "application/json",
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		output, err := g.generate(ctx, prompt, config)
		if err == nil {
			g.logger.Debug("gemini generate content response",
				zap.Int("attempt", attempt),
				zap.Int("response_length", utf8.RuneCountInString(output)),
				zap.String("response_preview", logger.TruncateForLog(output, g.maxLogLen)),
			)
			return output, nil
		}

		lastErr = err

		if !isRetryable(err) || attempt == g.maxRetries {
			break
		}

		g.logger.Warn("gemini call failed, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if waitErr := utils.WaitFor(ctx, retryBackoff); waitErr != nil {
			return "", waitErr
		}
	}

	return "", lastErr
}

func (g *Generator) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.models.GenerateContent(callCtx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

// isRetryable treats server-side failures as transient. Client errors,
// including exhausted quota, are surfaced immediately.
func isRetryable(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code >= 500
	}
	return false
}

// Model returns the configured model identifier.
func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}
