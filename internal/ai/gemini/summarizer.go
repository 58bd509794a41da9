package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/talentscout/screening-assistant/internal/ai"

	"go.uber.org/zap"
)

type contentGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Summarizer turns a finished interview transcript prompt into the structured
// hiring-manager summary. The model reply is expected to be a JSON object;
// markdown code fences around it are tolerated and stripped.
type Summarizer struct {
	generator contentGenerator
	logger    *zap.Logger
}

func NewSummarizer(generator contentGenerator, log *zap.Logger) *Summarizer {
	if log == nil {
		log = zap.NewNop()
	}

	return &Summarizer{
		generator: generator,
		logger:    log,
	}
}

func (s *Summarizer) Summarize(ctx context.Context, prompt string) (*ai.Summary, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("summary prompt is required")
	}

	raw, err := s.generator.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	summary, err := parseSummary(raw)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("interview summary generated",
		zap.String("recommendation", summary.FinalRecommendation),
	)

	summary.Raw = raw
	return summary, nil
}

func parseSummary(raw string) (*ai.Summary, error) {
	cleaned := ai.ExtractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse summary response: %w", err)
	}

	return &ai.Summary{
		OverallSummary:      coerceString(data["overall_summary"]),
		TechnicalStrengths:  coerceString(data["technical_strengths"]),
		AreasForImprovement: coerceString(data["areas_for_improvement"]),
		FinalRecommendation: coerceString(data["final_recommendation"]),
	}, nil
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
