package ai

import (
	"context"
)

// Completer produces one model completion for one prompt document. The
// implementation owns its timeout and returns an error on any transport or
// API failure instead of letting it escape past the caller.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Summary is the hiring-manager digest of a finished screening interview. Raw
// preserves the unparsed model reply for debugging and is kept out of
// rendered output.
type Summary struct {
	OverallSummary      string `json:"overall_summary"`
	TechnicalStrengths  string `json:"technical_strengths"`
	AreasForImprovement string `json:"areas_for_improvement"`
	FinalRecommendation string `json:"final_recommendation"`
	Raw                 string `json:"-"`
}

// Summarizer turns a full interview transcript prompt into a Summary.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (*Summary, error)
}
