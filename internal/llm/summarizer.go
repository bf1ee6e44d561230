package llm

import (
	"context"
	"fmt"

	"github.com/pkarpov/truthscan/internal/model"
)

// Summarizer wraps an LLM provider for report summarization
type Summarizer struct {
	provider Provider
	config   model.LLMConfig
}

// NewSummarizer creates a summarizer from the LLM configuration.
// An empty provider name yields a disabled summarizer.
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		provider: provider,
		config:   cfg,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary produces a plain-language summary of a finished
// verification response. Verdicts and confidence scores are final before
// this runs and are never modified by it.
func (s *Summarizer) GenerateSummary(ctx context.Context, response *model.Response) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return nil, fmt.Errorf("provider %s is not available", s.provider.Name())
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Response:  response,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	summary := &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}

	// Evidence digests carry no URLs, so any URL in the summary was
	// invented by the model
	if len(resp.CitedURLs) > 0 {
		summary.Warnings = append(summary.Warnings,
			fmt.Sprintf("summary cites %d URL(s) not present in the evidence; treat them as unverified", len(resp.CitedURLs)))
	}

	return summary, nil
}
