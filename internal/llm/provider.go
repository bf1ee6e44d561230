package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkarpov/truthscan/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a plain-language summary of a verification response
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Response is the verification response to summarize. Verdicts and
	// confidence scores are already final; the summary never changes them.
	Response *model.Response

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// CitedURLs are URLs found in the summary. The prompt forbids citing
	// URLs (evidence digests carry none), so any hit becomes a warning.
	CitedURLs []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// systemPrompt is shared by all providers
const systemPrompt = "You are a helpful assistant that restates fact-check verdicts in plain language without adding or removing judgments."

// BuildPrompt constructs the default summarization prompt
func BuildPrompt(response *model.Response) string {
	var b strings.Builder

	b.WriteString(`You are summarizing a TruthScan verification report. The verdicts and confidence scores below are final heuristic outcomes - restate them, do not second-guess them.

CRITICAL RULES:
1. Do not assert that any claim is true or false beyond its verdict.
2. Do not cite URLs or sources that are not listed below.
3. If evidence was insufficient, state that explicitly.

Verified claims:
`)

	for i, result := range response.Results {
		v := result.Verification
		fmt.Fprintf(&b, "%d. %q -> %s (%d%% confidence; %s)\n",
			i+1, result.Claim.Text, v.Verdict.Label(), v.Confidence, v.Rationale)
		for _, ev := range v.Evidence {
			fmt.Fprintf(&b, "   - %s (%s, %s): %s\n", ev.Title, ev.Domain, ev.Relevance, ev.Finding)
		}
	}

	b.WriteString("\nProvide a 3-4 sentence summary of the overall outcome, focusing on evidence quality.")

	return b.String()
}

// extractURLs extracts all URLs from text using regex
func extractURLs(text string) []string {
	urlPattern := regexp.MustCompile(`https?://[^\s\)]+`)
	matches := urlPattern.FindAllString(text, -1)

	seen := make(map[string]bool)
	var unique []string
	for _, url := range matches {
		url = strings.TrimRight(url, ".,;:!?")
		if !seen[url] {
			seen[url] = true
			unique = append(unique, url)
		}
	}

	return unique
}
