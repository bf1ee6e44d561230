package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pkarpov/truthscan/internal/model"
)

// Renderer formats responses as text, Markdown and JSON
type Renderer struct {
	includeFooter bool
	maxEvidence   int
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool, maxEvidence int) *Renderer {
	if maxEvidence <= 0 {
		maxEvidence = 3
	}
	return &Renderer{
		includeFooter: includeFooter,
		maxEvidence:   maxEvidence,
	}
}

// RenderJSON writes the response as indented JSON
func (r *Renderer) RenderJSON(response *model.Response, path string) error {
	data, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes the response as a Markdown report
func (r *Renderer) RenderMarkdown(response *model.Response, path string) error {
	var b strings.Builder

	b.WriteString("# Fact-Check Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", response.Timestamp.Format("2006-01-02 15:04 UTC"))

	if response.Message != "" {
		fmt.Fprintf(&b, "%s\n", response.Message)
		return os.WriteFile(path, []byte(b.String()), 0644)
	}

	if response.Summary != "" {
		fmt.Fprintf(&b, "**%s**\n\n", response.Summary)
	}

	for i, result := range response.Results {
		v := result.Verification
		fmt.Fprintf(&b, "## Claim %d\n\n", i+1)
		fmt.Fprintf(&b, "> %s\n\n", result.Claim.Text)
		fmt.Fprintf(&b, "**Verdict: %s — Confidence: %d%%**\n\n", v.Verdict.Label(), v.Confidence)
		fmt.Fprintf(&b, "%s\n\n", r.explanation(v))

		if len(v.Evidence) > 0 {
			b.WriteString("| Source | Finding | Date | Relevance |\n")
			b.WriteString("|--------|---------|------|-----------|\n")
			for _, ev := range r.topEvidence(v.Evidence) {
				fmt.Fprintf(&b, "| %s — %s | %s | %s | %s |\n",
					ev.Title, ev.Domain, ev.Finding, ev.Date, ev.Relevance)
			}
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "**Recommendation:** %s\n\n", recommendation(v.Verdict, v.Confidence))
	}

	if response.LLM != nil && response.LLM.Enabled {
		b.WriteString("## Summary (LLM-generated, does not affect verdicts)\n\n")
		fmt.Fprintf(&b, "%s\n\n", response.LLM.SummaryMD)
	}

	if r.includeFooter {
		b.WriteString("---\n\nNote: Always verify critical information with authoritative sources.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderText formats the response as a human-readable report
func (r *Renderer) RenderText(response *model.Response) string {
	var lines []string
	divider := strings.Repeat("=", 60)

	lines = append(lines, divider, "TruthScan - Fact-Checking Results", divider, "")

	if response.Message != "" {
		lines = append(lines, response.Message, "",
			"Recommendation: Please rephrase your input or provide more specific claims to verify.")
		return strings.Join(lines, "\n")
	}

	if response.ClaimsVerified > 1 {
		lines = append(lines, "Summary: "+response.Summary, "")
	}

	for i, result := range response.Results {
		v := result.Verification
		lines = append(lines,
			fmt.Sprintf("\nClaim #%d: %s", i+1, result.Claim.Text),
			strings.Repeat("-", 60),
			fmt.Sprintf("Verdict: %s — Confidence: %d%%", v.Verdict.Label(), v.Confidence),
			"",
			"Explanation:",
			"  "+r.explanation(v),
			"",
		)

		if len(v.Evidence) > 0 {
			lines = append(lines, "Evidence:")
			for _, ev := range r.topEvidence(v.Evidence) {
				lines = append(lines, fmt.Sprintf("  • %s — %s", ev.Title, ev.Domain))
				lines = append(lines, "    "+ev.Finding)
				if ev.Date != "Unknown" {
					lines = append(lines, "    Date: "+ev.Date)
				}
				lines = append(lines, "")
			}
		}

		lines = append(lines, "Recommendation: "+recommendation(v.Verdict, v.Confidence), "")
		lines = append(lines, "Share line: "+socialSummary(v.Verdict, v.Confidence), "")
	}

	if response.LLM != nil && response.LLM.Enabled {
		lines = append(lines, "Summary (LLM-generated, does not affect verdicts):")
		lines = append(lines, "  "+response.LLM.SummaryMD, "")
	}

	if r.includeFooter {
		lines = append(lines, divider, "Note: Always verify critical information with authoritative sources.", divider)
	}

	return strings.Join(lines, "\n")
}

// RenderSummary prints a short overview to stdout
func (r *Renderer) RenderSummary(response *model.Response) {
	if response.Message != "" {
		fmt.Println(response.Message)
		return
	}

	for i, result := range response.Results {
		v := result.Verification
		fmt.Printf("Claim %d: %s — %d%% (%s)\n", i+1, v.Verdict.Label(), v.Confidence, v.Rationale)
	}
	if response.Summary != "" {
		fmt.Println(response.Summary)
	}
}

// explanation builds the 2-4 sentence explanation for one verification
func (r *Renderer) explanation(v model.VerificationResult) string {
	var sentences []string

	switch v.Verdict {
	case model.VerdictSupported:
		sentences = append(sentences, fmt.Sprintf("This claim appears to be supported by evidence (confidence: %d%%).", v.Confidence))
	case model.VerdictPartiallyTrue:
		sentences = append(sentences, fmt.Sprintf("This claim is partially true but may be misleading (confidence: %d%%).", v.Confidence))
	case model.VerdictContradicted:
		sentences = append(sentences, fmt.Sprintf("This claim is contradicted by available evidence (confidence: %d%%).", v.Confidence))
	default:
		sentences = append(sentences, fmt.Sprintf("Insufficient evidence to verify this claim (confidence: %d%%).", v.Confidence))
	}

	if len(v.Evidence) > 0 {
		finding := v.Evidence[0].Finding
		if runes := []rune(finding); len(runes) > 150 {
			finding = string(runes[:147]) + "..."
		}
		if finding != "" {
			sentences = append(sentences, "Key evidence: "+finding)
		}
	}

	if v.Rationale != "" && v.Rationale != "No reliable evidence found" {
		sentences = append(sentences, "Assessment based on: "+v.Rationale+".")
	}

	if (v.Verdict == model.VerdictPartiallyTrue || v.Verdict == model.VerdictContradicted) && v.Confidence > 50 {
		sentences = append(sentences, "This claim may be commonly misunderstood or taken out of context.")
	}

	return strings.Join(sentences, " ")
}

func (r *Renderer) topEvidence(evidence []model.EvidenceSummary) []model.EvidenceSummary {
	if len(evidence) > r.maxEvidence {
		return evidence[:r.maxEvidence]
	}
	return evidence
}

// recommendation maps a verdict and confidence to sharing advice
func recommendation(verdict model.Verdict, confidence int) string {
	switch {
	case verdict == model.VerdictSupported && confidence >= 70:
		return "This claim appears reliable. You can share this information, but consider checking for updates if the topic is time-sensitive."
	case verdict == model.VerdictSupported:
		return "This claim has some support but confidence is moderate. Verify with additional sources before sharing."
	case verdict == model.VerdictPartiallyTrue:
		return "This claim needs context. Do not share without additional verification and full context."
	case verdict == model.VerdictContradicted:
		return "This claim is contradicted by evidence. Do not share. Consult authoritative sources for accurate information."
	default:
		return "Insufficient evidence to verify. Do not share. Check for updates from authoritative sources or consult experts."
	}
}

// socialSummary produces the one-sentence shareable line
func socialSummary(verdict model.Verdict, confidence int) string {
	line := fmt.Sprintf("Fact-check: %s (%d%% confidence).", strings.ToLower(verdict.Label()), confidence)
	if verdict != model.VerdictSupported && verdict != model.VerdictContradicted {
		line += " Verify with additional sources."
	}
	return line
}
