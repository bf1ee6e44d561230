package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkarpov/truthscan/internal/model"
)

func demoConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	return cfg
}

func TestPipeline_SingleClaim(t *testing.T) {
	p := NewPipeline(demoConfig())

	response, err := p.Process(context.Background(), "The Earth is round.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if response.ClaimsVerified != 1 {
		t.Fatalf("Expected 1 claim verified, got %d", response.ClaimsVerified)
	}
	if response.Input != "The Earth is round." {
		t.Errorf("Expected input echoed in response, got '%s'", response.Input)
	}

	result := response.Results[0]
	if result.Claim.Text != "The Earth is round" {
		t.Errorf("Expected claim text 'The Earth is round', got '%s'", result.Claim.Text)
	}

	v := result.Verification
	if v.Confidence < 0 || v.Confidence > 100 {
		t.Errorf("Expected confidence within [0, 100], got %d", v.Confidence)
	}
}

func TestPipeline_NoClaims(t *testing.T) {
	p := NewPipeline(demoConfig())

	response, err := p.Process(context.Background(), "")
	if err != nil {
		t.Fatalf("Expected structured outcome, not error, got %v", err)
	}

	if response.Message == "" {
		t.Error("Expected message explaining that no claims were found")
	}
	if len(response.Results) != 0 {
		t.Errorf("Expected no results, got %d", len(response.Results))
	}
}

func TestPipeline_ResultsKeepInputOrder(t *testing.T) {
	cfg := demoConfig()
	cfg.Concurrency.ClaimWorkers = 4
	p := NewPipeline(cfg)

	input := `1. Vaccines are safe and effective.
2. The earth is round and orbits the sun.
3. Honey never spoils because it has low moisture.
4. The Great Wall is visible from space.`

	response, err := p.Process(context.Background(), input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(response.Results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(response.Results))
	}

	wantOrder := []string{"Vaccines", "earth is round", "Honey", "Great Wall"}
	for i, want := range wantOrder {
		if !strings.Contains(response.Results[i].Claim.Text, want) {
			t.Errorf("Position %d: expected claim about %q, got '%s'", i, want, response.Results[i].Claim.Text)
		}
	}

	if response.Summary == "" {
		t.Error("Expected a summary for a multi-claim response")
	}
	if !strings.Contains(response.Summary, "Verified 4 claim(s)") {
		t.Errorf("Expected summary to count 4 claims, got '%s'", response.Summary)
	}
}

func TestPipeline_SingleClaimHasNoSummary(t *testing.T) {
	p := NewPipeline(demoConfig())

	response, err := p.Process(context.Background(), "The Earth is round.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if response.Summary != "" {
		t.Errorf("Expected no summary for a single claim, got '%s'", response.Summary)
	}
}

func TestPipeline_AuditTrail(t *testing.T) {
	p := NewPipeline(demoConfig())

	if len(p.Audit()) != 0 {
		t.Fatal("Expected empty audit log before processing")
	}

	_, err := p.Process(context.Background(), "The Earth is round.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	entries := p.Audit()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 audit entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.Claim != "The Earth is round" {
		t.Errorf("Expected audit entry for the claim, got '%s'", entry.Claim)
	}
	if len(entry.Queries) == 0 {
		t.Error("Expected audit entry to record the retrieval queries")
	}
	if len(entry.TopSources) > 3 {
		t.Errorf("Expected at most 3 top sources, got %d", len(entry.TopSources))
	}
	if entry.Timestamp.IsZero() {
		t.Error("Expected audit entry timestamp to be set")
	}
}

func TestPipeline_DemoDisabledYieldsUnverified(t *testing.T) {
	cfg := demoConfig()
	cfg.Retrieval.DemoFallback = false
	p := NewPipeline(cfg)

	response, err := p.Process(context.Background(), "The Earth is round.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	v := response.Results[0].Verification
	if v.Verdict != model.VerdictUnverified {
		t.Errorf("Expected unverified verdict with no evidence, got %s", v.Verdict)
	}
	if v.Confidence != 0 {
		t.Errorf("Expected confidence 0 with no evidence, got %d", v.Confidence)
	}
	if v.Rationale != "No evidence found" {
		t.Errorf("Expected 'No evidence found' rationale, got '%s'", v.Rationale)
	}
}

func TestBuildSummary(t *testing.T) {
	results := []model.ClaimResult{
		{Verification: model.VerificationResult{Verdict: model.VerdictSupported}},
		{Verification: model.VerificationResult{Verdict: model.VerdictSupported}},
		{Verification: model.VerificationResult{Verdict: model.VerdictContradicted}},
		{Verification: model.VerificationResult{Verdict: model.VerdictUnverified}},
	}

	summary := buildSummary(results)

	if !strings.Contains(summary, "Verified 4 claim(s)") {
		t.Errorf("Expected total count, got '%s'", summary)
	}
	if !strings.Contains(summary, "2 supported") {
		t.Errorf("Expected supported count, got '%s'", summary)
	}
	if !strings.Contains(summary, "1 contradicted") {
		t.Errorf("Expected contradicted count, got '%s'", summary)
	}
	if !strings.Contains(summary, "1 unverified") {
		t.Errorf("Expected unverified count, got '%s'", summary)
	}
	if strings.HasSuffix(summary, ",") {
		t.Errorf("Expected no trailing comma, got '%s'", summary)
	}
}

func TestRenderer_JSONRoundTrip(t *testing.T) {
	p := NewPipeline(demoConfig())

	response, err := p.Process(context.Background(), "The Earth is round.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.json")
	if err := p.Renderer().RenderJSON(response, path); err != nil {
		t.Fatalf("Expected no render error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected report file, got %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}

	if decoded["input"] != "The Earth is round." {
		t.Errorf("Expected input in JSON report, got %v", decoded["input"])
	}

	// Verdicts serialize as their stable keys
	if !strings.Contains(string(data), `"verdict"`) {
		t.Error("Expected verdict field in JSON report")
	}
}

func TestRenderer_Text(t *testing.T) {
	p := NewPipeline(demoConfig())

	response, err := p.Process(context.Background(), "The Earth is round.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	text := p.Renderer().RenderText(response)

	if !strings.Contains(text, "TruthScan - Fact-Checking Results") {
		t.Error("Expected report banner in text output")
	}
	if !strings.Contains(text, "Claim #1") {
		t.Error("Expected claim section in text output")
	}
	if !strings.Contains(text, "Verdict:") {
		t.Error("Expected verdict line in text output")
	}
	if !strings.Contains(text, "Recommendation:") {
		t.Error("Expected recommendation line in text output")
	}
}

func TestRenderer_TextNoClaims(t *testing.T) {
	p := NewPipeline(demoConfig())

	response, err := p.Process(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	text := p.Renderer().RenderText(response)
	if !strings.Contains(text, "rephrase") {
		t.Errorf("Expected rephrase guidance for no-claims input, got:\n%s", text)
	}
}

func TestRenderer_Markdown(t *testing.T) {
	p := NewPipeline(demoConfig())

	response, err := p.Process(context.Background(), "The Earth is round.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.md")
	if err := p.Renderer().RenderMarkdown(response, path); err != nil {
		t.Fatalf("Expected no render error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected report file, got %v", err)
	}

	md := string(data)
	if !strings.Contains(md, "# Fact-Check Report") {
		t.Error("Expected Markdown title")
	}
	if !strings.Contains(md, "## Claim 1") {
		t.Error("Expected per-claim section")
	}
	if !strings.Contains(md, "**Verdict:") {
		t.Error("Expected verdict line")
	}
}

func TestRecommendation(t *testing.T) {
	tests := []struct {
		verdict    model.Verdict
		confidence int
		wantPart   string
	}{
		{model.VerdictSupported, 80, "appears reliable"},
		{model.VerdictSupported, 50, "moderate"},
		{model.VerdictPartiallyTrue, 60, "needs context"},
		{model.VerdictContradicted, 70, "Do not share"},
		{model.VerdictUnverified, 0, "Insufficient evidence"},
	}

	for _, tt := range tests {
		got := recommendation(tt.verdict, tt.confidence)
		if !strings.Contains(got, tt.wantPart) {
			t.Errorf("recommendation(%s, %d): expected %q in %q", tt.verdict, tt.confidence, tt.wantPart, got)
		}
	}
}
