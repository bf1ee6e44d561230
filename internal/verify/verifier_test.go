package verify

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pkarpov/truthscan/internal/model"
)

// fixedTime pins the recency reference date so results are reproducible
var fixedTime = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestVerifier() *Verifier {
	v := NewVerifier(nil)
	v.now = func() time.Time { return fixedTime }
	return v
}

func supportingItem(domain string) model.EvidenceItem {
	return model.EvidenceItem{
		Title:   "Fact Check: claim verified",
		URL:     "https://" + domain + "/article",
		Domain:  domain,
		Snippet: "This claim has been confirmed as accurate by reviewers.",
		Date:    "2020-01-15",
	}
}

func TestVerifier_NoEvidence(t *testing.T) {
	v := newTestVerifier()

	result := v.Verify(model.Claim{Text: "The Earth is round"}, nil)

	if result.Verdict != model.VerdictUnverified {
		t.Errorf("Expected verdict unverified, got %s", result.Verdict)
	}
	if result.Confidence != 0 {
		t.Errorf("Expected confidence 0, got %d", result.Confidence)
	}
	if result.Rationale != "No evidence found" {
		t.Errorf("Expected rationale 'No evidence found', got '%s'", result.Rationale)
	}
	if len(result.Evidence) != 0 {
		t.Errorf("Expected empty evidence summary, got %d items", len(result.Evidence))
	}
}

func TestVerifier_SupportedWithAuthority(t *testing.T) {
	v := newTestVerifier()

	// 3 supporting items, 2 from authoritative domains, none recent
	evidence := []model.EvidenceItem{
		supportingItem("cdc.gov"),
		supportingItem("snopes.com"),
		supportingItem("example.org"),
	}

	result := v.Verify(model.Claim{Text: "Vaccines are safe and effective"}, evidence)

	if result.Verdict != model.VerdictSupported {
		t.Errorf("Expected verdict supported, got %s", result.Verdict)
	}
	// base min(70, 3*20)=60, authority min(20, 2*5)=10, no recency, no penalties
	if result.Confidence != 70 {
		t.Errorf("Expected confidence 70, got %d", result.Confidence)
	}
	if !strings.Contains(result.Rationale, "3 supporting source(s)") {
		t.Errorf("Expected rationale to mention 3 supporting sources, got '%s'", result.Rationale)
	}
	if !strings.Contains(result.Rationale, "2 authoritative source(s)") {
		t.Errorf("Expected rationale to mention 2 authoritative sources, got '%s'", result.Rationale)
	}
}

func TestVerifier_Contradicted(t *testing.T) {
	v := newTestVerifier()

	evidence := []model.EvidenceItem{
		{
			Title:   "Debunked: viral claim",
			URL:     "https://snopes.com/debunk",
			Domain:  "snopes.com",
			Snippet: "This claim is false and has been debunked by multiple investigations.",
			Date:    "2024-02-01",
		},
		{
			Title:   "Myth busted",
			URL:     "https://factcheck.org/myth",
			Domain:  "factcheck.org",
			Snippet: "There is no evidence supporting this myth.",
			Date:    "2024-01-10",
		},
	}

	result := v.Verify(model.Claim{Text: "The Moon is made of cheese"}, evidence)

	if result.Verdict != model.VerdictContradicted {
		t.Errorf("Expected verdict contradicted, got %s", result.Verdict)
	}
	if !strings.Contains(result.Rationale, "contradicting source(s)") {
		t.Errorf("Expected rationale to mention contradicting sources, got '%s'", result.Rationale)
	}
}

func TestVerifier_SingleSupportIsPartiallyTrue(t *testing.T) {
	v := newTestVerifier()

	evidence := []model.EvidenceItem{supportingItem("example.org")}

	result := v.Verify(model.Claim{Text: "Honey never spoils"}, evidence)

	if result.Verdict != model.VerdictPartiallyTrue {
		t.Errorf("Expected verdict partially_true with a single support, got %s", result.Verdict)
	}
}

func TestVerifier_Deterministic(t *testing.T) {
	v := newTestVerifier()

	claim := model.Claim{Text: "Vaccines are safe and effective"}
	evidence := []model.EvidenceItem{
		supportingItem("cdc.gov"),
		supportingItem("who.int"),
	}

	first := v.Verify(claim, evidence)
	second := v.Verify(claim, evidence)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results for identical inputs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestVerifier_ConfidenceBounds(t *testing.T) {
	// Heavy contradiction must clamp at 0, never go negative
	if got := computeConfidence(0, 10, 0, 0, 0, true); got != 0 {
		t.Errorf("Expected confidence clamped to 0, got %d", got)
	}

	// Maximal bonuses must clamp at 100
	if got := computeConfidence(10, 0, 0, 10, 10, false); got > 100 {
		t.Errorf("Expected confidence clamped to 100, got %d", got)
	}
}

func TestComputeConfidence_Formula(t *testing.T) {
	tests := []struct {
		name                                       string
		support, contradict, partial, auth, recent int
		inferred                                   bool
		want                                       int
	}{
		{"three supports two authoritative", 3, 0, 0, 2, 0, false, 70},
		{"base caps at 70", 5, 0, 0, 0, 0, false, 70},
		{"authority caps at 20", 1, 0, 0, 10, 0, false, 40},
		{"recency caps at 10", 1, 0, 0, 0, 10, false, 30},
		{"contradiction penalty", 2, 1, 0, 0, 0, false, 25},
		{"inferred penalty", 2, 0, 0, 0, 0, true, 30},
		{"partial penalty", 2, 0, 2, 0, 0, false, 30},
	}

	for _, tt := range tests {
		got := computeConfidence(tt.support, tt.contradict, tt.partial, tt.auth, tt.recent, tt.inferred)
		if got != tt.want {
			t.Errorf("%s: computeConfidence = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestDetermineVerdict(t *testing.T) {
	tests := []struct {
		support, contradict, partial int
		want                         model.Verdict
	}{
		{3, 0, 0, model.VerdictSupported},
		{2, 1, 0, model.VerdictSupported},
		{0, 2, 0, model.VerdictContradicted},
		{1, 2, 0, model.VerdictContradicted},
		{1, 0, 0, model.VerdictPartiallyTrue},
		{0, 0, 1, model.VerdictPartiallyTrue},
		{0, 0, 0, model.VerdictUnverified},
		{1, 1, 0, model.VerdictUnverified},
	}

	for _, tt := range tests {
		got := determineVerdict(tt.support, tt.contradict, tt.partial)
		if got != tt.want {
			t.Errorf("determineVerdict(%d, %d, %d) = %s, want %s",
				tt.support, tt.contradict, tt.partial, got, tt.want)
		}
	}
}

func TestAnalyzeRelevance(t *testing.T) {
	v := newTestVerifier()

	tests := []struct {
		name    string
		snippet string
		want    model.Relevance
	}{
		{
			"contradiction cues win",
			"This claim is false and has been debunked.",
			model.RelevanceContradicts,
		},
		{
			"support cues win",
			"Confirmed and verified by independent reviewers.",
			model.RelevanceSupports,
		},
		{
			"partial cues",
			"This depends on context, however results vary.",
			model.RelevancePartial,
		},
		{
			"keyword overlap with no cues is partial",
			"Vaccines were deemed safe and effective across cohorts.",
			model.RelevancePartial,
		},
		{
			"no overlap and no cues",
			"Completely unrelated gardening tips for spring.",
			model.RelevanceUnclear,
		},
	}

	for _, tt := range tests {
		got := v.analyzeRelevance("Vaccines are safe and effective", model.EvidenceItem{Snippet: tt.snippet})
		if got != tt.want {
			t.Errorf("%s: analyzeRelevance = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestIsRecent(t *testing.T) {
	ref := fixedTime

	tests := []struct {
		date string
		want bool
	}{
		{"2024-01-15", true},
		{"2023/06/01", true},
		{"January 2, 2024", true},
		{"2019-01-01", false},
		{"not a date", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isRecent(tt.date, ref, 2); got != tt.want {
			t.Errorf("isRecent(%q) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestIsAuthoritative(t *testing.T) {
	v := newTestVerifier()

	tests := []struct {
		domain string
		want   bool
	}{
		{"cdc.gov", true},
		{"www.who.int", true},
		{"pubmed.ncbi.nlm.nih.gov", true},
		{"example.org", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := v.isAuthoritative(tt.domain); got != tt.want {
			t.Errorf("isAuthoritative(%q) = %v, want %v", tt.domain, got, tt.want)
		}
	}
}

func TestExtractFinding(t *testing.T) {
	// First sentence of the snippet
	finding := extractFinding(model.EvidenceItem{
		Snippet: "The claim was reviewed. Further details follow.",
	}, model.RelevanceSupports)
	if finding != "The claim was reviewed" {
		t.Errorf("Expected first sentence, got '%s'", finding)
	}

	// Long snippet truncates with ellipsis
	long := strings.Repeat("a", 150)
	finding = extractFinding(model.EvidenceItem{Snippet: long}, model.RelevanceSupports)
	if len([]rune(finding)) != 100 || !strings.HasSuffix(finding, "...") {
		t.Errorf("Expected 100-rune truncated finding with ellipsis, got %d runes", len([]rune(finding)))
	}

	// Falls back to title
	finding = extractFinding(model.EvidenceItem{Title: "A title"}, model.RelevanceSupports)
	if finding != "A title" {
		t.Errorf("Expected title fallback, got '%s'", finding)
	}

	// Falls back to template
	finding = extractFinding(model.EvidenceItem{Domain: "example.org"}, model.RelevanceUnclear)
	if !strings.Contains(finding, "example.org") {
		t.Errorf("Expected template fallback mentioning the domain, got '%s'", finding)
	}
}

func TestVerifier_SummaryFieldsNeverEmpty(t *testing.T) {
	v := newTestVerifier()

	evidence := []model.EvidenceItem{
		{URL: "https://example.org/a", Snippet: "Confirmed by reviewers."},
	}

	result := v.Verify(model.Claim{Text: "Some testable claim here"}, evidence)

	if len(result.Evidence) != 1 {
		t.Fatalf("Expected 1 evidence summary, got %d", len(result.Evidence))
	}

	s := result.Evidence[0]
	if s.Title != "Unknown" {
		t.Errorf("Expected missing title to render as 'Unknown', got '%s'", s.Title)
	}
	if s.Domain != "Unknown" {
		t.Errorf("Expected missing domain to render as 'Unknown', got '%s'", s.Domain)
	}
	if s.Date != "Unknown" {
		t.Errorf("Expected missing date to render as 'Unknown', got '%s'", s.Date)
	}
}
