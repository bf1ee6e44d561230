package verify

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pkarpov/truthscan/internal/model"
)

// Verifier classifies evidence relevance and derives a verdict with a
// confidence score. Given identical inputs and reference date the result is
// bit-identical; the clock is injectable for tests.
type Verifier struct {
	supportCues          []string
	contradictCues       []string
	partialCues          []string
	authoritativeDomains []string
	recentYears          int

	// now supplies the reference date for recency bucketing
	now func() time.Time
}

// NewVerifier creates a verifier from configuration
func NewVerifier(cfg *model.VerifyConfig) *Verifier {
	if cfg == nil {
		cfg = &model.DefaultConfig().Verify
	}

	recentYears := cfg.RecentYears
	if recentYears <= 0 {
		recentYears = 2
	}

	return &Verifier{
		supportCues:          cfg.SupportCues,
		contradictCues:       cfg.ContradictCues,
		partialCues:          cfg.PartialCues,
		authoritativeDomains: cfg.AuthoritativeDomains,
		recentYears:          recentYears,
		now:                  time.Now,
	}
}

// Verify derives a verification result for a claim from its evidence list.
// An empty evidence list is a valid terminal outcome, not an error.
func (v *Verifier) Verify(claim model.Claim, evidence []model.EvidenceItem) model.VerificationResult {
	if len(evidence) == 0 {
		return model.VerificationResult{
			Verdict:    model.VerdictUnverified,
			Confidence: 0,
			Rationale:  "No evidence found",
			Evidence:   []model.EvidenceSummary{},
		}
	}

	refDate := v.now()

	var supportCount, contradictCount, partialCount int
	var authoritativeCount, recentCount int

	summary := make([]model.EvidenceSummary, 0, len(evidence))
	for _, ev := range evidence {
		relevance := v.analyzeRelevance(claim.Text, ev)

		switch relevance {
		case model.RelevanceSupports:
			supportCount++
		case model.RelevanceContradicts:
			contradictCount++
		case model.RelevancePartial:
			partialCount++
		}

		if v.isAuthoritative(ev.Domain) {
			authoritativeCount++
		}
		if ev.Date != "" && isRecent(ev.Date, refDate, v.recentYears) {
			recentCount++
		}

		summary = append(summary, model.EvidenceSummary{
			Title:     orUnknown(ev.Title),
			Domain:    orUnknown(ev.Domain),
			Date:      orUnknown(ev.Date),
			Finding:   extractFinding(ev, relevance),
			Relevance: relevance,
		})
	}

	verdict := determineVerdict(supportCount, contradictCount, partialCount)
	confidence := computeConfidence(
		supportCount, contradictCount, partialCount,
		authoritativeCount, recentCount, claim.Inferred,
	)
	rationale := buildRationale(confidence, supportCount, contradictCount, authoritativeCount, recentCount)

	return model.VerificationResult{
		Verdict:    verdict,
		Confidence: confidence,
		Rationale:  rationale,
		Evidence:   summary,
	}
}

var keywordRe = regexp.MustCompile(`\b\w{4,}\b`)

// analyzeRelevance classifies how one evidence item relates to the claim
func (v *Verifier) analyzeRelevance(claimText string, ev model.EvidenceItem) model.Relevance {
	combined := strings.ToLower(ev.Snippet + " " + ev.Title)

	supportScore := countCues(combined, v.supportCues)
	contradictScore := countCues(combined, v.contradictCues)
	partialScore := countCues(combined, v.partialCues)

	claimKeywords := wordSet(strings.ToLower(claimText))
	evidenceKeywords := wordSet(combined)
	overlap := 0
	for word := range claimKeywords {
		if evidenceKeywords[word] {
			overlap++
		}
	}
	threshold := float64(len(claimKeywords)) * 0.3
	if threshold < 2 {
		threshold = 2
	}
	relevant := float64(overlap) >= threshold

	switch {
	case contradictScore > supportScore && contradictScore > 0:
		return model.RelevanceContradicts
	case supportScore > contradictScore && supportScore > 0:
		return model.RelevanceSupports
	case partialScore > 0 || (relevant && supportScore == contradictScore):
		return model.RelevancePartial
	case relevant:
		// Deliberately permissive: keyword overlap with no sentiment cues
		// defaults to support rather than unclear
		return model.RelevanceSupports
	default:
		return model.RelevanceUnclear
	}
}

// isAuthoritative reports whether the domain matches the authority lexicon
func (v *Verifier) isAuthoritative(domain string) bool {
	lower := strings.ToLower(domain)
	for _, auth := range v.authoritativeDomains {
		if strings.Contains(lower, auth) {
			return true
		}
	}
	return false
}

// dateFormats lists the accepted evidence date layouts
var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// isRecent reports whether the date parses and falls within the recency
// window of the reference date. Unparseable dates never count as recent.
func isRecent(dateStr string, refDate time.Time, years int) bool {
	var parsed time.Time
	var ok bool
	for _, format := range dateFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			parsed, ok = t, true
			break
		}
	}
	if !ok {
		return false
	}

	yearsDiff := refDate.Sub(parsed).Hours() / 24 / 365.25
	return yearsDiff <= float64(years)
}

// determineVerdict runs the terminal verdict decision over the counters
func determineVerdict(support, contradict, partial int) model.Verdict {
	switch {
	case contradict > support && contradict > 0:
		return model.VerdictContradicted
	case support > contradict && support >= 2:
		return model.VerdictSupported
	case partial > 0 || (support == 1 && contradict == 0):
		return model.VerdictPartiallyTrue
	default:
		return model.VerdictUnverified
	}
}

// computeConfidence derives the 0-100 confidence score:
//
//	base       = min(70, support*20)
//	authority  = min(20, authoritative*5)
//	recency    = min(10, recent*2)
//	penalties  = contradict*15 + (inferred ? 10 : 0) + partial*5
func computeConfidence(support, contradict, partial, authoritative, recent int, inferred bool) int {
	base := support * 20
	if base > 70 {
		base = 70
	}

	authorityBonus := authoritative * 5
	if authorityBonus > 20 {
		authorityBonus = 20
	}

	recencyBonus := recent * 2
	if recencyBonus > 10 {
		recencyBonus = 10
	}

	confidence := base + authorityBonus + recencyBonus
	confidence -= contradict * 15
	confidence -= partial * 5
	if inferred {
		confidence -= 10
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}
	return confidence
}

// buildRationale joins the nonzero counters into a one-line rationale
func buildRationale(confidence, support, contradict, authoritative, recent int) string {
	var parts []string
	if support > 0 {
		parts = append(parts, fmt.Sprintf("%d supporting source(s)", support))
	}
	if authoritative > 0 {
		parts = append(parts, fmt.Sprintf("%d authoritative source(s)", authoritative))
	}
	if recent > 0 {
		parts = append(parts, fmt.Sprintf("%d recent source(s)", recent))
	}
	if contradict > 0 {
		parts = append(parts, fmt.Sprintf("%d contradicting source(s)", contradict))
	}

	if len(parts) == 0 {
		return "No reliable evidence found"
	}

	rationale := strings.Join(parts, ", ")
	if confidence < 50 {
		rationale += " (low confidence due to limited or mixed evidence)"
	} else if confidence > 80 {
		rationale += " (high confidence from multiple authoritative sources)"
	}
	return rationale
}

// extractFinding produces a one-line finding: the first sentence of the
// snippet truncated to 100 characters, then the title, then a template
func extractFinding(ev model.EvidenceItem, relevance model.Relevance) string {
	if ev.Snippet != "" {
		finding := strings.TrimSpace(strings.SplitN(ev.Snippet, ".", 2)[0])
		if finding != "" {
			if runes := []rune(finding); len(runes) > 100 {
				finding = string(runes[:97]) + "..."
			}
			return finding
		}
	}

	if ev.Title != "" {
		if runes := []rune(ev.Title); len(runes) > 100 {
			return string(runes[:100])
		}
		return ev.Title
	}

	domain := ev.Domain
	if domain == "" {
		domain = "source"
	}
	return fmt.Sprintf("Evidence from %s (%s)", domain, relevance)
}

// countCues counts how many cues from the lexicon appear in the text.
// Each cue counts once regardless of repetition.
func countCues(text string, cues []string) int {
	count := 0
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			count++
		}
	}
	return count
}

// wordSet collects the words of length >= 4 from lowercased text
func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range keywordRe.FindAllString(text, -1) {
		set[word] = true
	}
	return set
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
