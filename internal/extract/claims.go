package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkarpov/truthscan/internal/model"
)

// Extractor turns raw text into discrete factual claims
type Extractor struct {
	factualCues  []string
	questionCues []string
	hedgeCues    []string
	stopwords    map[string]bool
}

// NewExtractor creates a claim extractor with the default lexicons
func NewExtractor() *Extractor {
	return &Extractor{
		factualCues: []string{
			"is", "are", "was", "were", "has", "have", "had",
			"causes", "caused", "leads to", "results in",
			"according to", "study shows", "research indicates",
			"fact", "truth", "proven", "evidence",
		},
		// A question still counts as a claim when it reports an assertion
		questionCues: []string{"claim", "say", "report", "fact"},
		hedgeCues:    []string{"might", "could", "possibly", "perhaps", "maybe", "seems"},
		stopwords: toSet([]string{
			"the", "a", "an", "is", "are", "was", "were", "be", "been",
			"have", "has", "had", "do", "does", "did", "will", "would",
			"this", "that", "these", "those", "it", "its", "they", "them",
		}),
	}
}

var (
	listItemRe    = regexp.MustCompile(`(?m)^\d+[.)]\s*(.+)`)
	sentenceEndRe = regexp.MustCompile(`[.!?]+`)
	wordRe        = regexp.MustCompile(`\b\w+\b`)
)

// Extract extracts claims from text. It never fails: empty input yields an
// empty list, and input with no recognizable claim degrades to a single
// inferred claim covering the whole text.
func (e *Extractor) Extract(text string) []model.Claim {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	// Numbered/bulleted list items short-circuit sentence-level extraction
	if listClaims := e.extractListClaims(text); len(listClaims) > 0 {
		return listClaims
	}

	var claims []model.Claim
	for _, sentence := range splitSentences(text) {
		if !e.looksLikeClaim(sentence) {
			continue
		}
		claims = append(claims, model.Claim{
			Text:     sentence,
			Inferred: e.isInferred(sentence),
			Queries:  e.generateQueries(sentence),
		})
	}

	// Fallback: treat the entire input as one inferred claim
	if len(claims) == 0 {
		claims = append(claims, model.Claim{
			Text:     text,
			Inferred: true,
			Queries:  e.generateQueries(text),
		})
	}

	return claims
}

// extractListClaims pulls claims out of numbered list items ("1. ...", "2) ...")
func (e *Extractor) extractListClaims(text string) []model.Claim {
	var claims []model.Claim
	for _, match := range listItemRe.FindAllStringSubmatch(text, -1) {
		item := strings.TrimSpace(match[1])
		if !e.looksLikeClaim(item) {
			continue
		}
		claims = append(claims, model.Claim{
			Text:     item,
			Inferred: false,
			Queries:  e.generateQueries(item),
		})
	}
	return claims
}

// splitSentences splits text on runs of sentence terminators.
// The terminators are consumed, so downstream question checks only see
// "?" on list items and on the whole-input fallback.
func splitSentences(text string) []string {
	var sentences []string
	for _, part := range sentenceEndRe.Split(text, -1) {
		if s := strings.TrimSpace(part); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// looksLikeClaim reports whether text reads as a verifiable factual assertion
func (e *Extractor) looksLikeClaim(text string) bool {
	lower := strings.ToLower(text)

	if len(strings.Fields(text)) < 3 {
		return false
	}

	if strings.HasSuffix(strings.TrimSpace(text), "?") && !containsAny(lower, e.questionCues) {
		return false
	}

	return containsAny(lower, e.factualCues)
}

// isInferred reports whether a claim is derived rather than directly asserted
func (e *Extractor) isInferred(text string) bool {
	if strings.HasSuffix(strings.TrimSpace(text), "?") {
		return true
	}
	return containsAny(strings.ToLower(text), e.hedgeCues)
}

// generateQueries builds fact-checking queries for a claim, capped at
// model.MaxQueriesPerClaim. The key-term candidate only surfaces when an
// earlier candidate is dropped.
func (e *Extractor) generateQueries(claimText string) []string {
	queries := []string{
		claimText,
		fmt.Sprintf("%q fact check", claimText),
		fmt.Sprintf("%q verify", claimText),
	}

	if terms := e.keyTerms(claimText); len(terms) > 0 {
		if len(terms) > 3 {
			terms = terms[:3]
		}
		queries = append(queries, strings.Join(terms, " ")+" fact check")
	}

	if len(queries) > model.MaxQueriesPerClaim {
		queries = queries[:model.MaxQueriesPerClaim]
	}
	return queries
}

// keyTerms extracts up to five non-stopword terms in order of first occurrence
func (e *Extractor) keyTerms(text string) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, word := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len(word) <= 2 || e.stopwords[word] || seen[word] {
			continue
		}
		seen[word] = true
		terms = append(terms, word)
		if len(terms) == 5 {
			break
		}
	}
	return terms
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
