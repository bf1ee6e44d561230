package model

// EvidenceItem represents one retrieved source record relevant to a claim
type EvidenceItem struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Domain    string `json:"domain,omitempty"`    // Host with www. stripped, derived from URL when absent
	Snippet   string `json:"snippet,omitempty"`
	Date      string `json:"date,omitempty"`      // Free-form; parsers must tolerate multiple formats or absence
	Synthetic bool   `json:"synthetic,omitempty"` // True for demonstration-mode records, never set on real search output
}

// Relevance classifies how a single evidence item relates to a claim
type Relevance string

const (
	RelevanceSupports    Relevance = "supports"
	RelevanceContradicts Relevance = "contradicts"
	RelevancePartial     Relevance = "partial"
	RelevanceUnclear     Relevance = "unclear"
)

// SourceTier ranks evidence sources by reliability
type SourceTier int

const (
	TierUnranked  SourceTier = 0 // No trust signal
	TierTrusted   SourceTier = 1 // Explicitly trusted domain
	TierNews      SourceTier = 2 // Major wire/broadcast news
	TierOfficial  SourceTier = 3 // Government, health and science authorities
	TierFactCheck SourceTier = 4 // Dedicated fact-checking organizations
)

func (t SourceTier) String() string {
	switch t {
	case TierFactCheck:
		return "fact-checker"
	case TierOfficial:
		return "official"
	case TierNews:
		return "news"
	case TierTrusted:
		return "trusted"
	default:
		return "unranked"
	}
}
