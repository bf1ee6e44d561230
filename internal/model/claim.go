package model

// MaxQueriesPerClaim caps the number of search queries attached to a claim.
const MaxQueriesPerClaim = 3

// Claim represents a discrete factual assertion extracted from user input
type Claim struct {
	Text     string   `json:"text"`     // The claim text itself
	Inferred bool     `json:"inferred"` // Derived from a question or hedged statement, not a direct assertion
	Queries  []string `json:"queries"`  // Search queries for fact-checking (at most MaxQueriesPerClaim)
}
