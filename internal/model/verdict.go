package model

import "encoding/json"

// Verdict is the categorical outcome of verifying a claim
type Verdict int

const (
	VerdictUnverified Verdict = iota
	VerdictSupported
	VerdictPartiallyTrue
	VerdictContradicted
)

// String returns the stable verdict key used in JSON and logs
func (v Verdict) String() string {
	switch v {
	case VerdictSupported:
		return "supported"
	case VerdictPartiallyTrue:
		return "partially_true"
	case VerdictContradicted:
		return "contradicted"
	default:
		return "unverified"
	}
}

// Label returns the human-readable verdict used in rendered reports
func (v Verdict) Label() string {
	switch v {
	case VerdictSupported:
		return "Supported"
	case VerdictPartiallyTrue:
		return "Partially true"
	case VerdictContradicted:
		return "Contradicted"
	default:
		return "Unverified / Insufficient evidence"
	}
}

// MarshalJSON encodes the verdict as its stable key
func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// EvidenceSummary is the per-evidence digest carried in a verification result
type EvidenceSummary struct {
	Title     string    `json:"title"`
	Domain    string    `json:"domain"`
	Date      string    `json:"date"`
	Finding   string    `json:"finding"`
	Relevance Relevance `json:"relevance"`
}

// VerificationResult is the outcome of verifying one claim against its evidence.
// It is derived deterministically from the claim and evidence and never mutated.
type VerificationResult struct {
	Verdict    Verdict           `json:"verdict"`
	Confidence int               `json:"confidence_score"` // Always within [0, 100]
	Rationale  string            `json:"rationale"`
	Evidence   []EvidenceSummary `json:"evidence_summary"` // Preserves retrieval ranking order
}
