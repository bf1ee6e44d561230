package model

import "time"

// ClaimResult pairs a claim with its verification outcome
type ClaimResult struct {
	Claim        Claim              `json:"claim"`
	Verification VerificationResult `json:"verification"`
}

// Response is the complete outcome of one pipeline invocation.
// Results appear in input claim order regardless of execution order.
type Response struct {
	Timestamp      time.Time     `json:"timestamp"`
	Input          string        `json:"input"`
	ClaimsVerified int           `json:"claims_verified"`
	Results        []ClaimResult `json:"results"`
	Summary        string        `json:"summary,omitempty"` // Present when more than one claim was verified
	Message        string        `json:"message,omitempty"` // Structured "no claims" outcome, not an error

	LLM *LLMSummary `json:"llm,omitempty"` // Optional LLM summary; never affects verdicts or confidence
}

// LLMSummary contains an optional LLM-generated summary of the response.
// It is produced after verification and never feeds back into scoring.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
