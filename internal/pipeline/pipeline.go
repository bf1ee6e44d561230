package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkarpov/truthscan/internal/cache"
	"github.com/pkarpov/truthscan/internal/extract"
	"github.com/pkarpov/truthscan/internal/llm"
	"github.com/pkarpov/truthscan/internal/model"
	"github.com/pkarpov/truthscan/internal/retrieve"
	"github.com/pkarpov/truthscan/internal/search"
	"github.com/pkarpov/truthscan/internal/verify"
	"github.com/pkarpov/truthscan/internal/worker"
)

// Pipeline orchestrates the extract -> retrieve -> verify sequence and
// assembles the response consumed by the renderer
type Pipeline struct {
	extractor  *extract.Extractor
	retriever  *retrieve.Retriever
	verifier   *verify.Verifier
	renderer   *Renderer
	summarizer *llm.Summarizer // Optional LLM summarizer (nil if disabled)
	audit      *AuditLog
	config     *model.Config
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	provider, err := search.NewProvider(cfg.Search)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: search provider disabled: %v\n", err)
		provider = nil
	}

	var queryCache cache.Cache
	if cfg.Cache.Enabled {
		queryCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	limiter := worker.NewLimiter(cfg.Search.RequestsPerSecond, cfg.Search.Burst)

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		extractor:  extract.NewExtractor(),
		retriever:  retrieve.NewRetriever(provider, queryCache, limiter, cfg),
		verifier:   verify.NewVerifier(&cfg.Verify),
		renderer:   NewRenderer(cfg.Output.IncludeFooter, cfg.Output.MaxEvidenceDisplayed),
		summarizer: summarizer,
		audit:      NewAuditLog(),
		config:     cfg,
	}
}

// Process runs the full workflow on one input. A claim that cannot be
// verified never prevents the other claims from being verified, and an
// input yielding no claims is a structured outcome, not an error.
func (p *Pipeline) Process(ctx context.Context, input string) (*model.Response, error) {
	response := &model.Response{
		Timestamp: time.Now().UTC(),
		Input:     input,
	}

	claims := p.extractor.Extract(input)
	if len(claims) == 0 {
		response.Message = "No factual claims could be extracted from the input."
		return response, nil
	}

	// Aggregate deadline: per-query timeout times the worst-case number of
	// provider queries this input can trigger
	perQuery := p.config.Search.Timeout
	if perQuery <= 0 {
		perQuery = 10 * time.Second
	}
	budget := perQuery * time.Duration(p.retriever.QueriesPerClaim()*len(claims))
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	workers := p.config.Concurrency.ClaimWorkers
	if workers <= 0 {
		workers = 1
	}

	// Claims are verified concurrently but results keep input order
	results := make([]model.ClaimResult, len(claims))
	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, claim := range claims {
		wg.Add(1)
		go func(idx int, c model.Claim) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			evidence := p.retriever.Retrieve(ctx, c.Text)
			verification := p.verifier.Verify(c, evidence)

			results[idx] = model.ClaimResult{Claim: c, Verification: verification}
			p.audit.Append(newAuditEntry(c, evidence, verification))
		}(i, claim)
	}
	wg.Wait()

	response.Results = results
	response.ClaimsVerified = len(results)
	if len(results) > 1 {
		response.Summary = buildSummary(results)
	}

	// LLM summary runs after verification and never affects it
	if p.summarizer != nil && p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, response)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			response.LLM = summary
		}
	}

	return response, nil
}

// Audit returns a copy of the audit log entries
func (p *Pipeline) Audit() []AuditEntry {
	return p.audit.Entries()
}

// Renderer returns the pipeline's renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// newAuditEntry builds the audit record for one verified claim
func newAuditEntry(claim model.Claim, evidence []model.EvidenceItem, verification model.VerificationResult) AuditEntry {
	topSources := make([]string, 0, 3)
	for _, ev := range evidence {
		if len(topSources) == 3 {
			break
		}
		topSources = append(topSources, ev.Title)
	}

	return AuditEntry{
		Timestamp:  time.Now().UTC(),
		Claim:      claim.Text,
		Queries:    claim.Queries,
		TopSources: topSources,
		Confidence: verification.Confidence,
		Verdict:    verification.Verdict,
	}
}

// buildSummary produces the one-line overview for multi-claim responses
func buildSummary(results []model.ClaimResult) string {
	var supported, contradicted, unverified int
	for _, r := range results {
		switch r.Verification.Verdict {
		case model.VerdictSupported:
			supported++
		case model.VerdictContradicted:
			contradicted++
		case model.VerdictUnverified:
			unverified++
		}
	}

	summary := fmt.Sprintf("Verified %d claim(s):", len(results))
	if supported > 0 {
		summary += fmt.Sprintf(" %d supported,", supported)
	}
	if contradicted > 0 {
		summary += fmt.Sprintf(" %d contradicted,", contradicted)
	}
	if unverified > 0 {
		summary += fmt.Sprintf(" %d unverified,", unverified)
	}
	return strings.TrimSuffix(summary, ",")
}
