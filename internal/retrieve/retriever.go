package retrieve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pkarpov/truthscan/internal/cache"
	"github.com/pkarpov/truthscan/internal/model"
	"github.com/pkarpov/truthscan/internal/search"
	"github.com/pkarpov/truthscan/internal/worker"
)

// Retriever gathers evidence for a claim across source tiers.
//
// Strategy order: dedicated fact-checkers, official sources, trusted news,
// then one unscoped query, short-circuiting once the source cap is reached.
// Every failure mode inside retrieval degrades to "no results" for that
// query; an empty evidence list is a legitimate output, not an error.
type Retriever struct {
	provider search.Provider
	cache    cache.Cache
	limiter  *worker.Limiter
	cfg      model.RetrievalConfig

	queryTimeout  time.Duration
	retryAttempts int

	now func() time.Time
}

// NewRetriever creates a retriever. The provider may be nil (search disabled)
// and the cache may be nil (caching disabled).
func NewRetriever(provider search.Provider, c cache.Cache, limiter *worker.Limiter, cfg *model.Config) *Retriever {
	retrieval := cfg.Retrieval
	if retrieval.MaxSourcesPerClaim <= 0 {
		retrieval.MaxSourcesPerClaim = 5
	}

	attempts := cfg.Search.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}

	timeout := cfg.Search.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Retriever{
		provider:      provider,
		cache:         c,
		limiter:       limiter,
		cfg:           retrieval,
		queryTimeout:  timeout,
		retryAttempts: attempts,
		now:           time.Now,
	}
}

// QueriesPerClaim returns the maximum number of provider queries one claim
// can trigger. Callers use it to derive aggregate deadlines.
func (r *Retriever) QueriesPerClaim() int {
	return len(r.cfg.FactCheckDomains) + len(r.cfg.OfficialDomains) + len(r.cfg.NewsDomains) + 1
}

// Retrieve gathers, deduplicates, ranks and caps evidence for a claim
func (r *Retriever) Retrieve(ctx context.Context, claimText string) []model.EvidenceItem {
	max := r.cfg.MaxSourcesPerClaim

	var evidence []model.EvidenceItem
	for _, tier := range [][]string{r.cfg.FactCheckDomains, r.cfg.OfficialDomains, r.cfg.NewsDomains} {
		for _, domain := range tier {
			if len(evidence) >= max {
				break
			}
			query := fmt.Sprintf("site:%s %q", domain, claimText)
			evidence = append(evidence, r.searchQuery(ctx, query, domain)...)
		}
		if len(evidence) >= max {
			break
		}
	}

	if len(evidence) < max {
		query := fmt.Sprintf("%q fact check verify", claimText)
		evidence = append(evidence, r.searchQuery(ctx, query, "")...)
	}

	// Last-resort demonstration fallback, clearly flagged as synthetic and
	// never merged with real search output
	if len(evidence) == 0 && r.cfg.DemoFallback {
		evidence = demoEvidence(claimText, r.now())
	}

	evidence = dedupeByURL(evidence)
	r.rank(evidence)

	if len(evidence) > max {
		evidence = evidence[:max]
	}
	return evidence
}

// searchQuery runs one provider query with rate limiting, caching and a
// small retry budget. All failures degrade to an empty result.
func (r *Retriever) searchQuery(ctx context.Context, query string, domain string) []model.EvidenceItem {
	if r.provider == nil {
		return nil
	}

	key := cache.QueryKey(query)
	if r.cache != nil {
		if data, found := r.cache.Get(key); found {
			var items []model.EvidenceItem
			if err := json.Unmarshal(data, &items); err == nil {
				return items
			}
		}
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, domain); err != nil {
			return nil
		}
	}

	var results []search.Result
	var err error
	for attempt := 0; attempt < r.retryAttempts; attempt++ {
		qctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
		results, err = r.provider.Search(qctx, query, domain)
		cancel()
		if err == nil {
			break
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: search %q failed, skipping: %v\n", query, err)
		return nil
	}

	items := make([]model.EvidenceItem, 0, len(results))
	for _, res := range results {
		items = append(items, model.EvidenceItem{
			Title:   res.Title,
			URL:     res.URL,
			Domain:  DomainFromURL(res.URL),
			Snippet: res.Snippet,
			Date:    res.Date,
		})
	}

	if r.cache != nil {
		if data, err := json.Marshal(items); err == nil {
			_ = r.cache.Set(key, data, 0)
		}
	}

	return items
}

// rank orders evidence by source tier, highest first, preserving discovery
// order within a tier
func (r *Retriever) rank(evidence []model.EvidenceItem) {
	sort.SliceStable(evidence, func(i, j int) bool {
		return r.tierOf(evidence[i].Domain) > r.tierOf(evidence[j].Domain)
	})
}

// tierOf classifies a domain into a reliability tier
func (r *Retriever) tierOf(domain string) model.SourceTier {
	switch {
	case matchesAny(domain, r.cfg.FactCheckDomains):
		return model.TierFactCheck
	case matchesAny(domain, r.cfg.OfficialDomains):
		return model.TierOfficial
	case matchesAny(domain, r.cfg.NewsDomains):
		return model.TierNews
	case matchesAny(domain, r.cfg.TrustedDomains):
		return model.TierTrusted
	default:
		return model.TierUnranked
	}
}

// matchesAny reports whether host equals or is a subdomain of any entry
func matchesAny(host string, domains []string) bool {
	host = strings.ToLower(host)
	for _, domain := range domains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// dedupeByURL drops later items that repeat an earlier non-empty URL.
// Items without a URL are never treated as duplicates of each other.
func dedupeByURL(evidence []model.EvidenceItem) []model.EvidenceItem {
	seen := make(map[string]bool)
	unique := evidence[:0]

	for _, item := range evidence {
		if item.URL != "" {
			if seen[item.URL] {
				continue
			}
			seen[item.URL] = true
		}
		unique = append(unique, item)
	}

	return unique
}

// DomainFromURL derives the host of a URL with any www. prefix stripped
func DomainFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := strings.ToLower(parsed.Hostname())
	return strings.TrimPrefix(host, "www.")
}
