package model

import "time"

// Config holds the complete TruthScan configuration
type Config struct {
	Search      SearchConfig      `yaml:"search"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Verify      VerifyConfig      `yaml:"verify"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
	LLM         LLMConfig         `yaml:"llm"`
}

// SearchConfig configures the search provider
type SearchConfig struct {
	// Provider name: "webapi" or "" (disabled)
	Provider string `yaml:"provider"`

	// BaseURL of the JSON search endpoint (webapi provider)
	BaseURL string `yaml:"base_url"`

	// APIKey sent with each search request
	APIKey string `yaml:"api_key"`

	// Timeout per search query
	Timeout time.Duration `yaml:"timeout"`

	// RetryAttempts per query; a query that exhausts its budget yields no results
	RetryAttempts int `yaml:"retry_attempts"`

	// MaxResultsPerQuery caps results taken from a single query
	MaxResultsPerQuery int `yaml:"max_results_per_query"`

	// RequestsPerSecond and Burst bound the per-domain query rate
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`

	// Proxy settings (fall back to environment when empty)
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
	NoProxy    string `yaml:"no_proxy"`
}

// RetrievalConfig configures evidence retrieval and ranking
type RetrievalConfig struct {
	// MaxSourcesPerClaim caps the evidence list passed to the verifier
	MaxSourcesPerClaim int `yaml:"max_sources_per_claim"`

	// Domain tiers, most reliable first. Matching is by host suffix.
	FactCheckDomains []string `yaml:"fact_check_domains"`
	OfficialDomains  []string `yaml:"official_domains"`
	NewsDomains      []string `yaml:"news_domains"`
	TrustedDomains   []string `yaml:"trusted_domains"`

	// DemoFallback enables synthetic evidence when every search strategy
	// comes back empty. Synthetic records are always flagged as such.
	DemoFallback bool `yaml:"demo_fallback"`
}

// VerifyConfig configures relevance analysis and scoring
type VerifyConfig struct {
	// RecentYears is the recency window for the recency bonus
	RecentYears int `yaml:"recent_years"`

	// Relevance lexicons, matched as substrings of snippet+title
	SupportCues    []string `yaml:"support_cues"`
	ContradictCues []string `yaml:"contradict_cues"`
	PartialCues    []string `yaml:"partial_cues"`

	// AuthoritativeDomains earn the authority bonus, matched as substrings
	AuthoritativeDomains []string `yaml:"authoritative_domains"`
}

// CacheConfig configures the search query cache
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// ConcurrencyConfig configures parallelism
type ConcurrencyConfig struct {
	// ClaimWorkers bounds concurrent claim verification within one input
	ClaimWorkers int `yaml:"claim_workers"`

	// BatchWorkers bounds concurrent statements in batch mode
	BatchWorkers int `yaml:"batch_workers"`
}

// OutputConfig configures rendering
type OutputConfig struct {
	Verbose              bool `yaml:"verbose"`
	IncludeFooter        bool `yaml:"include_footer"`
	MaxEvidenceDisplayed int  `yaml:"max_evidence_displayed"`
}

// LLMConfig configures the optional summary provider
type LLMConfig struct {
	// Provider name: "openai", "ollama", "" (disabled)
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`

	// Timeout in seconds for summary generation
	Timeout   int `yaml:"timeout"`
	MaxTokens int `yaml:"max_tokens"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Provider:           "",
			Timeout:            10 * time.Second,
			RetryAttempts:      2,
			MaxResultsPerQuery: 10,
			RequestsPerSecond:  2,
			Burst:              5,
		},
		Retrieval: RetrievalConfig{
			MaxSourcesPerClaim: 5,
			FactCheckDomains:   []string{"snopes.com", "politifact.com", "factcheck.org"},
			OfficialDomains:    []string{"who.int", "cdc.gov", "nih.gov", "fda.gov", "un.org"},
			NewsDomains:        []string{"reuters.com", "ap.org", "bbc.com", "npr.org"},
			TrustedDomains: []string{
				"snopes.com", "politifact.com", "factcheck.org", "fullfact.org", "checkyourfact.com",
				"who.int", "cdc.gov", "nih.gov", "fda.gov", "epa.gov", "nasa.gov",
				"un.org", "europa.eu", "gov.uk",
				"reuters.com", "ap.org", "bbc.com", "npr.org", "pbs.org",
				"science.org", "nature.com", "pubmed.ncbi.nlm.nih.gov", "scholar.google.com",
			},
			DemoFallback: true,
		},
		Verify: VerifyConfig{
			RecentYears: 2,
			SupportCues: []string{
				"true", "correct", "accurate", "confirmed", "verified",
				"fact", "evidence shows", "study confirms", "proven",
			},
			ContradictCues: []string{
				"false", "incorrect", "misleading", "debunked", "untrue",
				"hoax", "myth", "not true", "no evidence", "disproven",
			},
			PartialCues: []string{
				"partially", "somewhat", "mostly", "but", "however",
				"misleading", "context needed", "depends",
			},
			AuthoritativeDomains: []string{
				"who.int", "cdc.gov", "nih.gov", "fda.gov", "un.org",
				"snopes.com", "politifact.com", "factcheck.org",
				"reuters.com", "ap.org", "bbc.com", "npr.org",
				"science.org", "nature.com", "pubmed",
			},
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             15 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			ClaimWorkers: 4,
			BatchWorkers: 4,
		},
		Output: OutputConfig{
			IncludeFooter:        true,
			MaxEvidenceDisplayed: 3,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}
