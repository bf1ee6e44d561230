package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkarpov/truthscan/internal/model"
)

// Result is one record returned by a search provider
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Date    string `json:"date,omitempty"`
}

// Provider defines the interface for search backends.
//
// Search returns the results for a query, optionally scoped to a domain.
// Zero results is a valid response, not an error; an error indicates a
// transport failure and callers treat it as "no results" after retries.
type Provider interface {
	// Name returns the provider name
	Name() string

	Search(ctx context.Context, query string, domainFilter string) ([]Result, error)
}

// NewProvider creates a search provider from configuration.
// An empty provider name disables search (nil, nil): retrieval then relies
// on the demonstration fallback or yields no evidence.
func NewProvider(cfg model.SearchConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "webapi":
		return NewWebAPIProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown search provider: %s (supported: webapi)", cfg.Provider)
	}
}
