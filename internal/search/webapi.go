package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkarpov/truthscan/internal/model"
	"github.com/pkarpov/truthscan/internal/util"
	"golang.org/x/net/html"
)

// WebAPIProvider queries a generic JSON search endpoint.
//
// The endpoint contract is a GET with q, key and optional site parameters,
// answering {"results": [{"title", "url", "snippet", "date"}]}. Which search
// service sits behind the endpoint is deployment configuration, not code.
type WebAPIProvider struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	maxResults int
}

// NewWebAPIProvider creates a provider for the configured endpoint
func NewWebAPIProvider(cfg model.SearchConfig) (*WebAPIProvider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("search base URL is required for the webapi provider")
	}

	maxResults := cfg.MaxResultsPerQuery
	if maxResults <= 0 {
		maxResults = 10
	}

	return &WebAPIProvider{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
		},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		maxResults: maxResults,
	}, nil
}

// Name returns the provider name
func (p *WebAPIProvider) Name() string {
	return "webapi"
}

type webAPIResponse struct {
	Results []Result `json:"results"`
}

// Search performs one query against the endpoint
func (p *WebAPIProvider) Search(ctx context.Context, query string, domainFilter string) ([]Result, error) {
	params := url.Values{}
	params.Set("q", query)
	if domainFilter != "" {
		params.Set("site", domainFilter)
	}
	if p.apiKey != "" {
		params.Set("key", p.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "TruthScan/0.1 (+https://github.com/pkarpov/truthscan)")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed webAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := parsed.Results
	if len(results) > p.maxResults {
		results = results[:p.maxResults]
	}

	// Search APIs highlight matched terms with markup; strip it
	for i := range results {
		results[i].Title = stripTags(results[i].Title)
		results[i].Snippet = stripTags(results[i].Snippet)
	}

	return results, nil
}

// stripTags removes HTML markup from a snippet, keeping visible text
func stripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String())
}
