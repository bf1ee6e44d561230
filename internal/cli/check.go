package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkarpov/truthscan/internal/model"
	"github.com/pkarpov/truthscan/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	inFile       string
	outJSON      string
	outMD        string
	checkTimeout time.Duration
	noCache      bool
	noFooter     bool
	noDemo       bool
	showAudit    bool
	searchURL    string
	searchKey    string
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <statement>",
	Short: "Verify a single statement and report verdicts per claim",
	Long: `Check analyzes one statement to:
- Extract the factual claims it makes
- Retrieve evidence from fact-checkers, official bodies, and news outlets
- Classify each source as supporting, contradicting, or partial
- Score each claim with a verdict and a confidence percentage

Example:
  truthscan check "The Earth orbits the Sun"
  truthscan check "Vaccines cause autism" --json report.json --md report.md
  truthscan check "Water boils at 100C" --llm openai --llm-model gpt-4o-mini
  truthscan check --file statement.txt --json report.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Input/output flags
	checkCmd.Flags().StringVar(&inFile, "file", "", "read the statement from a file instead of an argument")
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().BoolVar(&showAudit, "audit", false, "print the audit trail after the report")

	// Retrieval flags
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().StringVar(&searchURL, "search-url", "", "base URL of the JSON search endpoint")
	checkCmd.Flags().StringVar(&searchKey, "search-key", "", "API key for the search endpoint (or TRUTHSCAN_SEARCH_KEY)")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the query cache (force fresh searches)")
	checkCmd.Flags().BoolVar(&noDemo, "no-demo", false, "disable synthetic demo evidence when searches come back empty")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in reports")

	// LLM flags
	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	statement, err := readStatement(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", statement)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", checkTimeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg)

	response, err := p.Process(ctx, statement)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d claims\n", len(response.Results))
		if response.LLM != nil && response.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", response.LLM.Provider, response.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	renderer := p.Renderer()
	fmt.Println(renderer.RenderText(response))

	if outJSON != "" {
		if err := renderer.RenderJSON(response, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ JSON report: %s\n", outJSON)
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(response, outMD); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Markdown report: %s\n", outMD)
	}

	if showAudit {
		printAudit(p.Audit())
	}

	return nil
}

// readStatement resolves the input statement from the argument or --file
func readStatement(args []string) (string, error) {
	switch {
	case len(args) == 1 && inFile != "":
		return "", fmt.Errorf("provide a statement argument or --file, not both")
	case len(args) == 1:
		return args[0], nil
	case inFile != "":
		data, err := os.ReadFile(inFile)
		if err != nil {
			return "", fmt.Errorf("read statement file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	default:
		return "", fmt.Errorf("a statement argument or --file is required")
	}
}

// buildConfig assembles the configuration from flags and environment
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Retrieval.DemoFallback = !noDemo
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if searchURL != "" {
		cfg.Search.Provider = "webapi"
		cfg.Search.BaseURL = searchURL
		cfg.Search.APIKey = searchKey
		if cfg.Search.APIKey == "" {
			cfg.Search.APIKey = os.Getenv("TRUTHSCAN_SEARCH_KEY")
		}
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			baseURL := os.Getenv("OLLAMA_BASE_URL")
			if baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

// printAudit writes the audit trail to stderr
func printAudit(entries []pipeline.AuditEntry) {
	fmt.Fprintf(os.Stderr, "\nAudit trail (%d entries):\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(os.Stderr, "  [%s] %q -> %s (%d%%)\n",
			e.Timestamp.Format(time.RFC3339), e.Claim, e.Verdict, e.Confidence)
		for _, q := range e.Queries {
			fmt.Fprintf(os.Stderr, "    query: %s\n", q)
		}
		for _, s := range e.TopSources {
			fmt.Fprintf(os.Stderr, "    source: %s\n", s)
		}
	}
}
