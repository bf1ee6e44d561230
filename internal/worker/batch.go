package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkarpov/truthscan/internal/model"
)

// Checker verifies one statement end to end
type Checker interface {
	Process(ctx context.Context, input string) (*model.Response, error)
}

// CheckResult is the outcome of one batch statement
type CheckResult struct {
	Input    string
	Response *model.Response
	Err      error
}

// BatchProcessor verifies multiple statements concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// ProcessInputs verifies statements concurrently. Results are returned in
// input order regardless of completion order.
func (b *BatchProcessor) ProcessInputs(ctx context.Context, inputs []string) []CheckResult {
	if len(inputs) == 0 {
		return []CheckResult{}
	}

	results := make([]CheckResult, len(inputs))

	pool := NewPool(ctx, b.concurrency)
	for i, input := range inputs {
		i, input := i, input
		pool.Submit(func(ctx context.Context) {
			resp, err := b.checker.Process(ctx, input)
			results[i] = CheckResult{Input: input, Response: resp, Err: err}
		})
	}
	pool.Wait()

	return results
}

// ProcessFile reads statements from a file and verifies them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]CheckResult, error) {
	inputs, err := ReadStatementsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read statements: %w", err)
	}

	return b.ProcessInputs(ctx, inputs), nil
}

// ReadStatementsFromFile reads statements from a file, one per line.
// Blank lines and #-comments are skipped.
func ReadStatementsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var statements []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		statements = append(statements, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return statements, nil
}
