package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkarpov/truthscan/internal/model"
)

// fakeChecker echoes the input back and fails on demand
type fakeChecker struct {
	failOn string
}

func (f *fakeChecker) Process(ctx context.Context, input string) (*model.Response, error) {
	if input == f.failOn {
		return nil, fmt.Errorf("simulated failure")
	}
	return &model.Response{Input: input, ClaimsVerified: 1}, nil
}

func TestBatchProcessor_PreservesInputOrder(t *testing.T) {
	processor := NewBatchProcessor(&fakeChecker{}, 4)

	inputs := []string{"first claim", "second claim", "third claim", "fourth claim"}
	results := processor.ProcessInputs(context.Background(), inputs)

	if len(results) != len(inputs) {
		t.Fatalf("Expected %d results, got %d", len(inputs), len(results))
	}

	for i, result := range results {
		if result.Input != inputs[i] {
			t.Errorf("Position %d: expected input '%s', got '%s'", i, inputs[i], result.Input)
		}
		if result.Err != nil {
			t.Errorf("Position %d: unexpected error %v", i, result.Err)
		}
		if result.Response == nil || result.Response.Input != inputs[i] {
			t.Errorf("Position %d: response does not match input", i)
		}
	}
}

func TestBatchProcessor_FailureIsIsolated(t *testing.T) {
	processor := NewBatchProcessor(&fakeChecker{failOn: "bad statement"}, 2)

	inputs := []string{"good one", "bad statement", "another good one"}
	results := processor.ProcessInputs(context.Background(), inputs)

	if results[0].Err != nil || results[2].Err != nil {
		t.Error("Expected surrounding statements to succeed")
	}
	if results[1].Err == nil {
		t.Error("Expected the failing statement to carry its error")
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	processor := NewBatchProcessor(&fakeChecker{}, 2)

	results := processor.ProcessInputs(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("Expected 0 results for empty input, got %d", len(results))
	}
}

func TestReadStatementsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statements.txt")
	content := `# comment line
The Earth is round.

Vaccines are safe.
  # indented comment
  Honey never spoils.
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	statements, err := ReadStatementsFromFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"The Earth is round.", "Vaccines are safe.", "Honey never spoils."}
	if len(statements) != len(want) {
		t.Fatalf("Expected %d statements, got %d: %v", len(want), len(statements), statements)
	}
	for i, s := range statements {
		if s != want[i] {
			t.Errorf("Position %d: expected '%s', got '%s'", i, want[i], s)
		}
	}
}

func TestReadStatementsFromFile_Missing(t *testing.T) {
	_, err := ReadStatementsFromFile("/nonexistent/statements.txt")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}
