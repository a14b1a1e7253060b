package tool

import (
	"context"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/types"
)

// Tool represents a named, independently registered unit of capability that
// can be executed by the coach framework. Tools are the building blocks for
// coaching features (data retrievers, API clients, capture utilities) behind
// a uniform execution contract.
type Tool interface {
	// Name returns the unique identifier for this tool
	Name() string

	// Description returns a human-readable description of what this tool does
	Description() string

	// Execute runs the tool with the given input. Context is used for
	// cancellation, deadlines, and the per-attempt ExecutionContext values.
	Execute(ctx context.Context, input map[string]any) (map[string]any, error)
}

// InputValidator is an optional capability: tools that implement it have their
// input validated before every execution attempt. A validation failure
// short-circuits the call without consuming retries.
type InputValidator interface {
	ValidateInput(input map[string]any) ValidationResult
}

// HealthReporter is an optional capability: tools that implement it are probed
// by the HealthChecker. Tools without it always report healthy.
type HealthReporter interface {
	HealthCheck(ctx context.Context) types.HealthStatus
}

// Disposable is an optional capability: tools that implement it get a chance
// to release resources when they are unregistered. Dispose failures are
// logged, never propagated.
type Disposable interface {
	Dispose() error
}

// ValidationResult is the outcome of an InputValidator check.
type ValidationResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError describes a single invalid input parameter.
type FieldError struct {
	Parameter    string `json:"parameter"`
	Message      string `json:"message"`
	ReceivedType string `json:"received_type,omitempty"`
	ExpectedType string `json:"expected_type,omitempty"`
}

// Valid returns a passing ValidationResult.
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid returns a failing ValidationResult carrying the given field errors.
func Invalid(errs ...FieldError) ValidationResult {
	return ValidationResult{Valid: false, Errors: errs}
}
