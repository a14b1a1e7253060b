// Package builtins provides the small diagnostic tools registered by the CLI.
// They double as live examples of the capability interfaces: Echo carries a
// JSON-schema input validator, Clock a health probe.
package builtins

import (
	"context"
	"fmt"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/tool"
)

var echoSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"message": map[string]any{"type": "string", "minLength": 1},
		"repeat":  map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
	},
	"required":             []any{"message"},
	"additionalProperties": false,
}

// EchoTool returns its input message, optionally repeated. It validates input
// against a JSON schema before execution.
type EchoTool struct {
	validator *tool.SchemaValidator
}

// NewEchoTool creates the echo tool.
func NewEchoTool() *EchoTool {
	return &EchoTool{validator: tool.MustSchemaValidator(echoSchema)}
}

func (e *EchoTool) Name() string { return "echo" }

func (e *EchoTool) Description() string {
	return "Returns the provided message, optionally repeated"
}

// ValidateInput checks the input against the echo schema.
func (e *EchoTool) ValidateInput(input map[string]any) tool.ValidationResult {
	return e.validator.ValidateInput(input)
}

func (e *EchoTool) Execute(ctx context.Context, input map[string]any) (map[string]any, error) {
	message, _ := input["message"].(string)

	repeat := 1
	// JSON numbers decode as float64.
	if r, ok := input["repeat"].(float64); ok {
		repeat = int(r)
	}

	out := message
	for i := 1; i < repeat; i++ {
		out = fmt.Sprintf("%s %s", out, message)
	}

	return map[string]any{
		"echo":   out,
		"length": len(out),
	}, nil
}

var (
	_ tool.Tool           = (*EchoTool)(nil)
	_ tool.InputValidator = (*EchoTool)(nil)
)
