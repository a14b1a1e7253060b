package tool

import (
	"time"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/types"
)

// ExecutionResult is the single structured outcome of an engine call.
// Exactly one variant is active: a success carries Data and Metadata, a
// failure carries Error. Execute never returns a partially populated result.
type ExecutionResult struct {
	Success  bool            `json:"success"`
	Data     map[string]any  `json:"data,omitempty"`
	Metadata *ResultMetadata `json:"metadata,omitempty"`
	Error    *ExecutionError `json:"error,omitempty"`
}

// ResultMetadata describes how a successful execution went.
type ResultMetadata struct {
	// ExecutionTime is the duration of the winning attempt, backoff excluded
	ExecutionTime time.Duration `json:"execution_time"`

	// Attempts is the total number of attempts made, the winning one included
	Attempts int `json:"attempts"`

	// Source is the name of the tool that produced the data
	Source string `json:"source"`
}

// ExecutionError is the failure variant payload.
type ExecutionError struct {
	Code    types.ErrorCode `json:"code"`
	Message string          `json:"message"`
	Details any             `json:"details,omitempty"`
}

// successResult assembles the success variant.
func successResult(data map[string]any, meta ResultMetadata) ExecutionResult {
	return ExecutionResult{
		Success:  true,
		Data:     data,
		Metadata: &meta,
	}
}

// failureResult assembles the failure variant.
func failureResult(code types.ErrorCode, message string, details any) ExecutionResult {
	return ExecutionResult{
		Success: false,
		Error: &ExecutionError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
