package types

import (
	"fmt"

	"github.com/google/uuid"
)

// RequestID identifies a single top-level execution request. It is generated
// once per call and stays stable across all retry attempts of that call.
type RequestID string

// NewRequestID generates a new UUID v4 and returns it as a RequestID.
// It will never return an error as uuid.New() uses crypto/rand
// which panics on system-level failures (extremely rare).
func NewRequestID() RequestID {
	return RequestID(uuid.New().String())
}

// ParseRequestID parses and validates a string as a UUID, returning a RequestID.
// It returns an error if the string is not a valid UUID format.
func ParseRequestID(s string) (RequestID, error) {
	if s == "" {
		return "", fmt.Errorf("request ID cannot be empty")
	}

	parsed, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid UUID format: %w", err)
	}

	return RequestID(parsed.String()), nil
}

// String returns the string representation of the RequestID.
func (id RequestID) String() string {
	return string(id)
}

// IsZero checks if the RequestID is empty or zero-valued.
func (id RequestID) IsZero() bool {
	return id == ""
}
