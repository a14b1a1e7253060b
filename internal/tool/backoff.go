package tool

import (
	"math"
	"time"
)

// BackoffPolicy defines the delay schedule between retry attempts.
type BackoffPolicy struct {
	// InitialDelay is the delay before the first retry attempt
	InitialDelay time.Duration `json:"initial_delay"`

	// MaxDelay caps the delay between retry attempts
	MaxDelay time.Duration `json:"max_delay"`

	// Multiplier is the factor by which the delay grows per attempt
	Multiplier float64 `json:"multiplier"`
}

// DefaultBackoffPolicy returns the standard schedule: 1s, 2s, 4s, ... capped
// at 10s.
func DefaultBackoffPolicy() BackoffPolicy {
	return BackoffPolicy{
		InitialDelay: time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2,
	}
}

// Delay calculates the delay to insert after the given zero-based attempt.
func (p BackoffPolicy) Delay(attempt int) time.Duration {
	delay := time.Duration(float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt)))
	if delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}
