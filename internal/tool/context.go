package tool

import (
	"context"
	"time"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/types"
)

// ExecutionContext is the per-attempt ambient data supplied to every tool
// invocation. RequestID is generated once per top-level call and stays stable
// across retries; Attempt and Timestamp are fresh for each attempt.
type ExecutionContext struct {
	RequestID   types.RequestID `json:"request_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Attempt     int             `json:"attempt"`
	MaxAttempts int             `json:"max_attempts"`
	Priority    Priority        `json:"priority"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
}

// contextKey is an unexported type to prevent collisions with context keys
// defined in other packages.
type contextKey struct{}

// NewContext returns a copy of parent carrying the ExecutionContext.
func NewContext(parent context.Context, ec ExecutionContext) context.Context {
	return context.WithValue(parent, contextKey{}, ec)
}

// FromContext extracts the ExecutionContext from ctx, if present.
func FromContext(ctx context.Context) (ExecutionContext, bool) {
	ec, ok := ctx.Value(contextKey{}).(ExecutionContext)
	return ec, ok
}
