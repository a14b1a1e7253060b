package tool

import (
	"time"

	"golang.org/x/time/rate"
)

// Priority ranks a tool for discovery and scheduling purposes.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityCritical
)

// String returns a human-readable representation of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Descriptor contains tool metadata for discovery and introspection.
// It is created on registration, mutated on successful execution and on
// enable/disable, and destroyed on unregistration.
type Descriptor struct {
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Category       string     `json:"category,omitempty"`
	Priority       Priority   `json:"priority"`
	Enabled        bool       `json:"enabled"`
	RegisteredAt   time.Time  `json:"registered_at"`
	LastUsed       *time.Time `json:"last_used,omitempty"`
	ExecutionCount int64      `json:"execution_count"`
}

// registerOptions holds configuration applied at registration time.
type registerOptions struct {
	override  bool
	priority  Priority
	enabled   bool
	category  string
	rateLimit *rate.Limiter
}

// RegisterOption is a functional option for Registry.Register.
type RegisterOption func(*registerOptions)

// WithOverride allows registration to replace an existing tool of the same
// name. Without it, a duplicate name is a registration error.
func WithOverride() RegisterOption {
	return func(o *registerOptions) {
		o.override = true
	}
}

// WithPriority sets the tool's discovery priority. Default: PriorityNormal.
func WithPriority(p Priority) RegisterOption {
	return func(o *registerOptions) {
		o.priority = p
	}
}

// WithCategory tags the tool with a category for filtered discovery.
func WithCategory(category string) RegisterOption {
	return func(o *registerOptions) {
		o.category = category
	}
}

// Disabled registers the tool in the disabled state. Disabled tools are
// listed but refuse execution until re-enabled.
func Disabled() RegisterOption {
	return func(o *registerOptions) {
		o.enabled = false
	}
}

// WithRateLimit attaches a rate limiter to the tool. Calls arriving faster
// than the limiter allows fail fast with TOOL_RATE_LIMITED before the
// per-tool lock is taken.
func WithRateLimit(limiter *rate.Limiter) RegisterOption {
	return func(o *registerOptions) {
		o.rateLimit = limiter
	}
}

func defaultRegisterOptions() registerOptions {
	return registerOptions{
		priority: PriorityNormal,
		enabled:  true,
	}
}

// Filter selects tools for Registry.List. Zero value matches everything.
type Filter struct {
	// Category, when non-empty, matches only tools registered with it
	Category string

	// Enabled, when non-nil, matches only tools in that enabled state
	Enabled *bool

	// IncludeStats attaches a stats snapshot to each returned entry
	IncludeStats bool
}

// Info is a read-only projection of a registered tool, optionally carrying a
// stats snapshot.
type Info struct {
	Descriptor Descriptor      `json:"descriptor"`
	Stats      *ExecutionStats `json:"stats,omitempty"`
}
