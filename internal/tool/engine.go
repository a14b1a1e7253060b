package tool

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/events"
	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/types"
)

// DefaultTimeout bounds an execution attempt when the caller sets none.
const DefaultTimeout = 30 * time.Second

// executeOptions holds per-call configuration.
type executeOptions struct {
	timeout  time.Duration
	retries  int
	priority Priority
	metadata map[string]any
}

// ExecuteOption is a functional option for Engine.Execute.
type ExecuteOption func(*executeOptions)

// WithTimeout bounds each execution attempt. Default: DefaultTimeout.
func WithTimeout(d time.Duration) ExecuteOption {
	return func(o *executeOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRetries sets how many times a failed attempt is retried. Default: 0.
func WithRetries(n int) ExecuteOption {
	return func(o *executeOptions) {
		if n >= 0 {
			o.retries = n
		}
	}
}

// WithExecutePriority overrides the priority reported to the tool in its
// ExecutionContext. Default: the tool's registered priority.
func WithExecutePriority(p Priority) ExecuteOption {
	return func(o *executeOptions) {
		o.priority = p
	}
}

// WithMetadata attaches caller metadata passed through to the tool in its
// ExecutionContext.
func WithMetadata(metadata map[string]any) ExecuteOption {
	return func(o *executeOptions) {
		o.metadata = metadata
	}
}

// Engine executes registered tools with validation, timeout, retry/backoff,
// statistics, and event reporting. Any number of callers may execute
// different tools concurrently; calls against the same tool name are mutually
// exclusive via the busy-fail lock and never queue.
type Engine struct {
	registry       *Registry
	bus            events.EventBus
	logger         *slog.Logger
	backoff        BackoffPolicy
	defaultTimeout time.Duration
}

// EngineOption is a functional option for NewEngine.
type EngineOption func(*Engine)

// WithBackoffPolicy replaces the default retry delay schedule.
func WithBackoffPolicy(policy BackoffPolicy) EngineOption {
	return func(e *Engine) {
		e.backoff = policy
	}
}

// WithDefaultTimeout replaces the default per-attempt timeout.
func WithDefaultTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.defaultTimeout = d
		}
	}
}

// WithEngineLogger sets the logger for execution diagnostics.
// Default: slog.Default().
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an Engine over the given registry, reporting through bus.
func NewEngine(registry *Registry, bus events.EventBus, opts ...EngineOption) *Engine {
	e := &Engine{
		registry:       registry,
		bus:            bus,
		logger:         slog.Default(),
		backoff:        DefaultBackoffPolicy(),
		defaultTimeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Execute runs the named tool and returns exactly one structured result.
// It never returns a Go error: registry-level refusals (unknown, disabled,
// busy, rate limited), validation failures, timeouts, and exhausted retries
// all surface as the result's failure variant.
//
// Registry-level refusals and validation failures return immediately and are
// never retried; only execution and timeout failures consume the retry
// budget.
func (e *Engine) Execute(ctx context.Context, name string, input map[string]any, opts ...ExecuteOption) ExecutionResult {
	t, desc, found := e.registry.get(name)
	if !found {
		return failureResult(types.TOOL_NOT_FOUND, fmt.Sprintf("tool %q not found", name), nil)
	}
	if !desc.Enabled {
		return failureResult(types.TOOL_DISABLED, fmt.Sprintf("tool %q is disabled", name), nil)
	}

	options := executeOptions{
		timeout:  e.defaultTimeout,
		priority: desc.Priority,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if lim := e.registry.limiter(name); lim != nil && !lim.Allow() {
		return failureResult(types.TOOL_RATE_LIMITED, fmt.Sprintf("tool %q is rate limited", name), nil)
	}

	requestID := types.NewRequestID()
	maxAttempts := options.retries + 1

	var (
		lastErr      error
		lastDur      time.Duration
		attemptsMade int
	)

attempts:
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if !e.registry.tryLock(name) {
			// No queueing: a concurrent holder (or our own timed-out attempt
			// still draining) fails the whole call fast.
			return failureResult(types.TOOL_BUSY, fmt.Sprintf("tool %q is busy", name), nil)
		}

		if v, ok := t.(InputValidator); ok {
			if vr := v.ValidateInput(input); !vr.Valid {
				e.registry.unlock(name)
				return failureResult(types.INVALID_INPUT, fmt.Sprintf("invalid input for tool %q", name), vr.Errors)
			}
		}

		output, duration, err := e.runAttempt(ctx, t, name, input, requestID, attempt, maxAttempts, options)
		lastDur = duration
		attemptsMade = attempt + 1

		if err == nil {
			e.registry.recordSuccess(name, duration)
			e.publish(events.EventToolExecuted, name, map[string]any{
				"request_id": requestID.String(),
				"duration":   duration,
				"attempts":   attempt + 1,
			})
			return successResult(output, ResultMetadata{
				ExecutionTime: duration,
				Attempts:      attempt + 1,
				Source:        name,
			})
		}

		lastErr = err
		e.logger.Debug("tool attempt failed",
			"tool", name,
			"request_id", requestID.String(),
			"attempt", attempt+1,
			"max_attempts", maxAttempts,
			"error", err,
		)

		if attempt == maxAttempts-1 {
			break
		}

		if types.CodeOf(err) == types.TOOL_TIMEOUT && !e.lockFree(name) {
			// The timed-out body is still running and holds the lock;
			// retrying cannot acquire it, so give up now.
			break
		}

		select {
		case <-time.After(e.backoff.Delay(attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
			break attempts
		}
	}

	e.registry.recordFailure(name, lastDur, lastErr.Error())
	e.publish(events.EventToolFailed, name, map[string]any{
		"request_id": requestID.String(),
		"error":      lastErr.Error(),
		"error_code": string(types.CodeOf(lastErr)),
		"attempts":   attemptsMade,
	})

	return failureResult(types.TOOL_EXECUTION_FAILED,
		fmt.Sprintf("tool %q failed after %d attempt(s): %v", name, attemptsMade, lastErr),
		map[string]any{
			"attempts":   attemptsMade,
			"last_error": lastErr.Error(),
		})
}

// runAttempt races one tool execution against the attempt timeout. The tool
// body runs in its own goroutine with a deadline-carrying context so a
// well-behaved tool can abort cooperatively. A non-cooperative tool keeps
// running past the deadline; it holds the busy lock until it finishes, which
// is released by the goroutine, not by this method.
func (e *Engine) runAttempt(ctx context.Context, t Tool, name string, input map[string]any, requestID types.RequestID, attempt, maxAttempts int, options executeOptions) (map[string]any, time.Duration, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, options.timeout)
	defer cancel()

	attemptCtx = NewContext(attemptCtx, ExecutionContext{
		RequestID:   requestID,
		Timestamp:   time.Now(),
		Attempt:     attempt,
		MaxAttempts: maxAttempts,
		Priority:    options.priority,
		Metadata:    options.metadata,
	})

	type outcome struct {
		output map[string]any
		err    error
	}
	done := make(chan outcome, 1)
	start := time.Now()

	go func() {
		var oc outcome
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					oc.err = fmt.Errorf("tool %q panicked: %v", name, rec)
				}
			}()
			oc.output, oc.err = t.Execute(attemptCtx, input)
		}()
		e.registry.unlock(name)
		done <- oc
	}()

	select {
	case oc := <-done:
		return oc.output, time.Since(start), oc.err
	case <-attemptCtx.Done():
		// The body was not forcibly stopped; cancellation is cooperative.
		return nil, time.Since(start), types.NewRetryableError(types.TOOL_TIMEOUT,
			fmt.Sprintf("tool %q timed out after %s", name, options.timeout))
	}
}

// lockFree reports whether the tool's busy lock can currently be taken,
// releasing it again immediately.
func (e *Engine) lockFree(name string) bool {
	if !e.registry.tryLock(name) {
		return false
	}
	e.registry.unlock(name)
	return true
}

// publish emits an execution event, tolerating a closed or absent bus.
func (e *Engine) publish(eventType events.EventType, name string, data map[string]any) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(events.NewEvent(eventType, name, data)); err != nil {
		e.logger.Debug("event publish skipped", "type", eventType, "tool", name, "error", err)
	}
}
