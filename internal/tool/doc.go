// Package tool provides the coach assistant's tool execution framework.
//
// Tools are named, independently registered units of capability (data
// retrievers, API clients, capture utilities) behind a uniform execution
// contract. The package tracks tool metadata in a registry and executes tools
// through a concurrency-safe engine with validation, timeout, retry/backoff,
// statistics, and lifecycle events.
//
// # Core Concepts
//
// Tool: an interface representing an executable operation. Optional
// capabilities (InputValidator, HealthReporter, Disposable) are separate
// interfaces detected by type assertion; a tool implementing none of them is
// the "simple" variant and always passes validation.
//
// Registry: the authoritative map from tool name to descriptor, statistics,
// and lock state, with thread-safe operations.
//
// Engine: executes tools under a per-tool busy-fail lock. Concurrent calls
// against different tools run fully in parallel; a second call against a tool
// already in flight does not queue, it fails fast with TOOL_BUSY. Each
// attempt races against a timeout; failed attempts are retried with capped
// exponential backoff.
//
// Framework: the dependency-injection context bundling all of the above.
// Construct one per process (or per test) with NewFramework.
//
// # Usage Example
//
//	fw := tool.NewFramework()
//	defer fw.Close()
//
//	if err := fw.Register(myTool, tool.WithCategory("retrieval")); err != nil {
//	    log.Fatal(err)
//	}
//
//	result := fw.Execute(ctx, "my-tool", map[string]any{"param": "value"},
//	    tool.WithTimeout(5*time.Second),
//	    tool.WithRetries(2),
//	)
//	if !result.Success {
//	    log.Printf("execution failed: %s: %s", result.Error.Code, result.Error.Message)
//	}
//
// # Failure Model
//
// Execute never returns a Go error. Every call yields exactly one structured
// ExecutionResult; registry-level refusals (TOOL_NOT_FOUND, TOOL_DISABLED,
// TOOL_BUSY, TOOL_RATE_LIMITED), validation failures (INVALID_INPUT), and
// exhausted retries (TOOL_EXECUTION_FAILED) all surface as the failure
// variant. Registration-time misuse (malformed tool, duplicate name without
// override) returns an error synchronously from Register.
//
// # Cancellation
//
// The engine enforces a deadline on the caller's wait but does not forcibly
// stop a tool body. The deadline is wired into the context handed to
// Execute, so well-behaved tools abort cooperatively; a non-cooperative tool
// keeps the busy lock until it actually returns.
package tool
