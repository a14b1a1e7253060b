package tool

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/types"
)

// MockTool implements the bare Tool interface for testing. It deliberately
// implements none of the optional capabilities; the capability-carrying
// variants below wrap it.
type MockTool struct {
	name         string
	description  string
	executeFn    func(ctx context.Context, input map[string]any) (map[string]any, error)
	executeCalls atomic.Int64
}

func NewMockTool(name string) *MockTool {
	return &MockTool{
		name:        name,
		description: fmt.Sprintf("Mock tool: %s", name),
		executeFn: func(ctx context.Context, input map[string]any) (map[string]any, error) {
			return map[string]any{"output": "success"}, nil
		},
	}
}

func (m *MockTool) Name() string        { return m.name }
func (m *MockTool) Description() string { return m.description }

func (m *MockTool) Execute(ctx context.Context, input map[string]any) (map[string]any, error) {
	m.executeCalls.Add(1)
	return m.executeFn(ctx, input)
}

// ExecuteCalls reports how many times Execute was invoked.
func (m *MockTool) ExecuteCalls() int64 {
	return m.executeCalls.Load()
}

func (m *MockTool) WithDescription(description string) *MockTool {
	m.description = description
	return m
}

func (m *MockTool) WithExecuteFunc(fn func(ctx context.Context, input map[string]any) (map[string]any, error)) *MockTool {
	m.executeFn = fn
	return m
}

// ValidatedMockTool adds the InputValidator capability.
type ValidatedMockTool struct {
	*MockTool
	validateFn func(input map[string]any) ValidationResult
}

func NewValidatedMockTool(name string, fn func(input map[string]any) ValidationResult) *ValidatedMockTool {
	return &ValidatedMockTool{MockTool: NewMockTool(name), validateFn: fn}
}

func (m *ValidatedMockTool) ValidateInput(input map[string]any) ValidationResult {
	return m.validateFn(input)
}

// HealthMockTool adds the HealthReporter capability.
type HealthMockTool struct {
	*MockTool
	healthFn func(ctx context.Context) types.HealthStatus
}

func NewHealthMockTool(name string, fn func(ctx context.Context) types.HealthStatus) *HealthMockTool {
	return &HealthMockTool{MockTool: NewMockTool(name), healthFn: fn}
}

func (m *HealthMockTool) HealthCheck(ctx context.Context) types.HealthStatus {
	return m.healthFn(ctx)
}

// DisposableMockTool adds the Disposable capability.
type DisposableMockTool struct {
	*MockTool
	disposeFn    func() error
	disposeCalls atomic.Int64
}

func NewDisposableMockTool(name string, fn func() error) *DisposableMockTool {
	if fn == nil {
		fn = func() error { return nil }
	}
	return &DisposableMockTool{MockTool: NewMockTool(name), disposeFn: fn}
}

func (m *DisposableMockTool) Dispose() error {
	m.disposeCalls.Add(1)
	return m.disposeFn()
}

// DisposeCalls reports how many times Dispose was invoked.
func (m *DisposableMockTool) DisposeCalls() int64 {
	return m.disposeCalls.Load()
}

// Interface conformance for the mock hierarchy.
var (
	_ Tool           = (*MockTool)(nil)
	_ InputValidator = (*ValidatedMockTool)(nil)
	_ HealthReporter = (*HealthMockTool)(nil)
	_ Disposable     = (*DisposableMockTool)(nil)
)
