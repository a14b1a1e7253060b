package tool

import (
	"errors"
	"testing"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/events"
	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/types"
)

func newTestRegistry(t *testing.T) (*Registry, *events.DefaultEventBus) {
	t.Helper()
	bus := events.NewEventBus()
	t.Cleanup(func() { bus.Close() })
	return NewRegistry(bus), bus
}

// TestRegistry_Register tests registration validation.
func TestRegistry_Register(t *testing.T) {
	tests := []struct {
		name      string
		tool      Tool
		wantError bool
		errorCode types.ErrorCode
	}{
		{
			name:      "successful registration",
			tool:      NewMockTool("test-tool"),
			wantError: false,
		},
		{
			name:      "nil tool",
			tool:      nil,
			wantError: true,
			errorCode: types.TOOL_INVALID,
		},
		{
			name:      "empty name",
			tool:      NewMockTool(""),
			wantError: true,
			errorCode: types.TOOL_INVALID,
		},
		{
			name:      "empty description",
			tool:      NewMockTool("no-desc").WithDescription(""),
			wantError: true,
			errorCode: types.TOOL_INVALID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, _ := newTestRegistry(t)

			err := registry.Register(tt.tool)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected registration error")
				}
				if types.CodeOf(err) != tt.errorCode {
					t.Errorf("error code = %v, want %v", types.CodeOf(err), tt.errorCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register: %v", err)
			}

			desc, ok := registry.Descriptor(tt.tool.Name())
			if !ok {
				t.Fatal("descriptor missing after registration")
			}
			if !desc.Enabled {
				t.Error("tools register enabled by default")
			}
			if desc.Priority != PriorityNormal {
				t.Errorf("priority = %v, want normal", desc.Priority)
			}
			if desc.RegisteredAt.IsZero() {
				t.Error("RegisteredAt not set")
			}

			stats, ok := registry.Stats(tt.tool.Name())
			if !ok {
				t.Fatal("stats missing after registration")
			}
			if stats.TotalExecutions != 0 {
				t.Errorf("stats not zero-initialized: %+v", stats)
			}
		})
	}
}

// TestRegistry_RegisterDuplicate tests that a duplicate name without override
// fails and the registry retains the original entry.
func TestRegistry_RegisterDuplicate(t *testing.T) {
	registry, _ := newTestRegistry(t)

	original := NewMockTool("echo")
	if err := registry.Register(original); err != nil {
		t.Fatalf("Register: %v", err)
	}

	err := registry.Register(NewMockTool("echo"))
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if !errors.Is(err, types.NewError(types.TOOL_ALREADY_EXISTS, "")) {
		t.Errorf("error = %v, want TOOL_ALREADY_EXISTS", err)
	}
	if registry.Len() != 1 {
		t.Errorf("registry length = %d, want 1", registry.Len())
	}
}

// TestRegistry_RegisterOverride tests that override replaces and disposes the
// previous tool.
func TestRegistry_RegisterOverride(t *testing.T) {
	registry, _ := newTestRegistry(t)

	original := NewDisposableMockTool("echo", nil)
	if err := registry.Register(original); err != nil {
		t.Fatalf("Register: %v", err)
	}

	replacement := NewMockTool("echo")
	if err := registry.Register(replacement, WithOverride(), WithPriority(PriorityHigh)); err != nil {
		t.Fatalf("Register with override: %v", err)
	}

	if registry.Len() != 1 {
		t.Errorf("registry length = %d, want 1", registry.Len())
	}
	if original.DisposeCalls() != 1 {
		t.Errorf("previous tool dispose calls = %d, want 1", original.DisposeCalls())
	}
	desc, _ := registry.Descriptor("echo")
	if desc.Priority != PriorityHigh {
		t.Errorf("priority = %v, want high", desc.Priority)
	}
}

// TestRegistry_RegisterOptions tests category, priority, and disabled options.
func TestRegistry_RegisterOptions(t *testing.T) {
	registry, _ := newTestRegistry(t)

	err := registry.Register(NewMockTool("capture"),
		WithCategory("capture"),
		WithPriority(PriorityCritical),
		Disabled(),
	)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	desc, _ := registry.Descriptor("capture")
	if desc.Category != "capture" {
		t.Errorf("category = %q", desc.Category)
	}
	if desc.Priority != PriorityCritical {
		t.Errorf("priority = %v", desc.Priority)
	}
	if desc.Enabled {
		t.Error("tool should register disabled")
	}
}

// TestRegistry_Unregister tests removal and dispose semantics.
func TestRegistry_Unregister(t *testing.T) {
	registry, _ := newTestRegistry(t)

	disposable := NewDisposableMockTool("echo", nil)
	if err := registry.Register(disposable); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if !registry.Unregister("echo") {
		t.Fatal("Unregister should return true for a registered tool")
	}
	if disposable.DisposeCalls() != 1 {
		t.Errorf("dispose calls = %d, want 1", disposable.DisposeCalls())
	}
	if _, ok := registry.Descriptor("echo"); ok {
		t.Error("descriptor should be removed")
	}
	if _, ok := registry.Stats("echo"); ok {
		t.Error("stats should be removed")
	}

	if registry.Unregister("echo") {
		t.Error("Unregister should return false for an absent tool")
	}
}

// TestRegistry_UnregisterDisposeFailure tests that a failing or panicking
// Dispose never propagates.
func TestRegistry_UnregisterDisposeFailure(t *testing.T) {
	registry, _ := newTestRegistry(t)

	failing := NewDisposableMockTool("flaky", func() error {
		return errors.New("cleanup failed")
	})
	if err := registry.Register(failing); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !registry.Unregister("flaky") {
		t.Error("Unregister should succeed despite dispose failure")
	}

	panicking := NewDisposableMockTool("explosive", func() error {
		panic("dispose exploded")
	})
	if err := registry.Register(panicking); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !registry.Unregister("explosive") {
		t.Error("Unregister should succeed despite dispose panic")
	}
}

// TestRegistry_SetEnabled tests the enable/disable flag and its events.
func TestRegistry_SetEnabled(t *testing.T) {
	registry, bus := newTestRegistry(t)

	var got []events.EventType
	defer bus.Subscribe(func(e events.Event) {
		got = append(got, e.Type)
	}, events.EventToolEnabled, events.EventToolDisabled)()

	if err := registry.Register(NewMockTool("echo")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if !registry.SetEnabled("echo", false) {
		t.Fatal("SetEnabled should return true for a registered tool")
	}
	desc, _ := registry.Descriptor("echo")
	if desc.Enabled {
		t.Error("tool should be disabled")
	}

	if !registry.SetEnabled("echo", true) {
		t.Fatal("SetEnabled should return true")
	}
	if registry.SetEnabled("missing", true) {
		t.Error("SetEnabled should return false for an absent tool")
	}

	if len(got) != 2 || got[0] != events.EventToolDisabled || got[1] != events.EventToolEnabled {
		t.Errorf("events = %v, want [disabled enabled]", got)
	}
}

// TestRegistry_List tests read-only projections and filters.
func TestRegistry_List(t *testing.T) {
	registry, _ := newTestRegistry(t)

	mustRegister := func(tool Tool, opts ...RegisterOption) {
		t.Helper()
		if err := registry.Register(tool, opts...); err != nil {
			t.Fatalf("Register %s: %v", tool.Name(), err)
		}
	}

	mustRegister(NewMockTool("player-data"), WithCategory("retrieval"))
	mustRegister(NewMockTool("screenshot"), WithCategory("capture"))
	mustRegister(NewMockTool("tts"), WithCategory("capture"), Disabled())

	if got := len(registry.List(Filter{})); got != 3 {
		t.Errorf("unfiltered list length = %d, want 3", got)
	}
	if got := len(registry.List(Filter{Category: "capture"})); got != 2 {
		t.Errorf("capture list length = %d, want 2", got)
	}

	enabled := true
	if got := len(registry.List(Filter{Enabled: &enabled})); got != 2 {
		t.Errorf("enabled list length = %d, want 2", got)
	}
	disabled := false
	if got := len(registry.List(Filter{Category: "capture", Enabled: &disabled})); got != 1 {
		t.Errorf("disabled capture list length = %d, want 1", got)
	}

	withStats := registry.List(Filter{IncludeStats: true})
	for _, info := range withStats {
		if info.Stats == nil {
			t.Errorf("tool %s missing stats snapshot", info.Descriptor.Name)
		}
	}
	withoutStats := registry.List(Filter{})
	for _, info := range withoutStats {
		if info.Stats != nil {
			t.Errorf("tool %s should not carry stats", info.Descriptor.Name)
		}
	}
}

// TestRegistry_Clear tests full teardown: every tool disposed, all maps empty.
func TestRegistry_Clear(t *testing.T) {
	registry, _ := newTestRegistry(t)

	tools := []*DisposableMockTool{
		NewDisposableMockTool("a", nil),
		NewDisposableMockTool("b", nil),
		NewDisposableMockTool("c", nil),
	}
	for _, tl := range tools {
		if err := registry.Register(tl); err != nil {
			t.Fatalf("Register %s: %v", tl.Name(), err)
		}
	}

	registry.Clear()

	if registry.Len() != 0 {
		t.Errorf("registry length = %d, want 0", registry.Len())
	}
	if got := len(registry.List(Filter{})); got != 0 {
		t.Errorf("list after clear = %d entries, want 0", got)
	}
	for _, tl := range tools {
		if tl.DisposeCalls() != 1 {
			t.Errorf("tool %s dispose calls = %d, want 1", tl.Name(), tl.DisposeCalls())
		}
	}
}

// TestRegistry_LifecycleEvents tests TOOL_REGISTERED/TOOL_UNREGISTERED emission.
func TestRegistry_LifecycleEvents(t *testing.T) {
	registry, bus := newTestRegistry(t)

	var got []events.Event
	defer bus.Subscribe(func(e events.Event) {
		got = append(got, e)
	}, events.EventToolRegistered, events.EventToolUnregistered)()

	if err := registry.Register(NewMockTool("echo")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	registry.Unregister("echo")

	if len(got) != 2 {
		t.Fatalf("events = %d, want 2", len(got))
	}
	if got[0].Type != events.EventToolRegistered || got[0].ToolName != "echo" {
		t.Errorf("first event = %+v", got[0])
	}
	if got[1].Type != events.EventToolUnregistered || got[1].ToolName != "echo" {
		t.Errorf("second event = %+v", got[1])
	}
}
