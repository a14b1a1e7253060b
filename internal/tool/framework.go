package tool

import (
	"context"
	"log/slog"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/events"
)

// Framework bundles the registry, engine, event bus, and health checker into
// one explicitly constructed context. Collaborators receive it by reference;
// there is no process-wide shared instance, so tests get isolated frameworks.
//
// Consumers interact solely through this surface — never through registry or
// lock internals.
type Framework struct {
	bus      *events.DefaultEventBus
	registry *Registry
	engine   *Engine
	health   *HealthChecker
	logger   *slog.Logger
}

// frameworkOptions collects construction parameters for the collaborators.
type frameworkOptions struct {
	logger     *slog.Logger
	busOpts    []events.Option
	engineOpts []EngineOption
	healthOpts []HealthCheckerOption
}

// FrameworkOption is a functional option for NewFramework.
type FrameworkOption func(*frameworkOptions)

// WithLogger sets the logger shared by all framework components.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) FrameworkOption {
	return func(o *frameworkOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBusOptions forwards options to the underlying event bus.
func WithBusOptions(opts ...events.Option) FrameworkOption {
	return func(o *frameworkOptions) {
		o.busOpts = append(o.busOpts, opts...)
	}
}

// WithEngineOptions forwards options to the underlying execution engine.
func WithEngineOptions(opts ...EngineOption) FrameworkOption {
	return func(o *frameworkOptions) {
		o.engineOpts = append(o.engineOpts, opts...)
	}
}

// WithHealthOptions forwards options to the underlying health checker.
func WithHealthOptions(opts ...HealthCheckerOption) FrameworkOption {
	return func(o *frameworkOptions) {
		o.healthOpts = append(o.healthOpts, opts...)
	}
}

// NewFramework constructs a fully wired framework instance.
func NewFramework(opts ...FrameworkOption) *Framework {
	options := frameworkOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	busOpts := append([]events.Option{
		events.WithErrorHandler(func(err error, event events.Event) {
			options.logger.Error("event handler failed",
				"type", event.Type, "tool", event.ToolName, "error", err)
		}),
	}, options.busOpts...)
	bus := events.NewEventBus(busOpts...)

	registry := NewRegistry(bus, WithRegistryLogger(options.logger))

	engineOpts := append([]EngineOption{WithEngineLogger(options.logger)}, options.engineOpts...)
	engine := NewEngine(registry, bus, engineOpts...)

	healthOpts := append([]HealthCheckerOption{WithHealthLogger(options.logger)}, options.healthOpts...)
	health := NewHealthChecker(registry, healthOpts...)

	return &Framework{
		bus:      bus,
		registry: registry,
		engine:   engine,
		health:   health,
		logger:   options.logger,
	}
}

// Register adds a tool to the framework.
func (f *Framework) Register(t Tool, opts ...RegisterOption) error {
	return f.registry.Register(t, opts...)
}

// Unregister removes a tool by name, returning false if absent.
func (f *Framework) Unregister(name string) bool {
	return f.registry.Unregister(name)
}

// Execute runs the named tool through the execution engine.
func (f *Framework) Execute(ctx context.Context, name string, input map[string]any, opts ...ExecuteOption) ExecutionResult {
	return f.engine.Execute(ctx, name, input, opts...)
}

// GetTools returns a read-only projection of the registered tools.
func (f *Framework) GetTools(filter Filter) []Info {
	return f.registry.List(filter)
}

// GetToolStats returns a snapshot of the named tool's execution statistics.
func (f *Framework) GetToolStats(name string) (ExecutionStats, bool) {
	return f.registry.Stats(name)
}

// SetToolEnabled flips a tool's enabled flag, returning false if absent.
func (f *Framework) SetToolEnabled(name string, enabled bool) bool {
	return f.registry.SetEnabled(name, enabled)
}

// HealthCheck probes every registered tool and returns the aggregate report.
func (f *Framework) HealthCheck(ctx context.Context) HealthReport {
	return f.health.CheckAll(ctx)
}

// Events exposes the framework's event bus for subscriptions.
func (f *Framework) Events() events.EventBus {
	return f.bus
}

// Close tears the framework down: every tool is disposed and unregistered,
// then the event bus is closed. The framework must not be used afterwards.
func (f *Framework) Close() error {
	f.registry.Clear()
	return f.bus.Close()
}
