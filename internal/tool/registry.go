package tool

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/events"
	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/types"
)

// Registry is the authoritative map from tool name to its implementation,
// descriptor, statistics, and in-flight lock state. All maps share one
// RWMutex; the per-tool busy lock gives the engine single-writer-per-key
// semantics on top of it.
type Registry struct {
	mu          sync.RWMutex
	tools       map[string]Tool
	descriptors map[string]*Descriptor
	stats       map[string]*ExecutionStats
	limiters    map[string]*rate.Limiter
	inflight    map[string]bool

	bus    events.EventBus
	logger *slog.Logger
}

// RegistryOption is a functional option for NewRegistry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger used for dispose failures and other
// registry-level diagnostics. Default: slog.Default().
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty Registry publishing lifecycle events to bus.
func NewRegistry(bus events.EventBus, opts ...RegistryOption) *Registry {
	r := &Registry{
		tools:       make(map[string]Tool),
		descriptors: make(map[string]*Descriptor),
		stats:       make(map[string]*ExecutionStats),
		limiters:    make(map[string]*rate.Limiter),
		inflight:    make(map[string]bool),
		bus:         bus,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a tool to the registry. The tool must carry a non-empty name
// and description. A duplicate name is rejected with TOOL_ALREADY_EXISTS
// unless WithOverride is given, in which case the previous tool is disposed
// and replaced.
func (r *Registry) Register(t Tool, opts ...RegisterOption) error {
	if t == nil {
		return types.NewError(types.TOOL_INVALID, "tool cannot be nil")
	}

	name := t.Name()
	if name == "" {
		return types.NewError(types.TOOL_INVALID, "tool name cannot be empty")
	}
	if t.Description() == "" {
		return types.NewError(types.TOOL_INVALID, fmt.Sprintf("tool %q has an empty description", name))
	}

	options := defaultRegisterOptions()
	for _, opt := range opts {
		opt(&options)
	}

	r.mu.Lock()
	previous, exists := r.tools[name]
	if exists && !options.override {
		r.mu.Unlock()
		return types.NewError(types.TOOL_ALREADY_EXISTS, fmt.Sprintf("tool %q already registered", name))
	}

	r.tools[name] = t
	r.descriptors[name] = &Descriptor{
		Name:         name,
		Description:  t.Description(),
		Category:     options.category,
		Priority:     options.priority,
		Enabled:      options.enabled,
		RegisteredAt: time.Now(),
	}
	r.stats[name] = NewExecutionStats()
	if options.rateLimit != nil {
		r.limiters[name] = options.rateLimit
	} else {
		delete(r.limiters, name)
	}
	delete(r.inflight, name)
	r.mu.Unlock()

	if exists {
		r.dispose(name, previous)
	}

	r.publish(events.EventToolRegistered, name, map[string]any{
		"priority": options.priority.String(),
		"enabled":  options.enabled,
	})

	return nil
}

// Unregister removes a tool by name, invoking its optional Dispose.
// Returns false if the tool is absent.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	t, exists := r.tools[name]
	if !exists {
		r.mu.Unlock()
		return false
	}

	delete(r.tools, name)
	delete(r.descriptors, name)
	delete(r.stats, name)
	delete(r.limiters, name)
	delete(r.inflight, name)
	r.mu.Unlock()

	r.dispose(name, t)
	r.publish(events.EventToolUnregistered, name, nil)

	return true
}

// SetEnabled flips a tool's enabled flag, emitting the matching event.
// Returns false if the tool is absent. Re-applying the current state is a
// no-op that still reports true.
func (r *Registry) SetEnabled(name string, enabled bool) bool {
	r.mu.Lock()
	desc, exists := r.descriptors[name]
	if !exists {
		r.mu.Unlock()
		return false
	}
	changed := desc.Enabled != enabled
	desc.Enabled = enabled
	r.mu.Unlock()

	if changed {
		if enabled {
			r.publish(events.EventToolEnabled, name, nil)
		} else {
			r.publish(events.EventToolDisabled, name, nil)
		}
	}

	return true
}

// List returns a read-only projection of the registered tools matching the
// filter. No side effects.
func (r *Registry) List(filter Filter) []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.descriptors))
	for name, desc := range r.descriptors {
		if filter.Category != "" && desc.Category != filter.Category {
			continue
		}
		if filter.Enabled != nil && desc.Enabled != *filter.Enabled {
			continue
		}

		info := Info{Descriptor: *desc}
		if filter.IncludeStats {
			snapshot := *r.stats[name]
			info.Stats = &snapshot
		}
		infos = append(infos, info)
	}

	return infos
}

// Descriptor returns a copy of the named tool's descriptor.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, exists := r.descriptors[name]
	if !exists {
		return Descriptor{}, false
	}
	return *desc, true
}

// Stats returns a copy of the named tool's execution statistics.
func (r *Registry) Stats(name string) (ExecutionStats, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats, exists := r.stats[name]
	if !exists {
		return ExecutionStats{}, false
	}
	return *stats, true
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Clear disposes and removes every tool. Used for full framework teardown.
func (r *Registry) Clear() {
	r.mu.Lock()
	tools := r.tools
	r.tools = make(map[string]Tool)
	r.descriptors = make(map[string]*Descriptor)
	r.stats = make(map[string]*ExecutionStats)
	r.limiters = make(map[string]*rate.Limiter)
	r.inflight = make(map[string]bool)
	r.mu.Unlock()

	for name, t := range tools {
		r.dispose(name, t)
		r.publish(events.EventToolUnregistered, name, nil)
	}
}

// dispose invokes the tool's optional Dispose capability. Failures are
// logged, never propagated.
func (r *Registry) dispose(name string, t Tool) {
	d, ok := t.(Disposable)
	if !ok {
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("tool dispose panicked", "tool", name, "panic", rec)
		}
	}()

	if err := d.Dispose(); err != nil {
		r.logger.Warn("tool dispose failed", "tool", name, "error", err)
	}
}

// publish emits a lifecycle event, tolerating a closed or absent bus.
func (r *Registry) publish(eventType events.EventType, name string, data map[string]any) {
	if r.bus == nil {
		return
	}
	if err := r.bus.Publish(events.NewEvent(eventType, name, data)); err != nil {
		r.logger.Debug("event publish skipped", "type", eventType, "tool", name, "error", err)
	}
}

// get returns the tool and a descriptor copy for engine-side checks.
func (r *Registry) get(name string) (Tool, Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.tools[name]
	if !exists {
		return nil, Descriptor{}, false
	}
	return t, *r.descriptors[name], true
}

// limiter returns the tool's rate limiter, if one was registered.
func (r *Registry) limiter(name string) *rate.Limiter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.limiters[name]
}

// tryLock attempts to take the per-tool busy lock. It fails fast when the
// lock is held; callers never queue.
func (r *Registry) tryLock(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; !exists {
		return false
	}
	if r.inflight[name] {
		return false
	}
	r.inflight[name] = true
	return true
}

// unlock releases the per-tool busy lock. Safe to call after the tool was
// unregistered mid-flight.
func (r *Registry) unlock(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inflight, name)
}

// recordSuccess folds a successful call into the stats and advances the
// descriptor's usage fields. Usage advances on the success path only; failed
// calls are visible in the stats but do not count as "usage" for discovery.
func (r *Registry) recordSuccess(name string, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, exists := r.stats[name]; exists {
		stats.RecordSuccess(duration)
	}
	if desc, exists := r.descriptors[name]; exists {
		desc.ExecutionCount++
		now := time.Now()
		desc.LastUsed = &now
	}
}

// recordFailure folds an exhausted call into the stats.
func (r *Registry) recordFailure(name string, duration time.Duration, lastError string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, exists := r.stats[name]; exists {
		stats.RecordFailure(duration, lastError)
	}
}
