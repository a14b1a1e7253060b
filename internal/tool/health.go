package tool

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/types"
)

// HealthReport aggregates per-tool probe results. Status summarizes the
// registry as a whole: healthy when every tool is healthy, degraded when some
// are, unhealthy when none are (or the registry is empty).
type HealthReport struct {
	Status types.HealthStatus            `json:"status"`
	Tools  map[string]types.HealthStatus `json:"tools"`
}

// HealthChecker probes every registered tool's optional HealthReporter
// capability. One unhealthy or misbehaving tool never blocks the aggregate
// report: probe errors and panics are captured as unhealthy entries.
type HealthChecker struct {
	registry     *Registry
	logger       *slog.Logger
	concurrency  int
	probeTimeout time.Duration
}

// HealthCheckerOption is a functional option for NewHealthChecker.
type HealthCheckerOption func(*HealthChecker)

// WithProbeConcurrency bounds how many probes run at once. Default: 4.
func WithProbeConcurrency(n int) HealthCheckerOption {
	return func(h *HealthChecker) {
		if n > 0 {
			h.concurrency = n
		}
	}
}

// WithProbeTimeout bounds each individual probe. Default: 5s.
func WithProbeTimeout(d time.Duration) HealthCheckerOption {
	return func(h *HealthChecker) {
		if d > 0 {
			h.probeTimeout = d
		}
	}
}

// WithHealthLogger sets the logger for probe diagnostics.
// Default: slog.Default().
func WithHealthLogger(logger *slog.Logger) HealthCheckerOption {
	return func(h *HealthChecker) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHealthChecker creates a HealthChecker over the given registry.
func NewHealthChecker(registry *Registry, opts ...HealthCheckerOption) *HealthChecker {
	h := &HealthChecker{
		registry:     registry,
		logger:       slog.Default(),
		concurrency:  4,
		probeTimeout: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// CheckAll probes every registered tool concurrently and returns the
// aggregate report.
func (h *HealthChecker) CheckAll(ctx context.Context) HealthReport {
	infos := h.registry.List(Filter{})

	report := HealthReport{
		Tools: make(map[string]types.HealthStatus, len(infos)),
	}

	if len(infos) == 0 {
		report.Status = types.Unhealthy("no tools registered")
		return report
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)

	for _, info := range infos {
		name := info.Descriptor.Name
		g.Go(func() error {
			status := h.Check(gctx, name)
			mu.Lock()
			report.Tools[name] = status
			mu.Unlock()
			return nil
		})
	}
	// Probes never return errors; they are captured as unhealthy entries.
	_ = g.Wait()

	healthy := 0
	for _, status := range report.Tools {
		if status.IsHealthy() {
			healthy++
		}
	}

	total := len(report.Tools)
	switch {
	case healthy == total:
		report.Status = types.Healthy(fmt.Sprintf("all %d tools healthy", total))
	case healthy == 0:
		report.Status = types.Unhealthy(fmt.Sprintf("all %d tools unhealthy", total))
	default:
		report.Status = types.Degraded(fmt.Sprintf("%d/%d tools healthy", healthy, total))
	}

	return report
}

// Check probes a single tool by name. Tools without the HealthReporter
// capability report healthy with "no health check available"; an absent tool
// reports unhealthy.
func (h *HealthChecker) Check(ctx context.Context, name string) types.HealthStatus {
	t, _, found := h.registry.get(name)
	if !found {
		return types.Unhealthy(fmt.Sprintf("tool %q not found", name))
	}

	reporter, ok := t.(HealthReporter)
	if !ok {
		return types.Healthy("no health check available")
	}

	probeCtx, cancel := context.WithTimeout(ctx, h.probeTimeout)
	defer cancel()

	return h.probe(probeCtx, name, reporter)
}

// probe invokes a single health check, converting a panic into an unhealthy
// status instead of letting it escape the aggregate report.
func (h *HealthChecker) probe(ctx context.Context, name string, reporter HealthReporter) (status types.HealthStatus) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Warn("health probe panicked", "tool", name, "panic", rec)
			status = types.Unhealthy("health check panicked").
				WithDetails(map[string]any{"panic": fmt.Sprint(rec)})
		}
	}()

	return reporter.HealthCheck(ctx)
}
