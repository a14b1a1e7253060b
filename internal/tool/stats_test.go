package tool

import (
	"testing"
	"time"
)

func TestExecutionStats_RecordSuccess(t *testing.T) {
	stats := NewExecutionStats()

	stats.RecordSuccess(100 * time.Millisecond)

	if stats.TotalExecutions != 1 || stats.SuccessCount != 1 || stats.FailureCount != 0 {
		t.Errorf("counters = %d/%d/%d", stats.TotalExecutions, stats.SuccessCount, stats.FailureCount)
	}
	if stats.AverageExecutionTime != 100*time.Millisecond {
		t.Errorf("average = %v", stats.AverageExecutionTime)
	}
	if stats.LastExecution == nil {
		t.Error("LastExecution not set")
	}
	if stats.LastError != "" {
		t.Errorf("LastError = %q", stats.LastError)
	}
}

func TestExecutionStats_RecordFailure(t *testing.T) {
	stats := NewExecutionStats()

	stats.RecordFailure(50*time.Millisecond, "boom")

	if stats.TotalExecutions != 1 || stats.SuccessCount != 0 || stats.FailureCount != 1 {
		t.Errorf("counters = %d/%d/%d", stats.TotalExecutions, stats.SuccessCount, stats.FailureCount)
	}
	if stats.LastError != "boom" {
		t.Errorf("LastError = %q", stats.LastError)
	}
}

func TestExecutionStats_IncrementalMean(t *testing.T) {
	stats := NewExecutionStats()

	samples := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		600 * time.Millisecond,
	}
	stats.RecordSuccess(samples[0])
	stats.RecordSuccess(samples[1])
	stats.RecordFailure(samples[2], "slow and broken")

	// (100 + 200 + 600) / 3 = 300ms
	if stats.AverageExecutionTime != 300*time.Millisecond {
		t.Errorf("average = %v, want 300ms", stats.AverageExecutionTime)
	}
	if stats.TotalExecutions != stats.SuccessCount+stats.FailureCount {
		t.Errorf("invariant violated: %d != %d + %d",
			stats.TotalExecutions, stats.SuccessCount, stats.FailureCount)
	}
}

func TestExecutionStats_SuccessRate(t *testing.T) {
	stats := NewExecutionStats()

	if rate := stats.SuccessRate(); rate != 0.0 {
		t.Errorf("empty stats success rate = %v", rate)
	}

	stats.RecordSuccess(time.Millisecond)
	stats.RecordSuccess(time.Millisecond)
	stats.RecordSuccess(time.Millisecond)
	stats.RecordFailure(time.Millisecond, "x")

	if rate := stats.SuccessRate(); rate != 0.75 {
		t.Errorf("success rate = %v, want 0.75", rate)
	}
}

func TestBackoffPolicy_DefaultSchedule(t *testing.T) {
	policy := DefaultBackoffPolicy()

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 10 * time.Second}, // 16s capped
		{10, 10 * time.Second},
	}

	for _, tt := range tests {
		if got := policy.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestPriority_String(t *testing.T) {
	tests := []struct {
		priority Priority
		want     string
	}{
		{PriorityLow, "low"},
		{PriorityNormal, "normal"},
		{PriorityHigh, "high"},
		{PriorityCritical, "critical"},
		{Priority(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.priority.String(); got != tt.want {
			t.Errorf("Priority(%d).String() = %q, want %q", tt.priority, got, tt.want)
		}
	}
}
