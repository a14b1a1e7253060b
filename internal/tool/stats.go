package tool

import (
	"time"
)

// ExecutionStats tracks per-tool execution statistics for monitoring and
// discovery. One record exists per top-level engine call: a call that
// succeeds after retries counts once, as does a call whose retries are
// exhausted. Invariant: TotalExecutions == SuccessCount + FailureCount.
type ExecutionStats struct {
	TotalExecutions      int64         `json:"total_executions"`
	SuccessCount         int64         `json:"success_count"`
	FailureCount         int64         `json:"failure_count"`
	AverageExecutionTime time.Duration `json:"average_execution_time"`
	LastExecution        *time.Time    `json:"last_execution,omitempty"`
	LastError            string        `json:"last_error,omitempty"`
}

// NewExecutionStats creates a new ExecutionStats instance with zero values.
func NewExecutionStats() *ExecutionStats {
	return &ExecutionStats{}
}

// RecordSuccess records a successful call with the given attempt duration.
func (s *ExecutionStats) RecordSuccess(duration time.Duration) {
	s.TotalExecutions++
	s.SuccessCount++
	s.updateAverage(duration)
	now := time.Now()
	s.LastExecution = &now
}

// RecordFailure records a failed call with the given attempt duration and the
// final error message.
func (s *ExecutionStats) RecordFailure(duration time.Duration, lastError string) {
	s.TotalExecutions++
	s.FailureCount++
	s.updateAverage(duration)
	now := time.Now()
	s.LastExecution = &now
	s.LastError = lastError
}

// updateAverage folds a new sample into the running mean:
// newAvg = (oldAvg*(n-1) + sample) / n, where n is the post-increment total.
func (s *ExecutionStats) updateAverage(sample time.Duration) {
	n := s.TotalExecutions
	s.AverageExecutionTime = time.Duration((int64(s.AverageExecutionTime)*(n-1) + int64(sample)) / n)
}

// SuccessRate returns the success rate as a float64 between 0.0 and 1.0.
// Returns 0.0 if no calls have been made.
func (s *ExecutionStats) SuccessRate() float64 {
	if s.TotalExecutions == 0 {
		return 0.0
	}
	return float64(s.SuccessCount) / float64(s.TotalExecutions)
}
