package builtins

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/tool"
	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/types"
)

func TestEchoTool_Execute(t *testing.T) {
	echo := NewEchoTool()

	out, err := echo.Execute(context.Background(), map[string]any{"message": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", out["echo"])
	assert.Equal(t, 5, out["length"])

	out, err = echo.Execute(context.Background(), map[string]any{
		"message": "go",
		"repeat":  float64(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "go go go", out["echo"])
}

func TestEchoTool_ValidateInput(t *testing.T) {
	echo := NewEchoTool()

	tests := []struct {
		name  string
		input map[string]any
		valid bool
	}{
		{"valid", map[string]any{"message": "hi"}, true},
		{"missing message", map[string]any{}, false},
		{"empty message", map[string]any{"message": ""}, false},
		{"wrong type", map[string]any{"message": 42}, false},
		{"repeat out of range", map[string]any{"message": "hi", "repeat": float64(100)}, false},
		{"unknown field", map[string]any{"message": "hi", "color": "red"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vr := echo.ValidateInput(tt.input)
			assert.Equal(t, tt.valid, vr.Valid)
			if !tt.valid {
				assert.NotEmpty(t, vr.Errors)
			}
		})
	}
}

func TestClockTool_Execute(t *testing.T) {
	fixed := time.Date(2026, 8, 29, 12, 30, 0, 0, time.UTC)
	clock := &ClockTool{now: func() time.Time { return fixed }}

	out, err := clock.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-29T12:30:00Z", out["time"])
	assert.Equal(t, fixed.UnixMilli(), out["unix_ms"])

	out, err = clock.Execute(context.Background(), map[string]any{"format": "unix"})
	require.NoError(t, err)
	assert.Equal(t, "1788006600", out["time"])
}

func TestClockTool_HealthCheck(t *testing.T) {
	healthy := NewClockTool()
	assert.True(t, healthy.HealthCheck(context.Background()).IsHealthy())

	broken := &ClockTool{now: func() time.Time { return time.Unix(0, 0) }}
	status := broken.HealthCheck(context.Background())
	assert.Equal(t, types.HealthStateUnhealthy, status.State)
}

func TestRegisterAll(t *testing.T) {
	fw := tool.NewFramework()
	defer fw.Close()

	require.NoError(t, RegisterAll(fw))

	infos := fw.GetTools(tool.Filter{Category: "diagnostics"})
	assert.Len(t, infos, 2)

	result := fw.Execute(context.Background(), "echo", map[string]any{"message": "ping"})
	require.True(t, result.Success)
	assert.Equal(t, "ping", result.Data["echo"])

	invalid := fw.Execute(context.Background(), "echo", map[string]any{})
	require.False(t, invalid.Success)
	assert.Equal(t, types.INVALID_INPUT, invalid.Error.Code)

	report := fw.HealthCheck(context.Background())
	assert.True(t, report.Status.IsHealthy())
}
