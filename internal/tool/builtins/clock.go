package builtins

import (
	"context"
	"fmt"
	"time"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/tool"
	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/types"
)

// ClockTool reports the current time. A "format" input selects the layout
// ("rfc3339", "unix" or a Go reference layout); it defaults to RFC 3339.
type ClockTool struct {
	now func() time.Time
}

// NewClockTool creates the clock tool.
func NewClockTool() *ClockTool {
	return &ClockTool{now: time.Now}
}

func (c *ClockTool) Name() string { return "clock" }

func (c *ClockTool) Description() string {
	return "Reports the current time in the requested format"
}

func (c *ClockTool) Execute(ctx context.Context, input map[string]any) (map[string]any, error) {
	now := c.now().UTC()

	format, _ := input["format"].(string)
	var rendered string
	switch format {
	case "", "rfc3339":
		rendered = now.Format(time.RFC3339)
	case "unix":
		rendered = fmt.Sprintf("%d", now.Unix())
	default:
		rendered = now.Format(format)
	}

	return map[string]any{
		"time":      rendered,
		"unix_ms":   now.UnixMilli(),
		"monotonic": false,
	}, nil
}

// HealthCheck reports healthy as long as the wall clock is sane.
func (c *ClockTool) HealthCheck(ctx context.Context) types.HealthStatus {
	if c.now().Year() < 2000 {
		return types.Unhealthy("system clock appears unset")
	}
	return types.Healthy("clock available")
}

var (
	_ tool.Tool           = (*ClockTool)(nil)
	_ tool.HealthReporter = (*ClockTool)(nil)
)
