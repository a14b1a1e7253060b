package builtins

import (
	"golang.org/x/time/rate"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/tool"
)

// RegisterAll registers every built-in tool on the framework. The echo tool is
// rate limited so the CLI demo exercises the limiter path.
func RegisterAll(fw *tool.Framework) error {
	if err := fw.Register(NewEchoTool(),
		tool.WithCategory("diagnostics"),
		tool.WithRateLimit(rate.NewLimiter(rate.Limit(20), 5)),
	); err != nil {
		return err
	}

	return fw.Register(NewClockTool(),
		tool.WithCategory("diagnostics"),
	)
}
