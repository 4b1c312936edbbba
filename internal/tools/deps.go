package tools

import (
	"context"
	"log/slog"

	"github.com/geogebra-mcp/geogebra-mcp/internal/browser"
	"github.com/geogebra-mcp/geogebra-mcp/internal/encoder"
	"github.com/geogebra-mcp/geogebra-mcp/internal/errs"
	"github.com/geogebra-mcp/geogebra-mcp/internal/mcp"
	"github.com/geogebra-mcp/geogebra-mcp/internal/perf"
	"github.com/geogebra-mcp/geogebra-mcp/internal/pool"
)

// Deps bundles the shared collaborators every tool handler dispatches
// through: the Instance Pool (C5), the Performance Monitor (C2), the
// Animation Encoder (C7), and the server's logger.
type Deps struct {
	Pool    *pool.Pool
	Perf    *perf.Monitor
	Encoder *encoder.Encoder
	Log     *slog.Logger
}

// WithDriver implements the dispatch sequence of spec.md §4.5 steps 3-5:
// acquire a driver from the pool, wrap the call in C2 timing under
// operation, release the driver whether the call succeeds or fails, and
// translate a driver-level error into a TOOL_EXECUTION_ERROR envelope.
func (d Deps) WithDriver(ctx context.Context, operation string, fn func(context.Context, *browser.Driver) (*mcp.ToolsCallResult, error)) (*mcp.ToolsCallResult, error) {
	id, drv, err := d.Pool.Acquire(ctx)
	if err != nil {
		return nil, errs.Newf(errs.InstanceNotReady, "acquiring instance: %v", err)
	}
	defer d.Pool.Release(ctx, id)

	result, err := perf.Measure(ctx, d.Perf, operation, nil, func(ctx context.Context) (*mcp.ToolsCallResult, error) {
		return fn(ctx, drv)
	})
	if err != nil {
		if d.Log != nil {
			d.Log.Error("tool execution failed", "operation", operation, "instance_id", id, "error", err)
		}
		return nil, errs.Newf(errs.ToolExecutionError, "%s: %v", operation, err)
	}
	return result, nil
}
