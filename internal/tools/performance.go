package tools

import (
	"context"
	"encoding/json"

	"github.com/geogebra-mcp/geogebra-mcp/internal/mcp"
)

// RegisterPerformance adds the performance-introspection tools backed by
// the Performance Monitor (C2) and Instance Pool (C5) stats.
func RegisterPerformance(reg *mcp.Registry, d Deps) {
	reg.Register(NewTool("performance_get_stats", "Returns timing stats, optionally filtered to one operation.",
		`{"type":"object","properties":{"operationName":{"type":"string"}}}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				OperationName string `json:"operationName"`
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			return mcp.JSONResult(d.Perf.GetStats(args.OperationName))
		}))

	reg.Register(NewTool("performance_get_pool_stats", "Returns the Instance Pool's stats snapshot.",
		`{"type":"object","properties":{}}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			return mcp.JSONResult(d.Pool.GetStats())
		}))

	reg.Register(NewTool("performance_warm_up_pool", "Pre-creates and releases up to count instances.",
		`{"type":"object","properties":{"count":{"type":"integer"}}}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			args := struct {
				Count int `json:"count"`
			}{Count: 1}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			if err := d.Pool.WarmUp(ctx, args.Count); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			return mcp.JSONResult(map[string]bool{"success": true})
		}))

	reg.Register(NewTool("performance_clear_metrics", "Clears the performance ring buffer.",
		`{"type":"object","properties":{}}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			d.Perf.Clear()
			return mcp.JSONResult(map[string]bool{"success": true})
		}))

	reg.Register(NewTool("performance_monitor_compliance", "Reports whether the overall p95 duration is within a threshold (default 1000 ms).",
		`{"type":"object","properties":{"thresholdMs":{"type":"number"}}}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			args := struct {
				ThresholdMs float64 `json:"thresholdMs"`
			}{ThresholdMs: 1000}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			stats := d.Perf.GetStats("")
			compliant := stats.P95Ms <= args.ThresholdMs
			return mcp.JSONResult(map[string]any{
				"thresholdMs": args.ThresholdMs,
				"p95Ms":       stats.P95Ms,
				"compliant":   compliant,
			})
		}))
}
