package tools

import (
	"context"
	"encoding/json"

	"github.com/geogebra-mcp/geogebra-mcp/internal/browser"
	"github.com/geogebra-mcp/geogebra-mcp/internal/mcp"
)

// RegisterConstruction adds the construction-control tools: clear
// construction, instance status, get objects, and raw eval_command.
func RegisterConstruction(reg *mcp.Registry, d Deps) {
	reg.Register(NewTool("geogebra_clear_construction", "Clears all objects and resets the view.",
		`{"type":"object","properties":{}}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			return d.WithDriver(ctx, "clear_construction", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				if err := drv.NewConstruction(ctx); err != nil {
					return nil, err
				}
				return mcp.JSONResult(map[string]bool{"success": true})
			})
		}))

	reg.Register(NewTool("geogebra_instance_status", "Reports pool and instance health.",
		`{"type":"object","properties":{}}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			return mcp.JSONResult(d.Pool.GetStats())
		}))

	reg.Register(NewTool("geogebra_get_objects", "Lists construction object names, optionally filtered by type.",
		`{"type":"object","properties":{"type":{"type":"string"}}}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				Type string `json:"type"`
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			return d.WithDriver(ctx, "get_objects", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				names, err := drv.GetAllObjectNames(ctx, args.Type)
				if err != nil {
					return nil, err
				}
				return mcp.JSONResult(map[string]any{"objects": names})
			})
		}))

	reg.Register(NewTool("geogebra_eval_command", "Evaluates a raw GeoGebra DSL command.",
		`{"type":"object","properties":{"command":{"type":"string"}},"required":["command"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				Command string `json:"command" validate:"required"`
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			return d.WithDriver(ctx, "eval_command", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				result, err := drv.EvalCommand(ctx, args.Command)
				if err != nil {
					return nil, err
				}
				return mcp.JSONResult(map[string]any{"success": result.Success})
			})
		}))
}
