package tools

import (
	"context"
	"encoding/json"

	"github.com/geogebra-mcp/geogebra-mcp/internal/browser"
	"github.com/geogebra-mcp/geogebra-mcp/internal/command"
	"github.com/geogebra-mcp/geogebra-mcp/internal/mcp"
	"github.com/geogebra-mcp/geogebra-mcp/internal/validator"
)

// RegisterView adds the graphics-view tools: axes labels, axis/grid
// visibility, and coordinate-system bounds.
func RegisterView(reg *mcp.Registry, d Deps) {
	reg.Register(NewTool("geogebra_set_axes_labels", "Sets the x/y axis labels.",
		`{"type":"object","properties":{"xLabel":{"type":"string"},"yLabel":{"type":"string"}},"required":["xLabel","yLabel"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				XLabel string `json:"xLabel" validate:"required"`
				YLabel string `json:"yLabel" validate:"required"`
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			return d.WithDriver(ctx, "eval_command", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				return runCommands(ctx, drv, []command.Command{command.SetAxesLabels(args.XLabel, args.YLabel)})
			})
		}))

	reg.Register(NewTool("geogebra_set_axes_visible", "Toggles x/y axis visibility.",
		`{"type":"object","properties":{"x":{"type":"boolean"},"y":{"type":"boolean"}},"required":["x","y"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				X bool `json:"x"`
				Y bool `json:"y"`
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			return d.WithDriver(ctx, "eval_command", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				if err := drv.SetAxesVisible(ctx, args.X, args.Y); err != nil {
					return nil, err
				}
				return mcp.JSONResult(map[string]bool{"success": true})
			})
		}))

	reg.Register(NewTool("geogebra_set_grid_visible", "Toggles grid visibility.",
		`{"type":"object","properties":{"visible":{"type":"boolean"}},"required":["visible"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				Visible bool `json:"visible"`
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			return d.WithDriver(ctx, "eval_command", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				if err := drv.SetGridVisible(ctx, args.Visible); err != nil {
					return nil, err
				}
				return mcp.JSONResult(map[string]bool{"success": true})
			})
		}))

	reg.Register(NewTool("geogebra_set_coord_system", "Sets the graphics view's coordinate bounds.",
		`{"type":"object","properties":{"xMin":{"type":"number"},"xMax":{"type":"number"},"yMin":{"type":"number"},"yMax":{"type":"number"}},"required":["xMin","xMax","yMin","yMax"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				XMin float64 `json:"xMin"`
				XMax float64 `json:"xMax"`
				YMin float64 `json:"yMin"`
				YMax float64 `json:"yMax"`
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			if r := validator.ValidateDomain(args.XMin, args.XMax); !r.Valid {
				return mcp.ErrorResult(r.Reason), nil
			}
			if r := validator.ValidateDomain(args.YMin, args.YMax); !r.Valid {
				return mcp.ErrorResult(r.Reason), nil
			}
			return d.WithDriver(ctx, "eval_command", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				if err := drv.SetCoordSystem(ctx, args.XMin, args.XMax, args.YMin, args.YMax); err != nil {
					return nil, err
				}
				return mcp.JSONResult(map[string]bool{"success": true})
			})
		}))
}
