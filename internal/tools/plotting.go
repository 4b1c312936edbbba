package tools

import (
	"context"
	"encoding/json"

	"github.com/geogebra-mcp/geogebra-mcp/internal/browser"
	"github.com/geogebra-mcp/geogebra-mcp/internal/command"
	"github.com/geogebra-mcp/geogebra-mcp/internal/mcp"
	"github.com/geogebra-mcp/geogebra-mcp/internal/validator"
)

type stylingArgs struct {
	Color     string `json:"color"`
	Thickness int    `json:"thickness"`
	Style     string `json:"style"`
}

func (s stylingArgs) validate() *validator.Result {
	if s.Color != "" {
		if r := validator.ValidateColor(s.Color); !r.Valid {
			return &r
		}
	}
	if s.Thickness != 0 {
		if r := validator.ValidateThickness(s.Thickness); !r.Valid {
			return &r
		}
	}
	if s.Style != "" {
		if r := validator.ValidateLineStyle(s.Style); !r.Valid {
			return &r
		}
	}
	return nil
}

func (s stylingArgs) toCommand() command.Styling {
	return command.Styling{Color: s.Color, Thickness: s.Thickness, Style: s.Style}
}

// RegisterPlotting adds the plotting tools: function, parametric, implicit.
func RegisterPlotting(reg *mcp.Registry, d Deps) {
	reg.Register(NewTool("geogebra_plot_function", "Plots a single-variable function f(x), optionally restricted to [xMin, xMax].",
		`{"type":"object","properties":{"name":{"type":"string"},"expression":{"type":"string"},"xMin":{"type":"number"},"xMax":{"type":"number"},"color":{"type":"string"},"thickness":{"type":"integer"},"style":{"type":"string"}},"required":["name","expression"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				Name       string   `json:"name" validate:"required"`
				Expression string   `json:"expression" validate:"required"`
				XMin       *float64 `json:"xMin"`
				XMax       *float64 `json:"xMax"`
				stylingArgs
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			if r := validator.ValidateFunction(args.Expression); !r.Valid {
				return mcp.ErrorResult(r.Reason), nil
			}
			if args.XMin != nil && args.XMax != nil {
				if r := validator.ValidateDomain(*args.XMin, *args.XMax); !r.Valid {
					return mcp.ErrorResult(r.Reason), nil
				}
			}
			if r := args.validate(); r != nil {
				return mcp.ErrorResult(r.Reason), nil
			}
			return d.WithDriver(ctx, "eval_command", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				cmds := []command.Command{command.PlotFunction(args.Name, args.Expression, args.XMin, args.XMax)}
				cmds = args.toCommand().Apply(cmds, args.Name)
				return runCommands(ctx, drv, cmds)
			})
		}))

	reg.Register(NewTool("geogebra_plot_parametric", "Plots a parametric curve (xExpression(t), yExpression(t)) over [tMin, tMax].",
		`{"type":"object","properties":{"name":{"type":"string"},"xExpression":{"type":"string"},"yExpression":{"type":"string"},"parameter":{"type":"string"},"tMin":{"type":"number"},"tMax":{"type":"number"},"color":{"type":"string"},"thickness":{"type":"integer"},"style":{"type":"string"}},"required":["name","xExpression","yExpression","parameter","tMin","tMax"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				Name        string  `json:"name" validate:"required"`
				XExpression string  `json:"xExpression" validate:"required"`
				YExpression string  `json:"yExpression" validate:"required"`
				Parameter   string  `json:"parameter" validate:"required"`
				TMin        float64 `json:"tMin"`
				TMax        float64 `json:"tMax"`
				stylingArgs
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			if r := validator.ValidateParametric(args.XExpression, args.YExpression, args.Parameter); !r.Valid {
				return mcp.ErrorResult(r.Reason), nil
			}
			if r := validator.ValidateDomain(args.TMin, args.TMax); !r.Valid {
				return mcp.ErrorResult(r.Reason), nil
			}
			if r := args.validate(); r != nil {
				return mcp.ErrorResult(r.Reason), nil
			}
			return d.WithDriver(ctx, "eval_command", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				cmds := []command.Command{command.PlotParametric(args.Name, args.XExpression, args.YExpression, args.Parameter, args.TMin, args.TMax)}
				cmds = args.toCommand().Apply(cmds, args.Name)
				return runCommands(ctx, drv, cmds)
			})
		}))

	reg.Register(NewTool("geogebra_plot_implicit", "Plots an implicit curve F(x,y)=0.",
		`{"type":"object","properties":{"name":{"type":"string"},"expression":{"type":"string"},"color":{"type":"string"},"thickness":{"type":"integer"},"style":{"type":"string"}},"required":["name","expression"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				Name       string `json:"name" validate:"required"`
				Expression string `json:"expression" validate:"required"`
				stylingArgs
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			if r := validator.ValidateImplicit(args.Expression); !r.Valid {
				return mcp.ErrorResult(r.Reason), nil
			}
			if r := args.validate(); r != nil {
				return mcp.ErrorResult(r.Reason), nil
			}
			return d.WithDriver(ctx, "eval_command", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				cmds := []command.Command{command.PlotImplicit(args.Name, args.Expression)}
				cmds = args.toCommand().Apply(cmds, args.Name)
				return runCommands(ctx, drv, cmds)
			})
		}))
}
