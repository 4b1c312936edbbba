package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/geogebra-mcp/geogebra-mcp/internal/browser"
	"github.com/geogebra-mcp/geogebra-mcp/internal/command"
	"github.com/geogebra-mcp/geogebra-mcp/internal/mcp"
	"github.com/geogebra-mcp/geogebra-mcp/internal/validator"
)

// runCommands evaluates cmds in order against drv, stopping (and surfacing
// a not-success envelope) at the first failure, per the translator's
// ordering guarantee (spec.md §5.3).
func runCommands(ctx context.Context, drv *browser.Driver, cmds []command.Command) (*mcp.ToolsCallResult, error) {
	for _, c := range cmds {
		result, err := drv.EvalCommand(ctx, string(c))
		if err != nil {
			return nil, err
		}
		if !result.Success {
			return mcp.JSONResult(map[string]any{"success": false, "failedCommand": string(c)})
		}
	}
	return mcp.JSONResult(map[string]any{"success": true})
}

// RegisterCreation adds the object-creation tools: point, line, line
// segment, polygon, slider, text.
func RegisterCreation(reg *mcp.Registry, d Deps) {
	reg.Register(NewTool("geogebra_create_point", "Creates a named point, 2D or 3D.",
		`{"type":"object","properties":{"name":{"type":"string"},"x":{"type":"number"},"y":{"type":"number"},"z":{"type":"number"}},"required":["name","x","y"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				Name string   `json:"name" validate:"required"`
				X    float64  `json:"x"`
				Y    float64  `json:"y"`
				Z    *float64 `json:"z"`
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			return d.WithDriver(ctx, "create_point", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				return runCommands(ctx, drv, []command.Command{command.Point(args.Name, args.X, args.Y, args.Z)})
			})
		}))

	reg.Register(NewTool("geogebra_create_line", "Creates a line through two existing points.",
		`{"type":"object","properties":{"name":{"type":"string"},"point1":{"type":"string"},"point2":{"type":"string"}},"required":["name","point1","point2"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				Name   string `json:"name" validate:"required"`
				Point1 string `json:"point1" validate:"required"`
				Point2 string `json:"point2" validate:"required"`
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			return d.WithDriver(ctx, "create_line", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				return runCommands(ctx, drv, []command.Command{command.Line(args.Name, args.Point1, args.Point2)})
			})
		}))

	reg.Register(NewTool("geogebra_create_line_segment", "Creates a line segment between two existing points.",
		`{"type":"object","properties":{"name":{"type":"string"},"point1":{"type":"string"},"point2":{"type":"string"}},"required":["name","point1","point2"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				Name   string `json:"name" validate:"required"`
				Point1 string `json:"point1" validate:"required"`
				Point2 string `json:"point2" validate:"required"`
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			return d.WithDriver(ctx, "create_line", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				return runCommands(ctx, drv, []command.Command{command.LineSegment(args.Name, args.Point1, args.Point2)})
			})
		}))

	reg.Register(NewTool("geogebra_create_polygon", "Creates a polygon from an ordered list of existing point names.",
		`{"type":"object","properties":{"name":{"type":"string"},"vertices":{"type":"array","items":{"type":"string"},"minItems":3}},"required":["name","vertices"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				Name     string   `json:"name" validate:"required"`
				Vertices []string `json:"vertices" validate:"required,min=3"`
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			return d.WithDriver(ctx, "create_line", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				return runCommands(ctx, drv, []command.Command{command.Polygon(args.Name, args.Vertices)})
			})
		}))

	reg.Register(NewTool("geogebra_create_slider", "Creates a numeric slider.",
		`{"type":"object","properties":{"name":{"type":"string"},"min":{"type":"number"},"max":{"type":"number"},"value":{"type":"number"},"increment":{"type":"number"},"x":{"type":"number"},"y":{"type":"number"},"width":{"type":"integer"},"caption":{"type":"string"}},"required":["name","min","max","value","increment","x","y","width"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				Name      string  `json:"name" validate:"required"`
				Min       float64 `json:"min"`
				Max       float64 `json:"max"`
				Value     float64 `json:"value"`
				Increment float64 `json:"increment"`
				X         float64 `json:"x"`
				Y         float64 `json:"y"`
				Width     int     `json:"width"`
				Caption   string  `json:"caption"`
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			if r := validator.ValidateDomain(args.Min, args.Max); !r.Valid {
				return mcp.ErrorResult(r.Reason), nil
			}
			return d.WithDriver(ctx, "create_point", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				cmds := []command.Command{
					command.Slider(args.Name, args.Min, args.Max, args.Increment, args.Value, args.Width, false, true, false, false),
					command.Point(args.Name+"_pos_marker", args.X, args.Y, nil),
				}
				return runCommands(ctx, drv, cmds)
			})
		}))

	reg.Register(NewTool("geogebra_create_text", "Creates a text label at a position, with optional name and color.",
		`{"type":"object","properties":{"text":{"type":"string"},"x":{"type":"number"},"y":{"type":"number"},"name":{"type":"string"},"color":{"type":"string"}},"required":["text","x","y"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				Text  string  `json:"text" validate:"required"`
				X     float64 `json:"x"`
				Y     float64 `json:"y"`
				Name  string  `json:"name"`
				Color string  `json:"color"`
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			name := args.Name
			if name == "" {
				name = fmt.Sprintf("text_%d_%d", int(args.X), int(args.Y))
			}
			if args.Color != "" {
				if r := validator.ValidateColor(args.Color); !r.Valid {
					return mcp.ErrorResult(r.Reason), nil
				}
			}
			return d.WithDriver(ctx, "create_point", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				cmds := []command.Command{command.Text(name, args.Text, args.X, args.Y)}
				cmds = command.Styling{Color: args.Color}.Apply(cmds, name)
				return runCommands(ctx, drv, cmds)
			})
		}))
}
