package tools

import (
	"context"
	"encoding/json"

	"github.com/geogebra-mcp/geogebra-mcp/internal/browser"
	"github.com/geogebra-mcp/geogebra-mcp/internal/mcp"
)

// RegisterStyling adds geogebra_set_object_style.
func RegisterStyling(reg *mcp.Registry, d Deps) {
	reg.Register(NewTool("geogebra_set_object_style", "Applies color/thickness/line-style to an existing object.",
		`{"type":"object","properties":{"objectName":{"type":"string"},"color":{"type":"string"},"thickness":{"type":"integer"},"style":{"type":"string"}},"required":["objectName"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				ObjectName string `json:"objectName" validate:"required"`
				stylingArgs
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			if r := args.validate(); r != nil {
				return mcp.ErrorResult(r.Reason), nil
			}
			return d.WithDriver(ctx, "eval_command", func(ctx context.Context, drv *browser.Driver) (*mcp.ToolsCallResult, error) {
				cmds := args.toCommand().Apply(nil, args.ObjectName)
				if len(cmds) == 0 {
					return mcp.JSONResult(map[string]bool{"success": true})
				}
				return runCommands(ctx, drv, cmds)
			})
		}))
}
