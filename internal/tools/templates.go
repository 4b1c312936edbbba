package tools

import (
	"context"
	"encoding/json"

	"github.com/geogebra-mcp/geogebra-mcp/internal/mcp"
	"github.com/geogebra-mcp/geogebra-mcp/internal/template"
)

// RegisterTemplates adds the Template Runtime's (C9) tool-facing surface:
// listing and running named pre-canned tool-call sequences. rt must already
// be bound to reg (see template.New).
func RegisterTemplates(reg *mcp.Registry, rt *template.Runtime) {
	reg.Register(NewTool("geogebra_list_templates", "Lists the available pre-canned tool-call sequences.",
		`{"type":"object","properties":{}}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			return mcp.JSONResult(rt.List())
		}))

	reg.Register(NewTool("geogebra_run_template", "Runs a named template, dispatching its tool calls sequentially against the pool.",
		`{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				Name string `json:"name" validate:"required"`
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			steps, err := rt.Run(ctx, args.Name, nil)
			if err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			return mcp.JSONResult(map[string]any{"steps": steps})
		}))
}
