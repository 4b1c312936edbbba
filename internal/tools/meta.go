package tools

import (
	"context"
	"encoding/json"

	"github.com/geogebra-mcp/geogebra-mcp/internal/mcp"
)

// RegisterMeta adds the liveness/meta tools: ping, echo, server_info.
func RegisterMeta(reg *mcp.Registry, serverName, serverVersion string) {
	reg.Register(NewTool("ping", "Liveness check; returns pong.",
		`{"type":"object","properties":{}}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			return &mcp.ToolsCallResult{Content: []mcp.ContentBlock{mcp.TextContent("pong")}}, nil
		}))

	reg.Register(NewTool("echo", "Echoes back the given message.",
		`{"type":"object","properties":{"message":{"type":"string"}},"required":["message"]}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			var args struct {
				Message string `json:"message" validate:"required"`
			}
			if err := DecodeArgs(raw, &args); err != nil {
				return mcp.ErrorResult(err.Error()), nil
			}
			return &mcp.ToolsCallResult{Content: []mcp.ContentBlock{mcp.TextContent("Echo: " + args.Message)}}, nil
		}))

	reg.Register(NewTool("server_info", "Returns server name and version.",
		`{"type":"object","properties":{}}`,
		func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error) {
			return mcp.JSONResult(map[string]string{"name": serverName, "version": serverVersion})
		}))
}
