package tools

import (
	"context"
	"encoding/json"

	"github.com/geogebra-mcp/geogebra-mcp/internal/mcp"
)

// HandlerFunc is the body of one tool call, given the raw JSON arguments.
type HandlerFunc func(ctx context.Context, raw json.RawMessage) (*mcp.ToolsCallResult, error)

// simpleTool adapts a name/description/schema/handler tuple to mcp.Tool.
type simpleTool struct {
	name   string
	desc   string
	schema json.RawMessage
	fn     HandlerFunc
}

// NewTool builds an mcp.Tool from its parts. schema should be a JSON Schema
// literal describing the tool's arguments.
func NewTool(name, desc, schema string, fn HandlerFunc) mcp.Tool {
	return &simpleTool{name: name, desc: desc, schema: json.RawMessage(schema), fn: fn}
}

func (t *simpleTool) Name() string                 { return t.name }
func (t *simpleTool) Description() string          { return t.desc }
func (t *simpleTool) InputSchema() json.RawMessage { return t.schema }

func (t *simpleTool) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	return t.fn(ctx, params)
}
