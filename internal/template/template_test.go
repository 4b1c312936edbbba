package template

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geogebra-mcp/geogebra-mcp/internal/mcp"
)

type stubTool struct {
	name  string
	calls [][]byte
	fail  bool
}

func (s *stubTool) Name() string                  { return s.name }
func (s *stubTool) Description() string           { return "stub" }
func (s *stubTool) InputSchema() json.RawMessage   { return json.RawMessage(`{}`) }
func (s *stubTool) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	s.calls = append(s.calls, params)
	if s.fail {
		return nil, assert.AnError
	}
	return mcp.JSONResult(map[string]bool{"ok": true})
}

func TestListReturnsBuiltinCatalogueInOrder(t *testing.T) {
	reg := mcp.NewRegistry()
	rt := New(reg)
	names := make([]string, 0)
	for _, tmpl := range rt.List() {
		names = append(names, tmpl.Name)
	}
	require.Len(t, names, 2)
	assert.Equal(t, "unit_circle", names[0])
	assert.Equal(t, "quadratic_family", names[1])
}

func TestRunDispatchesEachStepInOrder(t *testing.T) {
	reg := mcp.NewRegistry()
	a := &stubTool{name: "a"}
	b := &stubTool{name: "b"}
	reg.Register(a)
	reg.Register(b)

	rt := &Runtime{registry: reg, templates: map[string]Template{
		"seq": {Name: "seq", Calls: []Call{
			{Tool: "a", Args: map[string]any{"x": 1}},
			{Tool: "b", Args: map[string]any{"y": 2}},
		}},
	}}

	results, err := rt.Run(context.Background(), "seq", nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Tool)
	assert.Equal(t, "b", results[1].Tool)
	assert.Len(t, a.calls, 1)
	assert.Len(t, b.calls, 1)
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	reg := mcp.NewRegistry()
	a := &stubTool{name: "a", fail: true}
	b := &stubTool{name: "b"}
	reg.Register(a)
	reg.Register(b)

	rt := &Runtime{registry: reg, templates: map[string]Template{
		"seq": {Name: "seq", Calls: []Call{
			{Tool: "a", Args: map[string]any{}},
			{Tool: "b", Args: map[string]any{}},
		}},
	}}

	_, err := rt.Run(context.Background(), "seq", nil)
	require.Error(t, err)
	assert.Empty(t, b.calls)
}

func TestRunUnknownTemplateReturnsError(t *testing.T) {
	reg := mcp.NewRegistry()
	rt := New(reg)
	_, err := rt.Run(context.Background(), "does_not_exist", nil)
	require.Error(t, err)
}

func TestRunOverridesStepArgs(t *testing.T) {
	reg := mcp.NewRegistry()
	a := &stubTool{name: "a"}
	reg.Register(a)

	rt := &Runtime{registry: reg, templates: map[string]Template{
		"seq": {Name: "seq", Calls: []Call{
			{Tool: "a", Args: map[string]any{"x": 1}},
		}},
	}}

	_, err := rt.Run(context.Background(), "seq", map[int]map[string]any{0: {"x": 99}})
	require.NoError(t, err)
	require.Len(t, a.calls, 1)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(a.calls[0], &decoded))
	assert.Equal(t, float64(99), decoded["x"])
}
