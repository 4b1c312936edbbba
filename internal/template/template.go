// Package template implements the Template Runtime (C9): a static registry
// of named tool-call sequences ("educational templates") executed
// sequentially against the shared pool through the tool dispatcher.
package template

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/geogebra-mcp/geogebra-mcp/internal/errs"
	"github.com/geogebra-mcp/geogebra-mcp/internal/mcp"
)

// Call is one step of a template: a tool name plus its default arguments.
type Call struct {
	Tool string
	Args map[string]any
}

// Template is a named, ordered sequence of tool calls.
type Template struct {
	Name        string
	Description string
	Calls       []Call
}

// Runtime holds the static template catalogue and dispatches against a
// registry of tools.
type Runtime struct {
	registry  *mcp.Registry
	templates map[string]Template
	order     []string
}

// New builds a Runtime bound to reg, pre-populated with the built-in
// catalogue.
func New(reg *mcp.Registry) *Runtime {
	rt := &Runtime{
		registry:  reg,
		templates: make(map[string]Template),
	}
	for _, t := range builtinCatalogue() {
		rt.register(t)
	}
	return rt
}

func (rt *Runtime) register(t Template) {
	if _, exists := rt.templates[t.Name]; exists {
		panic(fmt.Sprintf("template %q already registered", t.Name))
	}
	rt.templates[t.Name] = t
	rt.order = append(rt.order, t.Name)
}

// List returns the catalogue in registration order.
func (rt *Runtime) List() []Template {
	out := make([]Template, 0, len(rt.order))
	for _, name := range rt.order {
		out = append(out, rt.templates[name])
	}
	return out
}

// StepResult captures the outcome of one call within a Run.
type StepResult struct {
	Tool   string              `json:"tool"`
	Result *mcp.ToolsCallResult `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

// Run dispatches each call in the named template sequentially against the
// shared registry, stopping at the first failure (mirroring spec.md §5.3's
// ordering guarantee: later steps may depend on earlier ones having run).
// overrides, if non-nil, replaces a call's default args by index.
func (rt *Runtime) Run(ctx context.Context, name string, overrides map[int]map[string]any) ([]StepResult, error) {
	tmpl, ok := rt.templates[name]
	if !ok {
		return nil, errs.Newf(errs.ToolNotFound, "template %q not found", name)
	}

	results := make([]StepResult, 0, len(tmpl.Calls))
	for i, call := range tmpl.Calls {
		args := call.Args
		if override, ok := overrides[i]; ok {
			args = override
		}
		raw, err := json.Marshal(args)
		if err != nil {
			return results, errs.Newf(errs.InternalError, "encoding template step %d args: %v", i, err)
		}

		tool := rt.registry.Get(call.Tool)
		if tool == nil {
			results = append(results, StepResult{Tool: call.Tool, Error: fmt.Sprintf("tool %q not found", call.Tool)})
			return results, errs.Newf(errs.ToolNotFound, "template %q step %d: tool %q not found", name, i, call.Tool)
		}

		res, err := tool.Execute(ctx, raw)
		if err != nil {
			results = append(results, StepResult{Tool: call.Tool, Error: err.Error()})
			return results, errs.Newf(errs.ToolExecutionError, "template %q step %d (%s): %v", name, i, call.Tool, err)
		}
		results = append(results, StepResult{Tool: call.Tool, Result: res})
		if res != nil && res.IsError {
			return results, errs.Newf(errs.ToolExecutionError, "template %q step %d (%s) reported an error result", name, i, call.Tool)
		}
	}
	return results, nil
}

// builtinCatalogue is the static set of educational templates shipped with
// the server.
func builtinCatalogue() []Template {
	return []Template{
		{
			Name:        "unit_circle",
			Description: "Draws the unit circle with axis labels and its center point.",
			Calls: []Call{
				{Tool: "geogebra_clear_construction", Args: map[string]any{}},
				{Tool: "geogebra_set_axes_labels", Args: map[string]any{"xLabel": "x", "yLabel": "y"}},
				{Tool: "geogebra_create_point", Args: map[string]any{"name": "O", "x": 0, "y": 0}},
				{Tool: "geogebra_plot_implicit", Args: map[string]any{"name": "c", "expression": "x^2 + y^2 - 1"}},
			},
		},
		{
			Name:        "quadratic_family",
			Description: "Plots a parametrized quadratic with a slider for the leading coefficient.",
			Calls: []Call{
				{Tool: "geogebra_clear_construction", Args: map[string]any{}},
				{Tool: "geogebra_create_slider", Args: map[string]any{
					"name": "a", "min": -5, "max": 5, "increment": 0.1, "x": 1, "y": 1,
				}},
				{Tool: "geogebra_plot_function", Args: map[string]any{
					"name": "f", "expression": "a x^2",
				}},
			},
		},
	}
}
