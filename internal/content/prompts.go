// Package content provides MCP prompts and resources for the GeoGebra MCP
// server: interactive guides and static reference material an LLM client
// can read to use the tool catalogue effectively.
package content

import "github.com/geogebra-mcp/geogebra-mcp/internal/mcp"

// --- build-construction prompt ---

// BuildConstructionPrompt walks an LLM through building a GeoGebra
// construction from a natural-language description.
type BuildConstructionPrompt struct{}

func (p *BuildConstructionPrompt) Definition() mcp.PromptDefinition {
	return mcp.PromptDefinition{
		Name:        "build-construction",
		Description: "Interactive guide for turning a math description into a sequence of GeoGebra tool calls.",
		Arguments:   []mcp.PromptArgument{},
	}
}

func (p *BuildConstructionPrompt) Get(arguments map[string]string) (*mcp.PromptsGetResult, error) {
	return &mcp.PromptsGetResult{
		Description: "Guide for building a GeoGebra construction",
		Messages: []mcp.PromptMessage{
			{
				Role:    "user",
				Content: mcp.TextContent(buildConstructionGuide),
			},
		},
	}, nil
}

const buildConstructionGuide = `# Build a GeoGebra Construction

You are helping a user turn a mathematical idea into a live GeoGebra
construction, one tool call at a time.

## Step 1: Clarify the math

Ask:
- What object(s) should appear? (points, lines, circles, polygons, plots)
- Is this 2D or 3D?
- Should anything be interactive (a slider-driven parameter)?
- What view window makes sense (xmin/xmax/ymin/ymax)?

## Step 2: Start clean

Call ` + "`geogebra_clear_construction`" + ` before building, unless the user
explicitly wants to add to an existing construction.

## Step 3: Create objects in dependency order

Points before lines/polygons that reference them. Sliders before any
expression that uses the slider's name as a parameter. Use
` + "`geogebra_create_point`" + `, ` + "`geogebra_create_line`" + `,
` + "`geogebra_create_line_segment`" + `, ` + "`geogebra_create_polygon`" + `,
` + "`geogebra_create_slider`" + `, ` + "`geogebra_create_text`" + `.

## Step 4: Plot expressions

Use ` + "`geogebra_plot_function`" + ` for y = f(x) forms (optionally
restricted to a domain), ` + "`geogebra_plot_parametric`" + ` for
(x(t), y(t)) curves, and ` + "`geogebra_plot_implicit`" + ` for F(x,y) = 0
relations. All three accept optional color/thickness/style.

## Step 5: Style and frame the view

` + "`geogebra_set_object_style`" + ` to restyle an existing object.
` + "`geogebra_set_axes_visible`" + `, ` + "`geogebra_set_grid_visible`" + `,
` + "`geogebra_set_coord_system`" + ` to frame the canvas.

## Step 6: Export or animate

` + "`geogebra_export_png`" + `/` + "`geogebra_export_svg`" + `/
` + "`geogebra_export_pdf`" + ` for a static snapshot.
` + "`geogebra_export_animation`" + ` when a slider should be swept over
time into a GIF or MP4.

## Tips

1. Name every object you will reference later — anonymous objects can't
   be targeted by ` + "`geogebra_set_object_style`" + ` or used as plot
   inputs.
2. Check ` + "`geogebra_get_objects`" + ` if you're unsure what already
   exists in the construction.
3. ` + "`geogebra_list_templates`" + ` / ` + "`geogebra_run_template`" + `
   cover a few common constructions (unit circle, parametrized quadratic)
   end-to-end if the user's request matches one.

## Start now

Ask: "What would you like to construct, and should it be interactive?"
`

// --- diagnose-performance prompt ---

// DiagnosePerformancePrompt guides an LLM through reading the performance
// and pool introspection tools when something feels slow.
type DiagnosePerformancePrompt struct{}

func (p *DiagnosePerformancePrompt) Definition() mcp.PromptDefinition {
	return mcp.PromptDefinition{
		Name:        "diagnose-performance",
		Description: "Guide for investigating slow tool calls using the performance and pool introspection tools.",
		Arguments:   []mcp.PromptArgument{},
	}
}

func (p *DiagnosePerformancePrompt) Get(arguments map[string]string) (*mcp.PromptsGetResult, error) {
	return &mcp.PromptsGetResult{
		Description: "Guide for diagnosing slow tool calls",
		Messages: []mcp.PromptMessage{
			{
				Role:    "user",
				Content: mcp.TextContent(diagnosePerformanceGuide),
			},
		},
	}, nil
}

const diagnosePerformanceGuide = `# Diagnose Performance

## Step 1: Get the numbers

Call ` + "`performance_get_stats`" + ` (optionally with an ` + "`operationName`" + `
filter) to see mean/median/p95/p99 timings and success rate.
Call ` + "`performance_get_pool_stats`" + ` to see instance pool occupancy
and average reuse count.

## Step 2: Compare against budget

` + "`performance_monitor_compliance`" + ` reports whether p95 is within a
given threshold (default 1000ms).

## Step 3: Common causes

- High pool "active" count near the configured max → instances are being
  force-reclaimed; consider ` + "`performance_warm_up_pool`" + `.
- One operation dominating p99 → likely an export or animation call;
  these are inherently heavier than DSL evaluation.

## Step 4: Reset if needed

` + "`performance_clear_metrics`" + ` clears the in-memory ring buffer if
you want a clean baseline after changing something.
`
