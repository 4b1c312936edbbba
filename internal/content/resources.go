package content

import "github.com/geogebra-mcp/geogebra-mcp/internal/mcp"

// --- geogebra-mcp://dsl-reference resource ---

// DSLReferenceResource exposes the GeoGebra command DSL subset this server
// emits, as a reference for LLMs composing raw eval commands.
type DSLReferenceResource struct{}

func (r *DSLReferenceResource) Definition() mcp.ResourceDefinition {
	return mcp.ResourceDefinition{
		URI:         "geogebra-mcp://dsl-reference",
		Name:        "GeoGebra DSL Reference",
		Description: "Reference for the GeoGebra command syntax this server emits and accepts via geogebra_eval_command",
		MimeType:    "text/markdown",
	}
}

func (r *DSLReferenceResource) Read() (*mcp.ResourcesReadResult, error) {
	return &mcp.ResourcesReadResult{
		Contents: []mcp.ResourceContent{
			{
				URI:      "geogebra-mcp://dsl-reference",
				MimeType: "text/markdown",
				Text:     dslReferenceContent,
			},
		},
	}, nil
}

// --- geogebra-mcp://tool-reference resource ---

// ToolReferenceResource exposes a quick-reference card for the tool
// catalogue.
type ToolReferenceResource struct{}

func (r *ToolReferenceResource) Definition() mcp.ResourceDefinition {
	return mcp.ResourceDefinition{
		URI:         "geogebra-mcp://tool-reference",
		Name:        "GeoGebra MCP Tool Reference",
		Description: "Quick-reference card for the GeoGebra MCP tool catalogue with parameters and usage notes",
		MimeType:    "text/markdown",
	}
}

func (r *ToolReferenceResource) Read() (*mcp.ResourcesReadResult, error) {
	return &mcp.ResourcesReadResult{
		Contents: []mcp.ResourceContent{
			{
				URI:      "geogebra-mcp://tool-reference",
				MimeType: "text/markdown",
				Text:     toolReferenceContent,
			},
		},
	}, nil
}

const dslReferenceContent = `# GeoGebra DSL Reference

This server translates tool calls into a small, deterministic subset of
GeoGebra's command syntax before sending them to the applet; the same
syntax is accepted by ` + "`geogebra_eval_command`" + `. Numbers are formatted with the shortest
round-trip representation (e.g. ` + "`0.1`" + `, not ` + "`0.10000000000000001`" + `).

## Objects

- ` + "`name = (x, y)`" + ` / ` + "`name = (x, y, z)`" + ` (3D)
- ` + "`name = Line(point1, point2)`" + `
- ` + "`name = Segment(point1, point2)`" + `
- ` + "`name = Vector(point1, point2)`" + `
- ` + "`name = Circle(center, radius)`" + ` / ` + "`name = Circle(center, point)`" + ` /
  ` + "`name = Circle(p1, p2, p3)`" + `
- ` + "`name = Polygon(v1, v2, ..., vN)`" + `

## Plotting

- ` + "`name(x) = If(xMin <= x <= xMax, expr, ?)`" + ` for a
  domain-restricted y = f(x) plot, or ` + "`name(x) = expr`" + ` when
  unrestricted.
- ` + "`name = Curve(xExpr, yExpr, param, tMin, tMax)`" + ` for parametric
  curves.
- ` + "`name = ImplicitCurve(expr)`" + ` for the implicit relation expr = 0.

## Sliders

- ` + "`name = Slider(min, max, increment, value, width, isAngle, horizontal, animating, random)`" + `

## Styling side-commands

Applied in order color → thickness → style, one object at a time:
- ` + "`SetColor(obj, \"color\")`" + ` (the color string as given: #RRGGBB, #RGB, rgb(...), or a named color)
- ` + "`SetLineThickness(obj, n)`" + ` (1-10)
- ` + "`SetLineStyle(obj, code)`" + ` (0 = solid, 10 = dashed, 20 = dotted)

## Text

- ` + "`name = Text(content, (x, y))`" + ` — content already wrapped in
  ` + "`\"...\"` " + `is emitted verbatim; anything containing ` + "`+`" + `
  with a single space on each side (a dynamic concatenation) is also
  emitted verbatim; everything else is quoted.

## View

- ` + "`SetAxesLabels(\"xLabel\", \"yLabel\")`" + `

Axis and grid visibility and the coordinate-system bounds are set through
the applet's API (setAxesVisible, setGridVisible, setCoordSystem), not
through DSL commands.
`

const toolReferenceContent = `# GeoGebra MCP Tool Reference

## Construction

- ` + "`geogebra_clear_construction`" + ` — resets the active instance.
- ` + "`geogebra_instance_status`" + ` — pool occupancy snapshot.
- ` + "`geogebra_get_objects(type?)`" + ` — lists object names, optionally
  filtered by GeoGebra object type.
- ` + "`geogebra_eval_command(command)`" + ` — evaluates a raw DSL command.

## Creation

- ` + "`geogebra_create_point(name, x, y, z?)`" + `
- ` + "`geogebra_create_line(name, point1, point2)`" + `
- ` + "`geogebra_create_line_segment(name, point1, point2)`" + `
- ` + "`geogebra_create_polygon(name, vertices[3+])`" + `
- ` + "`geogebra_create_slider(name, min, max, value, increment, x, y, width, caption?)`" + `
- ` + "`geogebra_create_text(text, x, y, name?, color?)`" + `

## Plotting (all accept optional color/thickness/style)

- ` + "`geogebra_plot_function(name, expression, xMin?, xMax?)`" + `
- ` + "`geogebra_plot_parametric(name, xExpression, yExpression, parameter, tMin, tMax)`" + `
- ` + "`geogebra_plot_implicit(name, expression)`" + `

## Styling and view

- ` + "`geogebra_set_object_style(objectName, color?, thickness?, style?)`" + `
- ` + "`geogebra_set_axes_labels(xLabel, yLabel)`" + `
- ` + "`geogebra_set_axes_visible(x, y)`" + `
- ` + "`geogebra_set_grid_visible(visible)`" + `
- ` + "`geogebra_set_coord_system(xMin, xMax, yMin, yMax)`" + `

## Export

- ` + "`geogebra_export_png(scale?, transparent?, dpi?, width?, height?, xmin?, xmax?, ymin?, ymax?, showAxes?, showGrid?)`" + `
- ` + "`geogebra_export_svg(xmin?, xmax?, ymin?, ymax?)`" + `
- ` + "`geogebra_export_pdf()`" + `
- ` + "`geogebra_export_animation(durationMs, frameRate, width?, height?, format, quality?, sliderName?)`" + `

## Templates

- ` + "`geogebra_list_templates`" + `
- ` + "`geogebra_run_template(name)`" + `

## Performance

- ` + "`performance_get_stats(operationName?)`" + `
- ` + "`performance_get_pool_stats`" + `
- ` + "`performance_warm_up_pool(count?)`" + `
- ` + "`performance_clear_metrics`" + `
- ` + "`performance_monitor_compliance(thresholdMs?)`" + `

## Meta

- ` + "`ping`" + `, ` + "`echo(message)`" + `, ` + "`server_info`" + `
`
