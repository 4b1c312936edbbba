// Package command implements the Command Translator (C3): it turns
// structured tool arguments into ordered GeoGebra DSL command strings,
// including the follow-up styling side-commands.
package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is one DSL command string destined for a driver's eval call.
type Command string

// LineStyle codes per spec.md §4.2.
const (
	LineStyleSolid  = 0
	LineStyleDashed = 10
	LineStyleDotted = 20
)

var lineStyleCodes = map[string]int{
	"solid":  LineStyleSolid,
	"dashed": LineStyleDashed,
	"dotted": LineStyleDotted,
}

// LineStyleCode maps a named line style to its numeric DSL code. Unknown
// names fall back to solid; callers are expected to have already run the
// name past validator.ValidateLineStyle.
func LineStyleCode(name string) int {
	if code, ok := lineStyleCodes[strings.ToLower(name)]; ok {
		return code
	}
	return LineStyleSolid
}

// num formats a float with the shortest round-trip representation, per
// spec.md §4.2's "no locale-dependent formatting" rule.
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Point builds `name = (x, y)` or, with z set, `name = (x, y, z)`.
func Point(name string, x, y float64, z *float64) Command {
	if z != nil {
		return Command(fmt.Sprintf("%s = (%s, %s, %s)", name, num(x), num(y), num(*z)))
	}
	return Command(fmt.Sprintf("%s = (%s, %s)", name, num(x), num(y)))
}

// Line builds `name = Line(P, Q)`.
func Line(name, p1, p2 string) Command {
	return Command(fmt.Sprintf("%s = Line(%s, %s)", name, p1, p2))
}

// LineSegment builds `name = Segment(P, Q)`.
func LineSegment(name, p1, p2 string) Command {
	return Command(fmt.Sprintf("%s = Segment(%s, %s)", name, p1, p2))
}

// Vector builds `name = Vector(P, Q)`.
func Vector(name, p1, p2 string) Command {
	return Command(fmt.Sprintf("%s = Vector(%s, %s)", name, p1, p2))
}

// CircleCenterRadius builds `name = Circle(center, radius)`.
func CircleCenterRadius(name, center string, radius float64) Command {
	return Command(fmt.Sprintf("%s = Circle(%s, %s)", name, center, num(radius)))
}

// CircleCenterPoint builds `name = Circle(center, point)`.
func CircleCenterPoint(name, center, point string) Command {
	return Command(fmt.Sprintf("%s = Circle(%s, %s)", name, center, point))
}

// CircleThreePoints builds `name = Circle(p1, p2, p3)`.
func CircleThreePoints(name, p1, p2, p3 string) Command {
	return Command(fmt.Sprintf("%s = Circle(%s, %s, %s)", name, p1, p2, p3))
}

// Polygon builds `name = Polygon(v1, v2, ..., vn)`.
func Polygon(name string, vertices []string) Command {
	return Command(fmt.Sprintf("%s = Polygon(%s)", name, strings.Join(vertices, ", ")))
}

// PlotFunction builds an unrestricted `name(x) = expr` or, when xMin/xMax
// are both set, the domain-restricted `name(x) = If(xMin <= x <= xMax, expr, ?)`.
func PlotFunction(name, expr string, xMin, xMax *float64) Command {
	if xMin != nil && xMax != nil {
		return Command(fmt.Sprintf("%s(x) = If(%s <= x <= %s, %s, ?)", name, num(*xMin), num(*xMax), expr))
	}
	return Command(fmt.Sprintf("%s(x) = %s", name, expr))
}

// PlotParametric builds `name = Curve(xExpr, yExpr, p, tMin, tMax)`.
func PlotParametric(name, xExpr, yExpr, param string, tMin, tMax float64) Command {
	return Command(fmt.Sprintf("%s = Curve(%s, %s, %s, %s, %s)", name, xExpr, yExpr, param, num(tMin), num(tMax)))
}

// PlotImplicit builds `name = ImplicitCurve(expr)`.
func PlotImplicit(name, expr string) Command {
	return Command(fmt.Sprintf("%s = ImplicitCurve(%s)", name, expr))
}

// Slider builds `name = Slider(min, max, increment, initial, width, isAngle, horizontal, animating, random)`.
func Slider(name string, min, max, increment, initial float64, width int, isAngle, horizontal, animating, random bool) Command {
	return Command(fmt.Sprintf(
		"%s = Slider(%s, %s, %s, %s, %d, %s, %s, %s, %s)",
		name, num(min), num(max), num(increment), num(initial), width,
		boolLiteral(isAngle), boolLiteral(horizontal), boolLiteral(animating), boolLiteral(random),
	))
}

// Text builds `name = Text(contentExpr, (x, y))`, quoting contentExpr per
// spec.md §4.2: already-quoted or dynamic-concat (contains " + ") content is
// emitted verbatim, everything else is wrapped in double quotes.
func Text(name, content string, x, y float64) Command {
	return Command(fmt.Sprintf("%s = Text(%s, (%s, %s))", name, quoteTextContent(content), num(x), num(y)))
}

func quoteTextContent(content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, `"`) && strings.HasSuffix(trimmed, `"`) && len(trimmed) >= 2 {
		return trimmed
	}
	if strings.Contains(content, " + ") {
		return content
	}
	return `"` + content + `"`
}

// SetColor builds the `SetColor(name, "#RRGGBB")` side-command.
func SetColor(name, hexColor string) Command {
	return Command(fmt.Sprintf("SetColor(%s, %q)", name, hexColor))
}

// SetLineThickness builds the `SetLineThickness(name, n)` side-command.
func SetLineThickness(name string, n int) Command {
	return Command(fmt.Sprintf("SetLineThickness(%s, %d)", name, n))
}

// SetLineStyle builds the `SetLineStyle(name, code)` side-command from a
// named style (solid/dashed/dotted).
func SetLineStyle(name, style string) Command {
	return Command(fmt.Sprintf("SetLineStyle(%s, %d)", name, LineStyleCode(style)))
}

// Styling bundles the optional styling fields shared by most plotting and
// creation tools; zero values mean "not set, emit no side-command".
type Styling struct {
	Color     string
	Thickness int
	Style     string
}

// Apply appends the styling side-commands for obj to cmds, in color/
// thickness/style order, skipping fields that are unset.
func (s Styling) Apply(cmds []Command, obj string) []Command {
	if s.Color != "" {
		cmds = append(cmds, SetColor(obj, s.Color))
	}
	if s.Thickness != 0 {
		cmds = append(cmds, SetLineThickness(obj, s.Thickness))
	}
	if s.Style != "" {
		cmds = append(cmds, SetLineStyle(obj, s.Style))
	}
	return cmds
}

// SetAxesLabels builds `SetAxesLabels(xLabel, yLabel)`.
func SetAxesLabels(xLabel, yLabel string) Command {
	return Command(fmt.Sprintf("SetAxesLabels(%q, %q)", xLabel, yLabel))
}

// ShowAxes builds `ShowAxes(bool)`.
func ShowAxes(show bool) Command {
	return Command(fmt.Sprintf("ShowAxes(%s)", boolLiteral(show)))
}

// ShowGrid builds `ShowGrid(bool)`.
func ShowGrid(show bool) Command {
	return Command(fmt.Sprintf("ShowGrid(%s)", boolLiteral(show)))
}

// SetCoordSystem builds `SetCoordSystem(xMin, xMax, yMin, yMax)`.
func SetCoordSystem(xMin, xMax, yMin, yMax float64) Command {
	return Command(fmt.Sprintf("SetCoordSystem(%s, %s, %s, %s)", num(xMin), num(xMax), num(yMin), num(yMax)))
}

func boolLiteral(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
