package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointEmitsTwoAndThreeDimensional(t *testing.T) {
	assert.Equal(t, Command("A = (1, 2)"), Point("A", 1, 2, nil))
	z := 3.0
	assert.Equal(t, Command("A = (1, 2, 3)"), Point("A", 1, 2, &z))
}

func TestPlotFunctionRestrictedDomain(t *testing.T) {
	assert.Equal(t, Command("f(x) = sin(x)"), PlotFunction("f", "sin(x)", nil, nil))

	xMin, xMax := -1.0, 1.0
	assert.Equal(t, Command("f(x) = If(-1 <= x <= 1, sin(x), ?)"), PlotFunction("f", "sin(x)", &xMin, &xMax))
}

func TestPlotParametric(t *testing.T) {
	got := PlotParametric("c", "cos(t)", "sin(t)", "t", 0, 6.28)
	assert.Equal(t, Command("c = Curve(cos(t), sin(t), t, 0, 6.28)"), got)
}

func TestPlotImplicit(t *testing.T) {
	assert.Equal(t, Command("g = ImplicitCurve(x^2 + y^2 - 4)"), PlotImplicit("g", "x^2 + y^2 - 4"))
}

func TestTextQuotingRule(t *testing.T) {
	// Plain content gets wrapped in quotes.
	assert.Equal(t, Command(`t1 = Text("hello", (0, 0))`), Text("t1", "hello", 0, 0))

	// Already-quoted content is emitted verbatim.
	assert.Equal(t, Command(`t2 = Text("hello", (0, 0))`), Text("t2", `"hello"`, 0, 0))

	// Dynamic-concat content (contains " + ") is emitted verbatim.
	assert.Equal(t, Command(`t3 = Text("x = " + x, (0, 0))`), Text("t3", `"x = " + x`, 0, 0))
}

func TestSliderEmitsAllNineArguments(t *testing.T) {
	got := Slider("n", 0, 10, 1, 5, 200, false, true, false, false)
	assert.Equal(t, Command("n = Slider(0, 10, 1, 5, 200, false, true, false, false)"), got)
}

func TestStylingAppliesInOrder(t *testing.T) {
	s := Styling{Color: "#FF0000", Thickness: 3, Style: "dashed"}
	cmds := s.Apply(nil, "f")
	assert.Equal(t, []Command{
		`SetColor(f, "#FF0000")`,
		"SetLineThickness(f, 3)",
		"SetLineStyle(f, 10)",
	}, cmds)
}

func TestStylingSkipsUnsetFields(t *testing.T) {
	s := Styling{Color: "#FF0000"}
	cmds := s.Apply(nil, "f")
	assert.Equal(t, []Command{`SetColor(f, "#FF0000")`}, cmds)
}

func TestLineStyleCodes(t *testing.T) {
	assert.Equal(t, LineStyleSolid, LineStyleCode("solid"))
	assert.Equal(t, LineStyleDashed, LineStyleCode("dashed"))
	assert.Equal(t, LineStyleDotted, LineStyleCode("dotted"))
}

func TestFloatFormattingIsShortestRoundTrip(t *testing.T) {
	assert.Equal(t, Command("A = (0.1, 0.2)"), Point("A", 0.1, 0.2, nil))
}
