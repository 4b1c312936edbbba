package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafetyScreenRejectsDangerousConstructs(t *testing.T) {
	cases := []string{
		`eval(x)`, `setTimeout(f,1)`, `new Function("x")`, `require("fs")`,
		`window.alert(1)`, `document.cookie`, `a.__proto__.x`, `constructor(1)`,
		`CONSOLE.log(1)`,
	}
	for _, c := range cases {
		r := SafetyScreen(c)
		assert.Falsef(t, r.Valid, "expected %q to be rejected", c)
	}
}

func TestSafetyScreenAllowsOrdinaryExpressions(t *testing.T) {
	r := SafetyScreen("x^2 - 2*x - 3")
	require.True(t, r.Valid)
}

func TestValidateFunctionWhitelist(t *testing.T) {
	assert.True(t, ValidateFunction("sin(x) + cos(x)").Valid)
	assert.False(t, ValidateFunction("evil(x)").Valid)
}

func TestValidateFunctionBalancedParens(t *testing.T) {
	assert.True(t, ValidateFunction("sqrt(x^2 + 1)").Valid)
	assert.False(t, ValidateFunction("sqrt(x^2 + 1").Valid)
}

func TestValidateFunctionOperatorRun(t *testing.T) {
	assert.False(t, ValidateFunction("x ++ 1").Valid)
	assert.False(t, ValidateFunction("x+-1").Valid)
	assert.True(t, ValidateFunction("x - 1").Valid)
}

func TestValidateParametricRequiresParamReference(t *testing.T) {
	assert.True(t, ValidateParametric("cos(t)", "sin(t)", "t").Valid)
	assert.False(t, ValidateParametric("cos(u)", "sin(t)", "t").Valid)
}

func TestValidateImplicitRequiresXAndY(t *testing.T) {
	assert.True(t, ValidateImplicit("x^2 + y^2 - 4").Valid)
	assert.False(t, ValidateImplicit("x^2 - 4").Valid)
}

func TestValidateEquationExactlyOneEquals(t *testing.T) {
	assert.True(t, ValidateEquation("x + 1 = 5", "x").Valid)
	assert.False(t, ValidateEquation("x + 1 == 5", "x").Valid)
	assert.False(t, ValidateEquation("x + 1 = 5", "z").Valid)
}

func TestValidateDomainOrdering(t *testing.T) {
	assert.True(t, ValidateDomain(-1, 1).Valid)
	assert.False(t, ValidateDomain(1, 1).Valid)
	assert.False(t, ValidateDomain(2, 1).Valid)
}

func TestValidateColor(t *testing.T) {
	assert.True(t, ValidateColor("#FF00AA").Valid)
	assert.True(t, ValidateColor("#f0a").Valid)
	assert.True(t, ValidateColor("rgb(1,2,3)").Valid)
	assert.True(t, ValidateColor("red").Valid)
	assert.False(t, ValidateColor("notacolor").Valid)
}

func TestValidateThicknessRange(t *testing.T) {
	assert.True(t, ValidateThickness(1).Valid)
	assert.True(t, ValidateThickness(10).Valid)
	assert.False(t, ValidateThickness(0).Valid)
	assert.False(t, ValidateThickness(11).Valid)
}

func TestValidateExportPNGBoundaries(t *testing.T) {
	assert.True(t, ValidateExportPNG(0.1, 72, 100, 100).Valid)
	assert.True(t, ValidateExportPNG(10, 300, 5000, 5000).Valid)
	assert.False(t, ValidateExportPNG(0.09, 72, 100, 100).Valid)
	assert.False(t, ValidateExportPNG(10.01, 72, 100, 100).Valid)
}
