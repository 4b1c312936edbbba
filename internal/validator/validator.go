// Package validator implements the Expression Validator (C1): syntactic and
// semantic checks on the GeoGebra DSL surface before any expression reaches
// a driver. It does not evaluate expressions — it guards the surface.
//
// Like the guard-chain used elsewhere in this codebase for pre-flight
// checks, each rule is a small, named, composable function so a caller gets
// back exactly which rule rejected an input.
package validator

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Result is the outcome of a validation check.
type Result struct {
	Valid  bool
	Reason string
}

// OK is a passing Result.
func OK() Result { return Result{Valid: true} }

// Rejectf builds a failing Result with a formatted reason.
func Rejectf(format string, args ...any) Result {
	return Result{Valid: false, Reason: fmt.Sprintf(format, args...)}
}

// safetyPatterns are checked case-insensitively against raw input before any
// other rule runs (spec.md §4.1 "Safety screen").
var safetyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)eval\(`),
	regexp.MustCompile(`(?i)setTimeout\(`),
	regexp.MustCompile(`(?i)setInterval\(`),
	regexp.MustCompile(`(?i)Function\(`),
	regexp.MustCompile(`(?i)new\s+Function`),
	regexp.MustCompile(`(?i)require\(`),
	regexp.MustCompile(`(?i)import\(`),
	regexp.MustCompile(`(?i)process`),
	regexp.MustCompile(`(?i)global`),
	regexp.MustCompile(`(?i)window`),
	regexp.MustCompile(`(?i)document`),
	regexp.MustCompile(`(?i)console`),
	regexp.MustCompile(`(?i)\.__proto__`),
	regexp.MustCompile(`(?i)constructor\(`),
}

// SafetyScreen rejects raw input matching any dangerous construct. Applied
// before every other rule, for every expression class.
func SafetyScreen(raw string) Result {
	for _, p := range safetyPatterns {
		if p.MatchString(raw) {
			return Rejectf("expression matches disallowed pattern %q", p.String())
		}
	}
	return OK()
}

// functionWhitelist is the set of function-call tokens permitted in a
// standard function body.
var functionWhitelist = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"asin": true, "acos": true, "atan": true,
	"sinh": true, "cosh": true, "tanh": true,
	"log": true, "ln": true, "exp": true, "sqrt": true,
	"abs": true, "floor": true, "ceil": true, "round": true,
	"sign": true, "max": true, "min": true, "pow": true, "mod": true,
}

// allowedCharSet restricts a function body to digits, letters, whitespace,
// and the arithmetic/grouping operator set.
var allowedCharSet = regexp.MustCompile(`^[0-9A-Za-z\s+\-*/^().,_]*$`)

// functionCallToken finds maximal [A-Za-z]+\( tokens.
var functionCallToken = regexp.MustCompile(`[A-Za-z]+\(`)

// operatorRun detects two consecutive operators from + - * / ^.
var operatorRun = regexp.MustCompile(`[+\-*/^]\s*[+\-*/^]`)

var identifierRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidateFunction checks a standard function body `f(x) = expr`'s
// right-hand side (the expr part, not the whole assignment).
func ValidateFunction(expr string) Result {
	if r := SafetyScreen(expr); !r.Valid {
		return r
	}
	if !allowedCharSet.MatchString(expr) {
		return Rejectf("expression %q contains characters outside the allowed set", expr)
	}
	if !balancedParens(expr) {
		return Rejectf("expression %q has unbalanced parentheses", expr)
	}
	for _, tok := range functionCallToken.FindAllString(expr, -1) {
		name := strings.TrimSuffix(tok, "(")
		if !functionWhitelist[strings.ToLower(name)] {
			return Rejectf("function %q is not in the allowed whitelist", name)
		}
	}
	if operatorRun.MatchString(expr) {
		return Rejectf("expression %q contains a run of two operators", expr)
	}
	return OK()
}

// ValidateParametric checks x(t), y(t) component expressions against the
// function rule, with the parameter identifier verified and required to
// appear free in both sides.
func ValidateParametric(xExpr, yExpr, param string) Result {
	if param == "" {
		param = "t"
	}
	if !identifierRe.MatchString(param) {
		return Rejectf("parameter name %q is not a valid identifier", param)
	}
	if r := ValidateFunction(xExpr); !r.Valid {
		return r
	}
	if r := ValidateFunction(yExpr); !r.Valid {
		return r
	}
	if !referencesIdentifier(xExpr, param) {
		return Rejectf("x(%s) expression %q does not reference parameter %q", param, xExpr, param)
	}
	if !referencesIdentifier(yExpr, param) {
		return Rejectf("y(%s) expression %q does not reference parameter %q", param, yExpr, param)
	}
	return OK()
}

// ValidateImplicit checks F(x,y)=0 implicit-curve bodies: function-rule
// compliant, and must mention both free identifiers x and y.
func ValidateImplicit(expr string) Result {
	if r := ValidateFunction(expr); !r.Valid {
		return r
	}
	if !referencesIdentifier(expr, "x") {
		return Rejectf("implicit expression %q does not reference x", expr)
	}
	if !referencesIdentifier(expr, "y") {
		return Rejectf("implicit expression %q does not reference y", expr)
	}
	return OK()
}

// ValidateEquation checks an equation string contains exactly one `=` and
// that the target variable v appears and is a valid identifier.
func ValidateEquation(expr, targetVar string) Result {
	if r := SafetyScreen(expr); !r.Valid {
		return r
	}
	if strings.Count(expr, "=") != 1 {
		return Rejectf("equation %q must contain exactly one '='", expr)
	}
	if !identifierRe.MatchString(targetVar) {
		return Rejectf("target variable %q is not a valid identifier", targetVar)
	}
	if !referencesIdentifier(expr, targetVar) {
		return Rejectf("equation %q does not reference target variable %q", expr, targetVar)
	}
	return OK()
}

// ValidateDomain checks a numeric, finite range with min < max.
func ValidateDomain(min, max float64) Result {
	if isNaNOrInf(min) || isNaNOrInf(max) {
		return Rejectf("domain bounds must be finite, got min=%v max=%v", min, max)
	}
	if !(min < max) {
		return Rejectf("domain min (%v) must be less than max (%v)", min, max)
	}
	return OK()
}

var (
	hexColorLong  = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	hexColorShort = regexp.MustCompile(`^#[0-9A-Fa-f]{3}$`)
	rgbColor      = regexp.MustCompile(`^rgb\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*\)$`)
)

var namedColors = map[string]bool{
	"black": true, "white": true, "red": true, "green": true, "blue": true,
	"yellow": true, "orange": true, "purple": true, "gray": true, "grey": true,
	"cyan": true, "magenta": true, "brown": true, "pink": true,
}

// ValidateColor checks a styling color string.
func ValidateColor(color string) Result {
	c := strings.TrimSpace(color)
	if hexColorLong.MatchString(c) || hexColorShort.MatchString(c) || rgbColor.MatchString(c) {
		return OK()
	}
	if namedColors[strings.ToLower(c)] {
		return OK()
	}
	return Rejectf("color %q is not #RRGGBB, #RGB, rgb(...), or a known named color", color)
}

// ValidateThickness checks a styling thickness integer in [1,10].
func ValidateThickness(n int) Result {
	if n < 1 || n > 10 {
		return Rejectf("thickness %d is out of range [1,10]", n)
	}
	return OK()
}

var lineStyles = map[string]bool{"solid": true, "dashed": true, "dotted": true}

// ValidateLineStyle checks a styling line-style name.
func ValidateLineStyle(style string) Result {
	if !lineStyles[strings.ToLower(style)] {
		return Rejectf("line style %q must be one of solid, dashed, dotted", style)
	}
	return OK()
}

// ValidateExportPNG checks exportPNG's numeric bounds (spec.md §4.3.3):
// scale∈[0.1,10], dpi∈[72,300], width/height∈[100,5000].
func ValidateExportPNG(scale float64, dpi, width, height int) Result {
	if scale < 0.1 || scale > 10 {
		return Rejectf("scale %v is out of range [0.1,10]", scale)
	}
	if dpi < 72 || dpi > 300 {
		return Rejectf("dpi %d is out of range [72,300]", dpi)
	}
	if width < 100 || width > 5000 {
		return Rejectf("width %d is out of range [100,5000]", width)
	}
	if height < 100 || height > 5000 {
		return Rejectf("height %d is out of range [100,5000]", height)
	}
	return OK()
}

// balancedParens reports whether parentheses in s are balanced.
func balancedParens(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth < 0 {
			return false
		}
	}
	return depth == 0
}

// referencesIdentifier reports whether ident appears in s as a free token
// (not as part of a longer identifier).
func referencesIdentifier(s, ident string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(ident) + `\b`)
	return re.MatchString(s)
}

func isNaNOrInf(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
