// Package tools implements the GeoGebra MCP tool catalogue (C6 handlers):
// meta, construction control, object creation, plotting, styling, view,
// export, and performance tools, each translating into C1/C3 and executing
// against a driver borrowed from C5.
package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/geogebra-mcp/geogebra-mcp/internal/errs"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeArgs unmarshals raw tool-call arguments into dst and runs
// go-playground/validator struct-tag validation over it, returning
// INVALID_TOOL_ARGUMENTS listing every violation (spec.md §4.5 step 2).
func DecodeArgs(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errs.Newf(errs.InvalidToolArguments, "malformed arguments: %v", err)
	}
	if err := validate.Struct(dst); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return errs.Newf(errs.InvalidToolArguments, "argument validation failed: %v", err)
		}
		var msgs []string
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q constraint", fe.Field(), fe.Tag()))
		}
		return errs.New(errs.InvalidToolArguments, strings.Join(msgs, "; "))
	}
	return nil
}
