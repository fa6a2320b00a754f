package bridge

import (
	"regexp"
	"strings"

	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"

	"github.com/auraframes/genesis-bridge/errors"
)

// greetingWIT declares the bridge's contract. Core modules carry no type
// metadata, so the abstract signature lives here and is checked against
// the compiled guest's core shape at load time.
const greetingWIT = `greeting: func() -> string`

// funcPattern matches "name: func() -> result".
var funcPattern = regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_-]*)\s*:\s*func\s*\(\s*\)\s*->\s*([^;\s]+)`)

// parseContract extracts the declared result type from a WIT function
// signature with no parameters.
func parseContract(witText string) (wit.Type, error) {
	match := funcPattern.FindStringSubmatch(witText)
	if match == nil {
		return nil, errors.InvalidInput(errors.PhaseParse, "no zero-parameter function found in WIT text")
	}

	t, err := wit.ParseType(strings.TrimSpace(match[2]))
	if err != nil {
		return nil, errors.ParseFailed("WIT result type "+match[2], err)
	}
	return t, nil
}

// greetingCoreShape returns the core WASM signature the declared contract
// lowers to. A string result crosses the boundary as one packed i64.
func greetingCoreShape() (params, results []api.ValueType, err error) {
	t, err := parseContract(greetingWIT)
	if err != nil {
		return nil, nil, err
	}

	if _, ok := t.(wit.String); !ok {
		return nil, nil, errors.InvalidInput(errors.PhaseParse, "contract result must be string")
	}
	return nil, []api.ValueType{api.ValueTypeI64}, nil
}
