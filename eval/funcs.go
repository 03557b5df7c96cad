package eval

import (
	"fmt"
	"math"
	"slices"

	"github.com/accelforge/specfe/ir"
)

// baseFuncs are always available to expressions.
var baseFuncs = Env{
	"ceil":  math.Ceil,
	"floor": math.Floor,
	"round": math.Round,
	"log2":  math.Log2,
	"sqrt":  math.Sqrt,
	"pow":   math.Pow,
}

// customFuncs can be enabled per document through the
// expression_custom_functions attribute.
var customFuncs = map[string]any{
	"clog2": func(v float64) int64 {
		if v <= 1 {
			return 0
		}
		return int64(math.Ceil(math.Log2(v)))
	},
	"gcd": gcd,
	"lcm": func(a, b int64) int64 {
		if a == 0 || b == 0 {
			return 0
		}
		return a / gcd(a, b) * b
	},
	"pow2": func(v float64) float64 {
		return math.Pow(2, v)
	},
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// Symbols lists the function names documents may enable.
func Symbols() []string {
	out := make([]string, 0, len(customFuncs))
	for name := range customFuncs {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// CustomFuncs resolves the names found in expression_custom_functions.
func CustomFuncs(names []ir.Value) (Env, error) {
	env := Env{}
	for _, nv := range names {
		name, ok := nv.(string)
		if !ok {
			return nil, fmt.Errorf("custom function name %v is not a string", nv)
		}
		f, ok := customFuncs[name]
		if !ok {
			return nil, fmt.Errorf("unknown custom function %q (have %v)", name, Symbols())
		}
		env[name] = f
	}
	return env, nil
}
