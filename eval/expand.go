package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/accelforge/specfe/debug"
	"github.com/accelforge/specfe/ir"

	"github.com/expr-lang/expr"
)

// Env is the expression environment.
type Env map[string]any

// Raw returns the expression inside v when v is exactly one $[...]
// expression, "" otherwise.
// Example: Raw("$[meshX * 2]") returns "meshX * 2".
func Raw(v string) string {
	if len(v) < 4 || v[0] != '$' || v[1] != '[' {
		return ""
	}
	for i := 2; i < len(v); i++ {
		switch v[i] {
		case '\\':
			i++
		case ']':
			if i != len(v)-1 {
				return ""
			}
			return strings.TrimSpace(v[2:i])
		}
	}
	return ""
}

// ExpandString evaluates $[...] expressions embedded in v against env,
// splicing the results into the surrounding text. Inside an expression
// a backslash escapes the next character, so \] does not close it. An
// expression that is never closed is kept as literal text.
func ExpandString(v string, env Env) (string, error) {
	if !strings.Contains(v, "$[") {
		return v, nil
	}
	var (
		out       []byte
		key       []byte
		exprStart = -1
	)
	n := len(v)
	i := 0
	for i < n {
		c := v[i]
		switch {
		case exprStart == -1:
			if c == '$' && i+1 < n && v[i+1] == '[' {
				exprStart = i
				key = key[:0]
				i += 2
				continue
			}
			out = append(out, c)
			i++
		case c == '\\':
			if i+1 < n {
				key = append(key, v[i+1])
				i += 2
				continue
			}
			key = append(key, c)
			i++
		case c == ']':
			expression := strings.TrimSpace(string(key))
			x, err := expr.Eval(expression, map[string]any(env))
			if err != nil {
				return "", fmt.Errorf("error evaluating %q: %w", expression, err)
			}
			if debug.Eval() {
				debug.Logf("eval %q gave %#v\n", expression, x)
			}
			out = append(out, formatAny(x)...)
			exprStart = -1
			i++
		default:
			key = append(key, c)
			i++
		}
	}
	if exprStart != -1 {
		out = append(out, v[exprStart:]...)
	}
	return string(out), nil
}

// ExpandValue rewrites expressions throughout v. A string that is
// exactly one expression takes the expression's typed result; mixed
// text interpolates. Non-string scalars pass through unchanged.
func ExpandValue(v ir.Value, env Env) (ir.Value, error) {
	switch x := v.(type) {
	case string:
		if raw := Raw(x); raw != "" {
			out, err := expr.Eval(raw, map[string]any(env))
			if err != nil {
				return nil, fmt.Errorf("error evaluating %q: %w", raw, err)
			}
			if debug.Eval() {
				debug.Logf("eval %q gave %#v\n", raw, out)
			}
			return fromAny(out)
		}
		return ExpandString(x, env)
	case []ir.Value:
		for i := range x {
			nv, err := ExpandValue(x[i], env)
			if err != nil {
				return nil, err
			}
			x[i] = nv
		}
		return x, nil
	case *ir.Node:
		for name, val := range x.Items() {
			nv, err := ExpandValue(val, env)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			x.Set(name, nv)
		}
		return x, nil
	default:
		return v, nil
	}
}

// fromAny normalizes an evaluation result into a tree value.
func fromAny(v any) (ir.Value, error) {
	switch x := v.(type) {
	case nil, bool, string, int64, float64:
		return x, nil
	case int:
		return int64(x), nil
	case uint64:
		return int64(x), nil
	case float32:
		return float64(x), nil
	case []any:
		out := make([]ir.Value, len(x))
		for i := range x {
			var err error
			if out[i], err = fromAny(x[i]); err != nil {
				return nil, err
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expression result %T is not a specification value", v)
	}
}

func formatAny(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", v)
	}
}
