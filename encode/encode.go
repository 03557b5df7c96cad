// Package encode renders node trees as YAML, in document order, with
// optional color for terminals.
package encode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/accelforge/specfe/ir"

	"github.com/goccy/go-yaml"
)

type EncodeOption func(*encoder)

// EncodeColors renders with the given colors. Nil colors are ignored,
// so TerminalColors(w) can be passed unconditionally.
func EncodeColors(c *Colors) EncodeOption {
	return func(e *encoder) {
		e.colors = c
	}
}

// Marshal renders n as plain YAML.
func Marshal(n *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(n, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes n to w. Field order is the node's insertion order.
func Encode(n *ir.Node, w io.Writer, opts ...EncodeOption) error {
	e := &encoder{w: w}
	for _, opt := range opts {
		opt(e)
	}
	if n == nil || n.Len() == 0 {
		_, err := io.WriteString(w, "{}\n")
		return err
	}
	return e.node(n, 0)
}

type encoder struct {
	w      io.Writer
	colors *Colors
}

func (e *encoder) node(n *ir.Node, depth int) error {
	for name, v := range n.Items() {
		if err := e.field(name, v, depth); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) field(name string, v ir.Value, depth int) error {
	if err := e.printf("%s%s%s", pad(depth), e.color(fieldColor, name), e.color(punctColor, ":")); err != nil {
		return err
	}
	return e.value(v, depth)
}

// value finishes the line opened by its caller: scalars go inline,
// non-empty containers open a deeper block.
func (e *encoder) value(v ir.Value, depth int) error {
	switch x := v.(type) {
	case *ir.Node:
		if x == nil || x.Len() == 0 {
			return e.printf(" %s\n", e.color(punctColor, "{}"))
		}
		if err := e.printf("\n"); err != nil {
			return err
		}
		return e.node(x, depth+1)
	case []ir.Value:
		if len(x) == 0 {
			return e.printf(" %s\n", e.color(punctColor, "[]"))
		}
		if err := e.printf("\n"); err != nil {
			return err
		}
		for _, elem := range x {
			if err := e.printf("%s%s", pad(depth+1), e.color(punctColor, "-")); err != nil {
				return err
			}
			if err := e.value(elem, depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		s, err := scalar(v)
		if err != nil {
			return err
		}
		return e.printf(" %s\n", e.color(scalarColor(v), s))
	}
}

func (e *encoder) printf(msg string, args ...any) error {
	_, err := fmt.Fprintf(e.w, msg, args...)
	return err
}

func (e *encoder) color(attr ColorAttr, s string) string {
	if e.colors == nil {
		return s
	}
	return e.colors.apply(attr, s)
}

func pad(depth int) string {
	return strings.Repeat("  ", depth)
}

// scalar renders one scalar with YAML quoting rules. Values that would
// span lines are forced into one double-quoted token.
func scalar(v ir.Value) (string, error) {
	d, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("could not encode %v: %w", v, err)
	}
	s := strings.TrimRight(string(d), "\n")
	if strings.Contains(s, "\n") {
		if str, ok := v.(string); ok {
			return strconv.Quote(str), nil
		}
		return "", fmt.Errorf("could not encode %v on one line", v)
	}
	return s, nil
}
