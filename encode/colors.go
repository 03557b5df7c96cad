package encode

import (
	"io"
	"os"

	"github.com/accelforge/specfe/ir"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type ColorAttr int

const (
	fieldColor ColorAttr = iota
	punctColor
	stringColor
	numberColor
	boolColor
	nullColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			fieldColor:  color.RGB(128, 168, 196).SprintfFunc(),
			punctColor:  color.RGB(196, 128, 128).SprintfFunc(),
			stringColor: color.RGB(8, 196, 16).SprintfFunc(),
			numberColor: color.RGB(128, 216, 236).SprintfFunc(),
			boolColor:   color.CyanString,
			nullColor:   color.RGB(168, 0, 196).SprintfFunc(),
		},
	}
}

// TerminalColors returns colors when w is a terminal, nil otherwise.
func TerminalColors(w io.Writer) *Colors {
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if !isatty.IsTerminal(f.Fd()) {
		return nil
	}
	return NewColors()
}

func (c *Colors) apply(attr ColorAttr, s string) string {
	f, ok := c.Map[attr]
	if !ok {
		f = c.Default
	}
	return f("%s", s)
}

func colorDefault(msg string, args ...any) string {
	return color.WhiteString(msg, args...)
}

func scalarColor(v ir.Value) ColorAttr {
	switch ir.TypeOf(v) {
	case ir.StringType:
		return stringColor
	case ir.IntType, ir.FloatType:
		return numberColor
	case ir.BoolType:
		return boolColor
	}
	return nullColor
}
