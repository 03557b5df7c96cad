// Package debug gates tracing output on SPECFE_DEBUG_* environment
// variables.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Pipeline bool
	Resolve  bool
	Eval     bool
	Load     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Pipeline = boolEnv("SPECFE_DEBUG_PIPELINE")
	d.Resolve = boolEnv("SPECFE_DEBUG_RESOLVE")
	d.Eval = boolEnv("SPECFE_DEBUG_EVAL")
	d.Load = boolEnv("SPECFE_DEBUG_LOAD")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Pipeline() bool {
	return d.Pipeline
}
func Resolve() bool {
	return d.Resolve
}
func Eval() bool {
	return d.Eval
}
func Load() bool {
	return d.Load
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
