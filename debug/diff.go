package debug

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffText renders a readable diff between two renderings of a
// document, for pass-by-pass pipeline tracing.
func DiffText(before, after string) string {
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMain(before, after, true)
	if len(diffs) == 1 && diffs[0].Type == diffpatch.DiffEqual {
		return "(no changes)"
	}
	return diffCfg.DiffPrettyText(diffs)
}
