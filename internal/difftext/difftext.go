// Package difftext renders unified diffs for morfxdemo's before/after
// scenario output.
//
// Grounded on the teacher's internal/util.UnifiedDiff: go-difflib's
// SplitLines/UnifiedDiff/GetUnifiedDiffString plumbing, plus the same
// ANSI-coloring pass over the resulting line-prefixed text.
package difftext

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorCyan  = "\x1b[36m"
)

// Unified renders a colored unified diff between orig and mod, labeled with
// filename, showing context lines of surrounding unchanged text.
func Unified(orig, mod, filename string, context int) string {
	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(orig),
		B:        difflib.SplitLines(mod),
		FromFile: filename,
		ToFile:   filename + " (modified)",
		Context:  context,
	}
	text, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return "(diff error: " + err.Error() + ")"
	}
	if text == "" {
		return "(no changes)\n"
	}

	var sb strings.Builder
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if i == len(lines)-1 && l == "" {
			continue
		}
		switch {
		case strings.HasPrefix(l, "+++") || strings.HasPrefix(l, "---"):
			sb.WriteString(colorCyan + l + colorReset + "\n")
		case strings.HasPrefix(l, "+"):
			sb.WriteString(colorGreen + l + colorReset + "\n")
		case strings.HasPrefix(l, "-"):
			sb.WriteString(colorRed + l + colorReset + "\n")
		case strings.HasPrefix(l, "@"):
			sb.WriteString(colorCyan + l + colorReset + "\n")
		default:
			sb.WriteString(l + "\n")
		}
	}
	return sb.String()
}
