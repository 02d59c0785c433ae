// Package indent detects the indentation style of a source buffer and
// re-indents content blocks to a target nesting level.
//
// Grounded on the teacher's preserveIndentation helpers in
// internal/core.Manipulator and internal/manipulator.Manipulator, which take
// leading whitespace from the line preceding an insertion point and apply it
// to every line of inserted content; this package generalizes that into a
// full style/width detector and a level-aware re-indenter.
package indent

import "strings"

// Style is the detected indentation character.
type Style int

const (
	StyleSpaces Style = iota
	StyleTabs
)

func (s Style) String() string {
	if s == StyleTabs {
		return "tabs"
	}
	return "spaces"
}

// Descriptor is the inferred indentation style/width/unit of a source.
type Descriptor struct {
	Style  Style
	Width  int
	String string
}

// Detect scans source line by line and infers its indentation style per the
// algorithm in the spec:
//
//  1. Count lines whose leading whitespace contains a tab, and lines whose
//     leading whitespace is non-empty and spaces-only.
//  2. If tab-lines outnumber space-lines, style is tabs, width 1.
//  3. Otherwise gather the set of distinct leading-space lengths; compute
//     the GCD of consecutive differences in the sorted set plus the
//     smallest non-zero value; clamp to [1, 8], defaulting to 4 if the set
//     is empty or the GCD is <= 0 or > 8.
//  4. If no indented lines exist at all, default to spaces, width 4.
func Detect(source []byte) Descriptor {
	lines := strings.Split(string(source), "\n")

	tabLines, spaceLines := 0, 0
	spaceLens := map[int]bool{}

	for _, line := range lines {
		lead := leadingWhitespace(line)
		if lead == "" {
			continue
		}
		if strings.Contains(lead, "\t") {
			tabLines++
			continue
		}
		spaceLines++
		spaceLens[len(lead)] = true
	}

	if tabLines == 0 && spaceLines == 0 {
		return Descriptor{Style: StyleSpaces, Width: 4, String: strings.Repeat(" ", 4)}
	}

	if tabLines > spaceLines {
		return Descriptor{Style: StyleTabs, Width: 1, String: "\t"}
	}

	width := gcdLeadingSpaceLens(spaceLens)
	return Descriptor{Style: StyleSpaces, Width: width, String: strings.Repeat(" ", width)}
}

func gcdLeadingSpaceLens(lens map[int]bool) int {
	if len(lens) == 0 {
		return 4
	}

	sorted := make([]int, 0, len(lens))
	for l := range lens {
		sorted = append(sorted, l)
	}
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}

	g := sorted[0]
	for i := 1; i < len(sorted); i++ {
		g = gcd(g, sorted[i]-sorted[i-1])
	}

	if g <= 0 || g > 8 {
		return 4
	}
	return g
}

func gcd(a, b int) int {
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		a = -a
	}
	return a
}

func leadingWhitespace(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

// Analyzer answers byte/line-position indentation queries against one
// source buffer, built once from its detected Descriptor.
type Analyzer struct {
	source     []byte
	desc       Descriptor
	lineStarts []int // byte offset of the first byte of each line
}

// NewAnalyzer builds an Analyzer over source, detecting its indentation
// style and precomputing a line-start index.
func NewAnalyzer(source []byte) *Analyzer {
	a := &Analyzer{source: source, desc: Detect(source)}
	a.lineStarts = []int{0}
	for i, c := range source {
		if c == '\n' {
			a.lineStarts = append(a.lineStarts, i+1)
		}
	}
	return a
}

// Descriptor returns the detected indentation descriptor.
func (a *Analyzer) Descriptor() Descriptor { return a.desc }

// LineAtByte maps a byte offset to its 0-based line index via linear scan of
// the line-start table.
func (a *Analyzer) LineAtByte(b int) int {
	line := 0
	for i, start := range a.lineStarts {
		if start > b {
			break
		}
		line = i
	}
	return line
}

// RawIndentationAtLine returns the literal leading whitespace of line i.
func (a *Analyzer) RawIndentationAtLine(i int) string {
	if i < 0 || i >= len(a.lineStarts) {
		return ""
	}
	start := a.lineStarts[i]
	end := len(a.source)
	if i+1 < len(a.lineStarts) {
		end = a.lineStarts[i+1]
	}
	return leadingWhitespace(string(a.source[start:end]))
}

// LevelAtLine returns the integer nesting level of line i: for tabs, the
// count of leading tabs; for spaces, leading-space-length / unit width
// (integer division).
func (a *Analyzer) LevelAtLine(i int) int {
	raw := a.RawIndentationAtLine(i)
	if a.desc.Style == StyleTabs {
		return strings.Count(raw, "\t")
	}
	if a.desc.Width == 0 {
		return 0
	}
	return len(raw) / a.desc.Width
}

// IndentationAtByte returns the raw leading whitespace of the line
// containing byte offset b.
func (a *Analyzer) IndentationAtByte(b int) string {
	return a.RawIndentationAtLine(a.LineAtByte(b))
}

// LevelAtByte returns the nesting level of the line containing byte offset b.
func (a *Analyzer) LevelAtByte(b int) int {
	return a.LevelAtLine(a.LineAtByte(b))
}

// IndentStringForLevel returns the unit string repeated max(k, 0) times.
func (a *Analyzer) IndentStringForLevel(k int) string {
	if k < 0 {
		k = 0
	}
	return strings.Repeat(a.desc.String, k)
}

// AdjustIndentation re-indents content to targetLevel, preserving its
// relative nesting. If currentLevel is nil, the level is inferred from the
// leading indent of content's first non-empty line. Blank lines are kept
// verbatim; each other line's own level is shifted by
// (targetLevel - currentLevel), clamped to a minimum of 0.
func (a *Analyzer) AdjustIndentation(content string, targetLevel int, currentLevel *int) string {
	lines := strings.Split(content, "\n")

	base := 0
	if currentLevel != nil {
		base = *currentLevel
	} else {
		base = a.inferLevel(lines)
	}
	delta := targetLevel - base

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lead := leadingWhitespace(line)
		lvl := a.levelOfRawIndent(lead)
		newLvl := lvl + delta
		if newLvl < 0 {
			newLvl = 0
		}
		lines[i] = a.IndentStringForLevel(newLvl) + strings.TrimPrefix(line, lead)
	}
	return strings.Join(lines, "\n")
}

func (a *Analyzer) inferLevel(lines []string) int {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		return a.levelOfRawIndent(leadingWhitespace(line))
	}
	return 0
}

func (a *Analyzer) levelOfRawIndent(raw string) int {
	if a.desc.Style == StyleTabs {
		return strings.Count(raw, "\t")
	}
	if a.desc.Width == 0 {
		return 0
	}
	return len(raw) / a.desc.Width
}
