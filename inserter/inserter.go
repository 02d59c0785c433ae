// Package inserter implements insertion-point-relative content insertion:
// at_start_of / at_end_of / before / after locate a point inside or around
// a node, then insert_statement / insert_raw / insert_sibling / insert_block
// queue content against it. Rewrite applies every queued insertion in
// descending-offset order via a plain string splice, since insertions are
// all pure (zero-width) offsets and never overlap by construction.
//
// Grounded on the teacher's internal/util.Splice/TakeIndent (reused here via
// the indent package) and internal/core.Manipulator's insertion handling,
// generalized to an explicit point/context state machine per the spec.
package inserter

import (
	"bytes"
	"strings"

	"github.com/oxhq/morfx/indent"
	"github.com/oxhq/morfx/morfxerr"
	"github.com/oxhq/morfx/morfxtree"
)

// context classifies where the current point sits relative to its node, to
// pick insert_statement's default newline behavior.
type context int

const (
	insideStart context = iota
	insideEnd
	beforeNode
	afterNode
)

// point is the builder's current insertion target.
type point struct {
	offset      int
	ctx         context
	targetLevel int
}

// pending is one queued insertion, ready to splice at Rewrite time.
type pending struct {
	offset        int
	content       string
	newlineBefore bool
	newlineAfter  bool
}

// Inserter accumulates insertions against one immutable source, driven by a
// sequence of point selections.
type Inserter struct {
	source   []byte
	analyzer *indent.Analyzer
	point    *point
	queue    []pending
}

// New builds an Inserter over source.
func New(source []byte) *Inserter {
	return &Inserter{source: source, analyzer: indent.NewAnalyzer(source)}
}

// braceSpan finds the first '{' and last '}' within [start, end) of source,
// returning their byte offsets, or -1 if absent.
func braceSpan(source []byte, start, end int) (openAfter, closeAt int) {
	openAfter, closeAt = -1, -1
	for i := start; i < end; i++ {
		if source[i] == '{' {
			openAfter = i + 1
			break
		}
	}
	for i := end - 1; i >= start; i-- {
		if source[i] == '}' {
			closeAt = i
			break
		}
	}
	return
}

// AtStartOf sets the point to just inside n's opening brace (or n.start+1 if
// none found), targeting one indent level deeper than n.
func (ins *Inserter) AtStartOf(n morfxtree.Span) *Inserter {
	level := ins.analyzer.LevelAtByte(n.StartByte()) + 1
	openAfter, _ := braceSpan(ins.source, n.StartByte(), n.EndByte())
	offset := openAfter
	if offset == -1 {
		offset = n.StartByte() + 1
	}
	ins.point = &point{offset: offset, ctx: insideStart, targetLevel: level}
	return ins
}

// AtEndOf sets the point to just before n's last closing brace (or n.end if
// none found), targeting one indent level deeper than n.
func (ins *Inserter) AtEndOf(n morfxtree.Span) *Inserter {
	level := ins.analyzer.LevelAtByte(n.StartByte()) + 1
	_, closeAt := braceSpan(ins.source, n.StartByte(), n.EndByte())
	offset := closeAt
	if offset == -1 {
		offset = n.EndByte()
	}
	ins.point = &point{offset: offset, ctx: insideEnd, targetLevel: level}
	return ins
}

// Before sets the point immediately before n, at n's own indent level.
func (ins *Inserter) Before(n morfxtree.Span) *Inserter {
	level := ins.analyzer.LevelAtByte(n.StartByte())
	ins.point = &point{offset: n.StartByte(), ctx: beforeNode, targetLevel: level}
	return ins
}

// After sets the point immediately after n, at n's own indent level.
func (ins *Inserter) After(n morfxtree.Span) *Inserter {
	level := ins.analyzer.LevelAtByte(n.StartByte())
	ins.point = &point{offset: n.EndByte(), ctx: afterNode, targetLevel: level}
	return ins
}

// ResetPosition clears the current point so a new one may be chosen.
func (ins *Inserter) ResetPosition() *Inserter {
	ins.point = nil
	return ins
}

// precedingLineHasNonWhitespace reports whether the text between the last
// newline before offset and offset itself contains a non-whitespace byte.
func precedingLineHasNonWhitespace(source []byte, offset int) bool {
	start := 0
	for i := offset - 1; i >= 0; i-- {
		if source[i] == '\n' {
			start = i + 1
			break
		}
	}
	for i := start; i < offset; i++ {
		if source[i] != ' ' && source[i] != '\t' {
			return true
		}
	}
	return false
}

// InsertStatement re-indents content to the point's target level and queues
// it with the spec's default newline placement, unless overridden.
func (ins *Inserter) InsertStatement(content string, newlineBefore ...bool) error {
	p, err := ins.require()
	if err != nil {
		return err
	}
	trimmed := strings.TrimSpace(content)
	reindented := ins.analyzer.AdjustIndentation(trimmed, p.targetLevel, nil)

	before := ins.defaultNewlineBefore(p)
	if len(newlineBefore) > 0 {
		before = newlineBefore[0]
	}

	ins.queue = append(ins.queue, pending{offset: p.offset, content: reindented, newlineBefore: before, newlineAfter: true})
	return nil
}

func (ins *Inserter) defaultNewlineBefore(p *point) bool {
	switch p.ctx {
	case insideStart:
		return true
	case insideEnd:
		return precedingLineHasNonWhitespace(ins.source, p.offset)
	default:
		return false
	}
}

// dedupeInsert reports whether insert is safe to splice at pos: false if the
// text already present immediately before (before=true) or after (before=
// false) pos in buf equals insert byte-for-byte, so re-running the same
// insertion doesn't duplicate it.
func dedupeInsert(buf []byte, pos int, insert []byte, before bool) bool {
	if len(insert) == 0 {
		return true
	}
	if before {
		if pos >= len(insert) && bytes.Equal(buf[pos-len(insert):pos], insert) {
			return false
		}
		return true
	}
	if pos+len(insert) <= len(buf) && bytes.Equal(buf[pos:pos+len(insert)], insert) {
		return false
	}
	return true
}

// InsertRaw queues content verbatim: no re-indent, no newlines. Skips the
// insertion entirely if content is already present immediately adjacent to
// the point, on the side this context's insertion would land.
func (ins *Inserter) InsertRaw(content string) error {
	p, err := ins.require()
	if err != nil {
		return err
	}
	before := p.ctx == insideEnd || p.ctx == afterNode
	if !dedupeInsert(ins.source, p.offset, []byte(content), before) {
		return nil
	}
	ins.queue = append(ins.queue, pending{offset: p.offset, content: content})
	return nil
}

// InsertSibling re-indents content then prepends/appends sep (default
// "\n\n") on the appropriate side of the point based on context.
func (ins *Inserter) InsertSibling(content string, sep ...string) error {
	p, err := ins.require()
	if err != nil {
		return err
	}
	s := "\n\n"
	if len(sep) > 0 {
		s = sep[0]
	}
	trimmed := strings.TrimSpace(content)
	reindented := ins.analyzer.AdjustIndentation(trimmed, p.targetLevel, nil)

	var out string
	switch p.ctx {
	case beforeNode:
		out = reindented + s
	default:
		out = s + reindented
	}
	ins.queue = append(ins.queue, pending{offset: p.offset, content: out})
	return nil
}

// InsertBlock builds "{indent}{header}{open}\n{body at level+1}\n{indent}{close}".
func (ins *Inserter) InsertBlock(header, body string, delims ...string) error {
	p, err := ins.require()
	if err != nil {
		return err
	}
	open, close := "{", "}"
	if len(delims) > 0 {
		open = delims[0]
	}
	if len(delims) > 1 {
		close = delims[1]
	}

	outerIndent := ins.analyzer.IndentStringForLevel(p.targetLevel)
	bodyIndented := ins.analyzer.AdjustIndentation(strings.TrimSpace(body), p.targetLevel+1, nil)
	block := outerIndent + header + open + "\n" + bodyIndented + "\n" + outerIndent + close

	ins.queue = append(ins.queue, pending{offset: p.offset, content: block})
	return nil
}

func (ins *Inserter) require() (*point, error) {
	if ins.point == nil {
		return nil, morfxerr.MissingPrecondition("inserter: no insertion point set; call at_start_of/at_end_of/before/after first")
	}
	return ins.point, nil
}

// Rewrite applies every queued insertion, in descending-offset order, via
// plain string splice, and returns the new source.
func (ins *Inserter) Rewrite() []byte {
	items := make([]pending, len(ins.queue))
	copy(items, ins.queue)

	// Stable sort descending by offset; at the same offset queue order is
	// kept, so earlier-queued insertions are spliced first and later ones
	// land to their left (same discipline as editbuf for pure insertions).
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j-1].offset < items[j].offset; j-- {
			items[j-1], items[j] = items[j], items[j-1]
		}
	}

	out := append([]byte(nil), ins.source...)
	for _, it := range items {
		text := it.content
		if it.newlineBefore {
			text = "\n" + text
		}
		if it.newlineAfter {
			text = text + "\n"
		}
		out = append(out[:it.offset:it.offset], append([]byte(text), out[it.offset:]...)...)
	}
	return out
}
