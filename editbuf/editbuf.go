// Package editbuf implements the primitive edit model: a list of byte-range
// edits accumulated against one immutable source buffer, and a deterministic
// application algorithm. Every higher-level morfx operation (rewriter,
// transformer, inserter, queryedit) lowers to this.
//
// Grounded on the splice-and-reverse-apply discipline in the teacher's
// internal/core.Manipulator.applyMatches and
// internal/manipulator.applyRewrites: both iterate matches from the highest
// byte offset down so earlier splices never need offset correction.
package editbuf

import "sort"

// Edit is a single primitive rewrite instruction: the half-open byte range
// [Start, End) of the original source is replaced by Replacement.
type Edit struct {
	Start       int
	End         int
	Replacement []byte

	// seq records insertion order, used as the final tie-break when Start
	// and End both match (two pure insertions at the same offset).
	seq int
}

// Buffer accumulates edits against one immutable source and applies them in
// a single deterministic pass.
type Buffer struct {
	source []byte
	edits  []Edit
}

// New creates a Buffer over source. The byte slice is treated as immutable;
// Apply never mutates it.
func New(source []byte) *Buffer {
	return &Buffer{source: source}
}

// Add appends an edit. 0 <= start <= end <= len(source) must hold; callers
// (rewriter, transformer, inserter, queryedit) are responsible for this,
// since edit application has no failure mode for well-formed edits.
func (b *Buffer) Add(start, end int, replacement []byte) {
	b.edits = append(b.edits, Edit{Start: start, End: end, Replacement: replacement, seq: len(b.edits)})
}

// Len reports the number of accumulated edits.
func (b *Buffer) Len() int { return len(b.edits) }

// Edits returns a copy of the accumulated edits in insertion order, for
// introspection (e.g. queryedit.PreviewEdits).
func (b *Buffer) Edits() []Edit {
	out := make([]Edit, len(b.edits))
	copy(out, b.edits)
	return out
}

// Apply applies every accumulated edit to the source and returns the new
// byte slice. The source itself is left untouched.
//
// Algorithm (spec's central invariant): sort edits in descending order by
// (start, end) — ties in start broken by descending end, ties in both by
// insertion order — then splice each edit's replacement into the buffer in
// turn. Because we always proceed right-to-left, splicing one edit never
// disturbs the byte positions any edit still to come depends on.
//
// Pure insertions (start == end) at the same offset are all applied, in
// insertion order, each splicing into the position the previous one left
// behind; the net effect is that later insertions at a shared offset land
// to the left of earlier ones. Rewriter.Wrap's "before" and "after" inserts
// target the node's start and end byte respectively, which coincide only
// for a zero-width node; in that case it adds "after" first.
func (b *Buffer) Apply() []byte {
	if len(b.edits) == 0 {
		out := make([]byte, len(b.source))
		copy(out, b.source)
		return out
	}

	ordered := make([]Edit, len(b.edits))
	copy(ordered, b.edits)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, c := ordered[i], ordered[j]
		if a.Start != c.Start {
			return a.Start > c.Start
		}
		if a.End != c.End {
			return a.End > c.End
		}
		return a.seq < c.seq
	})

	buf := make([]byte, len(b.source))
	copy(buf, b.source)
	for _, e := range ordered {
		buf = splice(buf, e.Start, e.End, e.Replacement)
	}
	return buf
}

// splice replaces buf[start:end) with replacement, returning a freshly
// allocated slice.
func splice(buf []byte, start, end int, replacement []byte) []byte {
	out := make([]byte, 0, len(buf)-(end-start)+len(replacement))
	out = append(out, buf[:start]...)
	out = append(out, replacement...)
	out = append(out, buf[end:]...)
	return out
}
