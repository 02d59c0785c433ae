// Package transformer lowers structural operations — swap, move, copy,
// reorder, extract, duplicate — to editbuf edits. Each method call validates
// its own preconditions and appends edits immediately; Rewrite applies them
// all in one pass.
//
// Grounded on the teacher's internal/core.Manipulator.applyMatches, which
// performs the same text(n) = source[start:end] substitution discipline
// against a single edit buffer before the buffer is applied in one pass.
package transformer

import (
	"github.com/oxhq/morfx/editbuf"
	"github.com/oxhq/morfx/morfxerr"
	"github.com/oxhq/morfx/morfxtree"
)

// Anchor selects a before/after insertion point relative to a target node.
type Anchor int

const (
	// Before inserts at the target's start byte.
	Before Anchor = iota
	// After inserts at the target's end byte.
	After
)

// Transformer accumulates structural-operation edits against one immutable
// source.
type Transformer struct {
	source []byte
	buf    *editbuf.Buffer
}

// New builds a Transformer over source.
func New(source []byte) *Transformer {
	return &Transformer{source: source, buf: editbuf.New(source)}
}

func text(source []byte, s morfxtree.Span) []byte {
	return source[s.StartByte():s.EndByte()]
}

// overlaps reports whether a and b's byte ranges share any point, including
// one endpoint lying inside the other.
func overlaps(a, b morfxtree.Span) bool {
	return a.StartByte() < b.EndByte() && b.StartByte() < a.EndByte()
}

// Swap exchanges the text of a and b. Their ranges must be disjoint.
func (t *Transformer) Swap(a, b morfxtree.Span) error {
	if overlaps(a, b) {
		return morfxerr.InvalidArgument("transformer: swap requires disjoint ranges")
	}
	aText := append([]byte(nil), text(t.source, a)...)
	bText := append([]byte(nil), text(t.source, b)...)
	t.buf.Add(a.StartByte(), a.EndByte(), bText)
	t.buf.Add(b.StartByte(), b.EndByte(), aText)
	return nil
}

// Move removes n and reinserts its text, joined by sep, before or after
// target. Exactly one of before/after is selected via anchor.
func (t *Transformer) Move(n morfxtree.Span, anchor Anchor, target morfxtree.Span, sep string) error {
	if anchor != Before && anchor != After {
		return morfxerr.InvalidArgument("transformer: move requires anchor Before or After")
	}
	nText := text(t.source, n)
	t.buf.Add(n.StartByte(), n.EndByte(), nil)
	switch anchor {
	case Before:
		ins := append(append([]byte(nil), nText...), []byte(sep)...)
		t.buf.Add(target.StartByte(), target.StartByte(), ins)
	case After:
		ins := append(append([]byte(nil), []byte(sep)...), nText...)
		t.buf.Add(target.EndByte(), target.EndByte(), ins)
	default:
		return morfxerr.InvalidArgument("transformer: move requires anchor Before or After")
	}
	return nil
}

// Copy inserts n's text, joined by sep, before or after target, without
// removing n.
func (t *Transformer) Copy(n morfxtree.Span, anchor Anchor, target morfxtree.Span, sep string) error {
	nText := text(t.source, n)
	switch anchor {
	case Before:
		ins := append(append([]byte(nil), nText...), []byte(sep)...)
		t.buf.Add(target.StartByte(), target.StartByte(), ins)
	case After:
		ins := append(append([]byte(nil), []byte(sep)...), nText...)
		t.buf.Add(target.EndByte(), target.EndByte(), ins)
	default:
		return morfxerr.InvalidArgument("transformer: copy requires anchor Before or After")
	}
	return nil
}

// Reorder permutes parent's named children according to order: order[i] is
// the index of the child whose text should occupy position i. order must be
// a permutation of [0, len(children)).
func (t *Transformer) Reorder(parent morfxtree.Node, order []int) error {
	children := parent.NamedChildren()
	if len(order) != len(children) {
		return morfxerr.InvalidArgument("transformer: reorder permutation length must equal child count")
	}
	seen := make([]bool, len(children))
	for _, idx := range order {
		if idx < 0 || idx >= len(children) || seen[idx] {
			return morfxerr.InvalidArgument("transformer: reorder argument is not a valid permutation")
		}
		seen[idx] = true
	}

	for i, srcIdx := range order {
		dst := children[i]
		src := children[srcIdx]
		dstText := text(t.source, dst)
		srcText := text(t.source, src)
		if string(dstText) == string(srcText) {
			continue
		}
		t.buf.Add(dst.StartByte(), dst.EndByte(), append([]byte(nil), srcText...))
	}
	return nil
}

// Extract replaces n with reference and inserts n's text (optionally run
// through wrapper) two newlines after target's end. wrapper may be nil.
func (t *Transformer) Extract(n morfxtree.Span, target morfxtree.Span, reference string, wrapper func(string) string) {
	t.buf.Add(n.StartByte(), n.EndByte(), []byte(reference))

	nText := string(text(t.source, n))
	if wrapper != nil {
		nText = wrapper(nText)
	}
	t.buf.Add(target.EndByte(), target.EndByte(), []byte("\n\n"+nText))
}

// Duplicate inserts a copy of n's text (optionally run through transform),
// joined by sep, immediately after n.
func (t *Transformer) Duplicate(n morfxtree.Span, sep string, transform func(string) string) {
	nText := string(text(t.source, n))
	if transform != nil {
		nText = transform(nText)
	}
	t.buf.Add(n.EndByte(), n.EndByte(), []byte(sep+nText))
}

// Rewrite applies every accumulated edit and returns the new source.
func (t *Transformer) Rewrite() []byte {
	return t.buf.Apply()
}

// RewriteResult is the output of RewriteWithTree.
type RewriteResult struct {
	Source []byte
	Tree   *morfxtree.Tree
}

// RewriteWithTree applies every accumulated edit and re-parses the result
// with parser.
func (t *Transformer) RewriteWithTree(parser *morfxtree.Parser) (*RewriteResult, error) {
	if parser == nil {
		return nil, morfxerr.MissingPrecondition("transformer: RewriteWithTree needs a parser")
	}
	out := t.buf.Apply()
	tree, err := parser.Parse(out)
	if err != nil {
		return nil, err
	}
	return &RewriteResult{Source: out, Tree: tree}, nil
}
