// Package rewriter is a thin builder over editbuf: replace, remove,
// insert_before, insert_after and wrap at a node or a bare byte range.
//
// Grounded on the teacher's internal/core.Manipulator.applyMatches and
// internal/manipulator.Manipulator.apply, which perform exactly these five
// operations against byte spans found by a matcher; this package exposes
// them directly against morfxtree.Span instead of a regex/DSL match.
package rewriter

import (
	"github.com/oxhq/morfx/editbuf"
	"github.com/oxhq/morfx/morfxtree"
)

// Rewriter accumulates replace/remove/insert/wrap edits against one
// immutable source and an optional parsed tree.
type Rewriter struct {
	source []byte
	tree   *morfxtree.Tree
	parser *morfxtree.Parser
	buf    *editbuf.Buffer
}

// New builds a Rewriter over source. tree and parser are both optional:
// tree is only read for RewriteWithTree's language inference, parser is
// used (if supplied) in preference to one inferred from tree.
func New(source []byte, tree *morfxtree.Tree, parser *morfxtree.Parser) *Rewriter {
	return &Rewriter{source: source, tree: tree, parser: parser, buf: editbuf.New(source)}
}

// Replace swaps the span's text for s.
func (r *Rewriter) Replace(span morfxtree.Span, s string) *Rewriter {
	r.buf.Add(span.StartByte(), span.EndByte(), []byte(s))
	return r
}

// Remove deletes the span's text.
func (r *Rewriter) Remove(span morfxtree.Span) *Rewriter {
	r.buf.Add(span.StartByte(), span.EndByte(), nil)
	return r
}

// InsertBefore inserts s immediately before the span.
func (r *Rewriter) InsertBefore(span morfxtree.Span, s string) *Rewriter {
	r.buf.Add(span.StartByte(), span.StartByte(), []byte(s))
	return r
}

// InsertAfter inserts s immediately after the span.
func (r *Rewriter) InsertAfter(span morfxtree.Span, s string) *Rewriter {
	r.buf.Add(span.EndByte(), span.EndByte(), []byte(s))
	return r
}

// Wrap inserts pre before the span and post after it, so pre precedes post
// in the output. For a zero-width span both inserts share one offset, where
// editbuf's tie-break puts the later-added insert leftmost (see
// editbuf.Buffer.Apply), so post is added first in that case.
func (r *Rewriter) Wrap(span morfxtree.Span, pre, post string) *Rewriter {
	if span.StartByte() == span.EndByte() {
		r.InsertAfter(span, post)
		r.InsertBefore(span, pre)
		return r
	}
	r.InsertBefore(span, pre)
	r.InsertAfter(span, post)
	return r
}

// Rewrite applies every accumulated edit and returns the new source.
func (r *Rewriter) Rewrite() []byte {
	return r.buf.Apply()
}

// RewriteResult is the output of RewriteWithTree: the new source plus its
// freshly re-parsed tree. The caller owns Tree and should Close it.
type RewriteResult struct {
	Source []byte
	Tree   *morfxtree.Tree
}

// RewriteWithTree applies every accumulated edit and re-parses the result
// using parser if supplied, else one freshly built from the input tree's
// language. Re-parse errors surface only as tree.HasError() on the result,
// per spec — a tree with parse errors is not itself an error here.
func (r *Rewriter) RewriteWithTree(parser *morfxtree.Parser) (*RewriteResult, error) {
	out := r.buf.Apply()

	p := parser
	if p == nil {
		p = r.parser
	}
	if p == nil {
		if r.tree == nil {
			return nil, missingParserErr()
		}
		built, err := morfxtree.NewParser(r.tree.Language())
		if err != nil {
			return nil, err
		}
		p = built
	}

	newTree, err := p.Parse(out)
	if err != nil {
		return nil, err
	}
	return &RewriteResult{Source: out, Tree: newTree}, nil
}
