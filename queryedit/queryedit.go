// Package queryedit implements the Query Rewriter: query(pattern) →
// where(predicate)* → op*, then rewrite()/rewrite_with_tree(). matches() and
// preview_edits() are introspection views over the same pipeline.
//
// Grounded on the teacher's internal/matcher.ASTMatcher.Find (query
// execution against a *sitter.Query/QueryCursor pair) combined with
// internal/core.Manipulator.applyMatches' replace/remove/insert lowering,
// generalized to operate against named captures instead of whole-match byte
// ranges.
package queryedit

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/oxhq/morfx/editbuf"
	"github.com/oxhq/morfx/morfxerr"
	"github.com/oxhq/morfx/morfxtree"
)

// Predicate filters a match; returning false drops it before any operation
// runs against it.
type Predicate func(m morfxtree.Match) bool

// NodeFunc maps a matched node to generated content.
type NodeFunc func(n morfxtree.Node) string

// WrapFunc maps a matched node to a (before, after) pair for dynamic wrap.
type WrapFunc func(n morfxtree.Node) (before, after string)

type opKind int

const (
	opReplace opKind = iota
	opRemove
	opInsertBefore
	opInsertAfter
	opWrapStatic
	opWrapDynamic
)

type operation struct {
	kind    opKind
	capture string
	content string
	fn      NodeFunc
	before  string
	after   string
	wrapFn  WrapFunc
}

// PreviewEdit describes one edit for inspection without mutation.
type PreviewEdit struct {
	StartByte   int
	EndByte     int
	Original    string
	Replacement string
}

// Rewriter is the Query Rewriter builder: one compiled query, a chain of
// predicates, and a chain of operations, against one immutable source/tree.
type Rewriter struct {
	source []byte
	tree   *morfxtree.Tree
	parser *morfxtree.Parser

	query      *morfxtree.Query
	pattern    string
	predicates []Predicate
	ops        []operation
}

// New builds a Rewriter over source, tree and an optional parser (used in
// preference to one inferred from tree for RewriteWithTree).
func New(source []byte, tree *morfxtree.Tree, parser *morfxtree.Parser) *Rewriter {
	return &Rewriter{source: source, tree: tree, parser: parser}
}

// Query compiles pattern for language and binds it to this builder.
func (r *Rewriter) Query(language, pattern string) (*Rewriter, error) {
	q, err := morfxtree.NewQuery(language, pattern)
	if err != nil {
		return r, err
	}
	r.query = q
	r.pattern = pattern
	return r, nil
}

// Where appends a predicate; a match surviving to op-time must satisfy every
// registered predicate.
func (r *Rewriter) Where(p Predicate) *Rewriter {
	r.predicates = append(r.predicates, p)
	return r
}

func trimAt(name string) string {
	if len(name) > 0 && name[0] == '@' {
		return name[1:]
	}
	return name
}

// Replace replaces every node captured by name with fn(node).
func (r *Rewriter) Replace(name string, fn NodeFunc) *Rewriter {
	r.ops = append(r.ops, operation{kind: opReplace, capture: trimAt(name), fn: fn})
	return r
}

// Remove deletes every node captured by name.
func (r *Rewriter) Remove(name string) *Rewriter {
	r.ops = append(r.ops, operation{kind: opRemove, capture: trimAt(name)})
	return r
}

// InsertBefore inserts content (or fn(node) if fn is non-nil) before every
// node captured by name.
func (r *Rewriter) InsertBefore(name, content string, fn NodeFunc) *Rewriter {
	r.ops = append(r.ops, operation{kind: opInsertBefore, capture: trimAt(name), content: content, fn: fn})
	return r
}

// InsertAfter inserts content (or fn(node) if fn is non-nil) after every
// node captured by name.
func (r *Rewriter) InsertAfter(name, content string, fn NodeFunc) *Rewriter {
	r.ops = append(r.ops, operation{kind: opInsertAfter, capture: trimAt(name), content: content, fn: fn})
	return r
}

// Wrap inserts before at the node's start and after at its end for every
// node captured by name.
func (r *Rewriter) Wrap(name, before, after string) *Rewriter {
	r.ops = append(r.ops, operation{kind: opWrapStatic, capture: trimAt(name), before: before, after: after})
	return r
}

// WrapFn calls fn once per matched node to obtain (before, after).
func (r *Rewriter) WrapFn(name string, fn WrapFunc) *Rewriter {
	r.ops = append(r.ops, operation{kind: opWrapDynamic, capture: trimAt(name), wrapFn: fn})
	return r
}

// Matches executes the compiled query against source and the tree's root,
// then applies every Where predicate conjunctively. Requires Query to have
// been called first.
func (r *Rewriter) Matches() ([]morfxtree.Match, error) {
	if r.query == nil {
		return nil, morfxerr.MissingPrecondition("queryedit: no query compiled; call Query first")
	}
	if r.tree == nil {
		return nil, morfxerr.MissingPrecondition("queryedit: no tree to query against")
	}

	all := r.query.Matches(r.tree.RootNode(), r.source)
	var out []morfxtree.Match
	for _, m := range all {
		keep := true
		for _, p := range r.predicates {
			if !p(m) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, m)
		}
	}
	return out, nil
}

// lowerEdits runs the full query → where → op pipeline and returns the
// resulting editbuf.Buffer, without applying it.
func (r *Rewriter) lowerEdits() (*editbuf.Buffer, error) {
	matches, err := r.Matches()
	if err != nil {
		return nil, err
	}

	buf := editbuf.New(r.source)
	for _, m := range matches {
		for _, op := range r.ops {
			for _, cap := range m.CapturesByName(op.capture) {
				n := cap.Node
				switch op.kind {
				case opReplace:
					buf.Add(n.StartByte(), n.EndByte(), []byte(op.fn(n)))
				case opRemove:
					buf.Add(n.StartByte(), n.EndByte(), nil)
				case opInsertBefore:
					content := op.content
					if op.fn != nil {
						content = op.fn(n)
					}
					if dedupeInsert(r.source, n.StartByte(), []byte(content), true) {
						buf.Add(n.StartByte(), n.StartByte(), []byte(content))
					}
				case opInsertAfter:
					content := op.content
					if op.fn != nil {
						content = op.fn(n)
					}
					if dedupeInsert(r.source, n.EndByte(), []byte(content), false) {
						buf.Add(n.EndByte(), n.EndByte(), []byte(content))
					}
				case opWrapStatic:
					buf.Add(n.StartByte(), n.StartByte(), []byte(op.before))
					buf.Add(n.EndByte(), n.EndByte(), []byte(op.after))
				case opWrapDynamic:
					before, after := op.wrapFn(n)
					buf.Add(n.StartByte(), n.StartByte(), []byte(before))
					buf.Add(n.EndByte(), n.EndByte(), []byte(after))
				}
			}
		}
	}
	return buf, nil
}

// PreviewEdits runs the pipeline and returns every resulting edit without
// mutating source.
func (r *Rewriter) PreviewEdits() ([]PreviewEdit, error) {
	buf, err := r.lowerEdits()
	if err != nil {
		return nil, err
	}
	edits := buf.Edits()
	out := make([]PreviewEdit, len(edits))
	for i, e := range edits {
		out[i] = PreviewEdit{
			StartByte:   e.Start,
			EndByte:     e.End,
			Original:    string(r.source[e.Start:e.End]),
			Replacement: string(e.Replacement),
		}
	}
	return out, nil
}

// Rewrite runs the full pipeline and applies every resulting edit.
func (r *Rewriter) Rewrite() ([]byte, error) {
	buf, err := r.lowerEdits()
	if err != nil {
		return nil, err
	}
	return buf.Apply(), nil
}

// RewriteResult is the output of RewriteWithTree.
type RewriteResult struct {
	Source []byte
	Tree   *morfxtree.Tree
}

// RewriteWithTree runs the full pipeline, applies it, and re-parses the
// result with parser (or one inferred from the bound tree's language).
func (r *Rewriter) RewriteWithTree(parser *morfxtree.Parser) (*RewriteResult, error) {
	out, err := r.Rewrite()
	if err != nil {
		return nil, err
	}

	p := parser
	if p == nil {
		p = r.parser
	}
	if p == nil {
		if r.tree == nil {
			return nil, morfxerr.MissingPrecondition("queryedit: RewriteWithTree needs a parser, none supplied and none inferable from the tree")
		}
		built, buildErr := morfxtree.NewParser(r.tree.Language())
		if buildErr != nil {
			return nil, buildErr
		}
		p = built
	}

	newTree, err := p.Parse(out)
	if err != nil {
		return nil, err
	}
	return &RewriteResult{Source: out, Tree: newTree}, nil
}

// dedupeInsert reports whether insert is safe to splice at pos: false if the
// text already present immediately before (before=true) or after (before=
// false) pos in buf equals insert byte-for-byte, so a re-run of the same
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

// ConfidenceFactor names one signal, positive or negative, that fed into a
// Confidence score.
type ConfidenceFactor struct {
	Name   string
	Impact float64
	Reason string
}

// Confidence is an advisory, non-blocking estimate of how safe a pipeline's
// matches are to rewrite: it never alters Matches/Rewrite, it only reports on
// them. Score is clamped to [0,1]; Level buckets it as "high" (>=0.8),
// "medium" (>=0.5) or "low".
type Confidence struct {
	Score   float64
	Level   string
	Factors []ConfidenceFactor
}

func levelFor(score float64) string {
	switch {
	case score >= 0.8:
		return "high"
	case score >= 0.5:
		return "medium"
	default:
		return "low"
	}
}

func clamp01(score float64) float64 {
	// Round away float drift (1.0-0.3-0.2 is just under 0.5) before bucketing.
	score = math.Round(score*1000) / 1000
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Confidence scores the matches this Rewriter's pipeline would currently
// operate on: a single unambiguous match raises it, many matches or a
// queued Remove op lowers it, and a pattern containing a wildcard
// meta-character lowers it further, on the theory that broader patterns are
// more likely to catch unintended nodes.
func (r *Rewriter) Confidence() (Confidence, error) {
	matches, err := r.Matches()
	if err != nil {
		return Confidence{}, err
	}

	score := 1.0
	var factors []ConfidenceFactor

	switch {
	case len(matches) == 1:
		score += 0.1
		factors = append(factors, ConfidenceFactor{"single_target", 0.1, "only one match found, unambiguous"})
	case len(matches) > 5:
		score -= 0.3
		factors = append(factors, ConfidenceFactor{"multiple_targets", -0.3, fmt.Sprintf("operation affects %d locations", len(matches))})
	}

	for _, op := range r.ops {
		if op.kind == opRemove {
			score -= 0.2
			factors = append(factors, ConfidenceFactor{"remove_operation", -0.2, "remove operations are destructive"})
			break
		}
	}

	if strings.ContainsAny(r.pattern, "*?") {
		score -= 0.15
		factors = append(factors, ConfidenceFactor{"wildcard_pattern", -0.15, "wildcard patterns may match unintended targets"})
	}

	score = clamp01(score)
	return Confidence{Score: score, Level: levelFor(score), Factors: factors}, nil
}
