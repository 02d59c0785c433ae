// Package morfxtree adapts github.com/smacker/go-tree-sitter's Node/Tree/
// Query/QueryCursor types to the parser and query interfaces the spec
// expects: a Node exposing kind, byte range, parent/child navigation, field
// lookup and text; a query engine whose matches carry ordered named
// captures. Nothing in this package performs grammar loading of its own —
// that is the external parser's job — it only registers the language
// handles the rest of morfx is grounded to support.
//
// Grounded on the teacher's internal/matcher (tree.go, lang.go) and
// providers/base/providers/golang, which parse with *sitter.Parser and walk
// *sitter.Node the same way.
package morfxtree

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Node is a read-only view into a parsed tree, bound to the source buffer it
// was parsed from. Nodes are only meaningful against the tree that produced
// them and must outlive the builder that borrows them.
type Node struct {
	n      *sitter.Node
	source []byte
}

// WrapNode binds a raw *sitter.Node to the source it was parsed from. Nil
// inputs produce an invalid (IsNil) Node.
func WrapNode(n *sitter.Node, source []byte) Node {
	return Node{n: n, source: source}
}

// IsNil reports whether this Node wraps no underlying tree-sitter node.
func (nd Node) IsNil() bool { return nd.n == nil }

// Raw exposes the underlying tree-sitter node for callers that need it
// (e.g. to build further queries), without forcing every morfx package to
// import go-tree-sitter directly.
func (nd Node) Raw() *sitter.Node { return nd.n }

// Kind returns the grammar's node type string (tree-sitter's "kind").
func (nd Node) Kind() string { return nd.n.Type() }

// Named reports whether this is a named (vs. anonymous/punctuation) node.
func (nd Node) Named() bool { return nd.n.IsNamed() }

// StartByte returns the byte offset of the first byte of the node.
func (nd Node) StartByte() int { return int(nd.n.StartByte()) }

// EndByte returns the byte offset one past the last byte of the node.
func (nd Node) EndByte() int { return int(nd.n.EndByte()) }

// Text returns source[StartByte:EndByte).
func (nd Node) Text() string { return string(nd.source[nd.StartByte():nd.EndByte()]) }

// Parent returns the node's parent, or an invalid Node at the root.
func (nd Node) Parent() Node { return WrapNode(nd.n.Parent(), nd.source) }

// ChildCount returns the total number of children, named and anonymous.
func (nd Node) ChildCount() int { return int(nd.n.ChildCount()) }

// Child returns the i-th child, named or anonymous.
func (nd Node) Child(i int) Node { return WrapNode(nd.n.Child(i), nd.source) }

// NamedChildCount returns the number of named children.
func (nd Node) NamedChildCount() int { return int(nd.n.NamedChildCount()) }

// NamedChild returns the i-th named child.
func (nd Node) NamedChild(i int) Node { return WrapNode(nd.n.NamedChild(i), nd.source) }

// NamedChildren returns every named child in order.
func (nd Node) NamedChildren() []Node {
	count := nd.NamedChildCount()
	out := make([]Node, count)
	for i := 0; i < count; i++ {
		out[i] = nd.NamedChild(i)
	}
	return out
}

// ChildByFieldName returns the child bound to the given grammar field, or
// an invalid Node if the field is absent on this node.
func (nd Node) ChildByFieldName(name string) Node {
	return WrapNode(nd.n.ChildByFieldName(name), nd.source)
}

// HasError reports whether this node or any descendant is a parse error.
func (nd Node) HasError() bool { return nd.n.HasError() }

// Tree is a parsed syntax tree bound to the source it was parsed from.
type Tree struct {
	tree   *sitter.Tree
	source []byte
	lang   string
}

// RootNode returns the tree's root node.
func (t *Tree) RootNode() Node { return WrapNode(t.tree.RootNode(), t.source) }

// Source returns the byte buffer this tree was parsed from.
func (t *Tree) Source() []byte { return t.source }

// Language returns the language name this tree was parsed with.
func (t *Tree) Language() string { return t.lang }

// HasError reports whether the tree contains any parse error node.
func (t *Tree) HasError() bool { return t.RootNode().HasError() }

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t.tree != nil {
		t.tree.Close()
	}
}

// Parser parses source bytes into a Tree for one registered language.
type Parser struct {
	lang string
	p    *sitter.Parser
}

// NewParser builds a Parser for a registered language name (see Register /
// Resolve). Returns an error if the language is not registered.
func NewParser(language string) (*Parser, error) {
	l, ok := Resolve(language)
	if !ok {
		return nil, fmt.Errorf("morfxtree: unregistered language %q", language)
	}
	p := sitter.NewParser()
	p.SetLanguage(l)
	return &Parser{lang: language, p: p}, nil
}

// Language returns the language name this parser was constructed for.
func (p *Parser) Language() string { return p.lang }

// Parse parses source and returns the resulting Tree. The caller owns the
// returned Tree and should Close it when done.
func (p *Parser) Parse(source []byte) (*Tree, error) {
	tree, err := p.p.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("morfxtree: parse failed: %w", err)
	}
	return &Tree{tree: tree, source: source, lang: p.lang}, nil
}
