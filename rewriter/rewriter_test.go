package rewriter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/morfx/morfxtree"
)

func TestRewriter_Identity(t *testing.T) {
	src := []byte("fn f() {}")
	r := New(src, nil, nil)
	require.Equal(t, src, r.Rewrite())
}

func TestRewriter_Replace(t *testing.T) {
	p, err := morfxtree.NewParser("go")
	require.NoError(t, err)
	src := []byte("package main\n\nfunc old() {}\n")
	tree, err := p.Parse(src)
	require.NoError(t, err)
	defer tree.Close()

	q, err := morfxtree.NewQuery("go", `((function_declaration name: (identifier) @name)) @target`)
	require.NoError(t, err)
	matches := q.Matches(tree.RootNode(), src)
	require.Len(t, matches, 1)
	name, _ := matches[0].CaptureByName("@name")

	r := New(src, tree, p)
	out := r.Replace(name.Node, "new").Rewrite()
	require.Equal(t, "package main\n\nfunc new() {}\n", string(out))
}

func TestRewriter_WrapOrdering(t *testing.T) {
	p, err := morfxtree.NewParser("go")
	require.NoError(t, err)

	src := []byte("package main\n\nfunc f() {}\n")
	tree, err := p.Parse(src)
	require.NoError(t, err)
	defer tree.Close()

	q, err := morfxtree.NewQuery("go", `((function_declaration name: (identifier) @name)) @target`)
	require.NoError(t, err)
	matches := q.Matches(tree.RootNode(), src)
	name, _ := matches[0].CaptureByName("@name")

	r := New(src, tree, p)
	out := r.Wrap(name.Node, "/*", "*/").Rewrite()
	require.Contains(t, string(out), "/*f*/")
}

func TestRewriter_RewriteWithTree_NoParserAvailable(t *testing.T) {
	r := New([]byte("x"), nil, nil)
	_, err := r.RewriteWithTree(nil)
	require.Error(t, err)
}

func TestRewriter_InsertBeforeAfter(t *testing.T) {
	r := New([]byte("abc"), nil, nil)
	out := r.InsertBefore(morfxtree.Range{Start: 1, End: 2}, "X").
		InsertAfter(morfxtree.Range{Start: 1, End: 2}, "Y").
		Rewrite()
	require.Equal(t, "aXbYc", string(out))
}

func TestRewriter_PureInsertionsAtSameOffset_LaterWinsLeftmostPosition(t *testing.T) {
	r := New([]byte("abc"), nil, nil)
	out := r.InsertBefore(morfxtree.Range{Start: 1, End: 1}, "X").
		InsertAfter(morfxtree.Range{Start: 1, End: 1}, "Y").
		Rewrite()
	require.Equal(t, "aYXbc", string(out))
}
