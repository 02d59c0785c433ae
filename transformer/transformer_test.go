package transformer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/morfx/morfxtree"
	"github.com/oxhq/morfx/rewriter"
)

func TestSwap_Basic(t *testing.T) {
	src := []byte("fn add(a: i32, b: i32) -> i32 { a + b }")
	a := morfxtree.Range{Start: 7, End: 13}  // "a: i32"
	b := morfxtree.Range{Start: 15, End: 21} // "b: i32"

	tr := New(src)
	require.NoError(t, tr.Swap(a, b))
	out := tr.Rewrite()
	require.Contains(t, string(out), "fn add(b: i32, a: i32)")
}

func TestSwap_OverlappingRangesRejected(t *testing.T) {
	src := []byte("abcdef")
	tr := New(src)
	err := tr.Swap(morfxtree.Range{Start: 0, End: 4}, morfxtree.Range{Start: 2, End: 6})
	require.Error(t, err)
}

func TestSwap_Involution(t *testing.T) {
	// Applying swap(a, b) twice against re-derived spans of the same length
	// yields the original source.
	src := []byte("one two")
	a := morfxtree.Range{Start: 0, End: 3}
	b := morfxtree.Range{Start: 4, End: 7}

	tr1 := New(src)
	require.NoError(t, tr1.Swap(a, b))
	once := tr1.Rewrite()
	require.Equal(t, "two one", string(once))

	tr2 := New(once)
	require.NoError(t, tr2.Swap(a, b))
	twice := tr2.Rewrite()
	require.Equal(t, string(src), string(twice))
}

func TestMove_Before(t *testing.T) {
	src := []byte("A B C")
	n := morfxtree.Range{Start: 4, End: 5}    // "C"
	target := morfxtree.Range{Start: 0, End: 1} // "A"

	tr := New(src)
	require.NoError(t, tr.Move(n, Before, target, " "))
	require.Equal(t, "C A B ", string(tr.Rewrite()))
}

func TestMove_After(t *testing.T) {
	src := []byte("A B C")
	n := morfxtree.Range{Start: 0, End: 1}      // "A"
	target := morfxtree.Range{Start: 4, End: 5} // "C"

	tr := New(src)
	require.NoError(t, tr.Move(n, After, target, " "))
	require.Equal(t, " B C A", string(tr.Rewrite()))
}

func TestMove_RemoveThenInsertEquivalence(t *testing.T) {
	src := []byte("first\nsecond\nthird")
	n := morfxtree.Range{Start: 0, End: 5}        // "first"
	target := morfxtree.Range{Start: 13, End: 18} // "third"

	moveTr := New(src)
	require.NoError(t, moveTr.Move(n, After, target, "\n"))
	viaMove := moveTr.Rewrite()

	r := rewriter.New(src, nil, nil)
	r.Remove(n)
	r.InsertAfter(target, "\n"+"first")
	viaRewriter := r.Rewrite()

	require.Equal(t, string(viaMove), string(viaRewriter))
}

func TestCopy_DoesNotRemoveOriginal(t *testing.T) {
	src := []byte("A B")
	n := morfxtree.Range{Start: 0, End: 1}      // "A"
	target := morfxtree.Range{Start: 2, End: 3} // "B"

	tr := New(src)
	require.NoError(t, tr.Copy(n, After, target, " "))
	require.Equal(t, "A B A", string(tr.Rewrite()))
}

func TestReorder_IdentityPermutationEmitsNoEdits(t *testing.T) {
	src := []byte("package main\n\nfunc f(a int, b int, c int) {}\n")
	p := mustParser(t)
	tree := mustParse(t, p, src)
	defer tree.Close()

	parent := findParamList(t, tree.RootNode())
	tr := New(src)
	require.NoError(t, tr.Reorder(parent, []int{0, 1, 2}))
	require.Equal(t, 0, tr.buf.Len())
	require.Equal(t, src, tr.Rewrite())
}

func TestReorder_InvalidPermutationRejected(t *testing.T) {
	src := []byte("package main\n\nfunc f(a int, b int, c int) {}\n")
	p := mustParser(t)
	tree := mustParse(t, p, src)
	defer tree.Close()

	parent := findParamList(t, tree.RootNode())
	tr := New(src)
	err := tr.Reorder(parent, []int{0, 0, 2})
	require.Error(t, err)
}

func TestReorder_PermutesChildren(t *testing.T) {
	src := []byte("package main\n\nfunc f(a int, b int, c int) {}\n")
	p := mustParser(t)
	tree := mustParse(t, p, src)
	defer tree.Close()

	parent := findParamList(t, tree.RootNode())
	tr := New(src)
	require.NoError(t, tr.Reorder(parent, []int{2, 1, 0}))
	out := string(tr.Rewrite())
	require.Contains(t, out, "func f(c int, b int, a int)")
}

func TestExtract_ReplacesAndInserts(t *testing.T) {
	src := []byte("func f() {\n\tx := 1 + 2\n}\n")
	n := morfxtree.Range{Start: 17, End: 22} // "1 + 2"
	target := morfxtree.Range{Start: 0, End: len(src) - 1}

	tr := New(src)
	tr.Extract(n, target, "sum()", nil)
	out := string(tr.Rewrite())
	require.Contains(t, out, "sum()")
	require.Contains(t, out, "1 + 2")
}

func TestDuplicate_AppliesTransform(t *testing.T) {
	src := []byte("line")
	n := morfxtree.Range{Start: 0, End: 4}

	tr := New(src)
	tr.Duplicate(n, "\n", func(s string) string { return s + "!" })
	require.Equal(t, "line\nline!", string(tr.Rewrite()))
}

// --- helpers ---

func mustParser(t *testing.T) *morfxtree.Parser {
	t.Helper()
	p, err := morfxtree.NewParser("go")
	require.NoError(t, err)
	return p
}

func mustParse(t *testing.T, p *morfxtree.Parser, src []byte) *morfxtree.Tree {
	t.Helper()
	tree, err := p.Parse(src)
	require.NoError(t, err)
	return tree
}

func findParamList(t *testing.T, root morfxtree.Node) morfxtree.Node {
	t.Helper()
	var found morfxtree.Node
	var walk func(n morfxtree.Node)
	walk = func(n morfxtree.Node) {
		if !found.IsNil() {
			return
		}
		if n.Kind() == "parameter_list" {
			found = n
			return
		}
		for i := 0; i < n.NamedChildCount(); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)
	require.False(t, found.IsNil(), "parameter_list not found")
	return found
}
