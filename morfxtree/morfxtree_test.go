package morfxtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAndWalk_Go(t *testing.T) {
	p, err := NewParser("go")
	require.NoError(t, err)

	src := []byte("package main\n\nfunc add(a, b int) int {\n\treturn a + b\n}\n")
	tree, err := p.Parse(src)
	require.NoError(t, err)
	defer tree.Close()

	require.False(t, tree.HasError())
	root := tree.RootNode()
	require.Equal(t, "source_file", root.Kind())
	require.Equal(t, len(src), root.EndByte())
}

func TestQuery_FunctionByName(t *testing.T) {
	p, err := NewParser("go")
	require.NoError(t, err)
	src := []byte("package main\n\nfunc old() {}\nfunc other() {}\n")
	tree, err := p.Parse(src)
	require.NoError(t, err)
	defer tree.Close()

	q, err := NewQuery("go", `((function_declaration name: (identifier) @name (#eq? @name "old"))) @target`)
	require.NoError(t, err)

	matches := q.Matches(tree.RootNode(), src)
	require.Len(t, matches, 1)
	target, ok := matches[0].CaptureByName("@target")
	require.True(t, ok)
	require.Equal(t, "func old() {}", target.Node.Text())
}

func TestQuery_UnregisteredLanguage(t *testing.T) {
	_, err := NewQuery("cobol", "(x) @y")
	require.Error(t, err)
}

func TestNewQuery_CachesCompiledQueryByLanguageAndPattern(t *testing.T) {
	pattern := `(function_declaration name: (identifier) @name)`
	q1, err := NewQuery("go", pattern)
	require.NoError(t, err)
	q2, err := NewQuery("go", pattern)
	require.NoError(t, err)
	require.Same(t, q1, q2)
}

func TestNewQuery_CachesCompileFailureTooSoItNeverRetries(t *testing.T) {
	_, err1 := NewQuery("cobol", "(x) @y")
	require.Error(t, err1)
	_, err2 := NewQuery("cobol", "(x) @y")
	require.Error(t, err2)
	require.Same(t, err1, err2)
}

func TestNode_ChildByFieldName(t *testing.T) {
	p, err := NewParser("go")
	require.NoError(t, err)
	src := []byte("package main\n\nfunc add(a, b int) int { return a + b }\n")
	tree, err := p.Parse(src)
	require.NoError(t, err)
	defer tree.Close()

	var fn Node
	root := tree.RootNode()
	for _, child := range root.NamedChildren() {
		if child.Kind() == "function_declaration" {
			fn = child
		}
	}
	require.False(t, fn.IsNil())
	name := fn.ChildByFieldName("name")
	require.Equal(t, "add", name.Text())
}
