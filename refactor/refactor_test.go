package refactor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/morfx/morfxtree"
	_ "github.com/oxhq/morfx/providers/golang"
)

func parseGo(t *testing.T, src []byte) (*morfxtree.Parser, *morfxtree.Tree) {
	t.Helper()
	p, err := morfxtree.NewParser("go")
	require.NoError(t, err)
	tree, err := p.Parse(src)
	require.NoError(t, err)
	return p, tree
}

func TestRenameSymbol_FunctionRenameEndToEnd(t *testing.T) {
	src := []byte(`package main

func main() {
	old()
	old()
	other()
}

func old() {}
func other() {}
`)
	p, tree := parseGo(t, src)
	defer tree.Close()

	f := New(src, tree, p, "go")
	out, err := f.RenameSymbol("old", "new", KindFunction)
	require.NoError(t, err)

	s := string(out)
	require.Equal(t, 0, strings.Count(s, "old"))
	require.Equal(t, 3, strings.Count(s, "new"))
	require.Equal(t, 2, strings.Count(s, "other"))
}

func TestRenameField_RenamesDeclarationAndAccess(t *testing.T) {
	src := []byte(`package main

type T struct {
	Name string
}

func use(t T) string {
	return t.Name
}
`)
	p, tree := parseGo(t, src)
	defer tree.Close()

	f := New(src, tree, p, "go")
	out, err := f.RenameField("Name", "Label")
	require.NoError(t, err)

	s := string(out)
	require.NotContains(t, s, "Name")
	require.Contains(t, s, "Label string")
	require.Contains(t, s, "t.Label")
}

func TestAddAttribute_InsertsBeforeCapturedItem(t *testing.T) {
	src := []byte("package main\n\nfunc f() {}\n")
	p, tree := parseGo(t, src)
	defer tree.Close()

	f := New(src, tree, p, "go")
	out, err := f.AddAttribute(`(function_declaration) @item`, "//go:noinline")
	require.NoError(t, err)
	require.Contains(t, string(out), "//go:noinline\nfunc f() {}")
}

func TestRemoveMatching_RemovesEveryCapturedNode(t *testing.T) {
	src := []byte("package main\n\n// drop me\nfunc f() {}\n")
	p, tree := parseGo(t, src)
	defer tree.Close()

	f := New(src, tree, p, "go")
	out, err := f.RemoveMatching(`(comment) @item`)
	require.NoError(t, err)
	require.NotContains(t, string(out), "drop me")
}

func TestExtractFunction_ReplacesAndAppendsDefinition(t *testing.T) {
	src := []byte("func f() {\n\tx := 1 + 2\n}\n")
	node := morfxtree.Range{Start: 17, End: 22} // "1 + 2"
	enclosing := morfxtree.Range{Start: 0, End: len(src) - 1}

	f := New(src, nil, nil, "go")
	out := f.ExtractFunction(node, "sum", nil, enclosing)
	s := string(out)
	require.Contains(t, s, "sum()")
	require.Contains(t, s, "func sum() {\n1 + 2\n}")
}

func TestRenameSymbolConfidence_ExportedNameLowersScore(t *testing.T) {
	src := []byte(`package main

func Old() {}
func other() {
	Old()
}
`)
	p, tree := parseGo(t, src)
	defer tree.Close()

	f := New(src, tree, p, "go")
	conf, err := f.RenameSymbolConfidence("Old", KindFunction)
	require.NoError(t, err)

	var names []string
	for _, fac := range conf.Factors {
		names = append(names, fac.Name)
	}
	require.Contains(t, names, "exported_api")
	require.Less(t, conf.Score, 1.0)
}

func TestRenameSymbolConfidence_UnexportedNameHasNoExportedFactor(t *testing.T) {
	src := []byte(`package main

func old() {}
`)
	p, tree := parseGo(t, src)
	defer tree.Close()

	f := New(src, tree, p, "go")
	conf, err := f.RenameSymbolConfidence("old", KindFunction)
	require.NoError(t, err)

	for _, fac := range conf.Factors {
		require.NotEqual(t, "exported_api", fac.Name)
	}
}

func TestRenameSymbolConfidence_IsAdvisoryAndDoesNotMutate(t *testing.T) {
	src := []byte("package main\n\nfunc old() {}\n")
	p, tree := parseGo(t, src)
	defer tree.Close()

	f := New(src, tree, p, "go")
	_, err := f.RenameSymbolConfidence("old", KindFunction)
	require.NoError(t, err)
	require.Equal(t, "package main\n\nfunc old() {}\n", string(src))
}

func TestRemoveMatchingConfidence_ExportedAPILowersScore(t *testing.T) {
	src := []byte("package main\n\nfunc Exported() {}\n")
	p, tree := parseGo(t, src)
	defer tree.Close()

	f := New(src, tree, p, "go")
	conf, err := f.RemoveMatchingConfidence(`(function_declaration name: (identifier)) @item`)
	require.NoError(t, err)

	var names []string
	for _, fac := range conf.Factors {
		names = append(names, fac.Name)
	}
	require.Contains(t, names, "delete_exported_api")
}

func TestInlineVariable_SubstitutesUsages(t *testing.T) {
	src := []byte(`package main

func f() int {
	var x = 42
	return x + x
}
`)
	p, tree := parseGo(t, src)
	defer tree.Close()

	f2 := New(src, tree, p, "go")
	out, err := f2.InlineVariable("x", morfxtree.Node{})
	require.NoError(t, err)
	require.Contains(t, string(out), "return 42 + 42")
}
