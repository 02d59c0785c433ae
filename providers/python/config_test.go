package python

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/morfx/morfxtree"
)

func parsePython(t *testing.T, source string) *morfxtree.Tree {
	t.Helper()
	p, err := morfxtree.NewParser("python")
	require.NoError(t, err)
	tree, err := p.Parse([]byte(source))
	require.NoError(t, err)
	return tree
}

func findKind(n morfxtree.Node, kind string) morfxtree.Node {
	if n.Kind() == kind {
		return n
	}
	for i := 0; i < n.ChildCount(); i++ {
		if found := findKind(n.Child(i), kind); !found.IsNil() {
			return found
		}
	}
	return morfxtree.Node{}
}

func TestValidateAssignment_SimpleIdentifier(t *testing.T) {
	c := &Config{}
	tree := parsePython(t, "a = 1\n")
	defer tree.Close()

	assign := findKind(tree.RootNode(), "assignment")
	require.False(t, assign.IsNil())
	require.True(t, c.ValidateAssignment(assign, "variable"))
}

func TestValidateAssignment_NonVariableQueryAlwaysPasses(t *testing.T) {
	c := &Config{}
	tree := parsePython(t, "a.b = 1\n")
	defer tree.Close()

	assign := findKind(tree.RootNode(), "assignment")
	require.False(t, assign.IsNil())
	require.True(t, c.ValidateAssignment(assign, "function"))
}

func TestValidateAssignment_AttributeTargetRejected(t *testing.T) {
	c := &Config{}
	tree := parsePython(t, "a.b = 1\n")
	defer tree.Close()

	assign := findKind(tree.RootNode(), "assignment")
	require.False(t, assign.IsNil())
	require.False(t, c.ValidateAssignment(assign, "variable"))
}

func TestExtractNodeName_FunctionDefinition(t *testing.T) {
	c := &Config{}
	tree := parsePython(t, "def greet():\n    pass\n")
	defer tree.Close()

	fn := findKind(tree.RootNode(), "function_definition")
	require.False(t, fn.IsNil())
	require.Equal(t, "greet", c.ExtractNodeName(fn))
}

func TestIsExported(t *testing.T) {
	c := &Config{}
	require.True(t, c.IsExported("public_name"))
	require.False(t, c.IsExported("_private"))
}
