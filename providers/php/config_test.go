package php

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/morfx/morfxtree"
)

func parsePHP(t *testing.T, source string) *morfxtree.Tree {
	t.Helper()
	p, err := morfxtree.NewParser("php")
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

func TestExtractNodeName_VariableName(t *testing.T) {
	c := &Config{}
	tree := parsePHP(t, "<?php class Test { public $a; }")
	defer tree.Close()

	v := findKind(tree.RootNode(), "variable_name")
	require.False(t, v.IsNil())
	require.Equal(t, "a", c.ExtractNodeName(v))
}

func TestValidateVisibility_Public(t *testing.T) {
	c := &Config{}
	tree := parsePHP(t, "<?php class Test { public $a; }")
	defer tree.Close()

	v := findKind(tree.RootNode(), "variable_name")
	require.False(t, v.IsNil())
	require.True(t, c.ValidateVisibility(v))
}

func TestValidateVisibility_Private(t *testing.T) {
	c := &Config{}
	tree := parsePHP(t, "<?php class Test { private $a; }")
	defer tree.Close()

	v := findKind(tree.RootNode(), "variable_name")
	require.False(t, v.IsNil())
	require.False(t, c.ValidateVisibility(v))
}

func TestIsExported(t *testing.T) {
	c := &Config{}
	require.True(t, c.IsExported("publicName"))
	require.False(t, c.IsExported("_private"))
}
