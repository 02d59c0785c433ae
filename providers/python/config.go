// Package python is the providers.LanguageSpec for Python.
//
// Grounded on the teacher's providers/python/config.go LanguageConfig,
// rewritten against morfxtree.Node; the tuple/pattern-unpacking expansion
// and import-expansion helpers are dropped for the same reason as
// providers/golang.
package python

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/oxhq/morfx/morfxtree"
	"github.com/oxhq/morfx/providers"
)

func init() {
	providers.Register(&Config{})
}

// Config implements providers.LanguageSpec for Python.
type Config struct{}

// Language identifier.
func (c *Config) Language() string { return "python" }

// Extensions supported.
func (c *Config) Extensions() []string { return []string{".py", ".pyw", ".pyi"} }

// GetLanguage returns the tree-sitter grammar handle for Python.
func (c *Config) GetLanguage() *sitter.Language { return python.GetLanguage() }

// MapQueryTypeToNodeTypes maps a colloquial category to Python AST node types.
func (c *Config) MapQueryTypeToNodeTypes(queryType string) []string {
	if nodes, ok := c.aliasMap()[queryType]; ok {
		return nodes
	}
	return []string{queryType}
}

func (c *Config) aliasMap() map[string][]string {
	return map[string][]string{
		"function":   {"function_definition", "async_function_definition"},
		"func":       {"function_definition", "async_function_definition"},
		"fn":         {"function_definition", "async_function_definition"},
		"method":     {"function_definition", "async_function_definition"},
		"def":        {"function_definition", "async_function_definition"},
		"class":      {"class_definition"},
		"cls":        {"class_definition"},
		"type":       {"type_alias_statement"},
		"alias":      {"type_alias_statement"},
		"type_alias": {"type_alias_statement"},
		"variable":   {"assignment", "augmented_assignment", "global_statement", "nonlocal_statement"},
		"var":        {"assignment", "augmented_assignment", "global_statement", "nonlocal_statement"},
		"import":     {"import_statement", "import_from_statement"},
		"from":       {"import_from_statement"},
		"decorator":  {"decorator"},
		"lambda":     {"lambda"},
		"comment":    {"comment"},
		"comments":   {"comment"},
	}
}

// SupportedQueryTypes returns colloquial query categories for Python.
func (c *Config) SupportedQueryTypes() []string {
	m := c.aliasMap()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// ExtractNodeName extracts a name from a matched Python AST node.
func (c *Config) ExtractNodeName(node morfxtree.Node) string {
	switch node.Kind() {
	case "function_definition", "async_function_definition", "class_definition":
		if nameNode := node.ChildByFieldName("name"); !nameNode.IsNil() {
			return nameNode.Text()
		}
	case "assignment", "augmented_assignment":
		if leftNode := node.ChildByFieldName("left"); !leftNode.IsNil() && leftNode.Kind() == "identifier" {
			return leftNode.Text()
		}
	case "lambda":
		return "anonymous"
	case "import_statement":
		for i := 0; i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child.Kind() == "dotted_name" || child.Kind() == "identifier" {
				return child.Text()
			}
		}
	case "import_from_statement":
		if moduleNode := node.ChildByFieldName("module_name"); !moduleNode.IsNil() {
			return moduleNode.Text()
		}
	case "type_alias_statement":
		if left := node.ChildByFieldName("left"); !left.IsNil() {
			return left.Text()
		}
	case "decorator":
		for i := 0; i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child.Kind() == "identifier" || child.Kind() == "attribute" {
				return child.Text()
			}
		}
	case "comment":
		return c.commentSummary(node.Text())
	}

	if nameNode := node.ChildByFieldName("name"); !nameNode.IsNil() {
		return nameNode.Text()
	}
	for i := 0; i < node.ChildCount(); i++ {
		if child := node.Child(i); child.Kind() == "identifier" {
			return child.Text()
		}
	}
	return ""
}

func (c *Config) commentSummary(raw string) string {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "#")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return trimmed
}

// ValidateAssignment ensures an "assignment"/"augmented_assignment" match
// for the "variable" category is a real variable binding, not an
// attribute or subscript assignment.
func (c *Config) ValidateAssignment(node morfxtree.Node, queryType string) bool {
	if (node.Kind() != "assignment" && node.Kind() != "augmented_assignment") || queryType != "variable" {
		return true
	}
	leftNode := node.ChildByFieldName("left")
	if leftNode.IsNil() {
		return false
	}
	switch leftNode.Kind() {
	case "identifier", "tuple", "list", "pattern_list":
		return true
	default:
		return false
	}
}

// IsExported reports whether name lacks Python's underscore-prefix
// internal-use convention.
func (c *Config) IsExported(name string) bool {
	if len(name) == 0 {
		return false
	}
	return !strings.HasPrefix(name, "_")
}
