// Package javascript is the providers.LanguageSpec for JavaScript.
//
// Grounded on the teacher's providers/javascript/config.go LanguageConfig,
// rewritten against morfxtree.Node; ExpandMatches' destructuring expansion
// and SmartAppend are dropped for the same reason as providers/golang.
package javascript

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/oxhq/morfx/morfxtree"
	"github.com/oxhq/morfx/providers"
)

func init() {
	providers.Register(&Config{})
}

// Config implements providers.LanguageSpec for JavaScript.
type Config struct{}

// Language identifier.
func (c *Config) Language() string { return "javascript" }

// Extensions supported.
func (c *Config) Extensions() []string { return []string{".js", ".jsx", ".mjs", ".cjs"} }

// GetLanguage returns the tree-sitter grammar handle for JavaScript.
func (c *Config) GetLanguage() *sitter.Language { return javascript.GetLanguage() }

// MapQueryTypeToNodeTypes maps a colloquial category to JavaScript AST node types.
func (c *Config) MapQueryTypeToNodeTypes(queryType string) []string {
	if nodes, ok := c.aliasMap()[queryType]; ok {
		return nodes
	}
	return []string{queryType}
}

func (c *Config) aliasMap() map[string][]string {
	return map[string][]string{
		"function":    {"function_declaration", "function_expression", "arrow_function", "method_definition"},
		"func":        {"function_declaration", "function_expression", "arrow_function", "method_definition"},
		"fn":          {"function_declaration", "function_expression", "arrow_function", "method_definition"},
		"method":      {"method_definition"},
		"constructor": {"method_definition"},
		"ctor":        {"method_definition"},
		"class":       {"class_declaration", "class_expression"},
		"property":    {"field_definition"},
		"prop":        {"field_definition"},
		"field":       {"field_definition"},
		"variable":    {"variable_declaration", "lexical_declaration", "variable_declarator"},
		"var":         {"variable_declaration", "lexical_declaration", "variable_declarator"},
		"const":       {"variable_declaration", "lexical_declaration", "variable_declarator"},
		"let":         {"variable_declaration", "lexical_declaration", "variable_declarator"},
		"lambda":      {"arrow_function"},
		"arrow":       {"arrow_function"},
		"array":       {"array", "array_pattern"},
		"object":      {"object", "object_pattern"},
		"import":      {"import_statement"},
		"export":      {"export_statement"},
		"interface":   {"interface_declaration"},
		"type":        {"type_alias_declaration"},
		"decorator":   {"decorator"},
		"comment":     {"comment"},
		"comments":    {"comment"},
	}
}

// SupportedQueryTypes returns colloquial query categories for JavaScript.
func (c *Config) SupportedQueryTypes() []string {
	m := c.aliasMap()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// ExtractNodeName extracts a name from a matched JavaScript AST node.
func (c *Config) ExtractNodeName(node morfxtree.Node) string {
	switch node.Kind() {
	case "function_declaration", "class_declaration", "class_expression":
		if nameNode := node.ChildByFieldName("name"); !nameNode.IsNil() {
			return nameNode.Text()
		}
	case "method_definition":
		if keyNode := node.ChildByFieldName("key"); !keyNode.IsNil() {
			return keyNode.Text()
		}
	case "field_definition":
		for i := 0; i < node.ChildCount(); i++ {
			if child := node.Child(i); child.Kind() == "property_identifier" {
				return child.Text()
			}
		}
	case "variable_declarator":
		if idNode := node.ChildByFieldName("id"); !idNode.IsNil() {
			return idNode.Text()
		}
	case "lexical_declaration":
		for i := 0; i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child.Kind() == "variable_declarator" {
				if idNode := child.ChildByFieldName("id"); !idNode.IsNil() {
					return idNode.Text()
				}
			}
		}
	case "import_statement", "export_statement":
		if sourceNode := node.ChildByFieldName("source"); !sourceNode.IsNil() {
			return strings.Trim(sourceNode.Text(), `"'`)
		}
	case "arrow_function", "function_expression":
		return c.getArrowFunctionName(node)
	case "comment":
		return c.commentSummary(node.Text())
	}

	for i := 0; i < node.ChildCount(); i++ {
		if child := node.Child(i); child.Kind() == "identifier" {
			return child.Text()
		}
	}
	return ""
}

func (c *Config) getArrowFunctionName(node morfxtree.Node) string {
	parent := node.Parent()
	if !parent.IsNil() && parent.Kind() == "variable_declarator" {
		if idNode := parent.ChildByFieldName("id"); !idNode.IsNil() && idNode.Kind() == "identifier" {
			return idNode.Text()
		}
	}
	if !parent.IsNil() && parent.Kind() == "assignment_expression" {
		if leftNode := parent.ChildByFieldName("left"); !leftNode.IsNil() {
			if leftNode.Kind() == "member_expression" {
				if propNode := leftNode.ChildByFieldName("property"); !propNode.IsNil() {
					return propNode.Text()
				}
			} else if leftNode.Kind() == "identifier" {
				return leftNode.Text()
			}
		}
	}
	return "anonymous"
}

func (c *Config) commentSummary(raw string) string {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "///")
	trimmed = strings.TrimPrefix(trimmed, "//")
	trimmed = strings.TrimPrefix(trimmed, "/**")
	trimmed = strings.TrimPrefix(trimmed, "/*")
	trimmed = strings.TrimSuffix(trimmed, "*/")
	trimmed = strings.TrimPrefix(trimmed, "#")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(strings.TrimPrefix(trimmed, "*"))
}

// IsExported reports whether name starts with a capital letter — the
// convention this provider treats as JavaScript's closest analogue to a
// public/exported identifier.
func (c *Config) IsExported(name string) bool {
	if len(name) == 0 {
		return false
	}
	return name[0] >= 'A' && name[0] <= 'Z'
}
