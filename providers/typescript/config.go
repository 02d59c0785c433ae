// Package typescript is the providers.LanguageSpec for TypeScript.
//
// Grounded on the teacher's providers/typescript/config.go LanguageConfig,
// rewritten against morfxtree.Node; the destructuring expansion and
// import/export-specifier expansion are dropped for the same reason as
// providers/golang.
package typescript

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/oxhq/morfx/morfxtree"
	"github.com/oxhq/morfx/providers"
)

func init() {
	providers.Register(&Config{})
}

// Config implements providers.LanguageSpec for TypeScript.
type Config struct{}

// Language identifier.
func (c *Config) Language() string { return "typescript" }

// Extensions supported.
func (c *Config) Extensions() []string { return []string{".ts", ".tsx", ".d.ts"} }

// GetLanguage returns the tree-sitter grammar handle for TypeScript.
func (c *Config) GetLanguage() *sitter.Language { return typescript.GetLanguage() }

// MapQueryTypeToNodeTypes maps a colloquial category to TypeScript AST node types.
func (c *Config) MapQueryTypeToNodeTypes(queryType string) []string {
	if nodes, ok := c.aliasMap()[queryType]; ok {
		return nodes
	}
	return []string{queryType}
}

func (c *Config) aliasMap() map[string][]string {
	return map[string][]string{
		"function":    {"function_declaration", "function_expression", "arrow_function", "method_definition", "method_signature", "public_field_definition"},
		"func":        {"function_declaration", "function_expression", "arrow_function", "method_definition", "method_signature", "public_field_definition"},
		"fn":          {"function_declaration", "function_expression", "arrow_function", "method_definition", "method_signature", "public_field_definition"},
		"class":       {"class_declaration", "class_expression"},
		"interface":   {"interface_declaration"},
		"iface":       {"interface_declaration"},
		"type":        {"type_alias_declaration"},
		"enum":        {"enum_declaration"},
		"enum_member": {"enum_member"},
		"member":      {"enum_member"},
		"method":      {"method_definition", "method_signature"},
		"getter":      {"method_definition", "method_signature"},
		"setter":      {"method_definition", "method_signature"},
		"accessor":    {"method_definition", "method_signature"},
		"constructor": {"method_definition"},
		"ctor":        {"method_definition"},
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
		"module":      {"module_declaration"},
		"namespace":   {"namespace_declaration"},
		"property":    {"public_field_definition", "private_field_definition", "field_definition", "property_signature"},
		"prop":        {"public_field_definition", "private_field_definition", "field_definition", "property_signature"},
		"field":       {"public_field_definition", "private_field_definition", "field_definition", "property_signature"},
		"signature":   {"method_signature", "function_signature", "construct_signature", "index_signature", "call_signature"},
		"decorator":   {"decorator"},
		"comment":     {"comment"},
		"comments":    {"comment"},
	}
}

// SupportedQueryTypes returns colloquial query categories for TypeScript.
func (c *Config) SupportedQueryTypes() []string {
	m := c.aliasMap()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// ExtractNodeName extracts a name from a matched TypeScript AST node.
func (c *Config) ExtractNodeName(node morfxtree.Node) string {
	switch node.Kind() {
	case "function_declaration", "class_declaration", "class_expression",
		"interface_declaration", "type_alias_declaration", "enum_declaration",
		"module_declaration", "namespace_declaration":
		if nameNode := node.ChildByFieldName("name"); !nameNode.IsNil() {
			return nameNode.Text()
		}
	case "method_definition", "method_signature":
		if keyNode := node.ChildByFieldName("key"); !keyNode.IsNil() {
			return keyNode.Text()
		}
		for i := 0; i < node.ChildCount(); i++ {
			if child := node.Child(i); child.Kind() == "property_identifier" {
				return child.Text()
			}
		}
	case "public_field_definition", "private_field_definition", "field_definition":
		for i := 0; i < node.ChildCount(); i++ {
			if child := node.Child(i); child.Kind() == "property_identifier" {
				return child.Text()
			}
		}
	case "property_signature":
		if nameNode := node.ChildByFieldName("name"); !nameNode.IsNil() {
			return nameNode.Text()
		}
		for i := 0; i < node.ChildCount(); i++ {
			if child := node.Child(i); child.Kind() == "property_identifier" {
				return child.Text()
			}
		}
	case "enum_member":
		if nameNode := node.ChildByFieldName("name"); !nameNode.IsNil() {
			return nameNode.Text()
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
	if parent.IsNil() {
		return "anonymous"
	}
	switch parent.Kind() {
	case "variable_declarator":
		if idNode := parent.ChildByFieldName("id"); !idNode.IsNil() {
			return idNode.Text()
		}
	case "pair", "method_definition":
		if keyNode := parent.ChildByFieldName("key"); !keyNode.IsNil() {
			return keyNode.Text()
		}
	case "assignment_expression":
		if leftNode := parent.ChildByFieldName("left"); !leftNode.IsNil() {
			if leftNode.Kind() == "member_expression" {
				if propertyNode := leftNode.ChildByFieldName("property"); !propertyNode.IsNil() {
					return propertyNode.Text()
				}
			} else {
				return leftNode.Text()
			}
		}
	case "public_field_definition":
		for i := 0; i < parent.ChildCount(); i++ {
			if child := parent.Child(i); child.Kind() == "property_identifier" {
				return child.Text()
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
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(strings.TrimPrefix(trimmed, "*"))
}

// IsExported reports whether name is PascalCase, the convention this
// provider treats as TypeScript's public-API surface.
func (c *Config) IsExported(name string) bool {
	if len(name) == 0 {
		return false
	}
	return name[0] >= 'A' && name[0] <= 'Z'
}
