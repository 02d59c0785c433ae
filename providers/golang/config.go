// Package golang is the providers.LanguageSpec for Go.
//
// Grounded on the teacher's providers/golang/config.go LanguageConfig: the
// alias map, ExtractNodeName's field-then-fallback search and IsExported's
// capitalization rule are carried over near verbatim, rewritten against
// morfxtree.Node instead of *sitter.Node and with the core.AgentQuery-based
// ExpandMatches/SmartAppend machinery dropped — Transformer and Inserter
// now own all insertion-point and structural-edit concerns.
package golang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/oxhq/morfx/morfxtree"
	"github.com/oxhq/morfx/providers"
)

func init() {
	providers.Register(&Config{})
}

// Config implements providers.LanguageSpec for Go.
type Config struct{}

// Language identifier.
func (c *Config) Language() string { return "go" }

// Extensions supported.
func (c *Config) Extensions() []string { return []string{".go"} }

// GetLanguage returns the tree-sitter grammar handle for Go.
func (c *Config) GetLanguage() *sitter.Language { return golang.GetLanguage() }

// MapQueryTypeToNodeTypes maps a colloquial category to Go AST node types.
func (c *Config) MapQueryTypeToNodeTypes(queryType string) []string {
	if nodes, ok := c.aliasMap()[queryType]; ok {
		return nodes
	}
	return []string{queryType}
}

func (c *Config) aliasMap() map[string][]string {
	return map[string][]string{
		"function":  {"function_declaration", "method_declaration"},
		"func":      {"function_declaration", "method_declaration"},
		"fn":        {"function_declaration", "method_declaration"},
		"struct":    {"type_spec"},
		"interface": {"type_spec"},
		"iface":     {"type_spec"},
		"variable":  {"var_declaration", "short_var_declaration"},
		"var":       {"var_declaration", "short_var_declaration"},
		"constant":  {"const_declaration"},
		"const":     {"const_declaration"},
		"import":    {"import_declaration"},
		"type":      {"type_declaration", "type_spec"},
		"method":    {"method_declaration"},
		"field":     {"field_declaration"},
		"comment":   {"comment"},
		"comments":  {"comment"},
	}
}

// SupportedQueryTypes returns colloquial query categories for Go.
func (c *Config) SupportedQueryTypes() []string {
	m := c.aliasMap()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// ExtractNodeName extracts a name from a matched Go AST node.
func (c *Config) ExtractNodeName(node morfxtree.Node) string {
	if nameNode := node.ChildByFieldName("name"); !nameNode.IsNil() {
		return nameNode.Text()
	}

	switch node.Kind() {
	case "import_declaration", "import_spec":
		spec := node
		if node.Kind() == "import_declaration" {
			for i := 0; i < node.NamedChildCount(); i++ {
				if child := node.NamedChild(i); child.Kind() == "import_spec" {
					spec = child
					break
				}
			}
		}
		if pathNode := spec.ChildByFieldName("path"); !pathNode.IsNil() {
			return strings.Trim(pathNode.Text(), `"`)
		}
	case "var_declaration", "const_declaration", "short_var_declaration":
		for i := 0; i < node.ChildCount(); i++ {
			if child := node.Child(i); child.Kind() == "identifier" {
				return child.Text()
			}
		}
	case "comment":
		return c.extractCommentContent(node.Text())
	}

	for i := 0; i < node.ChildCount(); i++ {
		if child := node.Child(i); child.Kind() == "identifier" {
			return child.Text()
		}
	}
	return ""
}

func (c *Config) extractCommentContent(raw string) string {
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

// IsExported reports whether name starts with a capital letter, Go's own
// export rule.
func (c *Config) IsExported(name string) bool {
	if len(name) == 0 {
		return false
	}
	return name[0] >= 'A' && name[0] <= 'Z'
}

// ValidateTypeSpec disambiguates a type_spec node against the "struct" /
// "interface" colloquial categories, which otherwise share a node kind in
// Go's grammar.
func (c *Config) ValidateTypeSpec(node morfxtree.Node, queryType string) bool {
	if node.Kind() != "type_spec" {
		return true
	}
	typeNode := node.ChildByFieldName("type")
	if typeNode.IsNil() {
		return false
	}
	switch queryType {
	case "struct":
		return typeNode.Kind() == "struct_type"
	case "interface":
		return typeNode.Kind() == "interface_type"
	default:
		return true
	}
}
