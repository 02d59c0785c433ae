// Package php is the providers.LanguageSpec for PHP.
//
// Grounded on the teacher's providers/php/config.go LanguageConfig,
// rewritten against morfxtree.Node; ExpandMatches' property-declaration
// expansion is dropped for the same reason as providers/golang.
package php

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"

	"github.com/oxhq/morfx/morfxtree"
	"github.com/oxhq/morfx/providers"
)

func init() {
	providers.Register(&Config{})
}

// Config implements providers.LanguageSpec for PHP.
type Config struct{}

// Language identifier.
func (c *Config) Language() string { return "php" }

// Extensions supported.
func (c *Config) Extensions() []string {
	return []string{".php", ".phtml", ".php4", ".php5", ".phps"}
}

// GetLanguage returns the tree-sitter grammar handle for PHP.
func (c *Config) GetLanguage() *sitter.Language { return php.GetLanguage() }

// MapQueryTypeToNodeTypes maps a colloquial category to PHP AST node types.
func (c *Config) MapQueryTypeToNodeTypes(queryType string) []string {
	if nodes, ok := c.aliasMap()[queryType]; ok {
		return nodes
	}
	return []string{queryType}
}

func (c *Config) aliasMap() map[string][]string {
	return map[string][]string{
		"function":  {"function_definition", "method_declaration"},
		"func":      {"function_definition", "method_declaration"},
		"fn":        {"function_definition", "method_declaration"},
		"method":    {"method_declaration"},
		"class":     {"class_declaration"},
		"interface": {"interface_declaration"},
		"iface":     {"interface_declaration"},
		"trait":     {"trait_declaration"},
		"variable":  {"simple_parameter", "property_declaration", "variable_name"},
		"var":       {"simple_parameter", "property_declaration", "variable_name"},
		"property":  {"property_declaration"},
		"prop":      {"property_declaration"},
		"field":     {"property_declaration"},
		"constant":  {"const_declaration"},
		"const":     {"const_declaration"},
		"namespace": {"namespace_definition"},
		"use":       {"namespace_use_declaration"},
		"import":    {"namespace_use_declaration"},
		"comment":   {"comment"},
		"comments":  {"comment"},
	}
}

// SupportedQueryTypes returns colloquial query categories for PHP.
func (c *Config) SupportedQueryTypes() []string {
	m := c.aliasMap()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// ExtractNodeName extracts a name from a matched PHP AST node.
func (c *Config) ExtractNodeName(node morfxtree.Node) string {
	switch node.Kind() {
	case "function_definition", "class_declaration", "interface_declaration", "trait_declaration", "method_declaration":
		if nameNode := node.ChildByFieldName("name"); !nameNode.IsNil() {
			return nameNode.Text()
		}
	case "property_declaration":
		for i := 0; i < node.ChildCount(); i++ {
			if child := node.Child(i); child.Kind() == "variable_name" {
				return strings.TrimPrefix(child.Text(), "$")
			}
		}
	case "variable_name":
		return strings.TrimPrefix(node.Text(), "$")
	case "namespace_definition":
		if nameNode := node.ChildByFieldName("name"); !nameNode.IsNil() {
			return nameNode.Text()
		}
	case "namespace_use_declaration":
		for i := 0; i < node.ChildCount(); i++ {
			if child := node.Child(i); child.Kind() == "qualified_name" {
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
		if child := node.Child(i); child.Kind() == "name" {
			return child.Text()
		}
	}
	return ""
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

// IsExported reports whether name lacks PHP's underscore-prefix
// private/protected convention.
func (c *Config) IsExported(name string) bool {
	if len(name) == 0 {
		return false
	}
	return !strings.HasPrefix(name, "_")
}

// ValidateVisibility checks the explicit public/private/protected modifier
// on the enclosing property_declaration or method_declaration, falling back
// to the underscore-prefix convention when no modifier is present.
func (c *Config) ValidateVisibility(node morfxtree.Node) bool {
	parent := node.Parent()
	for !parent.IsNil() {
		if parent.Kind() == "property_declaration" || parent.Kind() == "method_declaration" {
			for i := 0; i < parent.ChildCount(); i++ {
				switch parent.Child(i).Text() {
				case "private", "protected":
					return false
				case "public":
					return true
				}
			}
		}
		parent = parent.Parent()
	}
	return !strings.HasPrefix(c.ExtractNodeName(node), "_")
}
