// Package providers is the per-language registry the rest of morfx consults
// for grammar loading and the handful of details tree-sitter doesn't expose
// uniformly across grammars: which concrete node kinds a colloquial category
// ("function", "variable", "comment", ...) maps to, how to pull a name back
// out of a matched node, and what "exported" means for the language.
//
// Grounded directly on the teacher's providers/<lang>/config.go files (one
// LanguageConfig implementation per grammar); the Provider/AgentQuery
// pipeline those files used to feed has been replaced by morfxtree/refactor,
// but the node-kind tables and name-extraction heuristics they encode are
// exactly what a structural refactor still needs per language.
package providers

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/morfx/morfxtree"
)

// LanguageSpec is the per-language surface consumed by refactor and
// queryedit for work that can't be expressed as a language-neutral query
// alone.
type LanguageSpec interface {
	// Language returns the canonical language name used to register with
	// morfxtree (e.g. "go").
	Language() string

	// Extensions returns the file extensions this language claims.
	Extensions() []string

	// GetLanguage returns the underlying tree-sitter grammar handle.
	GetLanguage() *sitter.Language

	// MapQueryTypeToNodeTypes expands a colloquial category (function,
	// class, variable, comment, ...) into the grammar's concrete node
	// kinds. Unknown categories pass through unchanged, so callers can
	// always fall back to a literal grammar node kind.
	MapQueryTypeToNodeTypes(queryType string) []string

	// SupportedQueryTypes lists every colloquial category this language
	// recognizes.
	SupportedQueryTypes() []string

	// ExtractNodeName pulls the most meaningful name out of a matched
	// node: the declared identifier for declarations, the import path for
	// imports, a summarized first line for comments, "" if nothing
	// sensible applies.
	ExtractNodeName(node morfxtree.Node) string

	// IsExported reports whether name counts as part of this language's
	// public surface, by its own convention (capitalization in Go/TS,
	// absence of a leading underscore in Python/PHP).
	IsExported(name string) bool
}

var registry = map[string]LanguageSpec{}

// Register adds a LanguageSpec under its own Language() name. Called from
// each provider package's init().
func Register(spec LanguageSpec) {
	registry[spec.Language()] = spec
}

// Resolve looks up a registered LanguageSpec by name.
func Resolve(name string) (LanguageSpec, bool) {
	spec, ok := registry[name]
	return spec, ok
}
