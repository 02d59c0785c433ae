// Package refactor implements the Refactor Facade: pure recipes built from
// queryedit and transformer — rename_symbol, rename_field, add_attribute,
// remove_matching, extract_function, inline_variable.
//
// Grounded on the teacher's providers/golang and providers/javascript
// per-language node-kind tables (which patterns bind which node kinds to a
// symbol) and internal/core.Manipulator's rename/remove recipes, recomposed
// here directly over morfxtree queries instead of a regex matcher.
package refactor

import (
	"fmt"
	"math"
	"strings"

	"github.com/oxhq/morfx/morfxtree"
	"github.com/oxhq/morfx/providers"
	"github.com/oxhq/morfx/queryedit"
	"github.com/oxhq/morfx/transformer"
)

// SymbolKind selects which query pattern rename_symbol targets.
type SymbolKind int

const (
	KindFunction SymbolKind = iota
	KindType
	KindVariable
	KindIdentifier
)

// symbolPatterns maps a SymbolKind to a language's query pattern binding
// capture "name". Grounded on providers/golang/config.go's aliasMap, which
// maps the same logical categories to concrete Go grammar node kinds.
var symbolPatterns = map[string]map[SymbolKind]string{
	"go": {
		KindFunction:   `[(function_declaration name: (identifier) @name) (call_expression function: (identifier) @name)]`,
		KindType:       `(type_spec name: (type_identifier) @name)`,
		KindVariable:   `(short_var_declaration left: (expression_list (identifier) @name))`,
		KindIdentifier: `(identifier) @name`,
	},
}

// Facade is the Refactor Facade: owns source/tree/parser/language and
// dispatches each recipe to a fresh queryedit.Rewriter or transformer.Transformer.
type Facade struct {
	source   []byte
	tree     *morfxtree.Tree
	parser   *morfxtree.Parser
	language string
}

// New builds a Facade over source, tree, parser and language.
func New(source []byte, tree *morfxtree.Tree, parser *morfxtree.Parser, language string) *Facade {
	return &Facade{source: source, tree: tree, parser: parser, language: language}
}

// renameSymbolRewriter builds the query+filter half of RenameSymbol's
// pipeline, shared with RenameSymbolConfidence so both see identical matches.
func (f *Facade) renameSymbolRewriter(from string, kind SymbolKind) (*queryedit.Rewriter, error) {
	patterns, ok := symbolPatterns[f.language]
	if !ok {
		return nil, fmt.Errorf("refactor: no symbol patterns registered for language %q", f.language)
	}
	pattern, ok := patterns[kind]
	if !ok {
		return nil, fmt.Errorf("refactor: no pattern registered for symbol kind %v in language %q", kind, f.language)
	}

	r := queryedit.New(f.source, f.tree, f.parser)
	if _, err := r.Query(f.language, pattern); err != nil {
		return nil, err
	}
	r.Where(func(m morfxtree.Match) bool {
		for _, c := range m.CapturesByName("@name") {
			if c.Node.Text() == from {
				return true
			}
		}
		return false
	})
	return r, nil
}

// RenameSymbol renames every occurrence of from to to, for the given kind.
func (f *Facade) RenameSymbol(from, to string, kind SymbolKind) ([]byte, error) {
	r, err := f.renameSymbolRewriter(from, kind)
	if err != nil {
		return nil, err
	}
	r.Replace("@name", func(n morfxtree.Node) string {
		if n.Text() == from {
			return to
		}
		return n.Text()
	})
	return r.Rewrite()
}

// RenameSymbolConfidence is RenameSymbol's advisory twin: it reports how
// confident the rename would be without performing it, adding a factor for
// renaming a name the language provider considers exported on top of
// queryedit.Rewriter's generic target-count and destructive-op factors.
func (f *Facade) RenameSymbolConfidence(from string, kind SymbolKind) (queryedit.Confidence, error) {
	r, err := f.renameSymbolRewriter(from, kind)
	if err != nil {
		return queryedit.Confidence{}, err
	}
	conf, err := r.Confidence()
	if err != nil {
		return queryedit.Confidence{}, err
	}
	if spec, ok := providers.Resolve(f.language); ok && spec.IsExported(from) {
		conf.Score = clampConfidence(conf.Score - 0.2)
		conf.Factors = append(conf.Factors, queryedit.ConfidenceFactor{
			Name:   "exported_api",
			Impact: -0.2,
			Reason: "renaming an exported symbol",
		})
		conf.Level = confidenceLevel(conf.Score)
	}
	return conf, nil
}

// renameFieldPatterns maps a language to the set of field-binding query
// patterns rename_field searches across.
var renameFieldPatterns = map[string][]string{
	"go": {
		`(field_declaration name: (field_identifier) @name)`,
		`(selector_expression field: (field_identifier) @name)`,
	},
}

// RenameField renames every field declaration and field access matching
// from to to.
func (f *Facade) RenameField(from, to string) ([]byte, error) {
	patterns, ok := renameFieldPatterns[f.language]
	if !ok {
		return nil, fmt.Errorf("refactor: no field patterns registered for language %q", f.language)
	}

	out := f.source
	tree := f.tree
	for _, pattern := range patterns {
		r := queryedit.New(out, tree, f.parser)
		if _, err := r.Query(f.language, pattern); err != nil {
			return nil, err
		}
		r.Where(func(m morfxtree.Match) bool {
			c, ok := m.CaptureByName("@name")
			return ok && c.Node.Text() == from
		})
		r.Replace("@name", func(n morfxtree.Node) string { return to })

		result, err := r.RewriteWithTree(f.parser)
		if err != nil {
			return nil, err
		}
		out = result.Source
		tree = result.Tree
	}
	return out, nil
}

// AddAttribute inserts attribute + "\n" before every node captured as @item
// by pattern.
func (f *Facade) AddAttribute(pattern, attribute string) ([]byte, error) {
	r := queryedit.New(f.source, f.tree, f.parser)
	if _, err := r.Query(f.language, pattern); err != nil {
		return nil, err
	}
	r.InsertBefore("@item", attribute+"\n", nil)
	return r.Rewrite()
}

// removeMatchingRewriter builds the query half of RemoveMatching's pipeline,
// shared with RemoveMatchingConfidence.
func (f *Facade) removeMatchingRewriter(pattern, name string) (*queryedit.Rewriter, error) {
	r := queryedit.New(f.source, f.tree, f.parser)
	if _, err := r.Query(f.language, pattern); err != nil {
		return nil, err
	}
	r.Remove(name)
	return r, nil
}

// RemoveMatching removes every node captured by captureName (default
// "@item") in pattern's matches.
func (f *Facade) RemoveMatching(pattern string, captureName ...string) ([]byte, error) {
	name := "@item"
	if len(captureName) > 0 {
		name = captureName[0]
	}
	r, err := f.removeMatchingRewriter(pattern, name)
	if err != nil {
		return nil, err
	}
	return r.Rewrite()
}

// RemoveMatchingConfidence is RemoveMatching's advisory twin: it reports how
// confident the removal would be, adding a factor when the first match's
// name is one the language provider considers exported, on top of
// queryedit.Rewriter's generic target-count and destructive-op factors.
func (f *Facade) RemoveMatchingConfidence(pattern string, captureName ...string) (queryedit.Confidence, error) {
	name := "@item"
	if len(captureName) > 0 {
		name = captureName[0]
	}
	r, err := f.removeMatchingRewriter(pattern, name)
	if err != nil {
		return queryedit.Confidence{}, err
	}
	conf, err := r.Confidence()
	if err != nil {
		return queryedit.Confidence{}, err
	}

	spec, ok := providers.Resolve(f.language)
	if !ok {
		return conf, nil
	}
	matches, err := r.Matches()
	if err != nil || len(matches) == 0 {
		return conf, nil
	}
	cap, ok := matches[0].CaptureByName(name)
	if !ok {
		return conf, nil
	}
	if spec.IsExported(spec.ExtractNodeName(cap.Node)) {
		conf.Score = clampConfidence(conf.Score - 0.3)
		conf.Factors = append(conf.Factors, queryedit.ConfidenceFactor{
			Name:   "delete_exported_api",
			Impact: -0.3,
			Reason: "deleting exported API is dangerous",
		})
		conf.Level = confidenceLevel(conf.Score)
	}
	return conf, nil
}

// clampConfidence and confidenceLevel mirror queryedit.Rewriter.Confidence's
// own clamping/bucketing, reused here when a Facade-level factor adjusts a
// Confidence after queryedit has already computed it.
func clampConfidence(score float64) float64 {
	score = math.Round(score*1000) / 1000
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func confidenceLevel(score float64) string {
	switch {
	case score >= 0.8:
		return "high"
	case score >= 0.5:
		return "medium"
	default:
		return "low"
	}
}

// ExtractFunction replaces node with a call to name(parameters...) and
// inserts a new function definition two newlines after insertAfter's end.
// insertAfter must be a valid Span; the enclosing function of node is not
// looked up.
func (f *Facade) ExtractFunction(node morfxtree.Span, name string, parameters []string, insertAfter morfxtree.Span) []byte {
	call := name + "(" + strings.Join(parameters, ", ") + ")"
	body := string(f.source[node.StartByte():node.EndByte()])
	params := strings.Join(parameters, ", ")
	def := "func " + name + "(" + params + ") {\n" + body + "\n}"

	tr := transformer.New(f.source)
	tr.Extract(node, insertAfter, call, func(string) string { return def })
	return tr.Rewrite()
}

// inlineExcludedParents lists node kinds whose identifier children are not
// usages to inline — the declaration site itself, parameter binders, and
// the enclosing function signature.
var inlineExcludedParents = map[string]bool{
	"var_spec":              true,
	"parameter_declaration": true,
	"function_declaration":  true,
}

// InlineVariable finds name's declared value within scope (or the whole
// tree, if scope is nil) and substitutes it for every usage whose parent
// kind is not in the fixed declaration-ish exclusion set.
func (f *Facade) InlineVariable(name string, scope morfxtree.Node) ([]byte, error) {
	root := f.tree.RootNode()
	if !scope.IsNil() {
		root = scope
	}

	declQuery, err := morfxtree.NewQuery(f.language, `(var_spec name: (identifier) @name value: (_) @value)`)
	if err != nil {
		return nil, err
	}
	declMatches := declQuery.Matches(root, f.source)

	var value string
	found := false
	for _, m := range declMatches {
		c, ok := m.CaptureByName("@name")
		if !ok || c.Node.Text() != name {
			continue
		}
		v, ok := m.CaptureByName("@value")
		if !ok {
			continue
		}
		value = v.Node.Text()
		found = true
		break
	}
	if !found {
		return nil, fmt.Errorf("refactor: no declaration found for variable %q", name)
	}

	out := queryedit.New(f.source, f.tree, f.parser)
	if _, err := out.Query(f.language, `(identifier) @id`); err != nil {
		return nil, err
	}
	out.Where(func(m morfxtree.Match) bool {
		c, ok := m.CaptureByName("@id")
		if !ok || c.Node.Text() != name {
			return false
		}
		parent := c.Node.Parent()
		if parent.IsNil() {
			return true
		}
		return !inlineExcludedParents[parent.Kind()]
	})
	out.Replace("@id", func(n morfxtree.Node) string { return value })

	return out.Rewrite()
}
