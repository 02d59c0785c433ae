package morfxtree

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/morfx/morfxerr"
)

// Capture is a named reference to a node produced by a query pattern.
type Capture struct {
	Name string
	Node Node
}

// Match is one successful instantiation of a query pattern against a
// subtree, carrying all of its captures in pattern order.
type Match struct {
	PatternIndex int
	Captures     []Capture
}

// Query compiles a tree-sitter S-expression pattern for one language.
// Pattern syntax is exactly tree-sitter's (per spec §6); this package does
// not invent a DSL of its own.
type Query struct {
	q    *sitter.Query
	lang string
}

// queryCacheEntry holds a compiled query or the error compiling it produced,
// so a repeated (language, pattern) pair never re-runs sitter.NewQuery.
type queryCacheEntry struct {
	q   *Query
	err error
}

// Grounded on the teacher's internal/core.GetCached/cacheKey: a
// mutex-guarded map from a fingerprint to a cached compile result, populated
// lazily on first use and consulted before ever calling sitter.NewQuery.
var (
	queryCacheMu sync.RWMutex
	queryCache   = make(map[string]*queryCacheEntry)
)

func queryCacheKey(language, pattern string) string {
	return language + "\x00" + pattern
}

// NewQuery compiles pattern against the grammar registered under language,
// caching the result so repeated calls with the same (language, pattern)
// pair skip recompilation. Malformed patterns or unknown node kinds are
// surfaced unchanged from the underlying query engine, wrapped in
// morfxerr.ErrQuery.
func NewQuery(language, pattern string) (*Query, error) {
	key := queryCacheKey(language, pattern)

	queryCacheMu.RLock()
	if e, ok := queryCache[key]; ok {
		queryCacheMu.RUnlock()
		return e.q, e.err
	}
	queryCacheMu.RUnlock()

	q, err := compileQuery(language, pattern)

	queryCacheMu.Lock()
	queryCache[key] = &queryCacheEntry{q: q, err: err}
	queryCacheMu.Unlock()

	return q, err
}

func compileQuery(language, pattern string) (*Query, error) {
	l, ok := Resolve(language)
	if !ok {
		return nil, morfxerr.InvalidArgument("morfxtree: unregistered language " + language)
	}
	q, err := sitter.NewQuery([]byte(pattern), l)
	if err != nil {
		return nil, morfxerr.Query("invalid query pattern", err)
	}
	return &Query{q: q, lang: language}, nil
}

// CaptureNameForID resolves a numeric capture id to its pattern name.
func (q *Query) CaptureNameForID(id uint32) string {
	return q.q.CaptureNameForId(id)
}

// Matches runs the query against root (bound to source) and returns every
// match, with tree-sitter predicates (#eq?, #match?, etc.) already applied.
//
// Grounded on internal/matcher/tree.go's ASTMatcher.Find: construct a
// QueryCursor, exec, drain NextMatch, and run FilterPredicates per match
// before reading captures.
func (q *Query) Matches(root Node, source []byte) []Match {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q.q, root.Raw())

	var out []Match
	for {
		m, ok := cursor.NextMatch()
		if !ok {
			break
		}
		m = cursor.FilterPredicates(m, source)
		if len(m.Captures) == 0 {
			continue
		}
		caps := make([]Capture, len(m.Captures))
		for i, c := range m.Captures {
			caps[i] = Capture{
				Name: q.CaptureNameForID(c.Index),
				Node: WrapNode(c.Node, source),
			}
		}
		out = append(out, Match{PatternIndex: int(m.PatternIndex), Captures: caps})
	}
	return out
}

// CaptureByName returns the first capture in the match with the given name
// (with or without a leading '@'), and whether one was found.
func (m Match) CaptureByName(name string) (Capture, bool) {
	want := trimAt(name)
	for _, c := range m.Captures {
		if c.Name == want {
			return c, true
		}
	}
	return Capture{}, false
}

// CapturesByName returns every capture in the match with the given name.
func (m Match) CapturesByName(name string) []Capture {
	want := trimAt(name)
	var out []Capture
	for _, c := range m.Captures {
		if c.Name == want {
			out = append(out, c)
		}
	}
	return out
}

func trimAt(name string) string {
	if len(name) > 0 && name[0] == '@' {
		return name[1:]
	}
	return name
}
