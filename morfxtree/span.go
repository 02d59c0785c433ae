package morfxtree

// Range is a half-open byte interval [Start, End) not backed by any node —
// used where a caller wants to target an arbitrary position (most commonly
// a pure insertion point with Start == End) rather than a parsed node.
type Range struct {
	Start int
	End   int
}

// Span is satisfied by anything with a byte range: Node and Range. Builder
// methods across rewriter, transformer, inserter and queryedit accept a
// Span so the same API works whether the caller has a parsed node or a bare
// byte range; anything else is a caller error (morfxerr.ErrInvalidArgument).
type Span interface {
	StartByte() int
	EndByte() int
}

// StartByte implements Span for Range.
func (r Range) StartByte() int { return r.Start }

// EndByte implements Span for Range.
func (r Range) EndByte() int { return r.End }

// Text returns source[Start:End) for a Range against the given source.
func (r Range) Text(source []byte) string { return string(source[r.Start:r.End]) }
