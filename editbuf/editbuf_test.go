package editbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer_Identity(t *testing.T) {
	src := []byte("package main\n\nfunc main() {}\n")
	b := New(src)
	require.Equal(t, src, b.Apply())
}

func TestBuffer_SingleReplace(t *testing.T) {
	b := New([]byte("hello world"))
	b.Add(6, 11, []byte("Go"))
	require.Equal(t, "hello Go", string(b.Apply()))
}

func TestBuffer_NonOverlappingComposition(t *testing.T) {
	src := []byte("aaa bbb ccc")
	b := New(src)
	b.Add(0, 3, []byte("X"))
	b.Add(8, 11, []byte("YYYY"))
	out := b.Apply()
	require.Len(t, out, len(src)+(1-3)+(4-3))
}

func TestBuffer_DescendingOrderIndependentOfInsertionOrder(t *testing.T) {
	src := []byte("0123456789")

	b1 := New(src)
	b1.Add(2, 4, []byte("AA"))
	b1.Add(6, 8, []byte("BB"))

	b2 := New(src)
	b2.Add(6, 8, []byte("BB"))
	b2.Add(2, 4, []byte("AA"))

	require.Equal(t, string(b1.Apply()), string(b2.Apply()))
}

func TestBuffer_AdjacentInsertionsAtSameOffset_LaterInsertLandsLeftmost(t *testing.T) {
	// Each pure insertion at a shared offset splices into the position the
	// previous one left behind, so the later-added insert ends up closest to
	// the original text and the first-added ends up rightmost of the group.
	b := New([]byte("f()"))
	b.Add(1, 1, []byte("/*"))
	b.Add(1, 1, []byte("!!!"))
	require.Equal(t, "f!!!/*()", string(b.Apply()))
}

func TestBuffer_InsertAtZeroLengthSource(t *testing.T) {
	b := New([]byte(""))
	b.Add(0, 0, []byte("x"))
	require.Equal(t, "x", string(b.Apply()))
}

func TestBuffer_AppendAtEndOfSource(t *testing.T) {
	b := New([]byte("abc"))
	b.Add(3, 3, []byte("def"))
	require.Equal(t, "abcdef", string(b.Apply()))
}

func TestBuffer_EditsReturnsSnapshot(t *testing.T) {
	b := New([]byte("abc"))
	b.Add(0, 1, []byte("X"))
	edits := b.Edits()
	require.Len(t, edits, 1)
	edits[0].Start = 99
	require.Equal(t, 0, b.edits[0].Start)
}
