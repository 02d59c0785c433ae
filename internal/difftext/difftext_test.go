package difftext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnified_NoChanges(t *testing.T) {
	out := Unified("a\nb\n", "a\nb\n", "file.go", 2)
	require.Equal(t, "(no changes)\n", out)
}

func TestUnified_ShowsAddedAndRemovedLines(t *testing.T) {
	out := Unified("a\nb\nc\n", "a\nx\nc\n", "file.go", 1)
	require.Contains(t, out, "-b")
	require.Contains(t, out, "+x")
	require.Contains(t, out, "file.go")
}
