package diff_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftfmt/pkg/diff"
)

func TestGenerateNoChanges(t *testing.T) {
	t.Parallel()

	d := diff.Generate("a.swift", []byte("same\n"), []byte("same\n"))
	assert.Nil(t, d)
	assert.False(t, d.HasChanges())

	assert.Nil(t, diff.Generate("a.swift", nil, nil))
}

func TestGenerateSimpleChange(t *testing.T) {
	t.Parallel()

	original := []byte("line1\nline2\nline3\n")
	modified := []byte("line1\nchanged\nline3\n")

	d := diff.Generate("a.swift", original, modified)
	require.True(t, d.HasChanges())
	assert.Equal(t, 1, d.Additions)
	assert.Equal(t, 1, d.Deletions)

	out := d.String()
	assert.Contains(t, out, "--- a/a.swift")
	assert.Contains(t, out, "+++ b/a.swift")
	assert.Contains(t, out, "-line2")
	assert.Contains(t, out, "+changed")
	assert.Contains(t, out, " line1")
}

func TestGenerateAdditionOnly(t *testing.T) {
	t.Parallel()

	d := diff.Generate("a.swift", []byte("a\n"), []byte("a\nb\n"))
	require.True(t, d.HasChanges())
	assert.Equal(t, 1, d.Additions)
	assert.Equal(t, 0, d.Deletions)
}

func TestHunkHeaders(t *testing.T) {
	t.Parallel()

	var orig, mod strings.Builder
	for i := 0; i < 20; i++ {
		line := strings.Repeat("x", i+1) + "\n"
		orig.WriteString(line)
		if i == 10 {
			mod.WriteString("replaced\n")
		} else {
			mod.WriteString(line)
		}
	}

	d := diff.Generate("a.swift", []byte(orig.String()), []byte(mod.String()))
	require.True(t, d.HasChanges())
	require.Len(t, d.Hunks, 1)

	h := d.Hunks[0]
	// three context lines either side of the single change
	assert.Equal(t, 8, h.OriginalStart)
	assert.Equal(t, 7, h.OriginalCount)
	assert.Equal(t, 8, h.ModifiedStart)
	assert.Equal(t, 7, h.ModifiedCount)
}

func TestDistantChangesSplitIntoHunks(t *testing.T) {
	t.Parallel()

	var orig, mod strings.Builder
	for i := 0; i < 40; i++ {
		line := strings.Repeat("y", i+1) + "\n"
		orig.WriteString(line)
		if i == 2 || i == 35 {
			mod.WriteString("edited\n")
		} else {
			mod.WriteString(line)
		}
	}

	d := diff.Generate("a.swift", []byte(orig.String()), []byte(mod.String()))
	require.True(t, d.HasChanges())
	assert.Len(t, d.Hunks, 2)
}
