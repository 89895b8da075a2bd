package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftfmt/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("returns content and info", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "a.swift")
		require.NoError(t, os.WriteFile(path, []byte("let x = 1\n"), 0644))

		content, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "let x = 1\n", string(content))
		assert.Equal(t, int64(10), info.Size)
		assert.Equal(t, path, info.Path)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})
}

func TestModified(t *testing.T) {
	t.Parallel()

	t.Run("unchanged file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "a.swift")
		require.NoError(t, os.WriteFile(path, []byte("let x = 1\n"), 0644))

		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		modified, err := info.Modified(context.Background())
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("rewritten file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "a.swift")
		require.NoError(t, os.WriteFile(path, []byte("let x = 1\n"), 0644))

		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("let y = 2\n"), 0644))
		// same-length rewrite with a forced mtime is caught by the hash
		require.NoError(t, os.Chtimes(path, info.ModTime, info.ModTime))

		modified, err := info.Modified(context.Background())
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("deleted file counts as modified", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "a.swift")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		modified, err := info.Modified(context.Background())
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("nil snapshot", func(t *testing.T) {
		t.Parallel()

		var info *fsutil.FileInfo
		_, err := info.Modified(context.Background())
		assert.Error(t, err)
	})
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.swift")
		err := fsutil.WriteAtomic(context.Background(), path, []byte("done\n"), 0644)
		require.NoError(t, err)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "done\n", string(got))
	})

	t.Run("preserves mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.swift")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0600))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), stat.Mode().Perm())
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.swift")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.swift")
	require.NoError(t, os.WriteFile(path, []byte("same\n"), 0644))

	written, err := fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("same\n"), 0644)
	require.NoError(t, err)
	assert.False(t, written)

	before, err := os.Stat(path)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	written, err = fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("different\n"), 0644)
	require.NoError(t, err)
	assert.True(t, written)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotEqual(t, before.Size(), after.Size())
}
