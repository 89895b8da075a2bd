// Package fsutil provides the file-system safety primitives swiftfmt uses
// when rewriting source files in place: atomic replacement and detection
// of concurrent edits.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// FileInfo is a snapshot of a file taken when it was read. Comparing a
// snapshot against the file later tells whether something else wrote to it
// in between.
type FileInfo struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64

	digest [32]byte
}

// ReadFile reads a file and snapshots its state for later comparison.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classifyPathError(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classifyPathError(path, err)
	}

	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		digest:  sha256.Sum256(content),
	}, nil
}

// classifyPathError maps os errors onto the package sentinels.
func classifyPathError(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	default:
		return fmt.Errorf("%s: %w", path, err)
	}
}

// Modified reports whether the file on disk no longer matches this
// snapshot. A metadata difference settles it immediately; a metadata match
// still re-hashes the content, because a rewrite can land on the same size
// and timestamp. A missing file counts as modified.
func (fi *FileInfo) Modified(ctx context.Context) (bool, error) {
	if fi == nil {
		return false, errors.New("no file snapshot")
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("recheck %s: %w", fi.Path, err)
	}

	stat, err := os.Stat(fi.Path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("recheck %s: %w", fi.Path, err)
	}
	if stat.Size() != fi.Size || !stat.ModTime().Equal(fi.ModTime) {
		return true, nil
	}

	content, err := os.ReadFile(fi.Path)
	if err != nil {
		return false, fmt.Errorf("recheck %s: %w", fi.Path, err)
	}
	return sha256.Sum256(content) != fi.digest, nil
}
