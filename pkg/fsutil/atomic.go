package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for newly created files.
const DefaultFileMode os.FileMode = 0644

// WriteAtomic replaces the file at path in one step: the content is staged
// in a temporary sibling, and only a successful rename makes it visible.
// A crash mid-write leaves the original untouched. If mode is 0,
// DefaultFileMode is used.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	staged, err := stageContent(path, content)
	if err != nil {
		return err
	}
	if err := os.Chmod(staged, mode); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("set mode on %s: %w", path, err)
	}
	if err := os.Rename(staged, path); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// stageContent durably writes content to a temporary file in the same
// directory as path, so the final rename never crosses a filesystem
// boundary. On failure nothing is left behind.
func stageContent(path string, content []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".swiftfmt*")
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", path, err)
	}
	name := f.Name()

	_, err = f.Write(content)
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("stage %s: %w", path, err)
	}
	return name, nil
}

// WriteAtomicIfChanged writes only when content differs from what is on
// disk, reporting whether a write happened.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	current, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return false, fmt.Errorf("compare %s: %w", path, err)
	case bytes.Equal(current, content):
		return false, nil
	}
	return true, WriteAtomic(ctx, path, content, mode)
}
