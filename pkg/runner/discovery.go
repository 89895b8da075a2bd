package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover finds source files matching opts. It returns a deterministically
// sorted list of absolute paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	extensions := opts.effectiveExtensions()
	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			// explicitly named files bypass the extension filter but
			// not the excludes
			if !excluded(absPath, workDir, opts.ExcludeGlobs) {
				add(absPath)
			}
			continue
		}

		err = filepath.WalkDir(absPath, func(path string, entry fs.DirEntry, walkErr error) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if walkErr != nil {
				if os.IsPermission(walkErr) {
					return nil
				}
				return walkErr
			}
			if entry.IsDir() {
				if strings.HasPrefix(entry.Name(), ".") && path != absPath {
					return fs.SkipDir
				}
				if excluded(path, workDir, opts.ExcludeGlobs) {
					return fs.SkipDir
				}
				return nil
			}
			if !hasExtension(path, extensions) || excluded(path, workDir, opts.ExcludeGlobs) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", inputPath, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// excluded matches a path against the exclude globs, both as given and
// against every path suffix, so "Generated/*" excludes nested directories.
func excluded(path, workDir string, globs []string) bool {
	if len(globs) == 0 {
		return false
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, glob := range globs {
		if ok, _ := filepath.Match(glob, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(glob, filepath.Base(path)); ok {
			return true
		}
		parts := strings.Split(rel, "/")
		for i := range parts {
			if ok, _ := filepath.Match(glob, strings.Join(parts[i:], "/")); ok {
				return true
			}
		}
	}
	return false
}
