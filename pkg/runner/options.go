// Package runner provides multi-file formatting orchestration: discovery,
// a worker pool, and the per-file safety pipeline.
package runner

import "github.com/yaklabco/swiftfmt/pkg/config"

// Options controls a formatting run.
type Options struct {
	// Paths are the user-specified files or directories to format.
	// Empty defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading
	// dot) considered source files. Defaults to [".swift"].
	Extensions []string

	// ExcludeGlobs are glob patterns for files or directories to skip,
	// matched against paths relative to WorkingDir.
	ExcludeGlobs []string

	// Jobs caps concurrent workers; 0 or negative means one per CPU.
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the default source file extensions.
func DefaultExtensions() []string {
	return []string{".swift"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
