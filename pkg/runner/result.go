package runner

import "github.com/yaklabco/swiftfmt/pkg/diff"

// FileResult is the outcome of formatting one file.
type FileResult struct {
	// Path is the file that was processed.
	Path string

	// Changed is true when formatting altered the content.
	Changed bool

	// Written is true when the file was rewritten on disk.
	Written bool

	// Skipped is true when the file was left alone; SkipReason says why.
	Skipped    bool
	SkipReason string

	// Diff holds the pending changes in dry-run mode.
	Diff *diff.Diff

	// Error is set when the file could not be processed.
	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesChanged    int
	FilesWritten    int
	FilesSkipped    int
	FilesErrored    int
}

// Result is the overall outcome of a run, with files in deterministic
// path order.
type Result struct {
	Files []FileResult
	Stats Stats
}

func (r *Result) accumulate(fr FileResult) {
	r.Files = append(r.Files, fr)
	switch {
	case fr.Error != nil:
		r.Stats.FilesErrored++
	case fr.Skipped:
		r.Stats.FilesSkipped++
	default:
		r.Stats.FilesProcessed++
		if fr.Changed {
			r.Stats.FilesChanged++
		}
		if fr.Written {
			r.Stats.FilesWritten++
		}
	}
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasChanges reports whether any file needed formatting.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}
