package cli

import "github.com/yaklabco/swiftfmt/pkg/runner"

// Exit codes for swiftfmt.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitChangesPending indicates dry-run found files needing formatting.
	ExitChangesPending = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code for a run. In dry-run mode
// pending changes fail the run, so CI can gate on formatting.
func ExitCodeFromResult(result *runner.Result, dryRun bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasErrors() {
		return ExitIOError
	}
	if dryRun && result.HasChanges() {
		return ExitChangesPending
	}
	return ExitSuccess
}
