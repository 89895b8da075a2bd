// Package main is the entry point for the swiftfmt CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/swiftfmt/internal/cli"
	"github.com/yaklabco/swiftfmt/internal/logging"
)

// Build-time variables set via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// ErrChangesPending is just a signal for the exit code.
		if !errors.Is(err, cli.ErrChangesPending) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return 1
	}

	return 0
}
