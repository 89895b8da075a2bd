// Package cli provides the Cobra command structure for swiftfmt.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/swiftfmt/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root swiftfmt command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "swiftfmt",
		Short: "A fast, configurable source-code formatter",
		Long: `swiftfmt reformats source files so whitespace, line breaks,
indentation, and a handful of normalizable constructs (redundant
parentheses, specifier order, semicolons, trailing commas) conform to a
configurable style. Formatting never changes what a program means.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newFormatCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
