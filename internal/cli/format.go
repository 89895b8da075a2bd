package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/swiftfmt/internal/configloader"
	"github.com/yaklabco/swiftfmt/internal/logging"
	"github.com/yaklabco/swiftfmt/internal/ui/pretty"
	"github.com/yaklabco/swiftfmt/pkg/config"
	"github.com/yaklabco/swiftfmt/pkg/format"
	"github.com/yaklabco/swiftfmt/pkg/runner"
)

// ErrChangesPending signals that dry-run found unformatted files.
var ErrChangesPending = errors.New("changes pending")

type formatFlags struct {
	dryRun   bool
	stdin    bool
	fragment bool
	rules    []string
	ignore   []string
	indent   string
	allman   bool
	jobs     int
}

func newFormatCommand() *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Format source files in place",
		Long: `Format source files in place.

By default, formats all .swift files in the current directory and its
subdirectories. Specify paths to format specific files or directories.

Examples:
  swiftfmt format                  # Format current directory
  swiftfmt format Sources/         # Format a directory
  swiftfmt format main.swift       # Format a single file
  swiftfmt format --dry-run        # Show diffs without writing
  swiftfmt format --rules indent   # Run a rule subset
  swiftfmt format --stdin          # Filter stdin to stdout`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show diffs without writing files")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "read source from stdin, write to stdout")
	cmd.Flags().BoolVar(&flags.fragment, "fragment", false, "treat input as a code fragment")
	cmd.Flags().StringSliceVar(&flags.rules, "rules", nil, "run only the named rules")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().StringVar(&flags.indent, "indent", "", `indent unit: a space count or "tab"`)
	cmd.Flags().BoolVar(&flags.allman, "allman", false, "opening braces on their own line")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "parallel workers (0 = one per CPU)")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string, flags *formatFlags) error {
	logger := logging.Default()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyFormatFlags(cmd, cfg, flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	if flags.stdin {
		return formatStdin(cmd.InOrStdin(), cmd.OutOrStdout(), cfg)
	}

	logger.Debug("starting format run",
		logging.FieldPaths, args,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs)

	result, err := runner.New().Run(ctx, runner.Options{
		Paths:        args,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	})
	if err != nil {
		return err
	}

	color, _ := cmd.Flags().GetString("color")
	pretty.NewReporter(color, cmd.OutOrStdout()).Report(result)

	logger.Debug("format run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesFormatted, result.Stats.FilesChanged,
		logging.FieldFilesErrored, result.Stats.FilesErrored)

	switch ExitCodeFromResult(result, cfg.DryRun) {
	case ExitChangesPending:
		return ErrChangesPending
	case ExitIOError:
		return fmt.Errorf("%d files failed", result.Stats.FilesErrored)
	default:
		return nil
	}
}

// loadConfig resolves the configuration from the --config flag or upward
// discovery.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	loaded, err := configloader.Load(configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return nil, err
	}
	return loaded.Config, nil
}

// applyFormatFlags layers explicitly set CLI flags over the file config.
func applyFormatFlags(cmd *cobra.Command, cfg *config.Config, flags *formatFlags) {
	cfg.DryRun = flags.dryRun
	cfg.Fragment = flags.fragment
	cfg.Jobs = flags.jobs
	if len(flags.rules) > 0 {
		cfg.Rules = flags.rules
	}
	if len(flags.ignore) > 0 {
		cfg.Ignore = append(cfg.Ignore, flags.ignore...)
	}
	if cmd.Flags().Changed("indent") {
		cfg.Indent = flags.indent
	}
	if cmd.Flags().Changed("allman") {
		cfg.AllmanBraces = flags.allman
	}
}

// formatStdin runs the formatter as a filter.
func formatStdin(in io.Reader, out io.Writer, cfg *config.Config) error {
	src, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	options, err := cfg.FormatOptions()
	if err != nil {
		return err
	}
	formatted, err := format.Source(string(src), cfg.RuleNames(), options)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(out, formatted); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}
