package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/swiftfmt/internal/configloader"
	"github.com/yaklabco/swiftfmt/internal/logging"
	"github.com/yaklabco/swiftfmt/pkg/config"
	"github.com/yaklabco/swiftfmt/pkg/fsutil"
)

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + configloader.ConfigFileName + " to the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configloader.ConfigFileName
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			ctx := cmd.Context()
			err := fsutil.WriteAtomic(ctx, path, []byte(config.DefaultTemplate), 0)
			if err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			logging.Default().Info("wrote config", logging.FieldPath, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
