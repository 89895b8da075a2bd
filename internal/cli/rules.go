package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/swiftfmt/internal/ui/pretty"
	"github.com/yaklabco/swiftfmt/pkg/format"
)

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the formatting rules in pipeline order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			color, _ := cmd.Flags().GetString("color")
			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))

			width := 0
			for _, rule := range format.DefaultRegistry.Rules() {
				if len(rule.Name) > width {
					width = len(rule.Name)
				}
			}
			for _, rule := range format.DefaultRegistry.Rules() {
				fmt.Fprintf(out, "%-*s  %s\n",
					width, styles.Bold.Render(rule.Name),
					styles.Dim.Render(rule.Description))
			}
			return nil
		},
	}
}
