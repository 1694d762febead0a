package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdsdtools/standalone/internal/output"
	"github.com/mdsdtools/standalone/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(g *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show standalone CLI version information.

Displays:
  - CLI version, commit, and build date
  - CUE SDK version (embedded in CLI)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if g.Output != output.FormatTable {
				return output.WriteStructured(cmd.OutOrStdout(), g.Output, info)
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		},
	}
}
