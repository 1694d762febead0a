package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mdsdtools/standalone/internal/config"
	"github.com/mdsdtools/standalone/internal/core"
	"github.com/mdsdtools/standalone/internal/output"
	"github.com/mdsdtools/standalone/internal/scanner"
)

// NewScanCmd creates the scan command.
func NewScanCmd(g *GlobalConfig) *cobra.Command {
	var walkOrder bool

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "List the projects found below a directory",
		Long: `List the projects found below a directory without registering them.

A project is a directory holding a .project descriptor or a
META-INF/MANIFEST.MF bundle manifest. When a descriptor and a manifest
declare the same name, the manifest wins.

Examples:
  standalone scan ~/workspace
  standalone scan ~/workspace --depth 5 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			depth, resolved := config.ResolveScanDepth(config.ResolveScanDepthOptions{
				FlagValue:   g.DepthFlag,
				ConfigValue: g.Config.ScanDepth,
			})
			config.LogResolvedValues(resolved)

			opts := scanner.Options{MaxDepth: depth}
			if walkOrder || g.Config.ScanOrder == config.ScanOrderWalk {
				opts.Order = scanner.OrderWalk
			}
			s := scanner.New(g.Fs, opts)

			dir := config.ExpandTilde(args[0])
			var projects map[string]core.Location
			err := output.RunWithSpinner(cmd.Context(), "Scanning "+dir, func(ctx context.Context) error {
				var scanErr error
				projects, scanErr = s.Scan(ctx, dir)
				return scanErr
			})
			if err != nil {
				return reportError(cmd, err)
			}

			return writeProjects(cmd.OutOrStdout(), g.Output, projects)
		},
	}

	cmd.Flags().BoolVar(&walkOrder, "walk-order", false, "Fold artifacts in walk order instead of sorted order")

	return cmd
}
