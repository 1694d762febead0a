package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdsdtools/standalone/internal/output"
	"github.com/mdsdtools/standalone/internal/resolver"
)

// NewResolveCmd creates the resolve command.
func NewResolveCmd(g *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <code-path> <root-folder>",
		Short: "Compute the project root of a code location",
		Long: `Compute the physical project root of a code location.

code-path is a file path or file: URL of compiled code or of a packaged
archive. Archives (.jar, .zip) resolve to their own root. Otherwise the path
is cut right after the last segment named root-folder.

Examples:
  standalone resolve /ws/org.example.app/bin/org/example/App.class org.example.app
  standalone resolve file:///opt/libs/org.example.lib_1.0.jar org.example.lib`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := resolver.ResolveLocation(resolver.PathSource(args[0]), args[1])
			if err != nil {
				return reportError(cmd, err)
			}

			if g.Output != output.FormatTable {
				return output.WriteStructured(cmd.OutOrStdout(), g.Output, loc)
			}

			style := output.StyleNoun
			if loc.IsArchive() {
				style = output.StyleArchive
			}
			fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark(loc.Kind.String()+" "+style.Render(loc.URI())))
			return nil
		},
	}
}
