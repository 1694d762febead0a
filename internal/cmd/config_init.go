package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/mdsdtools/standalone/internal/config"
	oerrors "github.com/mdsdtools/standalone/internal/errors"
	"github.com/mdsdtools/standalone/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(g *GlobalConfig) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Write a default configuration file to the resolved config path
(~/.standalone/config.yaml unless --config or STANDALONE_CONFIG is set).

Examples:
  # Initialize configuration
  standalone config init

  # Overwrite existing configuration
  standalone config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, g, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, g *GlobalConfig, force bool) error {
	path := g.ConfigPath

	exists, err := afero.Exists(g.Fs, path)
	if err != nil {
		return reportError(cmd, err)
	}
	if exists && !force {
		return reportError(cmd, oerrors.New(oerrors.ErrValidation, "configuration already exists").
			WithLocation(path).
			WithHint("Use --force to overwrite existing configuration."))
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return reportError(cmd, fmt.Errorf("encoding default config: %w", err))
	}

	if err := g.Fs.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return reportError(cmd, fmt.Errorf("creating config directory: %w", err))
	}
	if err := afero.WriteFile(g.Fs, path, data, 0o600); err != nil {
		return reportError(cmd, fmt.Errorf("writing config: %w", err))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, output.FormatCheckmark("Configuration initialized at "+output.StyleNoun.Render(path)))
	fmt.Fprintln(out, "Validate with: standalone config vet")
	return nil
}
