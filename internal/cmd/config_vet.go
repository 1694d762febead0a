package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mdsdtools/standalone/internal/config"
	oerrors "github.com/mdsdtools/standalone/internal/errors"
	"github.com/mdsdtools/standalone/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(g *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the standalone configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. Config satisfies the embedded CUE schema and cross-field rules

The config path is resolved using precedence:
  --config flag > STANDALONE_CONFIG env > ~/.standalone/config.yaml

Examples:
  standalone config vet
  standalone config vet --config ./standalone.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigVet(cmd, g)
		},
	}
}

func runConfigVet(cmd *cobra.Command, g *GlobalConfig) error {
	path := g.ConfigPath

	exists, err := afero.Exists(g.Fs, path)
	if err != nil {
		return reportError(cmd, err)
	}
	if !exists {
		return reportError(cmd, oerrors.New(oerrors.ErrNotFound, "configuration file not found").
			WithLocation(path).
			WithHint("Run 'standalone config init' to create default configuration"))
	}
	if g.ConfigErr != nil {
		return reportError(cmd, validationError(path, g.ConfigErr))
	}

	validator, err := config.NewValidator()
	if err != nil {
		return reportError(cmd, err)
	}
	if err := validator.Validate(g.Config); err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), err.Error())
		return &oerrors.ExitError{
			Err:     oerrors.New(oerrors.ErrValidation, "configuration is invalid").WithLocation(path).WithCause(err),
			Code:    oerrors.ExitValidationError,
			Printed: true,
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+path))
	return nil
}
