package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mdsdtools/standalone/internal/config"
	"github.com/mdsdtools/standalone/internal/output"
	"github.com/mdsdtools/standalone/internal/registry"
)

type initOptions struct {
	scan      []string
	host      bool
	enclosing bool
}

// NewInitCmd creates the init command.
func NewInitCmd(g *GlobalConfig) *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Run standalone initialization",
		Long: `Run standalone initialization from the configuration file and print the
resulting registry.

Steps run in this order:
  1. discovery (when enabled) checks that configured paths exist
  2. projects listed in the config are registered
  3. projects enclosing the executable are registered (when enabled)
  4. scan directories are searched for .project and META-INF/MANIFEST.MF
  5. metamodels, then profiles, are registered with all their subpackages

The first failing step aborts the run.

Examples:
  # Initialize from ~/.standalone/config.yaml
  standalone init

  # Add a scan directory and print YAML
  standalone init --scan ~/workspace -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, g, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.scan, "scan", nil, "Additional directories to scan")
	cmd.Flags().BoolVar(&opts.host, "host", false, "Run as inside a host environment (env: STANDALONE_HOST)")
	cmd.Flags().BoolVar(&opts.enclosing, "enclosing", false, "Register the projects enclosing this executable")

	return cmd
}

func runInit(cmd *cobra.Command, g *GlobalConfig, opts initOptions) error {
	if g.ConfigErr != nil {
		return reportError(cmd, validationError(g.ConfigPath, g.ConfigErr))
	}

	cfg := *g.Config
	cfg.Scan = append(append([]string(nil), cfg.Scan...), opts.scan...)
	cfg.Host = cfg.Host || opts.host
	cfg.Enclosing = cfg.Enclosing || opts.enclosing

	validator, err := config.NewValidator()
	if err != nil {
		return reportError(cmd, err)
	}
	if err := validator.Validate(&cfg); err != nil {
		return reportError(cmd, validationError(g.ConfigPath, err))
	}

	depth, resolved := config.ResolveScanDepth(config.ResolveScanDepthOptions{
		FlagValue:   g.DepthFlag,
		ConfigValue: cfg.ScanDepth,
	})
	config.LogResolvedValues(resolved)
	cfg.ScanDepth = depth

	initializer := cfg.ToBuilder(config.BuilderOptions{
		Fs:         g.Fs,
		Discoverer: pathDiscoverer{fs: g.Fs, cfg: &cfg},
		LogWriter:  cmd.ErrOrStderr(),
		Verbose:    g.Verbose,
	}).Build()

	reg := registry.New()
	err = output.RunWithSpinner(cmd.Context(), "Initializing", func(ctx context.Context) error {
		return initializer.Init(ctx, reg)
	})
	if err != nil {
		return reportError(cmd, err)
	}

	output.Debug("initialization finished", "state", initializer.State(), "projects", reg.Len())
	return writeRegistry(cmd.OutOrStdout(), g.Output, reg)
}
