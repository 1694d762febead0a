// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mdsdtools/standalone/internal/config"
	"github.com/mdsdtools/standalone/internal/output"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is passed explicitly into every sub-command constructor.
type GlobalConfig struct {
	// Config is the loaded configuration. Never nil after PersistentPreRunE.
	Config *config.Config

	// ConfigErr is the error from loading Config, reported by the commands
	// that need it.
	ConfigErr error

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// Output is the resolved output format.
	Output output.OutputFormat

	// Verbose enables debug logging.
	Verbose bool

	// DepthFlag is the raw --depth flag value (zero if not set).
	DepthFlag int

	// Fs is the filesystem commands read and write.
	Fs afero.Fs
}

type rootFlags struct {
	config     string
	output     string
	verbose    bool
	timestamps bool
	depth      int
}

// NewRootCmd creates the root command for the standalone CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&GlobalConfig{Fs: afero.NewOsFs()})
}

func newRootCmd(g *GlobalConfig) *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "standalone",
		Short: "Standalone project and metamodel registration",
		Long: `standalone registers model-driven projects and their metamodels outside of a
host environment: it resolves where code is installed, scans directories for
project descriptors and bundle manifests, and registers metamodel package trees.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd, g, flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: STANDALONE_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&flags.output, "output", "o", "table", "Output format: table, yaml, json")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")
	rootCmd.PersistentFlags().IntVar(&flags.depth, "depth", 0, "Scan depth below each directory (env: STANDALONE_SCAN_DEPTH)")

	rootCmd.AddCommand(NewInitCmd(g))
	rootCmd.AddCommand(NewScanCmd(g))
	rootCmd.AddCommand(NewResolveCmd(g))
	rootCmd.AddCommand(NewConfigCmd(g))
	rootCmd.AddCommand(NewVersionCmd(g))

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command, g *GlobalConfig, flags rootFlags) error {
	if g.Fs == nil {
		g.Fs = afero.NewOsFs()
	}
	g.Verbose = flags.verbose
	g.DepthFlag = flags.depth
	g.Output = output.ParseOutputFormat(flags.output)

	configPath, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{FlagValue: flags.config})
	if err != nil {
		return err
	}
	g.ConfigPath = configPath.Value

	cfg, err := config.NewLoader().SetFs(g.Fs).Load(g.ConfigPath)
	if err != nil {
		// Commands that need the config report this.
		g.ConfigErr = err
		cfg = config.DefaultConfig()
	}
	g.Config = cfg

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{
		Verbose: flags.verbose,
		Writer:  cmd.ErrOrStderr(),
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	output.Debug("initializing CLI", "config", g.ConfigPath, "output", g.Output)
	config.LogResolvedValues(configPath)
	if g.ConfigErr != nil {
		output.Debug("config load error", "error", g.ConfigErr)
	}

	return nil
}
