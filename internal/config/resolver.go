package config

import (
	"os"
	"strconv"

	"github.com/mdsdtools/standalone/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue records the winning value of a setting and the values it shadowed.
type ResolvedValue struct {
	Key      string
	Value    string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) STANDALONE_CONFIG env, (3) ~/.standalone/config.yaml default
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolvedValue, error) {
	result := ResolvedValue{
		Key:      "config",
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(envPrefix + "_CONFIG")

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	switch {
	case opts.FlagValue != "":
		result.Value = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.Value = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.Value = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// ResolveScanDepthOptions contains options for scan depth resolution.
type ResolveScanDepthOptions struct {
	// FlagValue is the --depth flag value (zero if not set).
	FlagValue int
	// ConfigValue is the value loaded from config and env (zero if not set).
	ConfigValue int
}

// ResolveScanDepth resolves the scanner depth bound using precedence:
// (1) --depth flag, (2) config file or STANDALONE_SCAN_DEPTH env, (3) default
func ResolveScanDepth(opts ResolveScanDepthOptions) (int, ResolvedValue) {
	result := ResolvedValue{
		Key:      "scanDepth",
		Shadowed: make(map[ConfigSource]string),
	}

	depth := DefaultScanDepth
	switch {
	case opts.FlagValue > 0:
		depth = opts.FlagValue
		result.Source = SourceFlag
		if opts.ConfigValue > 0 {
			result.Shadowed[SourceConfig] = strconv.Itoa(opts.ConfigValue)
		}
	case opts.ConfigValue > 0:
		depth = opts.ConfigValue
		result.Source = SourceConfig
	default:
		result.Source = SourceDefault
	}
	result.Value = strconv.Itoa(depth)

	return depth, result
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
