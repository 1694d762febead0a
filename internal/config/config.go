// Package config provides configuration loading and management.
package config

// ProjectConfig declares one project to register by name.
// Exactly one of Path and Executable must be set.
type ProjectConfig struct {
	// Name is the logical project name.
	Name string `json:"name"`

	// Path is the project directory, or an archive ending in .jar or .zip.
	Path string `json:"path,omitempty"`

	// Executable resolves the project from the running executable.
	Executable bool `json:"executable,omitempty"`

	// RootFolder is the path segment that marks the project root when
	// resolving from the executable. Defaults to Name.
	RootFolder string `json:"rootFolder,omitempty"`
}

// ModelConfig names a metamodel or profile inside a registered project.
type ModelConfig struct {
	Project string `json:"project"`
	Path    string `json:"path"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty"`
}

// Config represents the standalone initialization configuration.
// Loaded from ~/.standalone/config.yaml, validated against an embedded CUE schema.
type Config struct {
	// Host runs every step on its host-present path.
	// Env: STANDALONE_HOST
	Host bool `json:"host,omitempty"`

	// Discovery runs the discovery step before registration.
	// Env: STANDALONE_DISCOVERY
	Discovery bool `json:"discovery,omitempty"`

	// Enclosing registers the projects enclosing the running executable.
	Enclosing bool `json:"enclosing,omitempty"`

	// ScanDepth bounds how deep below a scan directory a project root may lie.
	// Env: STANDALONE_SCAN_DEPTH, Default: 3
	ScanDepth int `json:"scanDepth,omitempty"`

	// ScanOrder is "sorted" (default) or "walk".
	ScanOrder string `json:"scanOrder,omitempty"`

	// Projects are registered explicitly, in order.
	Projects []ProjectConfig `json:"projects,omitempty"`

	// Scan lists directories whose projects are registered.
	Scan []string `json:"scan,omitempty"`

	// MetaModels are registered after all projects.
	MetaModels []ModelConfig `json:"metamodels,omitempty"`

	// Profiles are registered after all metamodels.
	Profiles []ModelConfig `json:"profiles,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log,omitempty"`
}

// Default values.
const (
	DefaultScanDepth = 3
	ScanOrderSorted  = "sorted"
	ScanOrderWalk    = "walk"
)

// DefaultConfig returns a Config with all default values populated.
// Used by `standalone config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		ScanDepth: DefaultScanDepth,
		ScanOrder: ScanOrderSorted,
		Scan:      []string{"."},
	}
}
