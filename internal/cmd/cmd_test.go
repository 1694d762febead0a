package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/mdsdtools/standalone/internal/errors"
	"github.com/mdsdtools/standalone/internal/output"
	"github.com/mdsdtools/standalone/internal/testutil"
)

const configPath = "/etc/standalone/config.yaml"

// execute runs the root command against fs and returns stdout and stderr.
func execute(t *testing.T, fs afero.Fs, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { output.SetupLogging(output.LogConfig{}) })

	root := newRootCmd(&GlobalConfig{Fs: fs})

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", configPath}, args...))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
	assert.True(t, exitErr.Printed)
	return exitErr.Code
}

// workspace lays out two plugins, one with a metamodel, and a library jar.
func workspace(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	testutil.WriteProject(t, fs, "/ws/plugins/org.example.shop", "org.example.shop")
	testutil.WriteFile(t, fs, "/ws/plugins/org.example.shop/model/shop.yaml", `
name: shop
nsURI: http://example.org/shop
subpackages:
  - name: orders
    nsURI: http://example.org/shop/orders
`)
	testutil.WriteManifest(t, fs, "/ws/plugins/org.example.edit", "org.example.edit;singleton:=true")
	testutil.WriteZip(t, fs, "/opt/libs/org.example.types.jar", map[string]string{
		"META-INF/MANIFEST.MF": testutil.BundleManifest("org.example.types"),
	})
	return fs
}

type jsonReport struct {
	Projects []struct {
		Name     string `json:"name"`
		Location struct {
			Kind string `json:"kind"`
			Path string `json:"path"`
		} `json:"location"`
	} `json:"projects"`
	Packages []struct {
		NsURI string `json:"nsURI"`
	} `json:"packages"`
}

func TestInit_FromConfig(t *testing.T) {
	fs := workspace(t)
	testutil.WriteFile(t, fs, configPath, `
discovery: true
projects:
  - name: org.example.types
    path: /opt/libs/org.example.types.jar
scan:
  - /ws
metamodels:
  - project: org.example.shop
    path: model/shop.yaml
`)

	stdout, _, err := execute(t, fs, "init", "-o", "json")
	require.NoError(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	require.Len(t, report.Projects, 3)
	assert.Equal(t, "org.example.edit", report.Projects[0].Name)
	assert.Equal(t, "org.example.shop", report.Projects[1].Name)
	assert.Equal(t, "org.example.types", report.Projects[2].Name)
	assert.Equal(t, "archive", report.Projects[2].Location.Kind)
	assert.Equal(t, "directory", report.Projects[1].Location.Kind)

	require.Len(t, report.Packages, 2)
	assert.Equal(t, "http://example.org/shop", report.Packages[0].NsURI)
	assert.Equal(t, "http://example.org/shop/orders", report.Packages[1].NsURI)
}

func TestInit_TableOutput(t *testing.T) {
	fs := workspace(t)
	testutil.WriteFile(t, fs, configPath, "scan: [/ws]\n")

	stdout, _, err := execute(t, fs, "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "org.example.shop")
	assert.Contains(t, stdout, "org.example.edit")
	assert.Contains(t, stdout, "2 projects, 0 packages registered")
}

func TestInit_ScanFlagAddsDirectories(t *testing.T) {
	fs := workspace(t)

	stdout, _, err := execute(t, fs, "init", "--scan", "/ws", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "org.example.shop")
}

func TestInit_StepFailure(t *testing.T) {
	fs := workspace(t)
	testutil.WriteFile(t, fs, configPath, `
scan:
  - /ws
metamodels:
  - project: org.example.missing
    path: model/missing.yaml
`)

	_, stderr, err := execute(t, fs, "init")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitLoadError, exitCode(t, err))
	assert.ErrorIs(t, err, oerrors.ErrLoadFailure)
	assert.Contains(t, stderr, "initialization failed at")
	assert.Contains(t, stderr, "platform:/plugin/org.example.missing/model/missing.yaml")
}

func TestInit_InvalidConfig(t *testing.T) {
	fs := workspace(t)
	testutil.WriteFile(t, fs, configPath, "scanOrder: shuffled\n")

	_, _, err := execute(t, fs, "init")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
}

func TestInit_DiscoveryReportsMissingPath(t *testing.T) {
	fs := workspace(t)
	testutil.WriteFile(t, fs, configPath, "discovery: true\nscan: [/ws, /missing]\n")

	_, stderr, err := execute(t, fs, "init")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))
	assert.Contains(t, stderr, "/missing")
}

func TestInit_HostMode(t *testing.T) {
	fs := workspace(t)
	testutil.WriteFile(t, fs, configPath, "scan: [/ws]\n")

	stdout, _, err := execute(t, fs, "init", "--host")
	require.NoError(t, err)
	assert.Contains(t, stdout, "0 projects, 0 packages registered")
}

func TestScan(t *testing.T) {
	fs := workspace(t)

	stdout, _, err := execute(t, fs, "scan", "/ws", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "name: org.example.edit")
	assert.Contains(t, stdout, "kind: directory")
	assert.Contains(t, stdout, "path: /ws/plugins/org.example.shop")
}

func TestScan_DepthFlag(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteProject(t, fs, "/ws/a/b/c/d/deep", "deep")

	_, _, err := execute(t, fs, "scan", "/ws")
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrNoProjectsFound)
	assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))

	stdout, _, err := execute(t, fs, "scan", "/ws", "--depth", "5")
	require.NoError(t, err)
	assert.Contains(t, stdout, "deep")
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		contains string
	}{
		{
			name:     "directory",
			args:     []string{"/ws/org.example.app/bin/org/example/App.class", "org.example.app"},
			contains: "file:///ws/org.example.app/",
		},
		{
			name:     "archive",
			args:     []string{"file:///opt/libs/org.example.lib_1.0.jar", "org.example.lib"},
			contains: "archive:file:///opt/libs/org.example.lib_1.0.jar!/",
		},
		{
			name:     "root folder missing",
			args:     []string{"/ws/org.example.app/bin/App.class", "nonexistent"},
			wantCode: oerrors.ExitNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, afero.NewMemMapFs(), append([]string{"resolve"}, tt.args...)...)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, exitCode(t, err))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, stdout, tt.contains)
		})
	}
}

func TestConfigInitAndVet(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, _, err := execute(t, fs, "config", "vet")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))

	stdout, _, err := execute(t, fs, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration initialized")

	data, err := afero.ReadFile(fs, configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scanDepth: 3")

	_, _, err = execute(t, fs, "config", "init")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))

	_, _, err = execute(t, fs, "config", "init", "--force")
	require.NoError(t, err)

	stdout, _, err = execute(t, fs, "config", "vet")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration is valid")
}

func TestConfigVet_Invalid(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteFile(t, fs, configPath, "projects:\n  - name: a\n")

	_, stderr, err := execute(t, fs, "config", "vet")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
	assert.Contains(t, stderr, "one of path or executable is required")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, afero.NewMemMapFs(), "version", "-o", "json")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.NotEmpty(t, info["version"])
	assert.NotEmpty(t, info["cueSDKVersion"])
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "standalone", root.Use)
	for _, name := range []string{"init", "scan", "resolve", "config", "version"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("depth"))
}
