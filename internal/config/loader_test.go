package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		content := `
host: false
discovery: true
scanDepth: 5
scanOrder: walk
projects:
  - name: org.example.app
    executable: true
    rootFolder: app
  - name: org.example.lib
    path: /opt/libs/org.example.lib.jar
scan:
  - ~/workspace
metamodels:
  - project: org.example.lib
    path: model/library.ecore
profiles:
  - project: org.example.lib
    path: model/library.profile.yaml
log:
  timestamps: false
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		cfg, err := NewLoader().Load(configFile)
		require.NoError(t, err)

		assert.True(t, cfg.Discovery)
		assert.Equal(t, 5, cfg.ScanDepth)
		assert.Equal(t, ScanOrderWalk, cfg.ScanOrder)
		require.Len(t, cfg.Projects, 2)
		assert.Equal(t, ProjectConfig{Name: "org.example.app", Executable: true, RootFolder: "app"}, cfg.Projects[0])
		assert.Equal(t, "/opt/libs/org.example.lib.jar", cfg.Projects[1].Path)
		assert.Equal(t, []string{"~/workspace"}, cfg.Scan)
		assert.Equal(t, []ModelConfig{{Project: "org.example.lib", Path: "model/library.ecore"}}, cfg.MetaModels)
		assert.Len(t, cfg.Profiles, 1)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
	})

	t.Run("returns defaults for missing file", func(t *testing.T) {
		cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))

		require.NoError(t, err)
		assert.Equal(t, DefaultScanDepth, cfg.ScanDepth)
		assert.Equal(t, ScanOrderSorted, cfg.ScanOrder)
		assert.Empty(t, cfg.Projects)
	})

	t.Run("loads from environment variables", func(t *testing.T) {
		t.Setenv("STANDALONE_HOST", "true")
		t.Setenv("STANDALONE_SCAN_DEPTH", "7")

		configFile := filepath.Join(t.TempDir(), "empty.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte(""), 0o644))

		cfg, err := NewLoader().Load(configFile)
		require.NoError(t, err)
		assert.True(t, cfg.Host)
		assert.Equal(t, 7, cfg.ScanDepth)
	})

	t.Run("env vars override file values", func(t *testing.T) {
		t.Setenv("STANDALONE_SCAN_DEPTH", "9")

		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("scanDepth: 2\n"), 0o644))

		cfg, err := NewLoader().Load(configFile)
		require.NoError(t, err)
		assert.Equal(t, 9, cfg.ScanDepth)
	})

	t.Run("uses STANDALONE_CONFIG when no path given", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("scan: [/srv/ws]\n"), 0o644))
		t.Setenv("STANDALONE_CONFIG", configFile)

		cfg, err := NewLoader().Load("")
		require.NoError(t, err)
		assert.Equal(t, []string{"/srv/ws"}, cfg.Scan)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("scan: [unterminated\n"), 0o644))

		_, err := NewLoader().Load(configFile)
		assert.Error(t, err)
	})
}

func TestLoader_SetFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/standalone/config.yaml", []byte("scan: [/srv/ws]\nhost: true\n"), 0o644))

	cfg, err := NewLoader().SetFs(fs).Load("/etc/standalone/config.yaml")
	require.NoError(t, err)
	assert.True(t, cfg.Host)
	assert.Equal(t, []string{"/srv/ws"}, cfg.Scan)
}

func TestConfigFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existing := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(existing, []byte("{}"), 0o644))

	ok, err := ConfigFileExists(existing)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ConfigFileExists(filepath.Join(tmpDir, "missing.yaml"))
	require.NoError(t, err)
	assert.False(t, ok)
}
