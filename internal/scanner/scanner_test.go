package scanner

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdsdtools/standalone/internal/core"
	oerrors "github.com/mdsdtools/standalone/internal/errors"
)

const base = "/work"

func projectFile(name string) string {
	return "<projectDescription><name>" + name + "</name></projectDescription>"
}

func manifest(name string) string {
	return "Manifest-Version: 1.0\nBundle-SymbolicName: " + name + "\n"
}

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(base, 0o755))
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(base, path), []byte(content), 0o644))
	}
	return fs
}

func dir(parts ...string) core.Location {
	return core.DirectoryLocation(filepath.Join(append([]string{base}, parts...)...))
}

func TestScan_EmptyDirectory(t *testing.T) {
	s := New(newFs(t, nil), Options{})

	_, err := s.Scan(context.Background(), base)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrNoProjectsFound)
}

func TestScan_MissingBase(t *testing.T) {
	s := New(afero.NewMemMapFs(), Options{})

	_, err := s.Scan(context.Background(), "/does/not/exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrScanIO)
}

func TestScan_FindsBothArtifactKinds(t *testing.T) {
	fs := newFs(t, map[string]string{
		"plugins/a/.project":                  projectFile("org.example.a"),
		"plugins/b/META-INF/MANIFEST.MF":      manifest("org.example.b;singleton:=true"),
		"plugins/b/src/org/example/B.java":    "class B {}",
		"features/f/feature.xml":              "<feature/>",
		"plugins/c/.project":                  projectFile("org.example.c"),
		"plugins/c/META-INF/MANIFEST.MF":      manifest("org.example.c"),
		"plugins/c/bin/org/example/c/C.class": "",
		"plugins/c/target/classes/x/.project": projectFile("too.deep"),
	})

	got, err := New(fs, Options{}).Scan(context.Background(), base)
	require.NoError(t, err)

	assert.Equal(t, dir("plugins", "a"), got["org.example.a"])
	assert.Equal(t, dir("plugins", "b"), got["org.example.b"])
	assert.Equal(t, dir("plugins", "c"), got["org.example.c"])
	assert.NotContains(t, got, "too.deep")
	assert.Len(t, got, 3)
}

func TestScan_ManifestOverwritesDescriptor(t *testing.T) {
	fs := newFs(t, map[string]string{
		"Foo/.project":                 projectFile("Foo"),
		"bin/foo/META-INF/MANIFEST.MF": manifest("Foo;singleton:=true"),
	})

	got, err := New(fs, Options{}).Scan(context.Background(), base)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, dir("bin", "foo"), got["Foo"])
}

func TestScan_LaterManifestWinsInSortedOrder(t *testing.T) {
	fs := newFs(t, map[string]string{
		"b/META-INF/MANIFEST.MF": manifest("dup"),
		"a/META-INF/MANIFEST.MF": manifest("dup"),
	})

	got, err := New(fs, Options{Order: OrderSorted}).Scan(context.Background(), base)
	require.NoError(t, err)
	assert.Equal(t, dir("b"), got["dup"])
}

func TestScan_DepthBound(t *testing.T) {
	tests := []struct {
		name     string
		maxDepth int
		path     string
		content  string
		found    bool
	}{
		{"descriptor at base", 0, ".project", projectFile("p"), true},
		{"descriptor at max depth", 0, "a/b/c/.project", projectFile("p"), true},
		{"descriptor below max depth", 0, "a/b/c/d/.project", projectFile("p"), false},
		{"manifest at max depth", 0, "a/b/c/META-INF/MANIFEST.MF", manifest("p"), true},
		{"manifest below max depth", 0, "a/b/c/d/META-INF/MANIFEST.MF", manifest("p"), false},
		{"custom depth", 1, "a/b/.project", projectFile("p"), false},
		{"custom depth within", 1, "a/.project", projectFile("p"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFs(t, map[string]string{tt.path: tt.content})

			got, err := New(fs, Options{MaxDepth: tt.maxDepth}).Scan(context.Background(), base)
			if !tt.found {
				assert.ErrorIs(t, err, oerrors.ErrNoProjectsFound)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, got, "p")
		})
	}
}

func TestScan_RootAtBase(t *testing.T) {
	fs := newFs(t, map[string]string{"META-INF/MANIFEST.MF": manifest("self")})

	got, err := New(fs, Options{}).Scan(context.Background(), base)
	require.NoError(t, err)
	assert.Equal(t, dir(), got["self"])
}

func TestScan_MalformedArtifact(t *testing.T) {
	fs := newFs(t, map[string]string{
		"ok/.project":                 projectFile("ok"),
		"broken/META-INF/MANIFEST.MF": "this is not a manifest\n",
	})

	_, err := New(fs, Options{}).Scan(context.Background(), base)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrScanIO)
	assert.Contains(t, err.Error(), "bundle manifest")
}

func TestScan_PlainJarManifestSkipped(t *testing.T) {
	fs := newFs(t, map[string]string{
		"ok/.project":                    projectFile("ok"),
		"build/lib/META-INF/MANIFEST.MF": "Manifest-Version: 1.0\nCreated-By: javac\n",
	})

	got, err := New(fs, Options{}).Scan(context.Background(), base)
	require.NoError(t, err)
	assert.Equal(t, map[string]core.Location{"ok": dir("ok")}, got)
}

func TestScan_OnlyPlainJarManifests(t *testing.T) {
	fs := newFs(t, map[string]string{
		"build/META-INF/MANIFEST.MF": "Manifest-Version: 1.0\n",
	})

	_, err := New(fs, Options{}).Scan(context.Background(), base)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrNoProjectsFound)
}

func TestScan_Cancelled(t *testing.T) {
	fs := newFs(t, map[string]string{"a/.project": projectFile("a")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(fs, Options{}).Scan(ctx, base)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, oerrors.ErrScanIO)
}

func TestScan_OsFilesystem(t *testing.T) {
	root := t.TempDir()
	osFs := afero.NewOsFs()
	require.NoError(t, osFs.MkdirAll(filepath.Join(root, "proj"), 0o755))
	require.NoError(t, afero.WriteFile(osFs, filepath.Join(root, "proj", ".project"), []byte(projectFile("proj")), 0o644))

	got, err := New(nil, Options{}).Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, core.DirectoryLocation(filepath.Join(root, "proj")), got["proj"])
}

func TestArtifactSegments(t *testing.T) {
	assert.Equal(t, 1, ProjectDescriptor.Segments())
	assert.Equal(t, 2, BundleManifest.Segments())
}
