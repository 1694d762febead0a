// Package testutil provides fixtures for workspace tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
)

// WriteFile creates a file with the given content at path, creating parent
// directories, and returns path.
func WriteFile(t *testing.T, fs afero.Fs, path, content string) string {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// ProjectDescriptor returns a .project document naming name.
func ProjectDescriptor(name string) string {
	return "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<projectDescription>\n\t<name>" + name +
		"</name>\n\t<comment></comment>\n</projectDescription>\n"
}

// BundleManifest returns a MANIFEST.MF document with the given symbolic name.
func BundleManifest(symbolicName string) string {
	return "Manifest-Version: 1.0\nBundle-ManifestVersion: 2\nBundle-SymbolicName: " + symbolicName + "\n"
}

// WriteProject writes a .project descriptor for name into dir.
func WriteProject(t *testing.T, fs afero.Fs, dir, name string) string {
	t.Helper()
	return WriteFile(t, fs, filepath.Join(dir, ".project"), ProjectDescriptor(name))
}

// WriteManifest writes META-INF/MANIFEST.MF for symbolicName into dir.
func WriteManifest(t *testing.T, fs afero.Fs, dir, symbolicName string) string {
	t.Helper()
	return WriteFile(t, fs, filepath.Join(dir, "META-INF", "MANIFEST.MF"), BundleManifest(symbolicName))
}

// ZipBytes returns a zip archive holding files, keyed by slash-separated name.
func ZipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s to archive: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("failed to write %s to archive: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close archive: %v", err)
	}
	return buf.Bytes()
}

// WriteZip writes a zip archive holding files at path and returns path.
func WriteZip(t *testing.T, fs afero.Fs, path string, files map[string]string) string {
	t.Helper()
	return WriteFile(t, fs, path, string(ZipBytes(t, files)))
}
