// Package core provides the domain types shared by the resolver, scanner,
// registry and pipeline: physical locations, platform URIs and metadata packages.
package core

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// LocationKind distinguishes a loose directory root from an archive-internal root.
type LocationKind int

const (
	// KindDirectory is a plain directory on the filesystem.
	KindDirectory LocationKind = iota + 1
	// KindArchive is the internal root of a packaged archive (jar/zip).
	KindArchive
)

// ArchiveScheme prefixes archive-root URIs.
const ArchiveScheme = "archive:"

// String returns a human-readable kind name.
func (k LocationKind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindArchive:
		return "archive"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k LocationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Location is the physical root backing a logical project name.
// For KindArchive, Path is the archive file and lookups address its internal root.
type Location struct {
	Kind LocationKind `json:"kind" yaml:"kind"`
	Path string       `json:"path" yaml:"path"`
}

// DirectoryLocation returns a directory location for path, made absolute and cleaned.
func DirectoryLocation(path string) Location {
	return Location{Kind: KindDirectory, Path: absClean(path)}
}

// ArchiveLocation returns the internal root of the archive file at path.
func ArchiveLocation(path string) Location {
	return Location{Kind: KindArchive, Path: absClean(path)}
}

// IsZero reports whether l is the zero Location.
func (l Location) IsZero() bool {
	return l.Kind == 0 && l.Path == ""
}

// IsArchive reports whether l addresses the inside of an archive.
func (l Location) IsArchive() bool {
	return l.Kind == KindArchive
}

// URI renders the location as a URI. Directory roots end with a slash;
// archive roots use the archive:file:///x.jar!/ form.
func (l Location) URI() string {
	fileURI := (&url.URL{Scheme: "file", Path: slashPath(l.Path)}).String()
	switch l.Kind {
	case KindArchive:
		return ArchiveScheme + fileURI + "!/"
	case KindDirectory:
		return strings.TrimSuffix(fileURI, "/") + "/"
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (l Location) String() string {
	if l.IsZero() {
		return "<none>"
	}
	return fmt.Sprintf("%s %s", l.Kind, l.Path)
}

func absClean(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// slashPath converts an OS path into a URI path, keeping a leading slash
// in front of Windows drive letters.
func slashPath(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
