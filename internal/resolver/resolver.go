// Package resolver computes the physical root of the project that contains
// a piece of code, given the name of the project's root folder.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mdsdtools/standalone/internal/core"
	oerrors "github.com/mdsdtools/standalone/internal/errors"
	"github.com/mdsdtools/standalone/internal/output"
	"github.com/mdsdtools/standalone/internal/scanner"
)

// archiveExtensions are the packaged forms resolved to an archive root.
var archiveExtensions = []string{".jar", ".zip"}

// ResolveLocation returns the root of the project containing src.
//
// When src was loaded from an archive the archive's internal root is returned.
// Otherwise the decoded path is truncated right after its last segment equal
// to rootFolderName. rootFolderName must be the folder the project is
// actually installed under, which may differ from its logical name.
//
// The result is computed on every call.
func ResolveLocation(src CodeSource, rootFolderName string) (core.Location, error) {
	raw, err := src.CodeLocation()
	if err != nil {
		return core.Location{}, oerrors.New(oerrors.ErrLocationNotFound, "cannot determine code location").WithCause(err)
	}

	path, err := decodeLocation(raw)
	if err != nil {
		return core.Location{}, oerrors.New(oerrors.ErrLocationNotFound, "cannot decode code location").
			WithLocation(raw).WithCause(err)
	}

	if IsArchive(path) {
		return core.ArchiveLocation(path), nil
	}

	root, ok := truncateAfterSegment(path, rootFolderName)
	if !ok {
		return core.Location{}, oerrors.NewLocationNotFoundError(
			fmt.Sprintf("root folder %q does not occur in the code location", rootFolderName), path)
	}

	return core.DirectoryLocation(root), nil
}

// IsArchive reports whether path names a packaged project archive.
func IsArchive(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// truncateAfterSegment cuts path right after the last segment equal to name.
func truncateAfterSegment(path, name string) (string, bool) {
	if name == "" {
		return "", false
	}

	segments := strings.Split(filepath.ToSlash(path), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] == name {
			joined := strings.Join(segments[:i+1], "/")
			return filepath.FromSlash(joined), true
		}
	}
	return "", false
}

// FindEnclosingProjects scans the directory holding src and then each of its
// ancestors until at least one project is found.
func FindEnclosingProjects(ctx context.Context, s *scanner.Scanner, src CodeSource) (map[string]core.Location, error) {
	raw, err := src.CodeLocation()
	if err != nil {
		return nil, oerrors.NewScanIOError("error locating the code in the file system", "", err)
	}
	path, err := decodeLocation(raw)
	if err != nil {
		return nil, oerrors.NewScanIOError("error locating the code in the file system", raw, err)
	}

	dir := path
	if info, statErr := s.Fs().Stat(path); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}

	for {
		projects, err := s.Scan(ctx, dir)
		switch {
		case err == nil:
			output.Debug("found enclosing projects", "dir", dir, "count", len(projects))
			return projects, nil
		case !errors.Is(err, oerrors.ErrNoProjectsFound):
			return nil, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, oerrors.New(oerrors.ErrNoProjectsFound,
				"error locating a project artifact in the file system hierarchy").WithLocation(path)
		}
		dir = parent
	}
}
