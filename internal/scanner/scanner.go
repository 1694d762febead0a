// Package scanner discovers projects nested below a directory by looking for
// project descriptors (.project) and bundle manifests (META-INF/MANIFEST.MF).
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/mdsdtools/standalone/internal/core"
	oerrors "github.com/mdsdtools/standalone/internal/errors"
	"github.com/mdsdtools/standalone/internal/output"
)

const (
	// DefaultMaxDepth is how many directories below the base a project root may sit.
	DefaultMaxDepth = 3

	// ProjectFileName is the project descriptor file.
	ProjectFileName = ".project"

	// ManifestName is the bundle manifest, relative to the project root.
	ManifestName = "META-INF/MANIFEST.MF"
)

// Order selects how discovered artifacts are folded into the result map.
type Order int

const (
	// OrderSorted folds artifacts in lexical path order.
	OrderSorted Order = iota
	// OrderWalk folds artifacts in directory-walk order.
	OrderWalk
)

// Artifact describes one kind of descriptor file.
type Artifact struct {
	// Kind names the artifact in logs and errors.
	Kind string
	// RelPath is the artifact's path relative to the project root, slash separated.
	RelPath string
	// ReadName extracts the logical project name.
	ReadName func(io.Reader) (string, error)
}

// Segments returns the number of path segments the artifact occupies below its root.
func (a Artifact) Segments() int {
	return len(strings.Split(a.RelPath, "/"))
}

var (
	// ProjectDescriptor is the .project artifact.
	ProjectDescriptor = Artifact{Kind: "project descriptor", RelPath: ProjectFileName, ReadName: ParseProjectName}

	// BundleManifest is the META-INF/MANIFEST.MF artifact.
	BundleManifest = Artifact{Kind: "bundle manifest", RelPath: ManifestName, ReadName: ParseSymbolicName}
)

// Options configures a Scanner.
type Options struct {
	// MaxDepth bounds how deep below the base a project root may be found.
	// Zero means DefaultMaxDepth.
	MaxDepth int

	// Order controls collision handling within one artifact kind.
	Order Order
}

// Scanner walks a directory tree looking for project artifacts.
type Scanner struct {
	fs   afero.Fs
	opts Options
}

// New creates a Scanner reading from fs. A nil fs means the OS filesystem.
func New(fs afero.Fs, opts Options) *Scanner {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Scanner{fs: fs, opts: opts}
}

// Fs returns the filesystem the scanner reads from.
func (s *Scanner) Fs() afero.Fs {
	return s.fs
}

// Scan returns every project found below base, mapping logical name to root.
// Project descriptors are folded first and bundle manifests second, so a
// manifest wins over a descriptor with the same name.
func (s *Scanner) Scan(ctx context.Context, base string) (map[string]core.Location, error) {
	artifacts := []Artifact{ProjectDescriptor, BundleManifest}

	found, err := s.find(ctx, base, artifacts)
	if err != nil {
		return nil, err
	}

	projects := make(map[string]core.Location)
	total := 0
	for _, a := range artifacts {
		paths := found[a.RelPath]
		if s.opts.Order == OrderSorted {
			sort.Strings(paths)
		}
		for _, p := range paths {
			name, err := s.readName(p, a)
			if errors.Is(err, ErrNoSymbolicName) {
				output.Warn("skipping manifest without symbolic name", "path", p)
				continue
			}
			if err != nil {
				return nil, err
			}
			root := rootOf(p, a.Segments())
			if prev, ok := projects[name]; ok && prev.Path != root {
				output.Debug("project name collision", "name", name, "previous", prev.Path, "winner", root)
			}
			projects[name] = core.DirectoryLocation(root)
			total++
		}
	}

	if total == 0 {
		return nil, oerrors.New(oerrors.ErrNoProjectsFound, "could not find any project artifacts").
			WithLocation(base).
			WithHint("Expected a .project file or META-INF/MANIFEST.MF within " + depthHint(s.opts.MaxDepth))
	}

	output.Debug("scan complete", "base", base, "artifacts", total, "projects", len(projects))
	return projects, nil
}

// find walks base once and returns, per artifact RelPath, the matching files
// that lie within the depth bound for that artifact.
func (s *Scanner) find(ctx context.Context, base string, artifacts []Artifact) (map[string][]string, error) {
	limitFor := func(a Artifact) int { return s.opts.MaxDepth + a.Segments() }

	dirLimit := 0
	for _, a := range artifacts {
		if l := limitFor(a); l > dirLimit {
			dirLimit = l
		}
	}

	found := make(map[string][]string, len(artifacts))
	walkErr := afero.Walk(s.fs, base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		depth := depthBelow(base, path)
		if info.IsDir() {
			if depth >= dirLimit {
				return filepath.SkipDir
			}
			return nil
		}

		for _, a := range artifacts {
			if depth <= limitFor(a) && hasSuffixSegments(path, a.RelPath) {
				found[a.RelPath] = append(found[a.RelPath], path)
			}
		}
		return nil
	})
	if walkErr != nil {
		return nil, oerrors.NewScanIOError("errors reading project artifacts", base, walkErr)
	}

	return found, nil
}

func (s *Scanner) readName(path string, a Artifact) (string, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return "", oerrors.NewScanIOError("error reading the "+a.Kind, path, err)
	}
	defer f.Close()

	name, err := a.ReadName(f)
	if err != nil {
		return "", oerrors.NewScanIOError("error reading the "+a.Kind, path, err)
	}
	return name, nil
}

// rootOf walks up n segments from path.
func rootOf(path string, n int) string {
	root := path
	for i := 0; i < n; i++ {
		root = filepath.Dir(root)
	}
	return root
}

func depthBelow(base, path string) int {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(filepath.ToSlash(rel), "/"))
}

func hasSuffixSegments(path, rel string) bool {
	want := strings.Split(rel, "/")
	got := strings.Split(filepath.ToSlash(path), "/")
	if len(got) < len(want) {
		return false
	}
	tail := got[len(got)-len(want):]
	for i := range want {
		if tail[i] != want[i] {
			return false
		}
	}
	return true
}

func depthHint(maxDepth int) string {
	if maxDepth == 1 {
		return "1 directory level"
	}
	return fmt.Sprintf("%d directory levels", maxDepth)
}
