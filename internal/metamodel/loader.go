package metamodel

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/mdsdtools/standalone/internal/core"
	"github.com/mdsdtools/standalone/internal/registry"
)

// Loader loads the root package designated by a platform URI.
type Loader interface {
	Load(ctx context.Context, uri string) (*core.Package, error)
}

// RegistryLoader resolves platform URIs through a Registry and reads the
// resource from a project directory or from inside a project archive.
type RegistryLoader struct {
	reg      *registry.Registry
	fs       afero.Fs
	decoders map[string]Decoder
}

// NewRegistryLoader creates a loader. A nil fs means the OS filesystem.
func NewRegistryLoader(reg *registry.Registry, fs afero.Fs) *RegistryLoader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &RegistryLoader{reg: reg, fs: fs, decoders: DefaultDecoders()}
}

// WithDecoder registers dec for files with extension ext (including the dot).
func (l *RegistryLoader) WithDecoder(ext string, dec Decoder) *RegistryLoader {
	l.decoders[ext] = dec
	return l
}

// Load implements Loader.
func (l *RegistryLoader) Load(ctx context.Context, uri string) (*core.Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loc, rel, err := l.reg.Resolve(uri)
	if err != nil {
		return nil, err
	}

	if !filepath.IsLocal(filepath.FromSlash(rel)) {
		return nil, fmt.Errorf("path %q is outside the project root", rel)
	}

	dec, err := decoderFor(l.decoders, rel)
	if err != nil {
		return nil, err
	}

	var data []byte
	if loc.IsArchive() {
		data, err = l.readFromArchive(loc.Path, rel)
	} else {
		data, err = afero.ReadFile(l.fs, filepath.Join(loc.Path, filepath.FromSlash(rel)))
	}
	if err != nil {
		return nil, err
	}

	return dec(path.Base(rel), data)
}

func (l *RegistryLoader) readFromArchive(archive, rel string) ([]byte, error) {
	f, err := l.fs.Open(archive)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", archive, err)
	}

	entry, err := zr.Open(rel)
	if err != nil {
		return nil, fmt.Errorf("opening %s in %s: %w", rel, archive, err)
	}
	defer entry.Close()

	return io.ReadAll(entry)
}
