package cmd

import (
	"context"

	"github.com/spf13/afero"

	"github.com/mdsdtools/standalone/internal/config"
	oerrors "github.com/mdsdtools/standalone/internal/errors"
	"github.com/mdsdtools/standalone/internal/output"
)

// pathDiscoverer checks that every directory and path the configuration
// names exists before any registration starts.
type pathDiscoverer struct {
	fs  afero.Fs
	cfg *config.Config
}

func (d pathDiscoverer) Discover(ctx context.Context) error {
	var paths []string
	for _, p := range d.cfg.Projects {
		if p.Path != "" {
			paths = append(paths, config.ExpandTilde(p.Path))
		}
	}
	for _, dir := range d.cfg.Scan {
		paths = append(paths, config.ExpandTilde(dir))
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := d.fs.Stat(p); err != nil {
			return oerrors.New(oerrors.ErrNotFound, "configured path does not exist").
				WithLocation(p).
				WithCause(err)
		}
		output.Debug("discovered", "path", p)
	}
	return nil
}
