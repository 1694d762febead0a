package config

import (
	"io"

	"github.com/spf13/afero"

	"github.com/mdsdtools/standalone/internal/core"
	"github.com/mdsdtools/standalone/internal/pipeline"
	"github.com/mdsdtools/standalone/internal/resolver"
	"github.com/mdsdtools/standalone/internal/scanner"
)

// BuilderOptions supplies the collaborators a Config cannot describe.
type BuilderOptions struct {
	// Fs is read by scanning and metamodel loading. Nil means the OS filesystem.
	Fs afero.Fs

	// Discoverer runs when Discovery is enabled.
	Discoverer pipeline.Discoverer

	// ProfileHost receives profile registration inside a host.
	ProfileHost pipeline.ProfileHost

	// Executable overrides the code source of executable projects.
	Executable resolver.CodeSource

	// LogWriter, when set, makes the pipeline reconfigure logging onto it
	// before any other step when no host is present.
	LogWriter io.Writer

	// Verbose enables debug logging in that configuration.
	Verbose bool
}

// ToBuilder converts the configuration into a pipeline builder. Steps are
// added as projects, enclosing projects, scans, metamodels, then profiles.
func (c *Config) ToBuilder(opts BuilderOptions) *pipeline.Builder {
	exe := opts.Executable
	if exe == nil {
		exe = resolver.Executable()
	}

	b := pipeline.NewBuilder().ScanDepth(c.ScanDepth)
	if opts.Fs != nil {
		b.WithFs(opts.Fs)
	}
	if c.ScanOrder == ScanOrderWalk {
		b.ScanOrder(scanner.OrderWalk)
	}
	if c.Host {
		b.WithHost(func() bool { return true })
	}
	if opts.LogWriter != nil {
		b.ConfigureLogging(opts.Verbose, opts.LogWriter)
	}
	if c.Discovery && opts.Discoverer != nil {
		b.UseDiscovery(opts.Discoverer)
	}

	for _, p := range c.Projects {
		switch {
		case p.Executable:
			b.RegisterProject(exe, p.Name, p.RootFolder)
		case resolver.IsArchive(p.Path):
			loc := core.ArchiveLocation(ExpandTilde(p.Path))
			b.RegisterProjectLocation(&loc, p.Name)
		default:
			b.RegisterProjectAt(ExpandTilde(p.Path), p.Name)
		}
	}
	if c.Enclosing {
		b.RegisterEnclosingProjects(exe)
	}
	for _, dir := range c.Scan {
		b.ScanProjects(ExpandTilde(dir))
	}
	for _, m := range c.MetaModels {
		b.RegisterMetaModel(m.Project, m.Path)
	}
	for _, m := range c.Profiles {
		b.RegisterProfile(m.Project, m.Path, opts.ProfileHost)
	}

	return b
}
