package pipeline

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/spf13/afero"

	"github.com/mdsdtools/standalone/internal/core"
	oerrors "github.com/mdsdtools/standalone/internal/errors"
	"github.com/mdsdtools/standalone/internal/metamodel"
	"github.com/mdsdtools/standalone/internal/output"
	"github.com/mdsdtools/standalone/internal/registry"
	"github.com/mdsdtools/standalone/internal/resolver"
	"github.com/mdsdtools/standalone/internal/scanner"
)

// ProjectStep registers one logical project name.
type ProjectStep struct {
	Project  string
	Location *core.Location

	// cause records why no location could be computed.
	cause error
}

// RegisterByLocation registers name at directory dir.
func RegisterByLocation(dir, name string) *ProjectStep {
	loc := core.DirectoryLocation(dir)
	return &ProjectStep{Project: name, Location: &loc}
}

// RegisterByURI registers name at loc. A nil loc fails at run time.
func RegisterByURI(loc *core.Location, name string) *ProjectStep {
	return &ProjectStep{Project: name, Location: loc}
}

// RegisterByCodeSource resolves the location of src once, truncating after
// rootFolder, and registers name there. If rootFolder is empty name is used.
// A resolution failure surfaces as ErrMissingURI when the step runs.
func RegisterByCodeSource(src resolver.CodeSource, name, rootFolder string) *ProjectStep {
	if rootFolder == "" {
		rootFolder = name
	}
	loc, err := resolver.ResolveLocation(src, rootFolder)
	if err != nil {
		output.Debug("could not resolve project location", "project", name, "error", err)
		return &ProjectStep{Project: name, cause: err}
	}
	return &ProjectStep{Project: name, Location: &loc}
}

// Name implements Named.
func (p *ProjectStep) Name() string { return "project " + p.Project }

// WithoutHost implements Step.
func (p *ProjectStep) WithoutHost(_ context.Context, reg *registry.Registry) error {
	if p.Location == nil || p.Location.IsZero() {
		return oerrors.Newf(oerrors.ErrMissingURI, "no location to register project %q", p.Project).
			WithCause(p.cause)
	}
	reg.RegisterProject(p.Project, *p.Location)
	output.Debug("registered project", "name", p.Project, "location", p.Location.URI())
	return nil
}

// WithHost implements Step. The host resolves projects itself.
func (p *ProjectStep) WithHost(context.Context, *registry.Registry) error { return nil }

// ScanStep registers every project found below Dir.
type ScanStep struct {
	Dir     string
	Scanner *scanner.Scanner
}

// Name implements Named.
func (s *ScanStep) Name() string { return "scan " + s.Dir }

// WithoutHost implements Step.
func (s *ScanStep) WithoutHost(ctx context.Context, reg *registry.Registry) error {
	sc := s.Scanner
	if sc == nil {
		sc = scanner.New(nil, scanner.Options{})
	}
	projects, err := sc.Scan(ctx, s.Dir)
	if err != nil {
		return err
	}
	registerAll(reg, projects)
	return nil
}

// WithHost implements Step.
func (s *ScanStep) WithHost(context.Context, *registry.Registry) error { return nil }

// EnclosingProjectStep registers the projects found in the nearest ancestor
// directory of Source that contains any.
type EnclosingProjectStep struct {
	Source  resolver.CodeSource
	Scanner *scanner.Scanner
}

// Name implements Named.
func (e *EnclosingProjectStep) Name() string { return "enclosing projects" }

// WithoutHost implements Step.
func (e *EnclosingProjectStep) WithoutHost(ctx context.Context, reg *registry.Registry) error {
	sc := e.Scanner
	if sc == nil {
		sc = scanner.New(nil, scanner.Options{})
	}
	projects, err := resolver.FindEnclosingProjects(ctx, sc, e.Source)
	if err != nil {
		return err
	}
	registerAll(reg, projects)
	return nil
}

// WithHost implements Step.
func (e *EnclosingProjectStep) WithHost(context.Context, *registry.Registry) error { return nil }

func registerAll(reg *registry.Registry, projects map[string]core.Location) {
	names := make([]string, 0, len(projects))
	for name := range projects {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		reg.RegisterProject(name, projects[name])
		output.Debug("registered project", "name", name, "location", projects[name].URI())
	}
}

// MetaModelStep registers the package tree of a metamodel inside a project.
// The project must be registered by an earlier step.
type MetaModelStep struct {
	Project string
	Path    string

	// Loader overrides the registry-backed loader.
	Loader metamodel.Loader

	// Fs is read by the registry-backed loader. Nil means the OS filesystem.
	Fs afero.Fs
}

// Name implements Named.
func (m *MetaModelStep) Name() string { return "metamodel " + core.PluginURI(m.Project, m.Path) }

// WithoutHost implements Step.
func (m *MetaModelStep) WithoutHost(ctx context.Context, reg *registry.Registry) error {
	loader := m.Loader
	if loader == nil {
		loader = metamodel.NewRegistryLoader(reg, m.Fs)
	}
	_, err := metamodel.NewRegistrar(reg, loader).Register(ctx, m.Project, m.Path)
	return err
}

// WithHost implements Step. The host registers metamodels from its own
// extension points.
func (m *MetaModelStep) WithHost(context.Context, *registry.Registry) error { return nil }

// ProfileHost exposes the profile registry of a host environment.
type ProfileHost interface {
	// ProfileRegistry makes sure the host profile registry exists.
	// Implementations must be idempotent.
	ProfileRegistry() error
}

// OnceProfileHost returns a ProfileHost that calls create at most once and
// reports its result on every call.
func OnceProfileHost(create func() error) ProfileHost {
	return &onceHost{create: create}
}

type onceHost struct {
	once   sync.Once
	create func() error
	err    error
}

func (h *onceHost) ProfileRegistry() error {
	h.once.Do(func() { h.err = h.create() })
	return h.err
}

// ProfileStep registers a profile. Outside a host the profile is registered
// like a metamodel; inside a host it triggers the host profile registry.
type ProfileStep struct {
	MetaModelStep
	Host ProfileHost
}

// Name implements Named.
func (p *ProfileStep) Name() string { return "profile " + core.PluginURI(p.Project, p.Path) }

// WithHost implements Step.
func (p *ProfileStep) WithHost(context.Context, *registry.Registry) error {
	if p.Host == nil {
		return nil
	}
	return p.Host.ProfileRegistry()
}

// Discoverer performs host-independent discovery before registration.
type Discoverer interface {
	Discover(ctx context.Context) error
}

// DiscoverFunc adapts a function to a Discoverer.
type DiscoverFunc func(ctx context.Context) error

// Discover implements Discoverer.
func (f DiscoverFunc) Discover(ctx context.Context) error { return f(ctx) }

// DiscoveryStep runs a Discoverer outside a host.
type DiscoveryStep struct {
	Discoverer Discoverer
}

// Name implements Named.
func (d *DiscoveryStep) Name() string { return "discovery" }

// WithoutHost implements Step.
func (d *DiscoveryStep) WithoutHost(ctx context.Context, _ *registry.Registry) error {
	if d.Discoverer == nil {
		return nil
	}
	if err := d.Discoverer.Discover(ctx); err != nil {
		return fmt.Errorf("discovery: %w", err)
	}
	return nil
}

// WithHost implements Step.
func (d *DiscoveryStep) WithHost(context.Context, *registry.Registry) error { return nil }

// LoggingStep sets up message-only logging outside a host, where no host
// log configuration exists.
type LoggingStep struct {
	Verbose bool
	Writer  io.Writer
}

// Name implements Named.
func (l *LoggingStep) Name() string { return "logging" }

// WithoutHost implements Step.
func (l *LoggingStep) WithoutHost(context.Context, *registry.Registry) error {
	output.SetupLogging(output.LogConfig{
		Verbose:     l.Verbose,
		MessageOnly: true,
		Writer:      l.Writer,
	})
	return nil
}

// WithHost implements Step.
func (l *LoggingStep) WithHost(context.Context, *registry.Registry) error { return nil }
