// Package registry holds the mappings produced by standalone initialization:
// logical project names to physical roots, platform URI remappings, and
// metadata packages keyed by namespace URI.
//
// A Registry is created by the caller and passed explicitly to every step.
// All stores are put-or-overwrite; nothing is ever deleted.
package registry

import (
	"sort"
	"sync"

	"github.com/mdsdtools/standalone/internal/core"
	oerrors "github.com/mdsdtools/standalone/internal/errors"
)

// Registry maps logical names to locations and namespace URIs to packages.
type Registry struct {
	mu       sync.RWMutex
	projects map[string]core.Location
	uris     map[string]string
	packages map[string]*core.Package
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		projects: make(map[string]core.Location),
		uris:     make(map[string]string),
		packages: make(map[string]*core.Package),
	}
}

// Put binds name to loc, replacing any earlier binding.
func (r *Registry) Put(name string, loc core.Location) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[name] = loc
}

// Get returns the location bound to name.
func (r *Registry) Get(name string) (core.Location, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loc, ok := r.projects[name]
	return loc, ok
}

// RegisterProject binds name to loc and maps the project's plugin URI
// prefix onto its resource URI prefix.
func (r *Registry) RegisterProject(name string, loc core.Location) {
	r.Put(name, loc)
	r.MapURI(core.PluginURI(name, ""), core.ResourceURI(name, ""))
}

// MapURI records that references starting with from are resolved as if they
// started with to.
func (r *Registry) MapURI(from, to string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uris[from] = to
}

// MappedURI returns the target of a URI mapping registered for exactly from.
func (r *Registry) MappedURI(from string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	to, ok := r.uris[from]
	return to, ok
}

// PutPackage binds nsURI to pkg, replacing any earlier binding.
func (r *Registry) PutPackage(nsURI string, pkg *core.Package) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packages[nsURI] = pkg
}

// GetPackage returns the package registered under nsURI.
func (r *Registry) GetPackage(nsURI string) (*core.Package, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pkg, ok := r.packages[nsURI]
	return pkg, ok
}

// Len returns the number of registered projects.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.projects)
}

// Projects returns a snapshot of all project bindings sorted by name.
func (r *Registry) Projects() []core.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]core.Project, 0, len(r.projects))
	for name, loc := range r.projects {
		out = append(out, core.Project{Name: name, Location: loc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Packages returns a snapshot of all registered namespace URIs, sorted.
func (r *Registry) Packages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.packages))
	for nsURI := range r.packages {
		out = append(out, nsURI)
	}
	sort.Strings(out)
	return out
}

// Resolve dereferences a platform URI into the physical root of its project
// and the path relative to that root. Plugin URIs are first rewritten through
// the URI mapping, so a plugin reference resolves only for registered projects.
func (r *Registry) Resolve(uri string) (core.Location, string, error) {
	parsed, err := core.ParsePlatformURI(uri)
	if err != nil {
		return core.Location{}, "", oerrors.New(oerrors.ErrLocationNotFound, "cannot resolve reference").
			WithLocation(uri).WithCause(err)
	}

	if parsed.Kind == core.URIPlugin {
		prefix := core.PluginURI(parsed.Project, "")
		target, ok := r.MappedURI(prefix)
		if !ok {
			return core.Location{}, "", oerrors.Newf(oerrors.ErrLocationNotFound,
				"no URI mapping for project %q", parsed.Project).WithLocation(uri)
		}
		parsed, err = core.ParsePlatformURI(target + parsed.Path)
		if err != nil {
			return core.Location{}, "", oerrors.New(oerrors.ErrLocationNotFound, "invalid URI mapping").
				WithLocation(target).WithCause(err)
		}
	}

	loc, ok := r.Get(parsed.Project)
	if !ok {
		return core.Location{}, "", oerrors.Newf(oerrors.ErrLocationNotFound,
			"project %q is not registered", parsed.Project).WithLocation(uri)
	}

	return loc, parsed.Path, nil
}
