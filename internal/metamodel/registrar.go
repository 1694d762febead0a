// Package metamodel registers metadata packages, with every package they
// transitively contain, into the registry under their namespace URIs.
package metamodel

import (
	"context"

	"github.com/mdsdtools/standalone/internal/core"
	oerrors "github.com/mdsdtools/standalone/internal/errors"
	"github.com/mdsdtools/standalone/internal/output"
	"github.com/mdsdtools/standalone/internal/registry"
)

// Registrar loads metamodels and registers their package trees.
type Registrar struct {
	reg    *registry.Registry
	loader Loader
}

// NewRegistrar creates a Registrar. A nil loader means a RegistryLoader over
// the OS filesystem.
func NewRegistrar(reg *registry.Registry, loader Loader) *Registrar {
	if loader == nil {
		loader = NewRegistryLoader(reg, nil)
	}
	return &Registrar{reg: reg, loader: loader}
}

// Result describes one registration.
type Result struct {
	// Root is the loaded root package.
	Root *core.Package
	// Registered lists namespace URIs in registration order.
	Registered []string
}

// Register loads the metamodel at relativePath inside project and registers
// its package tree breadth first.
//
// The project must already be registered; this is not re-validated here.
func (r *Registrar) Register(ctx context.Context, project, relativePath string) (Result, error) {
	uri := core.PluginURI(project, relativePath)

	root, err := r.loader.Load(ctx, uri)
	if err != nil {
		return Result{}, oerrors.NewLoadFailureError("could not load metamodel", uri, err)
	}

	registered := r.registerTree(root)
	output.Debug("registered metamodel", "uri", uri, "packages", len(registered))

	return Result{Root: root, Registered: registered}, nil
}

// registerTree walks the package graph breadth first. Packages are visited
// once by identity, so shared and cyclic references terminate.
func (r *Registrar) registerTree(root *core.Package) []string {
	var registered []string

	visited := map[*core.Package]struct{}{}
	queue := []*core.Package{root}
	for len(queue) > 0 {
		pkg := queue[0]
		queue = queue[1:]

		if pkg == nil {
			continue
		}
		if _, seen := visited[pkg]; seen {
			continue
		}
		visited[pkg] = struct{}{}

		if pkg.NsURI == "" {
			output.Warn("skipping package without namespace URI", "package", pkg.Name)
		} else {
			r.reg.PutPackage(pkg.NsURI, pkg)
			registered = append(registered, pkg.NsURI)
		}

		queue = append(queue, pkg.Subpackages...)
	}

	return registered
}
