package pipeline

import (
	"io"

	"github.com/spf13/afero"

	"github.com/mdsdtools/standalone/internal/core"
	"github.com/mdsdtools/standalone/internal/resolver"
	"github.com/mdsdtools/standalone/internal/scanner"
)

// Builder assembles an Initializer. Steps run in the order they are added,
// after the logging and discovery steps when those are configured.
type Builder struct {
	fs        afero.Fs
	scanOpts  scanner.Options
	host      HostPredicate
	logging   *LoggingStep
	discovery Discoverer

	// pending steps are built once the filesystem and scanner are known.
	pending []func(env) Step
}

type env struct {
	fs      afero.Fs
	scanner *scanner.Scanner
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithFs makes scanning and metamodel loading read from fs.
func (b *Builder) WithFs(fs afero.Fs) *Builder {
	b.fs = fs
	return b
}

// ScanDepth sets the scanner depth bound. Zero keeps the default.
func (b *Builder) ScanDepth(depth int) *Builder {
	b.scanOpts.MaxDepth = depth
	return b
}

// ScanOrder sets how the scanner orders same-kind artifacts.
func (b *Builder) ScanOrder(order scanner.Order) *Builder {
	b.scanOpts.Order = order
	return b
}

// WithHost sets the host predicate.
func (b *Builder) WithHost(pred HostPredicate) *Builder {
	b.host = pred
	return b
}

// ConfigureLogging adds a leading LoggingStep.
func (b *Builder) ConfigureLogging(verbose bool, w io.Writer) *Builder {
	b.logging = &LoggingStep{Verbose: verbose, Writer: w}
	return b
}

// UseDiscovery runs d before any registration step.
func (b *Builder) UseDiscovery(d Discoverer) *Builder {
	b.discovery = d
	return b
}

// RegisterProject registers name at the location of src. The location is
// resolved immediately.
func (b *Builder) RegisterProject(src resolver.CodeSource, name, rootFolder string) *Builder {
	step := RegisterByCodeSource(src, name, rootFolder)
	return b.AddStep(step)
}

// RegisterProjectAt registers name at directory dir.
func (b *Builder) RegisterProjectAt(dir, name string) *Builder {
	return b.AddStep(RegisterByLocation(dir, name))
}

// RegisterProjectLocation registers name at loc.
func (b *Builder) RegisterProjectLocation(loc *core.Location, name string) *Builder {
	return b.AddStep(RegisterByURI(loc, name))
}

// ScanProjects registers every project found below dir.
func (b *Builder) ScanProjects(dir string) *Builder {
	b.pending = append(b.pending, func(e env) Step {
		return &ScanStep{Dir: dir, Scanner: e.scanner}
	})
	return b
}

// RegisterEnclosingProjects registers the projects nearest to src.
func (b *Builder) RegisterEnclosingProjects(src resolver.CodeSource) *Builder {
	b.pending = append(b.pending, func(e env) Step {
		return &EnclosingProjectStep{Source: src, Scanner: e.scanner}
	})
	return b
}

// RegisterMetaModel registers the metamodel at path inside project.
func (b *Builder) RegisterMetaModel(project, path string) *Builder {
	b.pending = append(b.pending, func(e env) Step {
		return &MetaModelStep{Project: project, Path: path, Fs: e.fs}
	})
	return b
}

// RegisterProfile registers the profile at path inside project. host may be nil.
func (b *Builder) RegisterProfile(project, path string, host ProfileHost) *Builder {
	b.pending = append(b.pending, func(e env) Step {
		return &ProfileStep{
			MetaModelStep: MetaModelStep{Project: project, Path: path, Fs: e.fs},
			Host:          host,
		}
	})
	return b
}

// AddStep appends a custom step.
func (b *Builder) AddStep(s Step) *Builder {
	b.pending = append(b.pending, func(env) Step { return s })
	return b
}

// Build returns the Initializer.
func (b *Builder) Build() *Initializer {
	fs := b.fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	e := env{fs: fs, scanner: scanner.New(fs, b.scanOpts)}

	var steps []Step
	if b.logging != nil {
		steps = append(steps, b.logging)
	}
	if b.discovery != nil {
		steps = append(steps, &DiscoveryStep{Discoverer: b.discovery})
	}
	for _, mk := range b.pending {
		steps = append(steps, mk(e))
	}

	return NewInitializer(b.host, steps...)
}
