package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/mdsdtools/standalone/internal/core"
	"github.com/mdsdtools/standalone/internal/output"
	"github.com/mdsdtools/standalone/internal/registry"
)

// registryReport is the structured form of a populated registry.
type registryReport struct {
	Projects []core.Project  `json:"projects" yaml:"projects"`
	Packages []*core.Package `json:"packages,omitempty" yaml:"packages,omitempty"`
}

// flatPackage drops subpackages so shared packages are listed once.
func flatPackage(p *core.Package) *core.Package {
	return &core.Package{Name: p.Name, NsURI: p.NsURI, NsPrefix: p.NsPrefix}
}

func newRegistryReport(reg *registry.Registry) registryReport {
	report := registryReport{Projects: reg.Projects()}
	for _, nsURI := range reg.Packages() {
		if pkg, ok := reg.GetPackage(nsURI); ok {
			flat := flatPackage(pkg)
			// The registry key wins over the package's own field.
			flat.NsURI = nsURI
			report.Packages = append(report.Packages, flat)
		}
	}
	return report
}

func writeRegistry(w io.Writer, format output.OutputFormat, reg *registry.Registry) error {
	report := newRegistryReport(reg)
	if format != output.FormatTable {
		return output.WriteStructured(w, format, report)
	}

	if len(report.Projects) > 0 {
		fmt.Fprintln(w, output.RenderProjectTable(report.Projects))
	}
	if len(report.Packages) > 0 {
		fmt.Fprintln(w, output.RenderPackageTable(report.Packages))
	}
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("%d projects, %d packages registered",
		len(report.Projects), len(report.Packages))))
	return nil
}

func writeProjects(w io.Writer, format output.OutputFormat, projects map[string]core.Location) error {
	list := make([]core.Project, 0, len(projects))
	for name, loc := range projects {
		list = append(list, core.Project{Name: name, Location: loc})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	if format != output.FormatTable {
		return output.WriteStructured(w, format, list)
	}

	fmt.Fprintln(w, output.RenderProjectTable(list))
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("%d projects found", len(list))))
	return nil
}
