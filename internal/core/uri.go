package core

import (
	"fmt"
	"strings"
)

// Platform URI prefixes. A plugin URI addresses a project as deployed,
// a resource URI addresses it as a workspace project.
const (
	PluginPrefix   = "platform:/plugin/"
	ResourcePrefix = "platform:/resource/"
)

// URIKind distinguishes plugin from resource platform URIs.
type URIKind int

const (
	// URIPlugin is a platform:/plugin/ URI.
	URIPlugin URIKind = iota + 1
	// URIResource is a platform:/resource/ URI.
	URIResource
)

// PlatformURI is a parsed platform URI.
type PlatformURI struct {
	Kind    URIKind
	Project string
	// Path is relative to the project root, without a leading slash.
	Path string
}

// PluginURI builds platform:/plugin/<project>/<path>.
func PluginURI(project, path string) string {
	return PluginPrefix + project + "/" + strings.TrimPrefix(path, "/")
}

// ResourceURI builds platform:/resource/<project>/<path>.
func ResourceURI(project, path string) string {
	return ResourcePrefix + project + "/" + strings.TrimPrefix(path, "/")
}

// ParsePlatformURI splits a platform URI into project name and relative path.
func ParsePlatformURI(uri string) (PlatformURI, error) {
	var (
		kind URIKind
		rest string
	)
	switch {
	case strings.HasPrefix(uri, PluginPrefix):
		kind, rest = URIPlugin, strings.TrimPrefix(uri, PluginPrefix)
	case strings.HasPrefix(uri, ResourcePrefix):
		kind, rest = URIResource, strings.TrimPrefix(uri, ResourcePrefix)
	default:
		return PlatformURI{}, fmt.Errorf("not a platform URI: %q", uri)
	}

	project, path, _ := strings.Cut(rest, "/")
	if project == "" {
		return PlatformURI{}, fmt.Errorf("platform URI %q has no project segment", uri)
	}

	return PlatformURI{Kind: kind, Project: project, Path: path}, nil
}

// String renders the URI back into its textual form.
func (u PlatformURI) String() string {
	if u.Kind == URIResource {
		return ResourceURI(u.Project, u.Path)
	}
	return PluginURI(u.Project, u.Path)
}
