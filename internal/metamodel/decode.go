package metamodel

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"path"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
	k8syaml "sigs.k8s.io/yaml"

	"github.com/mdsdtools/standalone/internal/core"
)

// Decoder turns the bytes of a metamodel resource into its root package.
type Decoder func(name string, data []byte) (*core.Package, error)

// DefaultDecoders maps file extensions to decoders.
func DefaultDecoders() map[string]Decoder {
	return map[string]Decoder{
		".ecore": DecodeEcore,
		".xmi":   DecodeEcore,
		".yaml":  DecodeYAML,
		".yml":   DecodeYAML,
		".json":  DecodeJSON,
		".cue":   DecodeCUE,
	}
}

func decoderFor(decoders map[string]Decoder, name string) (Decoder, error) {
	ext := strings.ToLower(path.Ext(name))
	if d, ok := decoders[ext]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("no decoder for %q files", ext)
}

// xmlPackage mirrors the attributes of an EPackage element that matter for registration.
type xmlPackage struct {
	XMLName     xml.Name
	Name        string       `xml:"name,attr"`
	NsURI       string       `xml:"nsURI,attr"`
	NsPrefix    string       `xml:"nsPrefix,attr"`
	Subpackages []xmlPackage `xml:"eSubpackages"`
	Contents    []xmlPackage `xml:"EPackage"`
}

func (x xmlPackage) toPackage() *core.Package {
	pkg := &core.Package{Name: x.Name, NsURI: x.NsURI, NsPrefix: x.NsPrefix}
	for _, sub := range x.Subpackages {
		pkg.Subpackages = append(pkg.Subpackages, sub.toPackage())
	}
	return pkg
}

// DecodeEcore reads an Ecore XMI document. When the document root is an
// xmi:XMI wrapper the first contained EPackage is used.
func DecodeEcore(name string, data []byte) (*core.Package, error) {
	var root xmlPackage
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	if root.XMLName.Local == "XMI" {
		if len(root.Contents) == 0 {
			return nil, fmt.Errorf("%s contains no EPackage", name)
		}
		root = root.Contents[0]
	}
	if root.XMLName.Local != "EPackage" {
		return nil, fmt.Errorf("%s: root element is %q, not EPackage", name, root.XMLName.Local)
	}

	return root.toPackage(), nil
}

// DecodeYAML reads a package description in YAML.
func DecodeYAML(name string, data []byte) (*core.Package, error) {
	var pkg core.Package
	if err := yaml.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return checkRoot(name, &pkg)
}

// DecodeJSON reads a package description in JSON.
func DecodeJSON(name string, data []byte) (*core.Package, error) {
	var pkg core.Package
	if err := k8syaml.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return checkRoot(name, &pkg)
}

// cuePackageField holds the package description in CUE files.
const cuePackageField = "metamodel"

// DecodeCUE evaluates a CUE file and decodes its metamodel field. Subpackages
// may be shared through CUE references.
func DecodeCUE(name string, data []byte) (*core.Package, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(name))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compiling %s: %w", name, err)
	}

	field := v.LookupPath(cue.ParsePath(cuePackageField))
	if !field.Exists() {
		return nil, fmt.Errorf("%s has no %q field", name, cuePackageField)
	}
	if err := field.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validating %s: %w", name, err)
	}

	var pkg core.Package
	if err := field.Decode(&pkg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return checkRoot(name, &pkg)
}

func checkRoot(name string, pkg *core.Package) (*core.Package, error) {
	if pkg.Name == "" && pkg.NsURI == "" {
		return nil, errors.New(name + " does not describe a package")
	}
	return pkg, nil
}
