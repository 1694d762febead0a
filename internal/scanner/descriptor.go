package scanner

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// SymbolicNameHeader is the manifest attribute holding a bundle's logical name.
const SymbolicNameHeader = "Bundle-SymbolicName"

// ErrNoSymbolicName reports a manifest without a Bundle-SymbolicName, such as
// the manifest of a plain JAR.
var ErrNoSymbolicName = errors.New("manifest has no " + SymbolicNameHeader + " attribute")

// ParseProjectName returns the text of the first <name> element below the
// document root of a project descriptor.
func ParseProjectName(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	depth := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return "", errors.New("project descriptor has no <name> element")
		}
		if err != nil {
			return "", fmt.Errorf("parsing project descriptor: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth > 0 && t.Name.Local == "name" {
				var v struct {
					Text string `xml:",chardata"`
				}
				if err := dec.DecodeElement(&v, &t); err != nil {
					return "", fmt.Errorf("parsing project descriptor: %w", err)
				}
				name := strings.TrimSpace(v.Text)
				if name == "" {
					return "", errors.New("project descriptor has an empty <name> element")
				}
				return name, nil
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
}

// ParseSymbolicName reads the main section of a JAR manifest and returns the
// symbolic name with any ;-delimited directives stripped.
func ParseSymbolicName(r io.Reader) (string, error) {
	attrs, err := readMainAttributes(r)
	if err != nil {
		return "", err
	}

	value, ok := attrs[strings.ToLower(SymbolicNameHeader)]
	if !ok {
		return "", ErrNoSymbolicName
	}

	name, _, _ := strings.Cut(value, ";")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("manifest has an empty %s attribute", SymbolicNameHeader)
	}
	return name, nil
}

// readMainAttributes parses manifest headers up to the first blank line.
// Keys are lower-cased since manifest attribute names are case-insensitive.
// A line starting with a single space continues the previous value.
func readMainAttributes(r io.Reader) (map[string]string, error) {
	attrs := make(map[string]string)
	sc := bufio.NewScanner(r)

	var key string
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, " ") {
			if key == "" {
				return nil, errors.New("manifest continuation line without a header")
			}
			attrs[key] += line[1:]
			continue
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("invalid manifest header %q", line)
		}
		key = strings.ToLower(strings.TrimSpace(name))
		attrs[key] = strings.TrimPrefix(value, " ")
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	return attrs, nil
}
