package resolver

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// CodeSource reports where a piece of code was loaded from: an archive file,
// a binary, or a file inside a loose directory layout.
type CodeSource interface {
	// CodeLocation returns the artifact path. It may be a file URL or a
	// percent-encoded path; ResolveLocation decodes it.
	CodeLocation() (string, error)
}

// PathSource is a CodeSource with a fixed location.
type PathSource string

// CodeLocation implements CodeSource.
func (p PathSource) CodeLocation() (string, error) {
	if p == "" {
		return "", errors.New("empty code location")
	}
	return string(p), nil
}

type callerSource struct {
	file string
	ok   bool
}

// Caller returns a CodeSource for the source file of the function calling Caller.
// It only yields a usable location when the source tree is present at run time,
// such as in tests or `go run`.
func Caller() CodeSource {
	_, file, _, ok := runtime.Caller(1)
	return callerSource{file: file, ok: ok}
}

func (c callerSource) CodeLocation() (string, error) {
	if !c.ok || c.file == "" {
		return "", errors.New("caller information unavailable")
	}
	return c.file, nil
}

type executableSource struct{}

// Executable returns a CodeSource for the running binary.
func Executable() CodeSource {
	return executableSource{}
}

func (executableSource) CodeLocation() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}

// decodeLocation turns a file URL or percent-encoded path into a plain OS path.
func decodeLocation(raw string) (string, error) {
	if strings.HasPrefix(raw, "file:") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("parsing code location %q: %w", raw, err)
		}
		p := u.Path
		if p == "" {
			p = u.Opaque
		}
		return filepath.FromSlash(windowsDrive(p)), nil
	}

	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("decoding code location %q: %w", raw, err)
	}
	return filepath.FromSlash(decoded), nil
}

// windowsDrive strips the slash URL paths put in front of a drive letter.
func windowsDrive(p string) string {
	if runtime.GOOS == "windows" && len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		return p[1:]
	}
	return p
}
