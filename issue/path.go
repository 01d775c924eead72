package issue

import (
	"strconv"
	"strings"
)

// Path builds JSON Pointer paths in a chain-safe way. The zero value is the
// document root.
type Path struct {
	parts []string
}

// Root returns the root path ("/").
func Root() Path { return Path{} }

// Field appends an object key, escaped per RFC 6901.
func (p Path) Field(name string) Path {
	if name == "" {
		return p
	}
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return Path{parts: append(append([]string{}, p.parts...), esc)}
}

// Index appends an array index.
func (p Path) Index(i int) Path {
	return Path{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

// Pointer renders the path as a JSON Pointer string.
func (p Path) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}
