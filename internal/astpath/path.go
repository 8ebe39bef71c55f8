// Package astpath provides stable, serializable addresses for nodes of a
// go/ast tree. An address is the list of struct fields and slice indices
// followed from the *ast.File root, so it can be recorded against one parse
// and re-resolved against a fresh parse of the same source.
package astpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPath is returned when an address cannot be resolved against a tree.
var ErrInvalidPath = errors.New("invalid tree path")

const separator = "."

// Key is one traversal step: either a struct field name or a slice index.
type Key struct {
	Field string
	Index int
}

// Field returns a key addressing a struct field.
func Field(name string) Key {
	return Key{Field: name, Index: -1}
}

// Index returns a key addressing a slice element.
func Index(i int) Key {
	return Key{Index: i}
}

// IsIndex reports whether the key addresses a slice element.
func (k Key) IsIndex() bool {
	return k.Field == ""
}

func (k Key) String() string {
	if k.IsIndex() {
		return strconv.Itoa(k.Index)
	}

	return k.Field
}

// Path addresses a node (or a non-node field) from the tree root.
type Path []Key

// Root is the empty path addressing the tree root itself.
var Root = Path{}

// Parse reads a path serialized with Path.String.
func Parse(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}

	parts := strings.Split(s, separator)
	path := make(Path, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: empty key in %q", ErrInvalidPath, s)
		}

		if i, err := strconv.Atoi(part); err == nil {
			if i < 0 {
				return nil, fmt.Errorf("%w: negative index in %q", ErrInvalidPath, s)
			}

			path = append(path, Index(i))

			continue
		}

		path = append(path, Field(part))
	}

	return path, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return p
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, k := range p {
		parts[i] = k.String()
	}

	return strings.Join(parts, separator)
}

// Append returns a new path extended with keys; p is never modified.
func (p Path) Append(keys ...Key) Path {
	out := make(Path, 0, len(p)+len(keys))
	out = append(out, p...)

	return append(out, keys...)
}

// Join resolves a relative path against p.
func (p Path) Join(rel Path) Path {
	return p.Append(rel...)
}

// Parent returns the path one step up; the root is its own parent.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}

	return p[: len(p)-1 : len(p)-1]
}

// Last returns the final key of the path.
func (p Path) Last() (Key, bool) {
	if len(p) == 0 {
		return Key{}, false
	}

	return p[len(p)-1], true
}

// HasPrefix reports whether prefix addresses p or one of its ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}

	for i := range prefix {
		if prefix[i] != p[i] {
			return false
		}
	}

	return true
}

// Equal reports whether two paths address the same location.
func (p Path) Equal(other Path) bool {
	return len(p) == len(other) && p.HasPrefix(other)
}

// Ancestors returns p and every ancestor of p, innermost first.
func (p Path) Ancestors() []Path {
	out := make([]Path, 0, len(p)+1)
	for i := len(p); i >= 0; i-- {
		out = append(out, p[:i:i])
	}

	return out
}
