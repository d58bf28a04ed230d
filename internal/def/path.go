package def

import "strings"

// Path is an ordered sequence of component names locating a component inside
// arbitrarily nested composites. Two paths are equal iff their sequences
// match element-wise. The empty path denotes the current component.
type Path []string

// ParsePath splits a dotted path string ("a.b.c") into a Path.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, "."))
}

// String returns the dotted form of the path.
func (p Path) String() string { return strings.Join(p, ".") }

// Equal reports element-wise equality.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Child returns a new path extended by one name; the receiver is not mutated.
func (p Path) Child(name string) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = name
	return out
}

// Join returns a new path extended by all of suffix.
func (p Path) Join(suffix Path) Path {
	out := make(Path, 0, len(p)+len(suffix))
	out = append(out, p...)
	out = append(out, suffix...)
	return out
}
