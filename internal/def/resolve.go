package def

// DatumClass selects which namespace a datum reference resolves in.
type DatumClass int

const (
	// DatumVariable resolves in the variable namespace; re-exports carry
	// exactly one target.
	DatumVariable DatumClass = iota
	// DatumParameter resolves in the parameter namespace; re-exports may
	// fan out to several children.
	DatumParameter
)

// ResolveDatum recursively expands a datum reference, declared anywhere in
// the composite tree, down to the ordered set of leaf (path, name) bindings
// it actually denotes.
//
// Base case: on a leaf the datum resolves to itself, with an empty remaining
// sub-path. Recursive case: the re-export entry for the name is followed
// into each referenced child, and the child's name is prepended to every
// binding returned from below.
func ResolveDatum(d *ComponentDef, name string, class DatumClass) ([]Binding, error) {
	if d.IsLeaf() {
		switch class {
		case DatumVariable:
			if _, ok := d.Variable(name); !ok {
				return nil, &UnresolvableReferenceError{Datum: name}
			}
		case DatumParameter:
			if _, ok := d.Parameter(name); !ok {
				return nil, &UnresolvableReferenceError{Datum: name}
			}
		}
		return []Binding{{Name: name}}, nil
	}

	refs, err := reexportRefs(d, name, class)
	if err != nil {
		return nil, err
	}

	var out []Binding
	for _, ref := range refs {
		child, ok := d.Child(ref.Child)
		if !ok {
			return nil, &UnresolvableReferenceError{Path: Path{ref.Child}, Datum: ref.Datum}
		}
		sub, err := ResolveDatum(child, ref.Datum, class)
		if err != nil {
			return nil, prefixErr(err, ref.Child)
		}
		for _, b := range sub {
			out = append(out, Binding{Path: Path{ref.Child}.Join(b.Path), Name: b.Name})
		}
	}
	return out, nil
}

func reexportRefs(d *ComponentDef, name string, class DatumClass) ([]DatumRef, error) {
	switch class {
	case DatumVariable:
		v, ok := d.Variable(name)
		if !ok {
			return nil, &UnresolvableReferenceError{Datum: name}
		}
		if len(v.Refs) != 1 {
			return nil, structuralf("variable re-export %q on %q has %d targets, want exactly one", name, d.Name(), len(v.Refs))
		}
		return v.Refs, nil
	default:
		p, ok := d.Parameter(name)
		if !ok {
			return nil, &UnresolvableReferenceError{Datum: name}
		}
		if len(p.Refs) == 0 {
			return nil, structuralf("parameter re-export %q on %q has no targets", name, d.Name())
		}
		return p.Refs, nil
	}
}

// prefixErr extends an unresolvable reference's path with the child segment
// it was reached through, so the reported path is absolute from the caller.
func prefixErr(err error, child string) error {
	if u, ok := err.(*UnresolvableReferenceError); ok {
		return &UnresolvableReferenceError{Path: Path{child}.Join(u.Path), Datum: u.Datum}
	}
	return err
}
