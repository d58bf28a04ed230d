package def

// ComponentKind identifies the compiled logic backing a leaf component as a
// module + name pair, e.g. "core.linear". The registry maps kinds to their
// optional init/step implementations.
type ComponentKind struct {
	Module string
	Name   string
}

// String returns the "module.name" form of the kind.
func (k ComponentKind) String() string { return k.Module + "." + k.Name }

// IsZero reports whether the kind is unset.
func (k ComponentKind) IsZero() bool { return k.Module == "" && k.Name == "" }

// DatumRef points a composite-level re-export at a direct child's datum.
type DatumRef struct {
	Child string
	Datum string
}

// VariableDef declares one variable of a component: a named, optionally
// dimensioned output slot. On a composite, Refs re-exports exactly one
// child datum under this name.
type VariableDef struct {
	Name string
	Unit string
	// Dims lists dimension names sizing the variable's axes; the reserved
	// name "time" selects time-indexed storage.
	Dims []string
	Refs []DatumRef
}

// ParameterDef declares one parameter of a component: a named input slot.
// On a composite, Refs may fan out to several children that consume the
// same value. Default, when non-nil, satisfies the completeness check if
// no connection binds the parameter.
type ParameterDef struct {
	Name    string
	Unit    string
	Dims    []string
	Default *float64
	Refs    []DatumRef
}

// DimensionDef declares a dimension a component's datums may be indexed
// over. It may stay unbound on the component; the model's named-dimension
// table realizes it at build time.
type DimensionDef struct {
	Name string
}

// TimeDim is the reserved dimension name selecting the model's time axis.
const TimeDim = "time"
