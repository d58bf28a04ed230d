package def

import (
	"github.com/vk/stepmill/internal/dag"
)

// ComponentClass tags a ComponentDef as a leaf or a composite.
type ComponentClass int

const (
	// ClassLeaf marks a component with no children; it owns concrete
	// storage and optional step logic located by its kind.
	ClassLeaf ComponentClass = iota
	// ClassComposite marks a named grouping of child components with its
	// own connections and re-exported datums.
	ClassComposite
)

// ComponentDef is the declarative specification of one component. The
// shared core (name, variables, parameters, dimensions, validity period)
// applies to both classes; the composite-only fields stay nil on leaves.
type ComponentDef struct {
	name  string
	class ComponentClass
	kind  ComponentKind

	variables  []*VariableDef
	varIndex   map[string]*VariableDef
	parameters []*ParameterDef
	paramIndex map[string]*ParameterDef
	dimensions []*DimensionDef
	dimIndex   map[string]*DimensionDef

	// first/last bound the component's validity period; nil inherits the
	// enclosing model's bounds at build time.
	first *int
	last  *int

	uniformStep bool

	// Composite-only fields.
	children       []*ComponentDef
	childIndex     map[string]*ComponentDef
	internal       []*InternalConnection
	external       []*ExternalConnection
	externalParams map[string]Parameter
	backups        []string

	// ordering holds extra src-before-dst child constraints pushed down from
	// connections declared on ancestor composites whose resolved endpoints
	// both live inside this composite.
	ordering [][2]string

	// sorted caches the dependency-respecting child run order; any
	// structural mutation invalidates it.
	sorted []string
}

// NewLeaf creates a leaf component definition of the given kind.
func NewLeaf(name string, kind ComponentKind) *ComponentDef {
	d := newComponent(name, ClassLeaf)
	d.kind = kind
	return d
}

// NewComposite creates an empty composite component definition.
func NewComposite(name string) *ComponentDef {
	d := newComponent(name, ClassComposite)
	d.childIndex = make(map[string]*ComponentDef)
	d.externalParams = make(map[string]Parameter)
	return d
}

func newComponent(name string, class ComponentClass) *ComponentDef {
	return &ComponentDef{
		name:       name,
		class:      class,
		varIndex:   make(map[string]*VariableDef),
		paramIndex: make(map[string]*ParameterDef),
		dimIndex:   make(map[string]*DimensionDef),
	}
}

// Name returns the component's name within its parent composite.
func (d *ComponentDef) Name() string { return d.name }

// Class returns the leaf/composite tag.
func (d *ComponentDef) Class() ComponentClass { return d.class }

// IsLeaf reports whether the component has no children.
func (d *ComponentDef) IsLeaf() bool { return d.class == ClassLeaf }

// Kind returns the component-kind identifier (zero on composites).
func (d *ComponentDef) Kind() ComponentKind { return d.kind }

// SetPeriod declares the component's own first/last validity period.
func (d *ComponentDef) SetPeriod(first, last int) {
	d.first = &first
	d.last = &last
}

// Period returns the declared validity bounds; nil means "inherit".
func (d *ComponentDef) Period() (first, last *int) { return d.first, d.last }

// SetUniformStep flags the component as requiring a fixed-step schedule.
func (d *ComponentDef) SetUniformStep(uniform bool) { d.uniformStep = uniform }

// UniformStep reports the uniform-timestep flag.
func (d *ComponentDef) UniformStep() bool { return d.uniformStep }

// AddVariable declares a variable. Names are unique within the component's
// variable namespace, and a composite-level variable re-export carries
// exactly one ref.
func (d *ComponentDef) AddVariable(v *VariableDef) error {
	if _, dup := d.varIndex[v.Name]; dup {
		return structuralf("component %q already declares variable %q", d.name, v.Name)
	}
	if len(v.Refs) > 1 {
		return structuralf("variable re-export %q on %q has %d targets, want exactly one", v.Name, d.name, len(v.Refs))
	}
	if d.class == ClassLeaf && len(v.Refs) > 0 {
		return structuralf("leaf %q cannot re-export variable %q", d.name, v.Name)
	}
	d.variables = append(d.variables, v)
	d.varIndex[v.Name] = v
	return nil
}

// AddParameter declares a parameter. Names are unique within the component's
// parameter namespace; composite-level refs may fan out.
func (d *ComponentDef) AddParameter(p *ParameterDef) error {
	if _, dup := d.paramIndex[p.Name]; dup {
		return structuralf("component %q already declares parameter %q", d.name, p.Name)
	}
	if d.class == ClassLeaf && len(p.Refs) > 0 {
		return structuralf("leaf %q cannot re-export parameter %q", d.name, p.Name)
	}
	d.parameters = append(d.parameters, p)
	d.paramIndex[p.Name] = p
	return nil
}

// AddDimension declares a dimension name the component's datums index over.
func (d *ComponentDef) AddDimension(name string) error {
	if _, dup := d.dimIndex[name]; dup {
		return structuralf("component %q already declares dimension %q", d.name, name)
	}
	dim := &DimensionDef{Name: name}
	d.dimensions = append(d.dimensions, dim)
	d.dimIndex[name] = dim
	return nil
}

// Variable looks up a declared variable by name.
func (d *ComponentDef) Variable(name string) (*VariableDef, bool) {
	v, ok := d.varIndex[name]
	return v, ok
}

// Parameter looks up a declared parameter by name.
func (d *ComponentDef) Parameter(name string) (*ParameterDef, bool) {
	p, ok := d.paramIndex[name]
	return p, ok
}

// Variables returns the declared variables in declaration order.
func (d *ComponentDef) Variables() []*VariableDef { return d.variables }

// Parameters returns the declared parameters in declaration order.
func (d *ComponentDef) Parameters() []*ParameterDef { return d.parameters }

// Dimensions returns the declared dimensions in declaration order.
func (d *ComponentDef) Dimensions() []*DimensionDef { return d.dimensions }

// AddChild inserts a child definition. Insertion order is the declared
// order; the dependency-respecting run order is computed lazily from it.
func (d *ComponentDef) AddChild(child *ComponentDef) error {
	if d.class != ClassComposite {
		return structuralf("leaf %q cannot hold child components", d.name)
	}
	if _, dup := d.childIndex[child.name]; dup {
		return structuralf("composite %q already holds a child named %q", d.name, child.name)
	}
	d.children = append(d.children, child)
	d.childIndex[child.name] = child
	d.sorted = nil
	return nil
}

// Child looks up a direct child by name.
func (d *ComponentDef) Child(name string) (*ComponentDef, bool) {
	c, ok := d.childIndex[name]
	return c, ok
}

// Children returns the direct children in declared order.
func (d *ComponentDef) Children() []*ComponentDef { return d.children }

// Descend walks the composite tree along path and returns the definition it
// locates.
func (d *ComponentDef) Descend(path Path) (*ComponentDef, error) {
	cur := d
	for i, seg := range path {
		next, ok := cur.Child(seg)
		if !ok {
			return nil, &UnresolvableReferenceError{Path: path[:i+1]}
		}
		cur = next
	}
	return cur, nil
}

// ConnectInternal declares a component-to-component connection within this
// composite's direct children (either endpoint may resolve deeper through
// re-exports).
func (d *ComponentDef) ConnectInternal(conn *InternalConnection) error {
	if d.class != ClassComposite {
		return structuralf("leaf %q cannot hold connections", d.name)
	}
	d.internal = append(d.internal, conn)
	if conn.Backup != "" {
		d.backups = append(d.backups, conn.Backup)
	}
	d.sorted = nil
	return nil
}

// ConnectExternal wires a destination parameter to a named value in this
// composite's external-parameter table.
func (d *ComponentDef) ConnectExternal(dstPath Path, dstName, paramName string) error {
	if d.class != ClassComposite {
		return structuralf("leaf %q cannot hold connections", d.name)
	}
	d.external = append(d.external, &ExternalConnection{DstPath: dstPath, DstName: dstName, ParamName: paramName})
	return nil
}

// SetExternalValue stores a named external parameter value on the composite.
func (d *ComponentDef) SetExternalValue(name string, p Parameter) error {
	if d.class != ClassComposite {
		return structuralf("leaf %q cannot hold external values", d.name)
	}
	d.externalParams[name] = p
	return nil
}

// ExternalValue looks up a named external parameter value.
func (d *ComponentDef) ExternalValue(name string) (Parameter, bool) {
	p, ok := d.externalParams[name]
	return p, ok
}

// InternalConnections returns the internal connections in declared order.
func (d *ComponentDef) InternalConnections() []*InternalConnection { return d.internal }

// ExternalConnections returns the external connections in declared order.
func (d *ComponentDef) ExternalConnections() []*ExternalConnection { return d.external }

// Backups returns the backup parameter names in declared order.
func (d *ComponentDef) Backups() []string { return d.backups }

// AddOrdering records a run-order constraint between two direct children
// without a connection declared at this level, for connections on an
// ancestor composite that resolve into this one.
func (d *ComponentDef) AddOrdering(src, dst string) error {
	if d.class != ClassComposite {
		return structuralf("leaf %q cannot hold run-order constraints", d.name)
	}
	d.ordering = append(d.ordering, [2]string{src, dst})
	d.sorted = nil
	return nil
}

// SortedChildren returns the composite's dependency-respecting run order:
// declared order refined so that a connection's source child runs before
// its destination child. Connections whose endpoints both descend into the
// same child contribute nothing here; the builder pushes those down as
// ordering constraints once the endpoints are resolved. The result is
// cached until the next mutation.
func (d *ComponentDef) SortedChildren() ([]string, error) {
	if d.sorted != nil {
		return d.sorted, nil
	}

	g := dag.New()
	for _, c := range d.children {
		g.AddNode(c.name)
	}
	for _, conn := range d.internal {
		if len(conn.SrcPath) == 0 || len(conn.DstPath) == 0 {
			continue
		}
		src, dst := conn.SrcPath[0], conn.DstPath[0]
		if src == dst {
			continue
		}
		if err := g.AddEdge(src, dst); err != nil {
			return nil, &UnresolvableReferenceError{Path: Path{src}, Datum: conn.SrcName}
		}
	}
	for _, e := range d.ordering {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return nil, structuralf("composite %q cannot order %q before %q: %v", d.name, e[0], e[1], err)
		}
	}

	if err := g.DetectCycles(); err != nil {
		return nil, err
	}
	sorted, err := g.TopoSort()
	if err != nil {
		return nil, err
	}
	d.sorted = sorted
	return sorted, nil
}
