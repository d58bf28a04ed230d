package instance

import (
	"context"

	"github.com/vk/stepmill/internal/def"
	"github.com/vk/stepmill/internal/dims"
	"github.com/vk/stepmill/internal/schedule"
	"github.com/vk/stepmill/internal/storage"
)

// HookFunc is the signature of a component's optional init and step
// capabilities. A nil hook is legal and means "no-op".
type HookFunc func(ctx context.Context, sc *StepContext) error

// DimLookup resolves a realized dimension by name; the builder wires it to
// the model's named-dimension table.
type DimLookup func(name string) (*dims.Dimension, bool)

// Binding attaches a leaf parameter slot to the storage it aliases. The
// handle is shared, never copied: every binding of the same source reads
// the same allocation.
type Binding struct {
	Handle storage.Handle
	// Offset shifts time-indexed reads back by this many positions.
	Offset int
	// OverTime marks an NDArray whose leading axis is the time axis.
	OverTime bool
}

// Node is one vertex of the built instance tree.
type Node interface {
	Name() string
	Path() def.Path
	// Leaves returns the leaf instances under the node in run order.
	Leaves() []*Leaf
	// ChildNodes returns the direct children in run order; nil on leaves.
	ChildNodes() []Node
}

// Leaf is the built counterpart of a leaf definition: concrete variable
// storage, parameter bindings (aliases, not copies), effective validity
// bounds, and optional init/step hooks.
type Leaf struct {
	name  string
	path  def.Path
	first int
	last  int

	vars       map[string]storage.Handle
	varOrder   []string
	params     map[string]*Binding
	paramOrder []string

	init HookFunc
	step HookFunc

	clock *schedule.Clock
	dims  DimLookup
}

// LeafSpec carries everything the builder knows when instantiating a leaf.
type LeafSpec struct {
	Name        string
	Path        def.Path
	First, Last int
	Init, Step  HookFunc
	Dims        DimLookup
}

// NewLeaf constructs an empty leaf instance; the builder binds storage
// afterwards.
func NewLeaf(spec LeafSpec, sched schedule.Schedule) *Leaf {
	return &Leaf{
		name:   spec.Name,
		path:   spec.Path,
		first:  spec.First,
		last:   spec.Last,
		init:   spec.Init,
		step:   spec.Step,
		vars:   make(map[string]storage.Handle),
		params: make(map[string]*Binding),
		clock:  schedule.NewClock(sched),
		dims:   spec.Dims,
	}
}

func (l *Leaf) Name() string        { return l.name }
func (l *Leaf) Path() def.Path      { return l.path }
func (l *Leaf) Leaves() []*Leaf     { return []*Leaf{l} }
func (l *Leaf) ChildNodes() []Node  { return nil }
func (l *Leaf) Bounds() (int, int)  { return l.first, l.last }
func (l *Leaf) Clock() *schedule.Clock { return l.clock }

// BindVariable attaches the leaf's own storage allocation for a variable.
func (l *Leaf) BindVariable(name string, h storage.Handle) {
	if _, dup := l.vars[name]; !dup {
		l.varOrder = append(l.varOrder, name)
	}
	l.vars[name] = h
}

// BindParameter attaches a parameter slot to shared storage.
func (l *Leaf) BindParameter(name string, b *Binding) {
	if _, dup := l.params[name]; !dup {
		l.paramOrder = append(l.paramOrder, name)
	}
	l.params[name] = b
}

// Variable returns the storage handle behind a variable.
func (l *Leaf) Variable(name string) (storage.Handle, bool) {
	h, ok := l.vars[name]
	return h, ok
}

// ParameterBinding returns the binding behind a parameter.
func (l *Leaf) ParameterBinding(name string) (*Binding, bool) {
	b, ok := l.params[name]
	return b, ok
}

// VariableNames returns the bound variable names in binding order.
func (l *Leaf) VariableNames() []string { return l.varOrder }

// ParameterNames returns the bound parameter names in binding order.
func (l *Leaf) ParameterNames() []string { return l.paramOrder }

// Composite is a built grouping of child instances. It has no executable
// body of its own; running it means running its children in sorted order.
type Composite struct {
	name     string
	path     def.Path
	children []Node
	// childFirst/childLast mirror each child's effective bounds, parallel
	// to children.
	childFirst []int
	childLast  []int
	clocks     []*schedule.Clock
}

// NewComposite constructs an empty composite instance.
func NewComposite(name string, path def.Path) *Composite {
	return &Composite{name: name, path: path}
}

func (c *Composite) Name() string   { return c.name }
func (c *Composite) Path() def.Path { return c.path }

// AddChild appends an already-built child; call order is the run order.
func (c *Composite) AddChild(n Node, first, last int) {
	c.children = append(c.children, n)
	c.childFirst = append(c.childFirst, first)
	c.childLast = append(c.childLast, last)
	for _, l := range n.Leaves() {
		c.clocks = append(c.clocks, l.Clock())
	}
}

func (c *Composite) ChildNodes() []Node { return c.children }

// ChildBounds returns the recorded bounds of the i-th child.
func (c *Composite) ChildBounds(i int) (first, last int) {
	return c.childFirst[i], c.childLast[i]
}

// Clocks returns the clocks driving the composite's sub-schedules.
func (c *Composite) Clocks() []*schedule.Clock { return c.clocks }

func (c *Composite) Leaves() []*Leaf {
	var out []*Leaf
	for _, child := range c.children {
		out = append(out, child.Leaves()...)
	}
	return out
}
