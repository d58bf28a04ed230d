package def

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/stepmill/internal/dims"
	"github.com/vk/stepmill/internal/schedule"
)

// ModelDefinition is the top-level composite: it additionally owns the
// named-dimension table realizing index spaces, the time schedule every
// allocated array is parameterized by, and the default numeric type used
// for storage.
type ModelDefinition struct {
	root       *ComponentDef
	sched      schedule.Schedule
	dimensions []*dims.Dimension
	dimIndex   map[string]*dims.Dimension
	numberType cty.Type
}

// NewModel creates a model definition rooted in an empty composite and
// indexed by the given time schedule.
func NewModel(name string, sched schedule.Schedule) *ModelDefinition {
	return &ModelDefinition{
		root:       NewComposite(name),
		sched:      sched,
		dimIndex:   make(map[string]*dims.Dimension),
		numberType: cty.Number,
	}
}

// Root returns the model's top-level composite definition.
func (m *ModelDefinition) Root() *ComponentDef { return m.root }

// Schedule returns the model's realized time dimension.
func (m *ModelDefinition) Schedule() schedule.Schedule { return m.sched }

// NumberType returns the default numeric type for array storage.
func (m *ModelDefinition) NumberType() cty.Type { return m.numberType }

// AddDimension realizes a named dimension in the model's table.
func (m *ModelDefinition) AddDimension(d *dims.Dimension) error {
	if _, dup := m.dimIndex[d.Name()]; dup {
		return structuralf("model already defines dimension %q", d.Name())
	}
	m.dimensions = append(m.dimensions, d)
	m.dimIndex[d.Name()] = d
	return nil
}

// Dimension looks up a realized dimension by name.
func (m *ModelDefinition) Dimension(name string) (*dims.Dimension, bool) {
	d, ok := m.dimIndex[name]
	return d, ok
}

// Dimensions returns all realized dimensions in declared order.
func (m *ModelDefinition) Dimensions() []*dims.Dimension { return m.dimensions }

// Bounds returns the model's overall first/last valid time, taken from the
// schedule.
func (m *ModelDefinition) Bounds() (first, last int) {
	return m.sched.TimeAt(0), m.sched.TimeAt(m.sched.Len() - 1)
}

// LeafEntry pairs a leaf definition with its absolute path in the tree.
type LeafEntry struct {
	Path Path
	Def  *ComponentDef
}

// Leaves enumerates every leaf definition in depth-first declared order.
func (m *ModelDefinition) Leaves() []LeafEntry {
	var out []LeafEntry
	var walk func(prefix Path, d *ComponentDef)
	walk = func(prefix Path, d *ComponentDef) {
		if d.IsLeaf() {
			out = append(out, LeafEntry{Path: prefix, Def: d})
			return
		}
		for _, c := range d.Children() {
			walk(prefix.Child(c.Name()), c)
		}
	}
	for _, c := range m.root.Children() {
		walk(Path{c.Name()}, c)
	}
	return out
}
