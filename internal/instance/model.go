package instance

import (
	"context"
	"fmt"
	"math"

	"github.com/vk/stepmill/internal/ctxlog"
	"github.com/vk/stepmill/internal/def"
	"github.com/vk/stepmill/internal/schedule"
	"github.com/vk/stepmill/internal/storage"
)

// ModelInstance is the fully built top-level composite plus the exact
// definition snapshot it was built from. The snapshot is kept for later
// introspection and is never mutated post-build.
type ModelInstance struct {
	root  *Composite
	model *def.ModelDefinition
	sched schedule.Schedule

	// leaves holds every leaf in global run order: each composite's
	// dependency-sorted child order, flattened depth-first.
	leaves      []*Leaf
	leafIndex   map[string]*Leaf
	initialized bool
}

// NewModelInstance packages a built root composite with its definition
// snapshot.
func NewModelInstance(root *Composite, snapshot *def.ModelDefinition) *ModelInstance {
	m := &ModelInstance{
		root:      root,
		model:     snapshot,
		sched:     snapshot.Schedule(),
		leaves:    root.Leaves(),
		leafIndex: make(map[string]*Leaf),
	}
	for _, l := range m.leaves {
		m.leafIndex[l.path.String()] = l
	}
	return m
}

// Definition returns the definition snapshot the instance was built from.
func (m *ModelInstance) Definition() *def.ModelDefinition { return m.model }

// Root returns the top-level composite instance.
func (m *ModelInstance) Root() *Composite { return m.root }

// LeafCount returns the number of leaf instances.
func (m *ModelInstance) LeafCount() int { return len(m.leaves) }

// Leaf locates a leaf instance by component path.
func (m *ModelInstance) Leaf(path def.Path) (*Leaf, bool) {
	l, ok := m.leafIndex[path.String()]
	return l, ok
}

// Run advances every component's clock by the requested number of steps,
// invoking step hooks in dependency order. Init hooks run exactly once, on
// the first call. Components outside their validity period are skipped.
func (m *ModelInstance) Run(ctx context.Context, steps int) error {
	logger := ctxlog.FromContext(ctx)

	if !m.initialized {
		for _, l := range m.leaves {
			if l.init == nil {
				continue
			}
			sc := &StepContext{leaf: l, pos: l.clock.Pos(), time: l.clock.Time()}
			if err := l.init(ctx, sc); err != nil {
				return fmt.Errorf("init %s: %w", l.path, err)
			}
		}
		m.initialized = true
		logger.Debug("Model initialized.", "leaf_count", len(m.leaves))
	}

	for s := 0; s < steps; s++ {
		for _, l := range m.leaves {
			if l.clock.Finished() || l.step == nil {
				continue
			}
			t := l.clock.Time()
			if t < l.first || t > l.last {
				continue
			}
			sc := &StepContext{leaf: l, pos: l.clock.Pos(), time: t}
			if err := l.step(ctx, sc); err != nil {
				return fmt.Errorf("step %s at %d: %w", l.path, t, err)
			}
		}
		for _, l := range m.leaves {
			l.clock.Advance()
		}
	}
	logger.Debug("Run finished.", "steps", steps)
	return nil
}

// Series is a read-only snapshot of one datum: one row of column values per
// time position (a single row for scalar and dimension-only datums).
// Missing elements read as NaN.
type Series struct {
	Times []int
	Data  [][]float64
}

// Value reads a datum by component path and name. The path may locate a
// leaf directly, or a composite whose re-export table maps the name down to
// a leaf datum. Variables are searched before parameters.
func (m *ModelInstance) Value(path def.Path, name string) (*Series, error) {
	if l, ok := m.leafIndex[path.String()]; ok {
		return l.valueOf(name)
	}

	d, err := m.model.Root().Descend(path)
	if err != nil {
		return nil, err
	}
	binds, rerr := def.ResolveDatum(d, name, def.DatumVariable)
	if rerr != nil {
		if binds, rerr = def.ResolveDatum(d, name, def.DatumParameter); rerr != nil {
			return nil, &def.UnresolvableReferenceError{Path: path, Datum: name}
		}
	}
	target := path.Join(binds[0].Path)
	l, ok := m.leafIndex[target.String()]
	if !ok {
		return nil, &def.UnresolvableReferenceError{Path: target, Datum: binds[0].Name}
	}
	return l.valueOf(binds[0].Name)
}

func (l *Leaf) valueOf(name string) (*Series, error) {
	if h, ok := l.vars[name]; ok {
		return snapshot(h), nil
	}
	if b, ok := l.params[name]; ok {
		return snapshot(b.Handle), nil
	}
	return nil, &def.UnresolvableReferenceError{Path: l.path, Datum: name}
}

func snapshot(h storage.Handle) *Series {
	switch v := h.(type) {
	case *storage.ScalarCell:
		f, ok := v.Get()
		if !ok {
			f = math.NaN()
		}
		return &Series{Data: [][]float64{{f}}}
	case *storage.TimeArray:
		s := &Series{Times: v.Schedule().Times(), Data: make([][]float64, v.Len())}
		for pos := 0; pos < v.Len(); pos++ {
			s.Data[pos] = v.Row(pos)
		}
		return s
	case *storage.NDArray:
		row := make([]float64, v.Len())
		copy(row, v.Data())
		return &Series{Data: [][]float64{row}}
	}
	return nil
}
