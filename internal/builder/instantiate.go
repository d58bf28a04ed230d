package builder

import (
	"fmt"

	"github.com/vk/stepmill/internal/def"
	"github.com/vk/stepmill/internal/instance"
	"github.com/vk/stepmill/internal/storage"
)

// instantiate builds the instance tree bottom-up: leaves first, then
// composites wrapping their already-built children in dependency-sorted
// order. It returns the node together with its effective validity bounds.
func (b *builder) instantiate(path def.Path, d *def.ComponentDef) (instance.Node, int, int, error) {
	first, last := b.effectiveBounds(d)

	if d.IsLeaf() {
		leaf, err := b.instantiateLeaf(path, d, first, last)
		if err != nil {
			return nil, 0, 0, err
		}
		return leaf, first, last, nil
	}

	comp := instance.NewComposite(d.Name(), path)
	sorted, err := d.SortedChildren()
	if err != nil {
		return nil, 0, 0, err
	}
	for _, name := range sorted {
		child, _ := d.Child(name)
		node, cf, cl, err := b.instantiate(path.Child(name), child)
		if err != nil {
			return nil, 0, 0, err
		}
		comp.AddChild(node, cf, cl)
	}
	return comp, first, last, nil
}

func (b *builder) instantiateLeaf(path def.Path, d *def.ComponentDef, first, last int) (*instance.Leaf, error) {
	init, step, err := b.hooks(path, d)
	if err != nil {
		return nil, err
	}

	leaf := instance.NewLeaf(instance.LeafSpec{
		Name:  d.Name(),
		Path:  path,
		First: first,
		Last:  last,
		Init:  init,
		Step:  step,
		Dims:  b.model.Dimension,
	}, b.sched)

	for _, v := range d.Variables() {
		leaf.BindVariable(v.Name, b.allocs[bindKey(path, v.Name)])
	}
	for _, p := range d.Parameters() {
		if bnd, ok := b.paramBinds[bindKey(path, p.Name)]; ok {
			leaf.BindParameter(p.Name, bnd)
			continue
		}
		// Completeness guarantees a default exists here.
		leaf.BindParameter(p.Name, &instance.Binding{Handle: storage.NewScalarValue(*p.Default)})
	}
	return leaf, nil
}

// hooks discovers the leaf's init/step logic in the registry. A registered
// kind without one of the hooks is an intentional no-op; a kind the registry
// has never heard of is a definition error.
func (b *builder) hooks(path def.Path, d *def.ComponentDef) (init, step instance.HookFunc, err error) {
	kind := d.Kind()
	if kind.IsZero() {
		return nil, nil, &def.StructuralError{Msg: fmt.Sprintf("leaf %s declared without a component kind", path)}
	}
	if kind == connectorKind {
		impl := connectorImpl()
		return impl.Init, impl.Step, nil
	}
	rc, ok := b.reg.Component(kind)
	if !ok {
		return nil, nil, &def.StructuralError{Msg: fmt.Sprintf("leaf %s has unregistered component kind %q", path, kind)}
	}
	if rc.Impl == nil {
		return nil, nil, nil
	}
	return rc.Impl.Init, rc.Impl.Step, nil
}

// effectiveBounds propagates the model's overall first/last valid period
// into components that did not declare their own.
func (b *builder) effectiveBounds(d *def.ComponentDef) (int, int) {
	first, last := b.model.Bounds()
	if f, l := d.Period(); f != nil {
		first = *f
		if l != nil {
			last = *l
		}
	} else if l != nil {
		last = *l
	}
	return first, last
}
