package builder

import (
	"fmt"

	"github.com/vk/stepmill/internal/def"
	"github.com/vk/stepmill/internal/instance"
	"github.com/vk/stepmill/internal/storage"
)

// bind expands every connection through path resolution and fills the
// parameter binding table. Every destination of a fan-out aliases the same
// source storage handle; nothing is ever copied.
func (b *builder) bind() error {
	return walkComposites(nil, b.model.Root(), func(prefix def.Path, c *def.ComponentDef) error {
		for _, conn := range c.InternalConnections() {
			if err := b.bindInternal(prefix, c, conn); err != nil {
				return err
			}
		}
		for _, conn := range c.ExternalConnections() {
			if err := b.bindExternal(prefix, c, conn); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *builder) bindInternal(prefix def.Path, c *def.ComponentDef, conn *def.InternalConnection) error {
	srcBinds, err := resolveEndpoint(c, conn.SrcPath, conn.SrcName, def.DatumVariable)
	if err != nil {
		return prefixUnresolvable(err, prefix)
	}
	src := srcBinds[0]
	absSrc := prefix.Join(src.Path)

	handle, ok := b.allocs[bindKey(absSrc, src.Name)]
	if !ok {
		return &def.UnresolvableReferenceError{Path: absSrc, Datum: src.Name}
	}

	srcLeaf, err := b.model.Root().Descend(absSrc)
	if err != nil {
		return err
	}
	vdef, _ := srcLeaf.Variable(src.Name)

	dstBinds, err := resolveEndpoint(c, conn.DstPath, conn.DstName, def.DatumParameter)
	if err != nil {
		return prefixUnresolvable(err, prefix)
	}

	for _, dst := range dstBinds {
		absDst := prefix.Join(dst.Path)
		dstLeaf, err := b.model.Root().Descend(absDst)
		if err != nil {
			return err
		}
		pdef, ok := dstLeaf.Parameter(dst.Name)
		if !ok {
			return &def.UnresolvableReferenceError{Path: absDst, Datum: dst.Name}
		}

		if !conn.IgnoreUnits && vdef != nil && vdef.Unit != "" && pdef.Unit != "" && vdef.Unit != pdef.Unit {
			return &def.UnitMismatchError{
				Src:     def.Binding{Path: absSrc, Name: src.Name},
				Dst:     def.Binding{Path: absDst, Name: dst.Name},
				SrcUnit: vdef.Unit,
				DstUnit: pdef.Unit,
			}
		}

		if err := b.pushOrdering(absSrc, absDst); err != nil {
			return err
		}
		b.paramBinds[bindKey(absDst, dst.Name)] = &instance.Binding{Handle: handle, Offset: conn.Offset}
	}
	return nil
}

// pushOrdering records the run-order constraint a resolved connection
// implies: at the composite where the source and destination leaf paths
// diverge, the source-side child must run before the destination-side
// child. Connections declared on an ancestor thereby still order siblings
// deep inside a shared child composite.
func (b *builder) pushOrdering(src, dst def.Path) error {
	i := 0
	for i < len(src) && i < len(dst) && src[i] == dst[i] {
		i++
	}
	if i == len(src) || i == len(dst) {
		// Both endpoints sit on the same leaf; nothing to order.
		return nil
	}
	comp, err := b.model.Root().Descend(src[:i])
	if err != nil {
		return err
	}
	return comp.AddOrdering(src[i], dst[i])
}

func (b *builder) bindExternal(prefix def.Path, c *def.ComponentDef, conn *def.ExternalConnection) error {
	value, ok := c.ExternalValue(conn.ParamName)
	if !ok {
		return &def.UnresolvableReferenceError{Path: prefix, Datum: conn.ParamName}
	}

	handle, overTime, err := b.externalHandle(prefix, conn.ParamName, value)
	if err != nil {
		return err
	}

	dstBinds, err := resolveEndpoint(c, conn.DstPath, conn.DstName, def.DatumParameter)
	if err != nil {
		return prefixUnresolvable(err, prefix)
	}
	for _, dst := range dstBinds {
		absDst := prefix.Join(dst.Path)
		b.paramBinds[bindKey(absDst, dst.Name)] = &instance.Binding{Handle: handle, OverTime: overTime}
	}
	return nil
}

// externalHandle realizes an external parameter value as a storage handle,
// cached per composite so every connection to the same value shares one
// handle: the raw scalar for a scalar parameter, a shared wrap of the
// array's own backing slice for an array parameter.
func (b *builder) externalHandle(prefix def.Path, name string, value def.Parameter) (storage.Handle, bool, error) {
	key := bindKey(prefix, name)
	if h, ok := b.externals[key]; ok {
		_, overTime := b.externalOverTime(value)
		return h, overTime, nil
	}

	switch p := value.(type) {
	case *def.ScalarParam:
		f, err := p.Float()
		if err != nil {
			return nil, false, err
		}
		h := storage.NewScalarValue(f)
		b.externals[key] = h
		return h, false, nil

	case *def.ArrayParam:
		dimLens, overTime := b.externalOverTime(p)
		nd, err := storage.WrapNDArray(dimLens, p.Values())
		if err != nil {
			return nil, false, &def.StructuralError{
				Msg: fmt.Sprintf("external parameter %q: %v", name, err),
			}
		}
		b.externals[key] = nd
		return nd, overTime, nil
	}
	return nil, false, &def.StructuralError{Msg: fmt.Sprintf("external parameter %q has unknown value kind", name)}
}

// externalOverTime realizes an array parameter's declared dimension names
// into axis lengths; an empty declaration leaves the identity unknown and
// treats the array as one flat axis.
func (b *builder) externalOverTime(value def.Parameter) ([]int, bool) {
	p, ok := value.(*def.ArrayParam)
	if !ok {
		return nil, false
	}
	if len(p.Dims()) == 0 {
		return []int{len(p.Values())}, false
	}
	var dimLens []int
	overTime := false
	for i, name := range p.Dims() {
		if name == def.TimeDim {
			if i == 0 {
				overTime = true
			}
			dimLens = append(dimLens, b.sched.Len())
			continue
		}
		if dim, ok := b.model.Dimension(name); ok {
			dimLens = append(dimLens, dim.Len())
		} else {
			// Unknown dimension identity: fall back to a flat axis.
			return []int{len(p.Values())}, false
		}
	}
	return dimLens, overTime
}
