package def

import "github.com/vk/stepmill/internal/dims"

// Copy returns a private deep copy of the whole definition tree, external
// parameter values included. The builder always works on such a copy, so a
// caller continuing to edit the original definition can never corrupt an
// already-built instance. Schedules and realized dimensions are immutable
// after construction and are shared, not duplicated.
func (m *ModelDefinition) Copy() *ModelDefinition {
	out := &ModelDefinition{
		root:       m.root.copyTree(),
		sched:      m.sched,
		dimIndex:   make(map[string]*dims.Dimension, len(m.dimIndex)),
		numberType: m.numberType,
	}
	out.dimensions = append(out.dimensions, m.dimensions...)
	for _, d := range m.dimensions {
		out.dimIndex[d.Name()] = d
	}
	return out
}

func (d *ComponentDef) copyTree() *ComponentDef {
	out := newComponent(d.name, d.class)
	out.kind = d.kind
	out.uniformStep = d.uniformStep
	if d.first != nil {
		first := *d.first
		out.first = &first
	}
	if d.last != nil {
		last := *d.last
		out.last = &last
	}

	for _, v := range d.variables {
		cv := *v
		cv.Dims = append([]string(nil), v.Dims...)
		cv.Refs = append([]DatumRef(nil), v.Refs...)
		out.variables = append(out.variables, &cv)
		out.varIndex[cv.Name] = &cv
	}
	for _, p := range d.parameters {
		cp := *p
		cp.Dims = append([]string(nil), p.Dims...)
		cp.Refs = append([]DatumRef(nil), p.Refs...)
		if p.Default != nil {
			def := *p.Default
			cp.Default = &def
		}
		out.parameters = append(out.parameters, &cp)
		out.paramIndex[cp.Name] = &cp
	}
	for _, dim := range d.dimensions {
		cd := *dim
		out.dimensions = append(out.dimensions, &cd)
		out.dimIndex[cd.Name] = &cd
	}

	if d.class != ClassComposite {
		return out
	}

	out.childIndex = make(map[string]*ComponentDef, len(d.children))
	for _, c := range d.children {
		cc := c.copyTree()
		out.children = append(out.children, cc)
		out.childIndex[cc.name] = cc
	}
	for _, conn := range d.internal {
		cc := *conn
		cc.SrcPath = append(Path(nil), conn.SrcPath...)
		cc.DstPath = append(Path(nil), conn.DstPath...)
		out.internal = append(out.internal, &cc)
	}
	for _, conn := range d.external {
		cc := *conn
		cc.DstPath = append(Path(nil), conn.DstPath...)
		out.external = append(out.external, &cc)
	}
	out.externalParams = make(map[string]Parameter, len(d.externalParams))
	for name, p := range d.externalParams {
		out.externalParams[name] = p.copyParameter()
	}
	out.backups = append([]string(nil), d.backups...)
	out.ordering = append([][2]string(nil), d.ordering...)
	return out
}
