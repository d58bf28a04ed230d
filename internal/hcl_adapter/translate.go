package hcl_adapter

import (
	"fmt"
	"strings"

	"github.com/vk/stepmill/internal/def"
	"github.com/vk/stepmill/internal/dims"
	"github.com/vk/stepmill/internal/schedule"
)

func translateSchedule(t *timeBlock) (schedule.Schedule, error) {
	if t == nil {
		return nil, fmt.Errorf("model block is missing its time block")
	}
	if len(t.Points) > 0 {
		return schedule.NewVariable(t.Points)
	}
	if t.First == nil || t.Last == nil {
		return nil, fmt.Errorf("time block needs either points or first/step/last")
	}
	step := t.Step
	if step == 0 {
		step = 1
	}
	return schedule.NewFixed(*t.First, step, *t.Last)
}

func translateDimension(d *dimensionBlock) (*dims.Dimension, error) {
	if len(d.Keys) > 0 {
		return dims.New(d.Name, d.Keys)
	}
	if d.First == nil || d.Last == nil {
		return nil, fmt.Errorf("dimension %q needs either keys or first/last", d.Name)
	}
	return dims.NewRange(d.Name, *d.First, *d.Last)
}

func parseKind(s string) (def.ComponentKind, error) {
	i := strings.LastIndex(s, ".")
	if i <= 0 || i == len(s)-1 {
		return def.ComponentKind{}, fmt.Errorf("component kind %q is not of the form module.name", s)
	}
	return def.ComponentKind{Module: s[:i], Name: s[i+1:]}, nil
}

// splitDatum splits "a.b.var" into the component path and the datum name.
func splitDatum(s string) (def.Path, string, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return nil, "", fmt.Errorf("datum reference %q is not of the form component.datum", s)
	}
	return def.Path(parts[:len(parts)-1]), parts[len(parts)-1], nil
}

// populateComposite translates one composite's blocks onto a definition.
// ancestry carries the enclosing composite names for error messages only.
func (l *Loader) populateComposite(c *def.ComponentDef, components []*componentBlock, composites []*compositeBlock, connects []*connectBlock, inputs []*inputBlock, ancestry []string) error {
	for _, cb := range components {
		kind, err := parseKind(cb.Kind)
		if err != nil {
			return err
		}
		leaf, err := l.reg.LeafDef(cb.Name, kind)
		if err != nil {
			return err
		}
		if cb.First != nil && cb.Last != nil {
			leaf.SetPeriod(*cb.First, *cb.Last)
		}
		if err := c.AddChild(leaf); err != nil {
			return err
		}
	}

	for _, sub := range composites {
		child := def.NewComposite(sub.Name)
		if err := c.AddChild(child); err != nil {
			return err
		}
		for _, ex := range sub.Exports {
			if err := translateExport(child, ex); err != nil {
				return err
			}
		}
		if err := l.populateComposite(child, sub.Components, sub.Composites, sub.Connects, sub.Inputs, append(ancestry, sub.Name)); err != nil {
			return err
		}
	}

	for _, in := range inputs {
		param, err := translateInput(in)
		if err != nil {
			return err
		}
		if err := c.SetExternalValue(in.Name, param); err != nil {
			return err
		}
	}

	for _, conn := range connects {
		if err := translateConnect(c, conn); err != nil {
			return err
		}
	}
	return nil
}

func translateExport(c *def.ComponentDef, ex *exportBlock) error {
	refs := make([]def.DatumRef, 0, len(ex.Refs))
	for _, r := range ex.Refs {
		path, name, err := splitDatum(r)
		if err != nil {
			return err
		}
		if len(path) != 1 {
			return fmt.Errorf("export ref %q must name a direct child's datum", r)
		}
		refs = append(refs, def.DatumRef{Child: path[0], Datum: name})
	}
	switch ex.Class {
	case "variable":
		return c.AddVariable(&def.VariableDef{Name: ex.Name, Unit: ex.Unit, Refs: refs})
	case "parameter":
		return c.AddParameter(&def.ParameterDef{Name: ex.Name, Unit: ex.Unit, Refs: refs})
	default:
		return fmt.Errorf("export class %q must be 'variable' or 'parameter'", ex.Class)
	}
}

func translateConnect(c *def.ComponentDef, conn *connectBlock) error {
	dstPath, dstName, err := splitDatum(conn.To)
	if err != nil {
		return err
	}

	if conn.From == "" {
		if conn.Input == "" {
			return fmt.Errorf("connect to %q names neither a source nor an input", conn.To)
		}
		return c.ConnectExternal(dstPath, dstName, conn.Input)
	}

	srcPath, srcName, err := splitDatum(conn.From)
	if err != nil {
		return err
	}
	return c.ConnectInternal(&def.InternalConnection{
		SrcPath:     srcPath,
		SrcName:     srcName,
		DstPath:     dstPath,
		DstName:     dstName,
		IgnoreUnits: conn.IgnoreUnits,
		Backup:      conn.Backup,
		Offset:      conn.Offset,
	})
}

// translateInput decodes an input block's cty value into a scalar or array
// parameter.
func translateInput(in *inputBlock) (def.Parameter, error) {
	v := in.Value
	if v.Type().IsTupleType() || v.Type().IsListType() || v.Type().IsSetType() {
		var values []float64
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			scalar := def.NewScalar(ev)
			f, err := scalar.Float()
			if err != nil {
				return nil, fmt.Errorf("input %q: %w", in.Name, err)
			}
			values = append(values, f)
		}
		return def.NewArray(values, in.Dims), nil
	}
	return def.NewScalar(v), nil
}
