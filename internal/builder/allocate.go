package builder

import (
	"fmt"

	"github.com/vk/stepmill/internal/def"
	"github.com/vk/stepmill/internal/storage"
)

// allocate creates exactly one storage object per declared leaf variable: a
// scalar cell for dimension-less datums, a time-indexed array over the
// model's schedule sized by the realized non-time dimensions, or a plain
// multi-dimensional array when the datum has no time axis.
func (b *builder) allocate() error {
	for _, entry := range b.model.Leaves() {
		for _, v := range entry.Def.Variables() {
			h, err := b.allocateVariable(entry.Path, v)
			if err != nil {
				return err
			}
			b.allocs[bindKey(entry.Path, v.Name)] = h
		}
	}
	return nil
}

func (b *builder) allocateVariable(path def.Path, v *def.VariableDef) (storage.Handle, error) {
	if len(v.Dims) == 0 {
		return storage.NewScalarCell(), nil
	}

	overTime := false
	var dimLens []int
	cols := 1
	for _, name := range v.Dims {
		if name == def.TimeDim {
			overTime = true
			continue
		}
		dim, ok := b.model.Dimension(name)
		if !ok {
			return nil, &def.StructuralError{
				Msg: fmt.Sprintf("variable %s:%s indexes dimension %q, which the model does not define", path, v.Name, name),
			}
		}
		dimLens = append(dimLens, dim.Len())
		cols *= dim.Len()
	}

	if overTime {
		return storage.NewTimeArray(b.sched, cols), nil
	}
	return storage.NewNDArray(dimLens...), nil
}
