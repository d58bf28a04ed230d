package instance

import (
	"fmt"

	"github.com/vk/stepmill/internal/dims"
	"github.com/vk/stepmill/internal/storage"
)

// StepContext is handed to a leaf's init/step hooks. It exposes the leaf's
// own variables for writing, its parameter bindings for reading (offset
// aware, value-or-missing), the current clock position, and lookup-by-name
// access to the model's realized dimensions.
type StepContext struct {
	leaf *Leaf
	pos  int
	time int
}

// Pos returns the current 0-based time-index position.
func (sc *StepContext) Pos() int { return sc.pos }

// Time returns the current time value.
func (sc *StepContext) Time() int { return sc.time }

// Dimension resolves a realized dimension by name.
func (sc *StepContext) Dimension(name string) (*dims.Dimension, bool) {
	if sc.leaf.dims == nil {
		return nil, false
	}
	return sc.leaf.dims(name)
}

// SetVar writes the leaf's variable at the current position (column 0).
func (sc *StepContext) SetVar(name string, v float64) { sc.SetVarCol(name, 0, v) }

// SetVarCol writes one column of the leaf's variable at the current position.
func (sc *StepContext) SetVarCol(name string, col int, v float64) {
	switch h := sc.variable(name).(type) {
	case *storage.ScalarCell:
		h.Set(v)
	case *storage.TimeArray:
		h.Set(sc.pos, col, v)
	case *storage.NDArray:
		h.SetFlat(col, v)
	}
}

// Var reads the leaf's own variable at the current position (column 0).
func (sc *StepContext) Var(name string) (float64, bool) { return sc.VarAt(name, sc.pos) }

// VarAt reads the leaf's own variable at an arbitrary position (column 0).
func (sc *StepContext) VarAt(name string, pos int) (float64, bool) {
	switch h := sc.variable(name).(type) {
	case *storage.ScalarCell:
		return h.Get()
	case *storage.TimeArray:
		if pos < 0 || pos >= h.Len() {
			return 0, false
		}
		return h.Get(pos, 0)
	case *storage.NDArray:
		return h.AtFlat(0), true
	}
	return 0, false
}

// Cols returns the column-block width of the leaf's variable.
func (sc *StepContext) Cols(name string) int {
	switch h := sc.variable(name).(type) {
	case *storage.TimeArray:
		return h.Cols()
	case *storage.NDArray:
		return h.Len()
	default:
		return 1
	}
}

// Param reads a parameter (column 0) at the current position, honoring the
// binding's time offset. The boolean reports whether a value is present.
func (sc *StepContext) Param(name string) (float64, bool) { return sc.ParamCol(name, 0) }

// ParamCol reads one column of a parameter at the current position.
func (sc *StepContext) ParamCol(name string, col int) (float64, bool) {
	b, ok := sc.leaf.params[name]
	if !ok {
		panic(fmt.Sprintf("instance: component %q has no parameter %q", sc.leaf.path, name))
	}
	switch h := b.Handle.(type) {
	case *storage.ScalarCell:
		return h.Get()
	case *storage.TimeArray:
		pos := sc.pos - b.Offset
		if pos < 0 || pos >= h.Len() {
			return 0, false
		}
		return h.Get(pos, col)
	case *storage.NDArray:
		if b.OverTime {
			rows := h.Dims()[0]
			rowLen := h.Len() / rows
			pos := sc.pos - b.Offset
			if pos < 0 || pos >= rows || col >= rowLen {
				return 0, false
			}
			return h.AtFlat(pos*rowLen + col), true
		}
		if col >= h.Len() {
			return 0, false
		}
		return h.AtFlat(col), true
	}
	return 0, false
}

func (sc *StepContext) variable(name string) storage.Handle {
	h, ok := sc.leaf.vars[name]
	if !ok {
		panic(fmt.Sprintf("instance: component %q has no variable %q", sc.leaf.path, name))
	}
	return h
}
