// Package storage provides the concrete value containers allocated at build
// time: a single scalar cell, a time-indexed array whose elements are
// value-or-missing, and a plain multi-dimensional array for datums without a
// time axis. All three are reference types; the pointer is the aliasing
// handle that connections share.
package storage

import (
	"fmt"
	"math"

	"github.com/vk/stepmill/internal/schedule"
)

// Handle is the common type of all storage containers a parameter can alias.
type Handle interface {
	handle()
}

// ScalarCell holds a single value-or-missing cell.
type ScalarCell struct {
	val float64
	set bool
}

func (*ScalarCell) handle() {}

// NewScalarCell returns an empty (missing) cell.
func NewScalarCell() *ScalarCell { return &ScalarCell{} }

// NewScalarValue returns a cell pre-populated with v.
func NewScalarValue(v float64) *ScalarCell { return &ScalarCell{val: v, set: true} }

// Set stores v in the cell.
func (c *ScalarCell) Set(v float64) {
	c.val = v
	c.set = true
}

// Get returns the cell's value and whether it has been set.
func (c *ScalarCell) Get() (float64, bool) { return c.val, c.set }

// TimeArray is storage indexed by a schedule position and a column within the
// Cartesian product of the datum's non-time dimensions (cols == 1 for a
// datum with only a time axis). Every element is value-or-missing.
type TimeArray struct {
	sched schedule.Schedule
	cols  int
	data  []float64
	set   []bool
}

func (*TimeArray) handle() {}

// NewTimeArray allocates an all-missing array over the given schedule.
func NewTimeArray(s schedule.Schedule, cols int) *TimeArray {
	if cols < 1 {
		panic(fmt.Sprintf("storage: time array needs at least one column, got %d", cols))
	}
	n := s.Len() * cols
	return &TimeArray{sched: s, cols: cols, data: make([]float64, n), set: make([]bool, n)}
}

// Len returns the number of time positions.
func (a *TimeArray) Len() int { return a.sched.Len() }

// Cols returns the column-block width.
func (a *TimeArray) Cols() int { return a.cols }

// Schedule returns the schedule the array is indexed by.
func (a *TimeArray) Schedule() schedule.Schedule { return a.sched }

// Set stores v at (pos, col).
func (a *TimeArray) Set(pos, col int, v float64) {
	i := a.offset(pos, col)
	a.data[i] = v
	a.set[i] = true
}

// Get returns the value at (pos, col) and whether it has been set.
func (a *TimeArray) Get(pos, col int) (float64, bool) {
	i := a.offset(pos, col)
	return a.data[i], a.set[i]
}

// SetAll stores a full column block at pos; vals must cover every column.
func (a *TimeArray) SetAll(pos int, vals []float64) {
	if len(vals) != a.cols {
		panic(fmt.Sprintf("storage: got %d values for %d columns", len(vals), a.cols))
	}
	for c, v := range vals {
		a.Set(pos, c, v)
	}
}

// Row returns a copy of all columns at pos; missing elements read as NaN.
func (a *TimeArray) Row(pos int) []float64 {
	out := make([]float64, a.cols)
	for c := 0; c < a.cols; c++ {
		if v, ok := a.Get(pos, c); ok {
			out[c] = v
		} else {
			out[c] = math.NaN()
		}
	}
	return out
}

func (a *TimeArray) offset(pos, col int) int {
	if pos < 0 || pos >= a.sched.Len() || col < 0 || col >= a.cols {
		panic(fmt.Sprintf("storage: index (%d,%d) out of range for %dx%d time array", pos, col, a.sched.Len(), a.cols))
	}
	return pos*a.cols + col
}

// NDArray is a plain row-major multi-dimensional array for datums with no
// time axis.
type NDArray struct {
	dims    []int
	strides []int
	data    []float64
}

func (*NDArray) handle() {}

// NewNDArray allocates a zeroed array with the given axis lengths.
func NewNDArray(dimLens ...int) *NDArray {
	n := 1
	for _, l := range dimLens {
		if l < 1 {
			panic(fmt.Sprintf("storage: nd array axis length must be positive, got %d", l))
		}
		n *= l
	}
	return wrap(dimLens, make([]float64, n))
}

// WrapNDArray adopts an existing backing slice without copying, so callers
// can alias externally owned data. The slice length must match the product
// of the axis lengths.
func WrapNDArray(dimLens []int, data []float64) (*NDArray, error) {
	n := 1
	for _, l := range dimLens {
		n *= l
	}
	if n != len(data) {
		return nil, fmt.Errorf("storage: %d elements do not fill axes %v", len(data), dimLens)
	}
	return wrap(dimLens, data), nil
}

func wrap(dimLens []int, data []float64) *NDArray {
	dims := make([]int, len(dimLens))
	copy(dims, dimLens)
	strides := make([]int, len(dims))
	stride := 1
	for i := len(dims) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= dims[i]
	}
	return &NDArray{dims: dims, strides: strides, data: data}
}

// Dims returns a copy of the axis lengths.
func (a *NDArray) Dims() []int {
	out := make([]int, len(a.dims))
	copy(out, a.dims)
	return out
}

// Len returns the total element count.
func (a *NDArray) Len() int { return len(a.data) }

// At returns the element at the given indices.
func (a *NDArray) At(indices ...int) float64 {
	return a.data[a.flat(indices)]
}

// SetAt stores v at the given indices.
func (a *NDArray) SetAt(v float64, indices ...int) {
	a.data[a.flat(indices)] = v
}

// AtFlat returns the element at a flat row-major offset.
func (a *NDArray) AtFlat(i int) float64 { return a.data[i] }

// SetFlat stores v at a flat row-major offset.
func (a *NDArray) SetFlat(i int, v float64) { a.data[i] = v }

// Data returns the backing slice itself, not a copy; mutations are visible
// to every holder of the handle.
func (a *NDArray) Data() []float64 { return a.data }

func (a *NDArray) flat(indices []int) int {
	if len(indices) != len(a.dims) {
		panic(fmt.Sprintf("storage: got %d indices for %d axes", len(indices), len(a.dims)))
	}
	i := 0
	for ax, idx := range indices {
		if idx < 0 || idx >= a.dims[ax] {
			panic(fmt.Sprintf("storage: index %d out of range for axis %d (len %d)", idx, ax, a.dims[ax]))
		}
		i += idx * a.strides[ax]
	}
	return i
}
