package def

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Parameter is an external value held by a composite: either a single typed
// scalar or a typed array with the dimension names it is indexed over.
// Values are shared by reference: once bound to a leaf slot, every further
// occurrence of the binding aliases the same storage.
type Parameter interface {
	isParameter()
	copyParameter() Parameter
}

// ScalarParam holds one typed scalar value.
type ScalarParam struct {
	val cty.Value
}

// NewScalar wraps a cty value as a scalar parameter.
func NewScalar(v cty.Value) *ScalarParam { return &ScalarParam{val: v} }

// ScalarOf wraps a plain float64 as a scalar parameter.
func ScalarOf(f float64) *ScalarParam { return &ScalarParam{val: cty.NumberFloatVal(f)} }

func (p *ScalarParam) isParameter() {}

func (p *ScalarParam) copyParameter() Parameter { return &ScalarParam{val: p.val} }

// Value returns the raw cty value.
func (p *ScalarParam) Value() cty.Value { return p.val }

// Float converts the value to the model's numeric type. A value the type
// cannot represent is a ConversionError, reported at the point of use.
func (p *ScalarParam) Float() (float64, error) {
	converted, err := convert.Convert(p.val, cty.Number)
	if err != nil {
		return 0, &ConversionError{Value: p.val, Want: cty.Number, Err: err}
	}
	f, _ := converted.AsBigFloat().Float64()
	return f, nil
}

// ArrayParam holds a typed array plus the dimension names it is indexed
// over; an empty Dims list means the dimension identity is unknown.
type ArrayParam struct {
	values []float64
	dims   []string
}

// NewArray wraps a value slice as an array parameter. The slice is adopted,
// not copied: the parameter is the shared reference to it.
func NewArray(values []float64, dimNames []string) *ArrayParam {
	return &ArrayParam{values: values, dims: dimNames}
}

func (p *ArrayParam) isParameter() {}

func (p *ArrayParam) copyParameter() Parameter {
	values := make([]float64, len(p.values))
	copy(values, p.values)
	dims := make([]string, len(p.dims))
	copy(dims, p.dims)
	return &ArrayParam{values: values, dims: dims}
}

// Values returns the backing slice itself; holders alias the same storage.
func (p *ArrayParam) Values() []float64 { return p.values }

// Dims returns the dimension names the array is indexed over.
func (p *ArrayParam) Dims() []string { return p.dims }
