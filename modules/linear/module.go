// Package linear provides the 'core.linear' component kind: a gain stage
// computing y = gain * x at every step.
package linear

import (
	"context"

	"github.com/vk/stepmill/internal/def"
	"github.com/vk/stepmill/internal/instance"
	"github.com/vk/stepmill/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

var defaultGain = 1.0

// Step computes y[t] = gain * x[t]. A missing input leaves the output
// missing for that step.
func Step(ctx context.Context, sc *instance.StepContext) error {
	x, ok := sc.Param("x")
	if !ok {
		return nil
	}
	gain, _ := sc.Param("gain")
	sc.SetVar("y", gain*x)
	return nil
}

// Register registers the kind with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(
		def.ComponentKind{Module: "core", Name: "linear"},
		&registry.ComponentSpec{
			Variables: []*def.VariableDef{
				{Name: "y", Dims: []string{def.TimeDim}},
			},
			Parameters: []*def.ParameterDef{
				{Name: "x"},
				{Name: "gain", Default: &defaultGain},
			},
		},
		&registry.ComponentImpl{Step: Step},
	)
}
