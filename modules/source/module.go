// Package source provides the 'core.source' component kind: a time-indexed
// signal computed from a base value and a per-step growth increment.
package source

import (
	"context"

	"github.com/vk/stepmill/internal/def"
	"github.com/vk/stepmill/internal/instance"
	"github.com/vk/stepmill/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

var zero = 0.0

// Step emits output[t] = value + growth * t.
func Step(ctx context.Context, sc *instance.StepContext) error {
	value, _ := sc.Param("value")
	growth, _ := sc.Param("growth")
	sc.SetVar("output", value+growth*float64(sc.Pos()))
	return nil
}

// Register registers the kind with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(
		def.ComponentKind{Module: "core", Name: "source"},
		&registry.ComponentSpec{
			Variables: []*def.VariableDef{
				{Name: "output", Dims: []string{def.TimeDim}},
			},
			Parameters: []*def.ParameterDef{
				{Name: "value"},
				{Name: "growth", Default: &zero},
			},
		},
		&registry.ComponentImpl{Step: Step},
	)
}
