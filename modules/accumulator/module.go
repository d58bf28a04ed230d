// Package accumulator provides the 'core.accumulator' component kind: a
// running stock integrating an inflow, stock[t] = stock[t-1] + inflow[t].
package accumulator

import (
	"context"

	"github.com/vk/stepmill/internal/def"
	"github.com/vk/stepmill/internal/instance"
	"github.com/vk/stepmill/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

var zero = 0.0

// Init seeds the stock with the initial level at the first position.
func Init(ctx context.Context, sc *instance.StepContext) error {
	initial, _ := sc.Param("initial")
	sc.SetVar("stock", initial)
	return nil
}

// Step adds the current inflow to the previous stock level.
func Step(ctx context.Context, sc *instance.StepContext) error {
	inflow, _ := sc.Param("inflow")
	prev, ok := sc.VarAt("stock", sc.Pos()-1)
	if !ok {
		prev, _ = sc.Param("initial")
	}
	sc.SetVar("stock", prev+inflow)
	return nil
}

// Register registers the kind with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(
		def.ComponentKind{Module: "core", Name: "accumulator"},
		&registry.ComponentSpec{
			Variables: []*def.VariableDef{
				{Name: "stock", Dims: []string{def.TimeDim}},
			},
			Parameters: []*def.ParameterDef{
				{Name: "inflow"},
				{Name: "initial", Default: &zero},
			},
		},
		&registry.ComponentImpl{Init: Init, Step: Step},
	)
}
