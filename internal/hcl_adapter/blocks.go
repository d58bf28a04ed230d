package hcl_adapter

import (
	"github.com/zclconf/go-cty/cty"
)

// fileRoot is a struct used to decode all possible top-level blocks from any
// file.
type fileRoot struct {
	Model      *modelBlock       `hcl:"model,block"`
	Dimensions []*dimensionBlock `hcl:"dimension,block"`
	Components []*componentBlock `hcl:"component,block"`
	Composites []*compositeBlock `hcl:"composite,block"`
	Connects   []*connectBlock   `hcl:"connect,block"`
	Inputs     []*inputBlock     `hcl:"input,block"`
}

// modelBlock declares the model's name and time schedule.
type modelBlock struct {
	Name string     `hcl:"name,label"`
	Time *timeBlock `hcl:"time,block"`
}

// timeBlock selects the schedule kind: first/step/last for a fixed schedule,
// points for an explicitly listed one.
type timeBlock struct {
	First  *int  `hcl:"first,optional"`
	Step   int   `hcl:"step,optional"`
	Last   *int  `hcl:"last,optional"`
	Points []int `hcl:"points,optional"`
}

// dimensionBlock realizes a named index space: an explicit key list or an
// inclusive numeric range.
type dimensionBlock struct {
	Name  string   `hcl:"name,label"`
	Keys  []string `hcl:"keys,optional"`
	First *int     `hcl:"first,optional"`
	Last  *int     `hcl:"last,optional"`
}

// componentBlock instantiates a registered component kind as a leaf.
type componentBlock struct {
	Name  string `hcl:"name,label"`
	Kind  string `hcl:"kind"`
	First *int   `hcl:"first,optional"`
	Last  *int   `hcl:"last,optional"`
}

// compositeBlock groups child components with their own connections,
// external inputs, and re-exported datums. Composites nest freely.
type compositeBlock struct {
	Name       string            `hcl:"name,label"`
	Components []*componentBlock `hcl:"component,block"`
	Composites []*compositeBlock `hcl:"composite,block"`
	Connects   []*connectBlock   `hcl:"connect,block"`
	Inputs     []*inputBlock     `hcl:"input,block"`
	Exports    []*exportBlock    `hcl:"export,block"`
}

// connectBlock wires a destination parameter ("comp.param") either to a
// source variable ("comp.var") or, when from is absent, to a named input.
// The label is a human-readable name and carries no semantics.
type connectBlock struct {
	Name        string `hcl:"name,label"`
	To          string `hcl:"to"`
	From        string `hcl:"from,optional"`
	Input       string `hcl:"input,optional"`
	Backup      string `hcl:"backup,optional"`
	Offset      int    `hcl:"offset,optional"`
	IgnoreUnits bool   `hcl:"ignore_units,optional"`
}

// inputBlock stores an external parameter value on the enclosing composite.
type inputBlock struct {
	Name  string    `hcl:"name,label"`
	Value cty.Value `hcl:"value"`
	Dims  []string  `hcl:"dims,optional"`
}

// exportBlock re-exports a child datum under a composite-level name. The
// class label is "variable" (exactly one ref) or "parameter" (refs may fan
// out).
type exportBlock struct {
	Class string   `hcl:"class,label"`
	Name  string   `hcl:"name,label"`
	Refs  []string `hcl:"refs"`
	Unit  string   `hcl:"unit,optional"`
}
