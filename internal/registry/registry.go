// Package registry provides the explicit mapping from component-kind
// identifiers to the compiled Go capabilities that back them: the kind's
// declared variables/parameters/dimensions and its optional init and step
// hooks. A registry is populated once at process start and passed into the
// builder; there is no ambient global state.
package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/stepmill/internal/def"
	"github.com/vk/stepmill/internal/instance"
)

// ComponentSpec declares the datums a component kind carries. The builder
// stamps these onto every leaf definition instantiated from the kind.
type ComponentSpec struct {
	Variables  []*def.VariableDef
	Parameters []*def.ParameterDef
	Dimensions []string
}

// ComponentImpl holds a kind's optional capability hooks. A leaf kind
// supplies zero, one, or both; absence means "no-op".
type ComponentImpl struct {
	Init instance.HookFunc
	Step instance.HookFunc
}

// RegisteredComponent pairs a kind's declaration with its implementation.
type RegisteredComponent struct {
	Kind def.ComponentKind
	Spec *ComponentSpec
	Impl *ComponentImpl
}

// Registry holds all registered component kinds for a single application
// instance.
type Registry struct {
	components map[string]*RegisteredComponent
	order      []string
}

// Module is the interface all built-in kind packages implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{components: make(map[string]*RegisteredComponent)}
}

// RegisterComponent registers a component kind. Registering the same kind
// twice is a programmer error.
func (r *Registry) RegisterComponent(kind def.ComponentKind, spec *ComponentSpec, impl *ComponentImpl) {
	key := kind.String()
	if _, exists := r.components[key]; exists {
		panic(fmt.Sprintf("component kind '%s' already registered", key))
	}
	slog.Debug("Registering component kind.", "kind", key)
	if spec == nil {
		spec = &ComponentSpec{}
	}
	r.components[key] = &RegisteredComponent{Kind: kind, Spec: spec, Impl: impl}
	r.order = append(r.order, key)
}

// Component looks up a registered kind.
func (r *Registry) Component(kind def.ComponentKind) (*RegisteredComponent, bool) {
	c, ok := r.components[kind.String()]
	return c, ok
}

// Kinds returns every registered kind key in registration order.
func (r *Registry) Kinds() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// LeafDef instantiates a leaf component definition from a registered kind,
// stamping the kind's declared variables, parameters, and dimensions onto a
// fresh definition.
func (r *Registry) LeafDef(name string, kind def.ComponentKind) (*def.ComponentDef, error) {
	rc, ok := r.Component(kind)
	if !ok {
		return nil, fmt.Errorf("component kind '%s' is not registered", kind)
	}
	leaf := def.NewLeaf(name, kind)
	for _, v := range rc.Spec.Variables {
		cv := *v
		cv.Dims = append([]string(nil), v.Dims...)
		if err := leaf.AddVariable(&cv); err != nil {
			return nil, err
		}
	}
	for _, p := range rc.Spec.Parameters {
		cp := *p
		cp.Dims = append([]string(nil), p.Dims...)
		if p.Default != nil {
			d := *p.Default
			cp.Default = &d
		}
		if err := leaf.AddParameter(&cp); err != nil {
			return nil, err
		}
	}
	for _, dim := range rc.Spec.Dimensions {
		if err := leaf.AddDimension(dim); err != nil {
			return nil, err
		}
	}
	return leaf, nil
}
