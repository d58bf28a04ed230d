package builder

import (
	"context"

	"github.com/vk/stepmill/internal/ctxlog"
	"github.com/vk/stepmill/internal/def"
	"github.com/vk/stepmill/internal/instance"
	"github.com/vk/stepmill/internal/registry"
	"github.com/vk/stepmill/internal/schedule"
	"github.com/vk/stepmill/internal/storage"
)

// builder carries the intermediate state of one build: the private
// definition copy, the allocation table, and the parameter binding table.
type builder struct {
	model *def.ModelDefinition
	reg   *registry.Registry
	sched schedule.Schedule

	// allocs maps "path|var" to the single storage allocation for that
	// leaf variable.
	allocs map[string]storage.Handle
	// paramBinds maps "path|param" to the binding every occurrence of that
	// slot aliases.
	paramBinds map[string]*instance.Binding
	// externals caches the storage handle per "compositePath|paramName" so
	// repeated external connections to the same value share one handle.
	externals map[string]storage.Handle
}

// Build compiles a model definition into a runnable ModelInstance. The
// definition is deep-copied up front, so the caller may keep editing the
// original; the returned instance packages the exact snapshot it was built
// from.
func Build(ctx context.Context, model *def.ModelDefinition, reg *registry.Registry) (*instance.ModelInstance, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting.")

	b := &builder{
		model:      model.Copy(),
		reg:        reg,
		sched:      model.Schedule(),
		allocs:     make(map[string]storage.Handle),
		paramBinds: make(map[string]*instance.Binding),
		externals:  make(map[string]storage.Handle),
	}

	if err := b.insertConnectors(); err != nil {
		return nil, err
	}
	logger.Debug("Build: connector insertion complete.")

	if err := b.checkComplete(); err != nil {
		return nil, err
	}
	logger.Debug("Build: completeness check passed.")

	if err := b.allocate(); err != nil {
		return nil, err
	}
	logger.Debug("Build: variable allocation complete.", "allocations", len(b.allocs))

	if err := b.bind(); err != nil {
		return nil, err
	}
	logger.Debug("Build: parameter binding complete.", "bindings", len(b.paramBinds))

	root, _, _, err := b.instantiate(nil, b.model.Root())
	if err != nil {
		return nil, err
	}
	logger.Debug("Build: instantiation complete.")

	return instance.NewModelInstance(root.(*instance.Composite), b.model), nil
}

func bindKey(path def.Path, name string) string {
	return path.String() + "|" + name
}

// walkComposites visits every composite in the tree, root first, handing
// the callback the composite's absolute path prefix.
func walkComposites(prefix def.Path, d *def.ComponentDef, fn func(prefix def.Path, c *def.ComponentDef) error) error {
	if d.IsLeaf() {
		return nil
	}
	if err := fn(prefix, d); err != nil {
		return err
	}
	for _, child := range d.Children() {
		if err := walkComposites(prefix.Child(child.Name()), child, fn); err != nil {
			return err
		}
	}
	return nil
}

// resolveEndpoint expands one connection endpoint, declared relative to a
// composite, into the absolute-within-that-composite leaf bindings it
// denotes.
func resolveEndpoint(c *def.ComponentDef, p def.Path, name string, class def.DatumClass) ([]def.Binding, error) {
	target, err := c.Descend(p)
	if err != nil {
		return nil, err
	}
	binds, err := def.ResolveDatum(target, name, class)
	if err != nil {
		if u, ok := err.(*def.UnresolvableReferenceError); ok {
			return nil, &def.UnresolvableReferenceError{Path: p.Join(u.Path), Datum: u.Datum}
		}
		return nil, err
	}
	out := make([]def.Binding, len(binds))
	for i, bnd := range binds {
		out[i] = def.Binding{Path: p.Join(bnd.Path), Name: bnd.Name}
	}
	return out, nil
}
