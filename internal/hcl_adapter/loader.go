// Package hcl_adapter loads .hcl model-definition files and translates them
// into the format-agnostic definition model in the def package.
package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/stepmill/internal/ctxlog"
	"github.com/vk/stepmill/internal/def"
	"github.com/vk/stepmill/internal/fsutil"
	"github.com/vk/stepmill/internal/registry"
)

// Loader is the HCL-specific model-definition loader. Component kinds
// referenced by the files are resolved against the registry's specs.
type Loader struct {
	reg *registry.Registry
}

// NewLoader creates a new HCL model loader backed by the given registry.
func NewLoader(reg *registry.Registry) *Loader {
	return &Loader{reg: reg}
}

// Load parses every .hcl file under path and assembles a single model
// definition. Exactly one file must carry the model block; all other blocks
// merge into the model's root composite in file order.
func (l *Loader) Load(ctx context.Context, path string) (*def.ModelDefinition, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found under %s", path)
	}
	logger.Debug("Discovered model files.", "count", len(files))

	parser := hclparse.NewParser()
	var roots []*fileRoot
	var model *modelBlock
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}
		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", file, diags)
		}
		if root.Model != nil {
			if model != nil {
				return nil, fmt.Errorf("%s: duplicate model block", file)
			}
			model = root.Model
		}
		roots = append(roots, &root)
	}
	if model == nil {
		return nil, fmt.Errorf("no model block found under %s", path)
	}

	sched, err := translateSchedule(model.Time)
	if err != nil {
		return nil, err
	}
	m := def.NewModel(model.Name, sched)

	for _, root := range roots {
		for _, d := range root.Dimensions {
			dim, err := translateDimension(d)
			if err != nil {
				return nil, err
			}
			if err := m.AddDimension(dim); err != nil {
				return nil, err
			}
		}
	}
	for _, root := range roots {
		if err := l.populateComposite(m.Root(), root.Components, root.Composites, root.Connects, root.Inputs, nil); err != nil {
			return nil, err
		}
	}

	logger.Debug("Model definition loaded.", "name", model.Name, "leaves", len(m.Leaves()))
	return m, nil
}
