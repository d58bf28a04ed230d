// Package marginal wraps a base model definition and a structurally
// identical perturbed copy, runs both instance trees in lockstep, and reads
// back finite-difference sensitivities.
package marginal

import (
	"context"
	"fmt"
	"math"

	"github.com/vk/stepmill/internal/builder"
	"github.com/vk/stepmill/internal/def"
	"github.com/vk/stepmill/internal/instance"
	"github.com/vk/stepmill/internal/registry"
)

// Model pairs a base definition with a modified copy produced by
// duplicating the base, never by re-declaring it. The caller perturbs
// Modified (external parameters, connections) before building.
type Model struct {
	Base     *def.ModelDefinition
	Modified *def.ModelDefinition
	Delta    float64
}

// New duplicates base and records the perturbation size.
func New(base *def.ModelDefinition, delta float64) *Model {
	return &Model{Base: base, Modified: base.Copy(), Delta: delta}
}

// Build compiles both definitions into their own instance trees.
func (m *Model) Build(ctx context.Context, reg *registry.Registry) (*Instance, error) {
	if m.Delta == 0 {
		return nil, fmt.Errorf("marginal model: delta must be non-zero")
	}
	base, err := builder.Build(ctx, m.Base, reg)
	if err != nil {
		return nil, fmt.Errorf("marginal model: building base: %w", err)
	}
	modified, err := builder.Build(ctx, m.Modified, reg)
	if err != nil {
		return nil, fmt.Errorf("marginal model: building modified copy: %w", err)
	}
	return &Instance{base: base, modified: modified, delta: m.Delta}, nil
}

// Instance holds the two built trees of a marginal model.
type Instance struct {
	base     *instance.ModelInstance
	modified *instance.ModelInstance
	delta    float64
}

// Base returns the built base instance.
func (mi *Instance) Base() *instance.ModelInstance { return mi.base }

// Modified returns the built perturbed instance.
func (mi *Instance) Modified() *instance.ModelInstance { return mi.modified }

// Run advances both instance trees by the same number of steps.
func (mi *Instance) Run(ctx context.Context, steps int) error {
	if err := mi.base.Run(ctx, steps); err != nil {
		return fmt.Errorf("marginal model: running base: %w", err)
	}
	if err := mi.modified.Run(ctx, steps); err != nil {
		return fmt.Errorf("marginal model: running modified copy: %w", err)
	}
	return nil
}

// Value reads a datum from both trees and returns
// (modified − base) / delta elementwise. Elements missing on either side
// read as NaN.
func (mi *Instance) Value(path def.Path, name string) (*instance.Series, error) {
	baseSeries, err := mi.base.Value(path, name)
	if err != nil {
		return nil, err
	}
	modSeries, err := mi.modified.Value(path, name)
	if err != nil {
		return nil, err
	}
	if len(baseSeries.Data) != len(modSeries.Data) {
		return nil, fmt.Errorf("marginal model: %s:%s differs in shape between base and modified copy", path, name)
	}

	out := &instance.Series{
		Times: baseSeries.Times,
		Data:  make([][]float64, len(baseSeries.Data)),
	}
	for i := range baseSeries.Data {
		if len(baseSeries.Data[i]) != len(modSeries.Data[i]) {
			return nil, fmt.Errorf("marginal model: %s:%s differs in shape between base and modified copy", path, name)
		}
		row := make([]float64, len(baseSeries.Data[i]))
		for j := range row {
			bv, mv := baseSeries.Data[i][j], modSeries.Data[i][j]
			if math.IsNaN(bv) || math.IsNaN(mv) {
				row[j] = math.NaN()
				continue
			}
			row[j] = (mv - bv) / mi.delta
		}
		out.Data[i] = row
	}
	return out, nil
}
