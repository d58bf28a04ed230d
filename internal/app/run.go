package app

import (
	"context"
	"fmt"

	"github.com/vk/stepmill/internal/builder"
	"github.com/vk/stepmill/internal/ctxlog"
)

// Run builds the loaded model definition and advances the resulting
// instance, then reports every leaf variable's final value.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	mi, err := builder.Build(ctx, a.model, a.registry)
	if err != nil {
		return fmt.Errorf("failed to build model: %w", err)
	}
	a.logger.Info("Model built.", "leaves", mi.LeafCount())

	steps := cfg.Steps
	if steps == 0 {
		steps = a.model.Schedule().Len()
	}
	if err := mi.Run(ctx, steps); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	a.logger.Info("Run finished.", "steps", steps)

	for _, entry := range mi.Definition().Leaves() {
		leaf, ok := mi.Leaf(entry.Path)
		if !ok {
			continue
		}
		for _, name := range leaf.VariableNames() {
			series, err := mi.Value(entry.Path, name)
			if err != nil {
				return err
			}
			last := series.Data[len(series.Data)-1]
			a.logger.Info("Final value.", "component", entry.Path.String(), "variable", name, "value", last)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
