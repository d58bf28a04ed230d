// Package app encapsulates the application's dependencies, configuration,
// and lifecycle: logger, component registry, model loading, build, and run.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/stepmill/internal/ctxlog"
	"github.com/vk/stepmill/internal/def"
	"github.com/vk/stepmill/internal/registry"
)

// Loader translates model-definition files into the definition model.
type Loader interface {
	Load(ctx context.Context, path string) (*def.ModelDefinition, error)
}

// LoaderFactory builds a loader over a populated registry.
type LoaderFactory func(r *registry.Registry) Loader

// App holds one application instance: its own isolated logger, registry,
// and loaded model definition.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	model    *def.ModelDefinition
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
func NewApp(outW io.Writer, cfg *Config, newLoader LoaderFactory, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All component-kind modules registered.", "count", len(modules))

	model, err := newLoader(reg).Load(ctx, cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load model definition: %w", err)
	}
	logger.Debug("Model definition loaded.", "path", cfg.ModelPath)

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		model:    model,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry { return a.registry }

// Model returns the loaded model definition. This is primarily for testing.
func (a *App) Model() *def.ModelDefinition { return a.model }
