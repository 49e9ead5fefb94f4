// Package app wires the grid loader, the builder, and the execution engine
// into a run-to-completion application with an isolated logger.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/holograph/internal/builder"
	"github.com/vk/holograph/internal/config"
	"github.com/vk/holograph/internal/ctxlog"
	"github.com/vk/holograph/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	model  *config.Model
	reg    *registry.Registry
}

// NewApp is the constructor for the main application. It loads the grid
// definition eagerly; a failure to load is a fatal startup error and panics,
// which the CLI entrypoint recovers into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.GridPath)
	if err != nil {
		panic(fmt.Errorf("failed to load grid definition: %w", err))
	}
	logger.Debug("Grid definition loaded and translated into unified model.")

	reg := registry.Core()
	logger.Debug("Core kernels registered.", "kernels", reg.Names())

	return &App{
		outW:   outW,
		logger: logger,
		model:  model,
		reg:    reg,
	}
}

// Model returns the loaded grid model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

// build constructs the executable graph from the loaded model.
func (a *App) build(ctx context.Context, appConfig *Config) (*builder.Result, error) {
	b := builder.New(builder.Options{
		Seed:           appConfig.Seed,
		ValidateDepths: appConfig.StrictDepths,
		Registry:       a.reg,
	})
	return b.Build(ctx, a.model)
}
