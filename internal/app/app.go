package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/mlcbuild/internal/backend"
	"github.com/vk/mlcbuild/internal/ctxlog"
	"github.com/vk/mlcbuild/internal/registry"
	"github.com/vk/mlcbuild/internal/target"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	env      target.Environment
	backend  backend.Backend
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App with its own isolated logger and registry. Logs go to logW;
// env answers hardware questions; be receives the resolved job.
func NewApp(logW io.Writer, cfg *Config, env target.Environment, be backend.Backend) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if err := reg.ValidateRegistry(ctx); err != nil {
		// The tables are compiled in, so this is a programmer error.
		panic(err)
	}

	return &App{
		logger:   logger,
		config:   cfg,
		registry: reg,
		env:      env,
		backend:  be,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
