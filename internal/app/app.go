package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/specialistvlad/beanbridge/internal/bridge"
	"github.com/specialistvlad/beanbridge/internal/ctxlog"
	"github.com/specialistvlad/beanbridge/internal/metrics"
	"github.com/specialistvlad/beanbridge/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	ctx    context.Context
	config *Config

	primary     *registry.Registry
	secondary   registry.Server
	coordinator *bridge.Coordinator
	metrics     *prometheus.Registry
	modules     []Module

	httpServer *http.Server
}

type Option func(app *App)

// WithModules replaces the built-in modules.
func WithModules(modules ...Module) Option {
	return func(app *App) {
		app.modules = modules
	}
}

// WithSecondary replaces the platform registry as the home of the shadows.
func WithSecondary(srv registry.Server) Option {
	return func(app *App) {
		app.secondary = srv
	}
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own logger, primary registry and
// metrics registry.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	app := &App{
		outW:   outW,
		ctx:    ctx,
		config: cfg,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.secondary == nil {
		app.secondary = registry.Platform()
	}
	if app.modules == nil {
		app.modules = coreModules(cfg)
	}

	app.metrics = prometheus.NewRegistry()
	app.metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app.primary = registry.New(cfg.DefaultDomain)
	app.coordinator = bridge.New(app.primary,
		bridge.WithSecondary(app.secondary),
		bridge.WithConversionOptions(cfg.Converter.Options()),
		bridge.WithMetrics(metrics.New(app.metrics)),
	)
	logger.Debug("Coordinator configured.",
		"default_domain", cfg.DefaultDomain,
		"secondary_domain", app.secondary.DefaultDomain(),
	)

	return app
}

// Coordinator returns the registry beans are registered on.
func (app *App) Coordinator() *bridge.Coordinator {
	return app.coordinator
}

func (app *App) logger() *slog.Logger {
	return ctxlog.FromContext(app.ctx)
}
