package app

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/beanbridge/internal/ctxlog"
)

// Run registers the modules' beans through the coordinator. With Dump set it
// prints the JSON shadows and returns; otherwise it serves the health check
// endpoint until ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, app.logger())
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	for _, mod := range app.modules {
		if err := mod.Register(ctx, app.coordinator); err != nil {
			return fmt.Errorf("failed to register module %T: %w", mod, err)
		}
	}
	logger.Info("🫘 Beans registered.",
		"beans", app.coordinator.Count(ctx),
		"shadows", len(app.coordinator.Shadowed()),
	)

	if app.config.Dump {
		return app.dump(ctx)
	}

	app.healthCheckServer()
	<-ctx.Done()
	logger.Info("🏁 Shutdown requested.")
	return nil
}

// dump writes every JSON shadow with its readable attributes and operations.
func (app *App) dump(ctx context.Context) error {
	secondary := app.coordinator.Secondary()
	for _, name := range app.coordinator.Shadowed() {
		info, err := secondary.Info(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to describe shadow %s: %w", name, err)
		}
		fmt.Fprintf(app.outW, "%s\n  # %s\n", name, info.Description)

		for _, attr := range info.Attributes {
			if !attr.Readable {
				continue
			}
			value, err := secondary.GetAttribute(ctx, name, attr.Name)
			if err != nil {
				fmt.Fprintf(app.outW, "  %s = <%v>\n", attr.Name, err)
				continue
			}
			fmt.Fprintf(app.outW, "  %s = %s\n", attr.Name, value)
		}
		for _, op := range info.Operations {
			fmt.Fprintf(app.outW, "  %s(%d) -> %s\n", op.Name, len(op.Params), op.Return.Name)
		}
	}
	return nil
}

// Close stops the health check server and unregisters every bean the app
// registered, together with its shadow.
func (app *App) Close() error {
	var result *multierror.Error
	if err := app.closeHealthCheckServer(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := app.coordinator.Close(app.ctx); err != nil {
		result = multierror.Append(result, err)
	}
	app.logger().Debug("App closed.")
	return result.ErrorOrNil()
}
