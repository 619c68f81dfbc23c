package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the mux served on the health check port: /health and the
// Prometheus /metrics endpoint.
func (app *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", app.healthHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(app.metrics, promhttp.HandlerOpts{Registry: app.metrics}))
	return mux
}

func (app *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	app.logger().Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK beans=%d shadows=%d\n", app.coordinator.Count(r.Context()), len(app.coordinator.Shadowed()))
}

// healthCheckServer initializes and runs the health check HTTP server.
func (app *App) healthCheckServer() {
	logger := app.logger()
	logger.Debug("Configuring health check server.")
	if app.config.HealthcheckPort <= 0 {
		logger.Warn("Health check server not started: disabled")
		return
	}

	addr := fmt.Sprintf(":%d", app.config.HealthcheckPort)
	app.httpServer = &http.Server{
		Addr:              addr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// ListenAndServe returns ErrServerClosed on graceful shutdown.
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}()
}

func (app *App) closeHealthCheckServer() error {
	logger := app.logger()
	if app.httpServer == nil {
		logger.Debug("Health check server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(app.ctx, 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down health check server...")
	if err := app.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Health check server shutdown failed", "error", err)
		return err
	}

	logger.Debug("Health check server shut down gracefully.")
	return nil
}
