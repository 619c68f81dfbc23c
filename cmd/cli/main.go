package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/beanbridge/internal/app"
	"github.com/specialistvlad/beanbridge/internal/cli"
)

// main is the entrypoint for the beanbridge application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) (err error) {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Runs after Close, turning a panic into an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application panicked: %v", r)
		}
	}()

	bridgeApp := app.NewApp(outW, cfg)
	defer func() {
		if closeErr := bridgeApp.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close application: %w", closeErr)
		}
	}()

	return bridgeApp.Run(ctx)
}
