package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/beanbridge/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
//
// Values are layered: built-in defaults, then the -config file, then the
// flags that were set explicitly.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("beanbridge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
beanbridge - Mirrors marked beans as JSON shadows on the platform registry.

Usage:
  beanbridge [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	defaults := app.DefaultConfig()
	configFlag := flagSet.String("config", "", "Path to an HCL config file or a directory of .hcl files.")
	domainFlag := flagSet.String("default-domain", defaults.DefaultDomain, "Domain of bean names registered without one.")
	healthPortFlag := flagSet.Int("healthcheck-port", defaults.HealthcheckPort, "Port for the HTTP health check and metrics server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	envPrefixFlag := flagSet.String("env-prefix", defaults.EnvPrefix, "Only expose environment variables with this prefix.")
	dumpFlag := flagSet.Bool("dump", false, "Print every JSON shadow and exit.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
	}
	slog.Debug("Arguments parsed successfully.")

	cfg := defaults
	if *configFlag != "" {
		loaded, err := app.LoadConfig(*configFlag, cfg)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		cfg = loaded
		slog.Debug("Config file loaded.", "path", *configFlag)
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "default-domain":
			cfg.DefaultDomain = *domainFlag
		case "healthcheck-port":
			cfg.HealthcheckPort = *healthPortFlag
		case "log-format":
			cfg.LogFormat = strings.ToLower(*logFormatFlag)
		case "log-level":
			cfg.LogLevel = strings.ToLower(*logLevelFlag)
		case "env-prefix":
			cfg.EnvPrefix = *envPrefixFlag
		}
	})
	cfg.Dump = *dumpFlag

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
