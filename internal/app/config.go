package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/beanbridge/internal/converter"
	"github.com/specialistvlad/beanbridge/internal/fsutil"
)

// ConverterConfig holds the default limits of the JSON shadows.
type ConverterConfig struct {
	MaxDepth          int
	MaxCollectionSize int
	MaxObjects        int
}

// Options returns the limits in the form the converter consumes.
func (c ConverterConfig) Options() converter.Options {
	return converter.Options{
		MaxDepth:          c.MaxDepth,
		MaxCollectionSize: c.MaxCollectionSize,
		MaxObjects:        c.MaxObjects,
	}
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DefaultDomain   string
	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	Converter       ConverterConfig

	// EnvPrefix limits the variables exposed by the environment bean.
	EnvPrefix string
	// Dump makes Run print every JSON shadow and return instead of serving.
	Dump bool
}

// DefaultConfig returns the configuration used when neither a config file
// nor a flag sets a value.
func DefaultConfig() Config {
	return Config{
		DefaultDomain: "beanbridge",
		LogFormat:     "text",
		LogLevel:      "info",
		Converter: ConverterConfig{
			MaxDepth:          5,
			MaxCollectionSize: 1000,
			MaxObjects:        10000,
		},
	}
}

func NewConfig(cfg Config) (*Config, error) {
	var result *multierror.Error

	if cfg.DefaultDomain == "" {
		result = multierror.Append(result, errors.New("DefaultDomain is a required configuration field and cannot be empty"))
	} else if strings.ContainsAny(cfg.DefaultDomain, `,=:"*?`) {
		result = multierror.Append(result, fmt.Errorf("invalid default domain %q", cfg.DefaultDomain))
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		result = multierror.Append(result, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat))
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		result = multierror.Append(result, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel))
	}

	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		result = multierror.Append(result, fmt.Errorf("healthcheck port %d is out of range", cfg.HealthcheckPort))
	}

	if cfg.Converter.MaxDepth < 0 || cfg.Converter.MaxCollectionSize < 0 || cfg.Converter.MaxObjects < 0 {
		result = multierror.Append(result, errors.New("converter limits cannot be negative"))
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// fileConfig is the HCL shape of the config file. Pointers distinguish an
// absent attribute from a zero value.
type fileConfig struct {
	DefaultDomain   *string         `hcl:"default_domain,optional"`
	LogFormat       *string         `hcl:"log_format,optional"`
	LogLevel        *string         `hcl:"log_level,optional"`
	HealthcheckPort *int            `hcl:"healthcheck_port,optional"`
	EnvPrefix       *string         `hcl:"env_prefix,optional"`
	Converter       []fileConverter `hcl:"converter,block"`
}

type fileConverter struct {
	MaxDepth          *int `hcl:"max_depth,optional"`
	MaxCollectionSize *int `hcl:"max_collection_size,optional"`
	MaxObjects        *int `hcl:"max_objects,optional"`
}

// LoadConfig applies a config file, or every .hcl file below a config
// directory in lexical order, on top of base.
func LoadConfig(path string, base Config) (Config, error) {
	files, err := fsutil.FindFiles(path, ".hcl")
	if err != nil {
		return base, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if len(files) == 0 {
		return base, fmt.Errorf("no .hcl files found in %s", path)
	}

	cfg := base
	for _, file := range files {
		if cfg, err = LoadConfigFile(file, cfg); err != nil {
			return base, err
		}
	}
	return cfg, nil
}

// LoadConfigFile reads an HCL config file and applies the attributes it sets
// on top of base.
func LoadConfigFile(path string, base Config) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return base, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}
	if len(fc.Converter) > 1 {
		return base, fmt.Errorf("config file %s: only one converter block is allowed", path)
	}

	cfg := base
	setIf(&cfg.DefaultDomain, fc.DefaultDomain)
	setIf(&cfg.LogFormat, fc.LogFormat)
	setIf(&cfg.LogLevel, fc.LogLevel)
	setIf(&cfg.HealthcheckPort, fc.HealthcheckPort)
	setIf(&cfg.EnvPrefix, fc.EnvPrefix)
	for _, conv := range fc.Converter {
		setIf(&cfg.Converter.MaxDepth, conv.MaxDepth)
		setIf(&cfg.Converter.MaxCollectionSize, conv.MaxCollectionSize)
		setIf(&cfg.Converter.MaxObjects, conv.MaxObjects)
	}
	return cfg, nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
