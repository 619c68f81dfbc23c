package app

import (
	"context"

	"github.com/specialistvlad/beanbridge/internal/registry"
	"github.com/specialistvlad/beanbridge/modules/env_vars"
	"github.com/specialistvlad/beanbridge/modules/runtime"
)

// Module contributes beans to a registry at startup.
type Module interface {
	Register(ctx context.Context, srv registry.Server) error
}

// coreModules is the definitive list of all modules that are compiled into
// the beanbridge binary.
func coreModules(cfg *Config) []Module {
	return []Module{
		&runtime.Module{},
		&env_vars.Module{Prefix: cfg.EnvPrefix},
	}
}
