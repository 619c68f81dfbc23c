package env_vars

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/specialistvlad/beanbridge/internal/beanid"
	"github.com/specialistvlad/beanbridge/internal/jsonbean"
	"github.com/specialistvlad/beanbridge/internal/registry"
)

// Name is the identity of the environment bean.
var Name = beanid.MustParse(":type=Environment")

// Module implements the app.Module interface for this package.
type Module struct {
	// Prefix limits the exposed variables to those starting with it.
	Prefix string
}

// Register registers an Environment bean.
func (m *Module) Register(ctx context.Context, srv registry.Server) error {
	_, err := srv.Register(ctx, &Environment{prefix: m.Prefix}, Name)
	return err
}

// Environment exposes the process environment, read on every access.
type Environment struct {
	jsonbean.Marker `jsonbean:"max_collection_size=500"`

	prefix string
}

func (e *Environment) Description() string {
	return "Process environment variables"
}

func (e *Environment) DescribeMember(name string) string {
	switch name {
	case "Variables":
		return "Variables whose name starts with Prefix"
	case "Lookup":
		return "Value of a single variable, empty when unset"
	}
	return ""
}

func (e *Environment) GetPrefix() string {
	return e.prefix
}

func (e *Environment) GetVariables() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		pair := strings.SplitN(kv, "=", 2)
		if len(pair) == 2 && strings.HasPrefix(pair[0], e.prefix) {
			vars[pair[0]] = pair[1]
		}
	}
	return vars
}

// GetNames returns the sorted names of the exposed variables.
func (e *Environment) GetNames() []string {
	vars := e.GetVariables()
	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (e *Environment) Lookup(key string) string {
	if !strings.HasPrefix(key, e.prefix) {
		return ""
	}
	return os.Getenv(key)
}
