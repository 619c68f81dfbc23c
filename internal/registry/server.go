package registry

import (
	"context"

	"github.com/specialistvlad/beanbridge/internal/beanid"
	"github.com/specialistvlad/beanbridge/internal/beaninfo"
)

// Instance identifies a registered bean.
type Instance struct {
	Name      beanid.Name
	ClassName string
}

//go:generate mockgen -source=server.go -destination=mocks/mocks.go -package=mocks Server

// Server is the client-facing interface of a bean registry.
type Server interface {
	// Register adds bean under name. The realized name of the returned
	// instance may differ from the requested one: an empty domain is
	// completed with the default domain and a PreRegisterer may pick its
	// own name.
	Register(ctx context.Context, bean any, name beanid.Name) (Instance, error)
	Unregister(ctx context.Context, name beanid.Name) error
	Info(ctx context.Context, name beanid.Name) (beaninfo.Info, error)
	GetAttribute(ctx context.Context, name beanid.Name, attr string) (any, error)
	SetAttribute(ctx context.Context, name beanid.Name, attr string, value any) error
	// Invoke calls an operation. A non-empty signature must match the
	// operation's parameter type names.
	Invoke(ctx context.Context, name beanid.Name, op string, params []any, signature []string) (any, error)
	IsRegistered(ctx context.Context, name beanid.Name) bool
	// Query returns the registered beans selected by pattern, sorted by
	// canonical name. The zero Name selects every bean.
	Query(ctx context.Context, pattern beanid.Name) ([]Instance, error)
	Count(ctx context.Context) int
	DefaultDomain() string
}

// DynamicBean is a bean that supplies its own metadata and dispatch instead
// of being introspected.
type DynamicBean interface {
	Info() beaninfo.Info
	GetAttribute(ctx context.Context, attr string) (any, error)
	SetAttribute(ctx context.Context, attr string, value any) error
	Invoke(ctx context.Context, op string, params []any, signature []string) (any, error)
}

// PreRegisterer is called before the bean is added. The returned name, if
// not zero, replaces the requested one.
type PreRegisterer interface {
	PreRegister(ctx context.Context, srv Server, name beanid.Name) (beanid.Name, error)
}

// PostRegisterer is told whether the registration went through.
type PostRegisterer interface {
	PostRegister(ctx context.Context, done bool)
}

// PreDeregisterer may veto its unregistration.
type PreDeregisterer interface {
	PreDeregister(ctx context.Context) error
}

// PostDeregisterer is called once the bean has been removed.
type PostDeregisterer interface {
	PostDeregister(ctx context.Context)
}
