package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/specialistvlad/beanbridge/internal/beanid"
	"github.com/specialistvlad/beanbridge/internal/beaninfo"
	"github.com/specialistvlad/beanbridge/internal/ctxlog"
)

// PlatformDomain is the default domain of the platform registry.
const PlatformDomain = "beanbridge"

var (
	platformOnce sync.Once
	platform     *Registry
)

// Platform returns the process-wide registry, creating it on first use.
func Platform() *Registry {
	platformOnce.Do(func() {
		platform = New(PlatformDomain)
	})
	return platform
}

// entry is a registered bean and the metadata derived at registration time.
type entry struct {
	bean     any
	dynamic  DynamicBean
	info     beaninfo.Info
	instance Instance
}

// Registry is an in-memory Server. It is safe for concurrent use.
type Registry struct {
	defaultDomain string

	mu    sync.RWMutex
	beans map[string]*entry // keyed by canonical name
}

var _ Server = (*Registry)(nil)

// New creates an empty registry that completes names without a domain with
// defaultDomain.
func New(defaultDomain string) *Registry {
	return &Registry{
		defaultDomain: defaultDomain,
		beans:         make(map[string]*entry),
	}
}

// DefaultDomain returns the domain used for names registered without one.
func (r *Registry) DefaultDomain() string {
	return r.defaultDomain
}

// resolve completes a name without a domain.
func (r *Registry) resolve(name beanid.Name) beanid.Name {
	if !name.IsZero() && name.Domain() == "" {
		return name.WithDomain(r.defaultDomain)
	}
	return name
}

// Register adds bean under name, running its lifecycle hooks.
func (r *Registry) Register(ctx context.Context, bean any, name beanid.Name) (Instance, error) {
	logger := ctxlog.FromContext(ctx)

	if bean == nil {
		return Instance{}, fmt.Errorf("%w: %w", ErrNotCompliant, beaninfo.ErrNilBean)
	}

	if pre, ok := bean.(PreRegisterer); ok {
		chosen, err := pre.PreRegister(ctx, r, name)
		if err != nil {
			return Instance{}, fmt.Errorf("%w: pre-register %s: %w", ErrRegistrationHook, name, err)
		}
		if !chosen.IsZero() {
			name = chosen
		}
	}

	if name.IsZero() {
		return Instance{}, fmt.Errorf("%w: no name given", ErrInvalidName)
	}
	if name.IsPattern() {
		return Instance{}, fmt.Errorf("%w: %s is a pattern", ErrInvalidName, name)
	}
	name = r.resolve(name)

	e := &entry{bean: bean}
	if dyn, ok := bean.(DynamicBean); ok {
		e.dynamic = dyn
		e.info = dyn.Info()
	} else {
		info, err := beaninfo.Introspect(bean)
		if err != nil {
			postRegister(ctx, bean, false)
			return Instance{}, fmt.Errorf("%w: %s: %w", ErrNotCompliant, name, err)
		}
		e.info = info
	}
	e.instance = Instance{Name: name, ClassName: e.info.ClassName}

	key := name.Canonical()
	r.mu.Lock()
	if _, exists := r.beans[key]; exists {
		r.mu.Unlock()
		postRegister(ctx, bean, false)
		return Instance{}, fmt.Errorf("%w: %s", ErrAlreadyExists, name)
	}
	r.beans[key] = e
	r.mu.Unlock()

	logger.Debug("Registered bean.", "name", name.String(), "class", e.info.ClassName, "domain", r.defaultDomain)
	postRegister(ctx, bean, true)
	return e.instance, nil
}

func postRegister(ctx context.Context, bean any, done bool) {
	if post, ok := bean.(PostRegisterer); ok {
		post.PostRegister(ctx, done)
	}
}

// Unregister removes the named bean, running its lifecycle hooks. A
// PreDeregisterer error keeps the bean registered.
func (r *Registry) Unregister(ctx context.Context, name beanid.Name) error {
	name = r.resolve(name)
	e, err := r.lookup(name)
	if err != nil {
		return err
	}

	if pre, ok := e.bean.(PreDeregisterer); ok {
		if err := pre.PreDeregister(ctx); err != nil {
			return fmt.Errorf("%w: pre-deregister %s: %w", ErrRegistrationHook, name, err)
		}
	}

	key := name.Canonical()
	r.mu.Lock()
	if current, ok := r.beans[key]; !ok || current != e {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(r.beans, key)
	r.mu.Unlock()

	ctxlog.FromContext(ctx).Debug("Unregistered bean.", "name", name.String(), "domain", r.defaultDomain)
	if post, ok := e.bean.(PostDeregisterer); ok {
		post.PostDeregister(ctx)
	}
	return nil
}

func (r *Registry) lookup(name beanid.Name) (*entry, error) {
	r.mu.RLock()
	e, ok := r.beans[name.Canonical()]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return e, nil
}

// Info returns a copy of the metadata of the named bean.
func (r *Registry) Info(ctx context.Context, name beanid.Name) (beaninfo.Info, error) {
	e, err := r.lookup(r.resolve(name))
	if err != nil {
		return beaninfo.Info{}, err
	}
	return e.info.Clone(), nil
}

// IsRegistered reports whether name is registered.
func (r *Registry) IsRegistered(ctx context.Context, name beanid.Name) bool {
	_, err := r.lookup(r.resolve(name))
	return err == nil
}

// Count returns the number of registered beans.
func (r *Registry) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.beans)
}

// Query returns the beans selected by pattern.
func (r *Registry) Query(ctx context.Context, pattern beanid.Name) ([]Instance, error) {
	pattern = r.resolve(pattern)

	r.mu.RLock()
	out := make([]Instance, 0, len(r.beans))
	for _, e := range r.beans {
		if pattern.IsZero() || pattern.Match(e.instance.Name) {
			out = append(out, e.instance)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name.Canonical() < out[j].Name.Canonical()
	})
	return out, nil
}
