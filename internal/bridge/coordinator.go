package bridge

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/beanbridge/internal/beanid"
	"github.com/specialistvlad/beanbridge/internal/beaninfo"
	"github.com/specialistvlad/beanbridge/internal/converter"
	"github.com/specialistvlad/beanbridge/internal/ctxlog"
	"github.com/specialistvlad/beanbridge/internal/jsonbean"
	"github.com/specialistvlad/beanbridge/internal/metrics"
	"github.com/specialistvlad/beanbridge/internal/registry"
	"github.com/specialistvlad/beanbridge/internal/shadow"
	"github.com/zclconf/go-cty/cty"
	"golang.org/x/sync/errgroup"
)

// closeConcurrency bounds the parallel unregistrations of Close.
const closeConcurrency = 8

// Coordinator is a registry.Server that mirrors eligible beans of the
// primary registry as JSON shadows on the secondary registry.
type Coordinator struct {
	primary   registry.Server
	secondary registry.Server
	converter *converter.Converter
	policy    Policy
	conv      converter.Options
	metrics   *metrics.Metrics

	locks   *keyLock
	shadows *nameSet // the association set
	owned   *nameSet // names registered through the coordinator
}

var (
	_ registry.Server = (*Coordinator)(nil)
	_ shadow.Delegate = (*Coordinator)(nil)
)

type Option func(c *Coordinator)

// WithSecondary replaces the platform registry as the home of the shadows.
func WithSecondary(srv registry.Server) Option {
	return func(c *Coordinator) {
		c.secondary = srv
	}
}

// WithPolicy replaces MarkerPolicy.
func WithPolicy(p Policy) Option {
	return func(c *Coordinator) {
		c.policy = p
	}
}

// WithConversionOptions sets the limits used by shadows whose marker does
// not override them.
func WithConversionOptions(opts converter.Options) Option {
	return func(c *Coordinator) {
		c.conv = opts
	}
}

func WithConverter(conv *converter.Converter) Option {
	return func(c *Coordinator) {
		c.converter = conv
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

// New creates a coordinator in front of primary.
func New(primary registry.Server, opts ...Option) *Coordinator {
	c := &Coordinator{
		primary: primary,
		locks:   newKeyLock(),
		shadows: newNameSet(),
		owned:   newNameSet(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.secondary == nil {
		c.secondary = registry.Platform()
	}
	if c.converter == nil {
		c.converter = converter.New()
	}
	if c.policy == nil {
		c.policy = MarkerPolicy{}
	}
	if c.metrics == nil {
		c.metrics = metrics.New(nil)
	}
	return c
}

// Primary returns the registry the coordinator stands in front of.
func (c *Coordinator) Primary() registry.Server {
	return c.primary
}

// Secondary returns the registry holding the shadows.
func (c *Coordinator) Secondary() registry.Server {
	return c.secondary
}

// resolve completes a name without a domain the way the primary registry
// does, so that lock keys and association entries match realized names.
func (c *Coordinator) resolve(name beanid.Name) beanid.Name {
	if !name.IsZero() && name.Domain() == "" {
		return name.WithDomain(c.primary.DefaultDomain())
	}
	return name
}

func (c *Coordinator) lockKey(name beanid.Name) string {
	return c.resolve(name).Canonical()
}

// Register registers bean on the primary registry and, if the bean is
// eligible, its JSON shadow on the secondary registry. Errors of the
// primary registry are returned unchanged. Shadow failures are returned as
// a *RegistrationError together with the instance of the primary
// registration, which stays in place.
func (c *Coordinator) Register(ctx context.Context, bean any, name beanid.Name) (registry.Instance, error) {
	ctx, logger := ctxlog.With(ctx, "txn", uuid.NewString(), "op", OpRegister)

	requestedKey := c.lockKey(name)
	unlock := c.locks.Lock(requestedKey)
	defer func() { unlock() }()

	inst, err := c.primary.Register(ctx, bean, name)
	if err != nil {
		logger.Debug("Primary registration failed.", "name", name.String(), "error", err)
		return inst, err
	}
	c.metrics.IncRegistration(metrics.Primary)
	c.owned.add(inst.Name)
	logger.Debug("Registered bean on primary registry.", "name", inst.Name.String(), "requested", name.String())

	if key := inst.Name.Canonical(); key != requestedKey {
		// Only one key is held at a time, so crossed renames cannot
		// deadlock. The realized name was unlocked until now and may have
		// been unregistered in between.
		unlock()
		unlock = c.locks.Lock(key)
		if !c.primary.IsRegistered(ctx, inst.Name) {
			logger.Debug("Bean vanished before its shadow was built.", "name", inst.Name.String())
			return inst, nil
		}
	}

	rt := reflect.TypeOf(bean)
	if !c.policy.IsShadowEligible(rt) {
		return inst, nil
	}

	if err := c.registerShadow(ctx, bean, inst.Name); err != nil {
		logger.Error("Failed to register JSON shadow.", "name", inst.Name.String(), "error", err)
		return inst, &RegistrationError{Name: inst.Name, Op: OpRegister, Err: err}
	}
	return inst, nil
}

func (c *Coordinator) registerShadow(ctx context.Context, bean any, name beanid.Name) error {
	start := time.Now()

	info, err := c.primary.Info(ctx, name)
	if err != nil {
		c.metrics.IncShadowFailure(metrics.StageInfo)
		return fmt.Errorf("reading bean info: %w", err)
	}

	opts, err := jsonbean.OptionsFor(reflect.TypeOf(bean), jsonbean.DefaultOptions(c.conv))
	if err != nil {
		c.metrics.IncShadowFailure(metrics.StageBuild)
		return err
	}
	sh, err := shadow.Build(c, name, info, opts)
	if err != nil {
		c.metrics.IncShadowFailure(metrics.StageBuild)
		return err
	}
	c.metrics.ObserveShadowBuild(start)

	if _, err := c.secondary.Register(ctx, sh, name); err != nil {
		c.metrics.IncShadowFailure(metrics.StageRegister)
		return err
	}
	c.metrics.IncRegistration(metrics.Secondary)

	c.shadows.add(name)
	c.metrics.SetShadowsActive(c.shadows.len())
	ctxlog.FromContext(ctx).Debug("Registered JSON shadow.", "name", name.String(), "canonical", name.Canonical())
	return nil
}

// Unregister removes the named bean from the primary registry and then its
// shadow, if it has one. A name that is not registered yields
// registry.ErrNotFound and leaves the secondary registry untouched.
func (c *Coordinator) Unregister(ctx context.Context, name beanid.Name) error {
	ctx, logger := ctxlog.With(ctx, "txn", uuid.NewString(), "op", OpUnregister)

	unlock := c.locks.Lock(c.lockKey(name))
	defer unlock()

	if err := c.primary.Unregister(ctx, name); err != nil {
		logger.Debug("Primary unregistration failed.", "name", name.String(), "error", err)
		return err
	}
	c.metrics.IncUnregistration(metrics.Primary)
	resolved := c.resolve(name)
	c.owned.remove(resolved)
	logger.Debug("Unregistered bean from primary registry.", "name", resolved.String())

	return c.dropShadow(ctx, resolved)
}

// dropShadow removes the shadow of name, if the association set has one.
func (c *Coordinator) dropShadow(ctx context.Context, name beanid.Name) error {
	if !c.shadows.remove(name) {
		return nil
	}
	c.metrics.SetShadowsActive(c.shadows.len())

	if err := c.secondary.Unregister(ctx, name); err != nil {
		c.metrics.IncShadowFailure(metrics.StageUnregister)
		ctxlog.FromContext(ctx).Error("Failed to unregister JSON shadow.", "name", name.String(), "error", err)
		return &RegistrationError{Name: name, Op: OpUnregister, Err: err}
	}
	c.metrics.IncUnregistration(metrics.Secondary)
	ctxlog.FromContext(ctx).Debug("Unregistered JSON shadow.", "name", name.String(), "canonical", name.Canonical())
	return nil
}

// Shadowed returns the names that currently have a JSON shadow, sorted by
// canonical name.
func (c *Coordinator) Shadowed() []beanid.Name {
	return c.shadows.snapshot()
}

// IsShadowed reports whether name currently has a JSON shadow.
func (c *Coordinator) IsShadowed(name beanid.Name) bool {
	return c.shadows.contains(c.resolve(name))
}

// Close unregisters every bean still registered through the coordinator,
// in parallel, and returns all failures combined. Beans that have already
// left the primary registry only lose their shadow.
func (c *Coordinator) Close(ctx context.Context) error {
	var (
		mu     sync.Mutex
		result *multierror.Error
	)
	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		result = multierror.Append(result, err)
	}

	var g errgroup.Group
	g.SetLimit(closeConcurrency)
	for _, name := range c.owned.snapshot() {
		g.Go(func() error {
			err := c.Unregister(ctx, name)
			if errors.Is(err, registry.ErrNotFound) {
				err = c.forget(ctx, name)
			}
			if err != nil {
				record(fmt.Errorf("%s: %w", name, err))
			}
			return nil
		})
	}
	_ = g.Wait()

	ctxlog.FromContext(ctx).Debug("Coordinator closed.", "shadows_left", c.shadows.len())
	return result.ErrorOrNil()
}

// forget drops the bookkeeping and shadow of a bean that left the primary
// registry without going through the coordinator. A bean registered again
// under the same name in the meantime is left alone.
func (c *Coordinator) forget(ctx context.Context, name beanid.Name) error {
	unlock := c.locks.Lock(c.lockKey(name))
	defer unlock()

	if c.primary.IsRegistered(ctx, name) {
		return nil
	}
	c.owned.remove(name)
	return c.dropShadow(ctx, name)
}

// Info returns the metadata of the named bean from the primary registry.
func (c *Coordinator) Info(ctx context.Context, name beanid.Name) (beaninfo.Info, error) {
	return c.primary.Info(ctx, name)
}

func (c *Coordinator) GetAttribute(ctx context.Context, name beanid.Name, attr string) (any, error) {
	return c.primary.GetAttribute(ctx, name, attr)
}

func (c *Coordinator) SetAttribute(ctx context.Context, name beanid.Name, attr string, value any) error {
	return c.primary.SetAttribute(ctx, name, attr, value)
}

func (c *Coordinator) Invoke(ctx context.Context, name beanid.Name, op string, params []any, signature []string) (any, error) {
	return c.primary.Invoke(ctx, name, op, params, signature)
}

func (c *Coordinator) IsRegistered(ctx context.Context, name beanid.Name) bool {
	return c.primary.IsRegistered(ctx, name)
}

func (c *Coordinator) Query(ctx context.Context, pattern beanid.Name) ([]registry.Instance, error) {
	return c.primary.Query(ctx, pattern)
}

func (c *Coordinator) Count(ctx context.Context) int {
	return c.primary.Count(ctx)
}

func (c *Coordinator) DefaultDomain() string {
	return c.primary.DefaultDomain()
}

// ToJSON renders v as JSON text with the converter engine.
func (c *Coordinator) ToJSON(ctx context.Context, v any, opts converter.Options) string {
	return c.converter.ToJSON(ctx, v, opts)
}

// FromJSON converts JSON text to the named type with the converter engine.
func (c *Coordinator) FromJSON(typeName, text string) (any, error) {
	return c.converter.FromJSON(typeName, text)
}

// FromJSONOpenType converts JSON text to a value of the open type ty.
func (c *Coordinator) FromJSONOpenType(ty cty.Type, text string) (cty.Value, error) {
	return c.converter.FromJSONOpenType(ty, text)
}

// Decode binds an open type value to a Go value.
func (c *Coordinator) Decode(val cty.Value, target any) error {
	return c.converter.Decode(val, target)
}
