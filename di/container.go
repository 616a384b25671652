package di

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/aliasdi/errors"
	"github.com/kbukum/aliasdi/logger"
	"github.com/kbukum/aliasdi/module"
	"github.com/kbukum/aliasdi/observability"
)

// RegistrationInfo describes a registered alias for introspection.
type RegistrationInfo struct {
	Alias       string   `json:"alias"`
	Module      string   `json:"module"`
	ClassName   string   `json:"className,omitempty"`
	Instantiate bool     `json:"instantiate"`
	Strategy    Strategy `json:"strategy"`
	Cached      bool     `json:"cached"`
}

// Container resolves aliases lazily and caches each resolved value for
// its whole lifetime. It is safe for concurrent use.
type Container struct {
	id        string
	scopeName string

	registry     *AliasRegistry
	cache        *InstanceCache
	validator    *ConfigValidator
	instantiator *Instantiator

	log *logger.Logger
	obs *observability.Instruments
}

var _ Locator = (*Container)(nil)

// New creates a container. Configurations given through WithConfig or
// FromConfig are registered before New returns.
func New(opts ...Option) (*Container, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.resolver == nil {
		o.resolver = module.NewTable()
	}
	if o.log == nil {
		o.log = logger.Get("di")
	}

	obs, err := observability.NewInstruments(o.tracerProvider, o.meterProvider)
	if err != nil {
		return nil, fmt.Errorf("di: %w", err)
	}

	id := uuid.NewString()
	log := o.log.WithFields(logger.Fields(logger.FieldContainerID, id))

	c := &Container{
		id:           id,
		scopeName:    o.scopeName,
		registry:     NewAliasRegistry(),
		cache:        NewInstanceCache(),
		validator:    NewConfigValidator(log),
		instantiator: NewInstantiator(o.resolver),
		log:          log,
		obs:          obs,
	}

	for _, raw := range o.aliases {
		if err := c.Register(raw); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ID returns the identifier that tags every log line of the container.
func (c *Container) ID() string { return c.id }

// ScopeName returns the name under which dependency scopes are attached.
func (c *Container) ScopeName() string { return c.scopeName }

// Register validates raw and merges its aliases into the registry, replacing
// existing entries. Nothing is merged when validation fails. Already cached
// values are kept.
func (c *Container) Register(raw any) error {
	entries, err := c.validator.Validate(raw)
	if err != nil {
		c.log.Warn("Rejected configuration", logger.ErrorFields("register", err))
		return err
	}
	c.registry.Merge(entries)
	c.log.Debug("Registered aliases", logger.Fields(
		"count", len(entries),
		"total", c.registry.Len(),
	))
	return nil
}

// Get resolves alias. The first call runs the entry's strategy, resolves
// the declared dependencies into the value's scope and runs Init; the result
// is cached and returned to every later caller. Concurrent callers share a
// resolution in flight. A failed resolution is not cached.
//
// Values that call Get from Construct or Init must pass on the ctx they
// received so that cycles through them are detected.
func (c *Container) Get(ctx context.Context, alias string) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if v, ok := c.cache.Lookup(alias); ok {
		return v, nil
	}

	entry, ok := c.registry.Entry(alias)
	if !ok {
		return nil, errors.NotRegistered(alias)
	}

	chain := chainFrom(ctx)
	cl, state, err := c.cache.acquire(alias, chain)
	if err != nil {
		c.log.Error("Cyclic dependency", logger.Fields(
			logger.FieldAlias, alias,
			logger.FieldChain, strings.Join(append(chain, alias), " -> "),
		))
		return nil, err
	}
	defer c.cache.release(chain)

	switch state {
	case stateCached:
		return cl.value, nil
	case stateJoined:
		c.obs.RecordShared(ctx, alias)
		return cl.wait(ctx)
	}

	done := false
	defer func() {
		if !done {
			c.cache.complete(alias, cl, nil, errors.Internal(fmt.Errorf("resolution of %q panicked", alias)))
		}
	}()
	value, err := c.resolve(withAlias(ctx, chain, alias), alias, entry)
	done = true
	c.cache.complete(alias, cl, value, err)
	return value, err
}

func (c *Container) resolve(ctx context.Context, alias string, entry AliasEntry) (value any, err error) {
	strategy := entry.Strategy()
	ctx, span := c.obs.StartResolve(ctx, alias, string(strategy))
	start := time.Now()
	defer func() { span.End(err) }()

	fields := logger.Fields(
		logger.FieldAlias, alias,
		logger.FieldModule, entry.Module,
		logger.FieldStrategy, string(strategy),
	)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		ctx = logger.ContextWithTrace(ctx, sc.TraceID().String(), sc.SpanID().String())
	}
	log := c.log.WithContext(ctx)
	log.Debug("Resolving alias", fields)

	value, err = c.build(ctx, alias, entry)
	if err != nil {
		log.Error("Alias resolution failed", logger.MergeWithError(fields, err))
		return nil, err
	}

	log.Debug("Alias resolved", logger.MergeWithDuration(fields, time.Since(start)))
	return value, nil
}

func (c *Container) build(ctx context.Context, alias string, entry AliasEntry) (any, error) {
	inst, err := c.instantiator.Instantiate(ctx, alias, entry)
	if err != nil {
		return nil, err
	}
	if err := c.wireDependencies(ctx, alias, inst); err != nil {
		return nil, err
	}
	return c.runLifecycle(ctx, alias, inst.Value, entry)
}

// MustGet resolves alias and panics on failure.
func (c *Container) MustGet(ctx context.Context, alias string) any {
	v, err := c.Get(ctx, alias)
	if err != nil {
		panic(fmt.Sprintf("di: failed to get %s: %v", alias, err))
	}
	return v
}

// Registrations returns every registered alias, sorted by alias.
func (c *Container) Registrations() []RegistrationInfo {
	aliases := c.registry.Aliases()
	result := make([]RegistrationInfo, 0, len(aliases))
	for _, alias := range aliases {
		if info, ok := c.Registration(alias); ok {
			result = append(result, info)
		}
	}
	return result
}

// Registration returns the registration of alias.
func (c *Container) Registration(alias string) (RegistrationInfo, bool) {
	entry, ok := c.registry.Entry(alias)
	if !ok {
		return RegistrationInfo{}, false
	}
	return RegistrationInfo{
		Alias:       alias,
		Module:      entry.Module,
		ClassName:   entry.ClassName,
		Instantiate: entry.Instantiate,
		Strategy:    entry.Strategy(),
		Cached:      c.cache.Cached(alias),
	}, true
}

// Close closes every cached value with a Close() error method, most
// recently resolved first. The cache itself is left untouched.
func (c *Container) Close() error {
	order := c.cache.Order()
	var errs []error
	for i := len(order) - 1; i >= 0; i-- {
		v, _ := c.cache.Lookup(order[i])
		closer, ok := v.(interface{ Close() error })
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			c.log.Warn("Close failed", logger.Fields(logger.FieldAlias, order[i], logger.FieldError, err.Error()))
			errs = append(errs, fmt.Errorf("close %s: %w", order[i], err))
		}
	}
	return stderrors.Join(errs...)
}
