package di

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/aliasdi/config"
	"github.com/kbukum/aliasdi/logger"
	"github.com/kbukum/aliasdi/module"
)

// Option configures a Container.
type Option func(*options)

type options struct {
	scopeName      string
	resolver       module.Resolver
	log            *logger.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	aliases        []any
}

func defaultOptions() *options {
	return &options{
		scopeName:      DefaultScopeName,
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
}

// WithScopeName sets the name under which dependency scopes are attached.
func WithScopeName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.scopeName = name
		}
	}
}

// WithResolver sets the module resolution service.
func WithResolver(r module.Resolver) Option {
	return func(o *options) { o.resolver = r }
}

// WithLogger sets the container logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTracerProvider sets the provider of resolution spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tracerProvider = tp
		}
	}
}

// WithMeterProvider sets the provider of resolution metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}

// WithConfig registers raw as the initial configuration. It may be given
// more than once; later configurations override earlier aliases.
func WithConfig(raw any) Option {
	return func(o *options) { o.aliases = append(o.aliases, raw) }
}

// FromConfig applies a loaded container configuration: scope name, logger
// and the aliases section.
func FromConfig(cfg *config.ContainerConfig) Option {
	return func(o *options) {
		if cfg == nil {
			return
		}
		if cfg.Scope != "" {
			o.scopeName = cfg.Scope
		}
		if o.log == nil {
			lc := cfg.Logging
			o.log = logger.New(&lc, cfg.Name)
		}
		if cfg.Aliases != nil {
			o.aliases = append(o.aliases, cfg.Aliases)
		}
	}
}
