package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/kbukum/aliasdi"

// Span and metric names.
const (
	SpanResolve       = "aliasdi.resolve"
	MetricResolutions = "aliasdi.resolutions"
	MetricResolveTime = "aliasdi.resolve.duration"
	AttrAlias         = "aliasdi.alias"
	AttrStrategy      = "aliasdi.strategy"
	AttrOutcome       = "outcome"
	OutcomeOK         = "ok"
	OutcomeError      = "error"
	OutcomeShared     = "shared"
)

// Instruments holds the tracer and metric instruments used by a container.
type Instruments struct {
	tracer      trace.Tracer
	resolutions metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewInstruments creates instruments from the given providers.
func NewInstruments(tp trace.TracerProvider, mp metric.MeterProvider) (*Instruments, error) {
	meter := mp.Meter(instrumentationName)

	resolutions, err := meter.Int64Counter(MetricResolutions,
		metric.WithDescription("Alias resolutions by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricResolutions, err)
	}

	duration, err := meter.Float64Histogram(MetricResolveTime,
		metric.WithDescription("Duration of non-cached alias resolutions"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricResolveTime, err)
	}

	return &Instruments{
		tracer:      tp.Tracer(instrumentationName),
		resolutions: resolutions,
		duration:    duration,
	}, nil
}

// ResolveSpan tracks one resolution started by StartResolve.
type ResolveSpan struct {
	inst  *Instruments
	ctx   context.Context
	span  trace.Span
	alias string
	start time.Time
}

// StartResolve opens the span for resolving alias with the given strategy.
func (i *Instruments) StartResolve(ctx context.Context, alias, strategy string) (context.Context, *ResolveSpan) {
	ctx, span := i.tracer.Start(ctx, SpanResolve, trace.WithAttributes(
		attribute.String(AttrAlias, alias),
		attribute.String(AttrStrategy, strategy),
	))
	return ctx, &ResolveSpan{inst: i, ctx: ctx, span: span, alias: alias, start: time.Now()}
}

// End closes the span and records the outcome.
func (s *ResolveSpan) End(err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.span.End()

	elapsed := float64(time.Since(s.start).Microseconds()) / 1000
	s.inst.duration.Record(s.ctx, elapsed, metric.WithAttributes(attribute.String(AttrAlias, s.alias)))
	s.inst.resolutions.Add(s.ctx, 1, metric.WithAttributes(
		attribute.String(AttrAlias, s.alias),
		attribute.String(AttrOutcome, outcome),
	))
}

// RecordShared counts a caller that joined a resolution already in flight.
func (i *Instruments) RecordShared(ctx context.Context, alias string) {
	i.resolutions.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrAlias, alias),
		attribute.String(AttrOutcome, OutcomeShared),
	))
}
