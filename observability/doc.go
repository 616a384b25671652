// Package observability instruments alias resolution with OpenTelemetry.
//
// Every non-cached resolution runs inside an "aliasdi.resolve" span and is
// counted and timed:
//
//	inst, err := observability.NewInstruments(otel.GetTracerProvider(), otel.GetMeterProvider())
//	ctx, rs := inst.StartResolve(ctx, "db", "construct")
//	defer rs.End(err)
//
// Instruments record into whatever providers are global when the container
// is created. Init installs OTLP/HTTP providers from a Config:
//
//	providers, err := observability.Init(ctx, &cfg.Telemetry, observability.Resource{ServiceName: "billing"})
//	defer providers.Shutdown(ctx)
package observability
