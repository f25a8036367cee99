// Package telemetry sets up tracing and continuous profiling.
package telemetry

import (
	"context"
	"fmt"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"github.com/grafana/pyroscope-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/config"
)

// Telemetry owns the tracer provider and profiler started by Setup.
type Telemetry struct {
	tracerProvider trace.TracerProvider
	shutdown       []func(context.Context) error
}

// Option configures Setup.
type Option func(*options)

type options struct {
	log        *zap.Logger
	processors []sdktrace.SpanProcessor
	global     bool
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithSpanProcessor adds a span processor alongside the exporter.
func WithSpanProcessor(p sdktrace.SpanProcessor) Option {
	return func(o *options) { o.processors = append(o.processors, p) }
}

// WithoutGlobal leaves the global tracer provider untouched.
func WithoutGlobal() Option {
	return func(o *options) { o.global = false }
}

// Setup builds a tracer provider exporting over OTLP/HTTP when an endpoint
// is configured, and starts a Pyroscope profiler linked to spans when a
// profiling server is configured. The provider is installed globally unless
// WithoutGlobal is given.
func Setup(ctx context.Context, cfg config.TelemetryConfig, opts ...Option) (*Telemetry, error) {
	o := options{log: zap.NewNop(), global: true}
	for _, opt := range opts {
		opt(&o)
	}

	res := resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))
	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	for _, p := range o.processors {
		tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(p))
	}
	if cfg.OTLPEndpoint != "" {
		exp, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("creating OTLP exporter: %w", err)
		}
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exp))
		o.log.Info("exporting traces", zap.String("endpoint", cfg.OTLPEndpoint))
	}
	sdk := sdktrace.NewTracerProvider(tpOpts...)

	t := &Telemetry{
		tracerProvider: sdk,
		shutdown:       []func(context.Context) error{sdk.Shutdown},
	}

	if cfg.PyroscopeAddress != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: cfg.ServiceName,
			ServerAddress:   cfg.PyroscopeAddress,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			_ = sdk.Shutdown(ctx)
			return nil, fmt.Errorf("starting profiler: %w", err)
		}
		t.tracerProvider = otelpyroscope.NewTracerProvider(sdk)
		t.shutdown = append(t.shutdown, func(context.Context) error { return profiler.Stop() })
		o.log.Info("profiling", zap.String("server", cfg.PyroscopeAddress))
	}

	if o.global {
		otel.SetTracerProvider(t.tracerProvider)
	}
	return t, nil
}

// TracerProvider returns the provider to hand to instrumented components.
func (t *Telemetry) TracerProvider() trace.TracerProvider {
	return t.tracerProvider
}

// Shutdown flushes spans and stops the profiler.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs error
	for i := len(t.shutdown) - 1; i >= 0; i-- {
		errs = multierr.Append(errs, t.shutdown[i](ctx))
	}
	return errs
}
