// Package telemetry wires OpenTelemetry tracing for the daemon. Export is
// over OTLP/HTTP and stays off unless an endpoint is configured.
package telemetry

import (
	"context"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/felixgeelhaar/codelearn/internal/config"
)

const instrumentationName = "github.com/felixgeelhaar/codelearn"

// Provider owns the tracer provider for the process
type Provider struct {
	sdk      *sdktrace.TracerProvider
	provider trace.TracerProvider
}

// Setup creates a provider from cfg. With no endpoint it returns a no-op
// provider and a nil error.
func Setup(ctx context.Context, cfg config.TelemetryConfig) (*Provider, error) {
	if cfg.OTLPEndpoint == "" {
		return Disabled(), nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	slog.Info("trace export enabled", "endpoint", cfg.OTLPEndpoint, "service", cfg.ServiceName)
	return newProvider(cfg.ServiceName, sdktrace.WithBatcher(exporter)), nil
}

// Disabled returns a provider whose spans are dropped
func Disabled() *Provider {
	return &Provider{provider: noop.NewTracerProvider()}
}

func newProvider(serviceName string, opts ...sdktrace.TracerProviderOption) *Provider {
	if serviceName == "" {
		serviceName = "codelearnd"
	}
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))
	opts = append(opts, sdktrace.WithResource(res))

	tp := sdktrace.NewTracerProvider(opts...)
	return &Provider{sdk: tp, provider: tp}
}

// Enabled reports whether spans are exported
func (p *Provider) Enabled() bool {
	return p != nil && p.sdk != nil
}

// Tracer returns the process tracer
func (p *Provider) Tracer() trace.Tracer {
	if p == nil {
		return noop.NewTracerProvider().Tracer(instrumentationName)
	}
	return p.provider.Tracer(instrumentationName)
}

// Handler wraps h so every request gets a server span named by method
// and path.
func (p *Provider) Handler(h http.Handler, operation string) http.Handler {
	tp := trace.TracerProvider(noop.NewTracerProvider())
	if p != nil {
		tp = p.provider
	}
	return otelhttp.NewHandler(h, operation,
		otelhttp.WithTracerProvider(tp),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

// Shutdown flushes pending spans
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}
