// Package telemetry traces the game server: one span per game
// creation, player shot, computer shot and game end.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "battleship-solo"
	serviceVersion = "0.1.0"
)

// Settings describe where spans go and which server produced them.
type Settings struct {
	// OTLP HTTP url, e.g. http://localhost:4318. Empty disables tracing.
	Endpoint string

	Stage            string
	ComputerStrategy string
}

func (s Settings) Enabled() bool {
	return s.Endpoint != ""
}

// Setup installs the global tracer provider. When tracing is disabled
// the global no-op provider stays in place and shutdown does nothing.
// Exporter headers come from OTEL_EXPORTER_OTLP_HEADERS.
func Setup(ctx context.Context, settings Settings) (shutdown func(context.Context) error, err error) {
	if !settings.Enabled() {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(settings.Endpoint))
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, settings)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Games of different stages and strategies share one backend, so the
// resource carries both.
func newResource(ctx context.Context, settings Settings) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("deployment.environment", settings.Stage),
			attribute.String("battleship.computer_strategy", settings.ComputerStrategy),
			attribute.String("host.name", hostname()),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
}

// Tracer returns a tracer scoped to one package of the server, such
// as "api".
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName + "/noop")
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
