package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/orbitlettings/orbit-api/internal/logger"
)

// Init configures an OTLP HTTP exporter if an endpoint is configured.
// With no endpoint, tracing stays a no-op and the returned shutdown
// function does nothing.
func Init(ctx context.Context, log *logger.Logger, endpoint, serviceName, environment string) (func(context.Context) error, error) {
	if endpoint == "" {
		log.Info("Tracing disabled: no OTLP endpoint configured", nil)
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.DeploymentEnvironment(environment),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	log.Info("Tracing initialized", map[string]interface{}{
		"endpoint": endpoint,
	})
	return tp.Shutdown, nil
}
