package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const defaultEndpoint = "localhost:4318"

// TracingConfig — параметры экспорта трейсов.
type TracingConfig struct {
	ServiceName string
	Endpoint    string  // host:port OTLP/HTTP; пусто — localhost:4318
	SampleRatio float64 // доля корневых спанов, приводится к [0..1]
	// Attributes — дополнительные атрибуты ресурса (например, backend контекстов).
	Attributes map[string]string
}

// ShutdownFunc — сброс буфера и остановка провайдера.
type ShutdownFunc func(context.Context) error

// SetupTracing — OTLP/HTTP экспорт, семплинг по родителю и глобальные пропагаторы.
func SetupTracing(ctx context.Context, cfg TracingConfig) (ShutdownFunc, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(Sampler(cfg.SampleRatio)),
		sdktrace.WithResource(Resource(cfg)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// Sampler — входящий контекст трассы решает сам, корневые спаны режутся по доле.
func Sampler(ratio float64) sdktrace.Sampler {
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clampRatio(ratio)))
}

// Resource — имя сервиса и дополнительные атрибуты.
func Resource(cfg TracingConfig) *resource.Resource {
	attrs := make([]attribute.KeyValue, 0, len(cfg.Attributes)+2)
	attrs = append(attrs,
		semconv.ServiceName(cfg.ServiceName),
		attribute.String("telemetry.sdk", "opentelemetry"),
	)
	for k, v := range cfg.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}
