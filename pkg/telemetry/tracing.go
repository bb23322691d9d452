// Пакет telemetry - OTLP/HTTP трейсинг узла Swarm.
package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Options — параметры экспорта. NodeID попадает в service.instance.id:
// спаны разных узлов одного Swarm различимы в одном сервисе.
type Options struct {
	ServiceName string
	Endpoint    string
	SampleRatio float64
	NodeID      string
}

func (o *Options) normalize() error {
	if o.ServiceName == "" {
		return errors.New("telemetry: service name is required")
	}
	if o.Endpoint == "" {
		o.Endpoint = "localhost:4318"
	}
	if o.SampleRatio < 0 {
		o.SampleRatio = 0
	}
	if o.SampleRatio > 1 {
		o.SampleRatio = 1
	}
	return nil
}

// Resource — атрибуты процесса для провайдера трейсинга.
func (o *Options) Resource() *resource.Resource {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(o.ServiceName),
		attribute.String("telemetry.sdk", "opentelemetry"),
	}
	if o.NodeID != "" {
		attrs = append(attrs, semconv.ServiceInstanceID(o.NodeID))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

// SetupTracing настраивает OTLP/HTTP экспорт, семплинг (с учётом решения родителя:
// запрос пира продолжает трейс узла-инициатора) и глобальные пропагаторы.
// Возвращает функцию корректного завершения провайдера.
func SetupTracing(ctx context.Context, opts Options) (func(context.Context) error, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	// Экспортёр OTLP/HTTP без TLS.
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(opts.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))),
		sdktrace.WithResource(opts.Resource()),
	)

	// Глобальный провайдер и пропагатор (TraceContext + Baggage): otelhttp переносит контекст к пирам и вендорам.
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		),
	)

	return traceProvider.Shutdown, nil
}
