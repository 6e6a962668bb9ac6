package tracing

import (
	"context"
	"fmt"

	"solitaire-go/internal/config"
	"solitaire-go/internal/game/solitaire"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// ServiceName names the tracer and the otel resource.
const ServiceName = "solitaire-go"

var tracer trace.Tracer

// InitTracer installs the global tracer provider described by cfg. Spans go
// to stdout unless cfg.TracesExport is "none". The returned func flushes and
// stops the provider.
func InitTracer(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	res, err := resource.New(
		ctx,
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(ServiceName),
			semconv.DeploymentEnvironmentKey.String(cfg.AppEnv),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tracing: create resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(samplerFor(cfg)),
	}
	if cfg.TracesExport != "none" {
		var expOpts []stdouttrace.Option
		if cfg.TracePretty {
			expOpts = append(expOpts, stdouttrace.WithPrettyPrint())
		}
		exporter, err := stdouttrace.New(expOpts...)
		if err != nil {
			return nil, fmt.Errorf("tracing: init stdout exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(ServiceName)

	return tp.Shutdown, nil
}

// samplerFor keeps every trace in development and samples by ratio elsewhere.
// A sampled parent always wins.
func samplerFor(cfg config.Config) sdktrace.Sampler {
	if cfg.IsDev() || cfg.TraceSampleRatio >= 1 {
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.TraceSampleRatio))
}

func GetTracer() trace.Tracer {
	if tracer == nil {
		tracer = otel.Tracer(ServiceName)
	}
	return tracer
}

func StartSpan(ctx context.Context, spanName string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, spanName)
}

// StartTableSpan starts a span tagged with the table it acts on.
func StartTableSpan(ctx context.Context, spanName, tableID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("table.id", tableID))
	return GetTracer().Start(ctx, spanName, trace.WithAttributes(attrs...))
}

// StartEventSpan covers one pointer event on a table, from either transport.
func StartEventSpan(ctx context.Context, tableID, eventType string) (context.Context, trace.Span) {
	return StartTableSpan(ctx, "table.event", tableID, attribute.String("event.type", eventType))
}

// RecordOutcome tags span with what the engine made of the event.
func RecordOutcome(span trace.Span, out solitaire.Outcome) {
	attrs := []attribute.KeyValue{attribute.String("outcome.kind", string(out.Kind))}
	if out.Source != "" {
		attrs = append(attrs, attribute.String("outcome.source", string(out.Source)))
	}
	if out.Dest != "" {
		attrs = append(attrs, attribute.String("outcome.dest", string(out.Dest)))
	}
	if out.Cards > 0 {
		attrs = append(attrs, attribute.Int("outcome.cards", out.Cards))
	}
	if out.Revealed {
		attrs = append(attrs, attribute.Bool("outcome.revealed", true))
	}
	span.SetAttributes(attrs...)
}
