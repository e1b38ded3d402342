// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package tracing installs an OpenTelemetry tracer provider for the
// interpreter's top-level read-eval-print cycles. It is always safe to
// call Start: with no endpoint configured it installs the SDK's no-op
// behavior equivalent (a provider that never exports), matching the
// "always-present instrumentation, inert until wired" pattern the
// bootstrap sequence otherwise follows for metrics.
package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the single span source the interpreter's top-level driver
// uses to wrap each eval cycle.
type Tracer struct {
	tr       trace.Tracer
	provider *sdktrace.TracerProvider
}

// Start configures global tracing. If endpoint is empty, a
// TracerProvider with no span processors is installed: spans are
// created (so call sites need no conditional logic) but never
// exported anywhere. If endpoint is set, an OTLP/HTTP exporter batches
// spans to it.
func Start(ctx context.Context, serviceName, sessionID, endpoint string) (*Tracer, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceInstanceID(sessionID),
		),
	)
	if err != nil {
		return nil, err
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}

	if endpoint != "" {
		exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdktrace.WithBatcher(exp, sdktrace.WithBatchTimeout(2*time.Second)))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return &Tracer{tr: tp.Tracer("golisp"), provider: tp}, nil
}

// StartCycle opens a span around one top-level eval cycle.
func (t *Tracer) StartCycle(ctx context.Context, sourceLen int) (context.Context, trace.Span) {
	return t.tr.Start(ctx, "golisp.eval_cycle", trace.WithAttributes(
		attribute.Int("golisp.source_len", sourceLen),
	))
}

// AnnotateResult records the printed kind of an eval cycle's result
// value on an already-open span (e.g. "number", "error", "closure").
func AnnotateResult(span trace.Span, kind string) {
	span.SetAttributes(attribute.String("golisp.result_kind", kind))
}

// Shutdown flushes and releases the tracer provider; called once at
// process exit.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
