// Package tracing wraps OpenTelemetry so the API layer can open spans around simulation
// runs without importing the SDK itself.
package tracing

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/neptune-T/OS-Simulation-Platform"

// Init installs the stdout exporter as the global tracer provider. An empty outputFile
// writes to os.Stdout. A call made while a provider is installed is a no-op.
func Init(serviceName, serviceVersion, outputFile string) error {
	var w io.Writer = os.Stdout
	var f *os.File
	if outputFile != "" {
		var err error
		if f, err = os.Create(outputFile); err != nil {
			return err
		}
		w = f
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err == nil {
		var installed bool
		if installed, err = installProvider(serviceName, serviceVersion, exporter); installed {
			if f != nil {
				mu.Lock()
				output = f
				mu.Unlock()
			}
			return nil
		}
	}
	if f != nil {
		_ = f.Close()
	}
	return err
}

// InitWithExporter installs an arbitrary span exporter.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	_, err := installProvider(serviceName, serviceVersion, exporter)
	return err
}

var (
	mu       sync.Mutex
	provider *sdktrace.TracerProvider
	// output is the trace file opened by Init, closed by Shutdown.
	output io.Closer
)

func installProvider(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) (bool, error) {
	if exporter == nil {
		return false, nil
	}

	mu.Lock()
	defer mu.Unlock()
	if provider != nil {
		return false, nil
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return false, err
	}

	provider = sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return true, nil
}

// Shutdown flushes and stops the installed provider and closes its trace file. A later
// Init installs a fresh provider.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()
	if provider == nil {
		return nil
	}
	err := provider.Shutdown(ctx)
	provider = nil
	if output != nil {
		if cerr := output.Close(); err == nil {
			err = cerr
		}
		output = nil
	}
	return err
}

// Span wraps an OpenTelemetry span.
type Span struct {
	span trace.Span
}

func (s *Span) WithAttributes(attrs map[string]string) *Span {
	if s == nil || len(attrs) == 0 {
		return s
	}
	kv := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kv = append(kv, attribute.String(k, v))
	}
	s.span.SetAttributes(kv...)
	return s
}

func (s *Span) WithInt(key string, value int) *Span {
	if s == nil {
		return s
	}
	s.span.SetAttributes(attribute.Int(key, value))
	return s
}

func (s *Span) WithFloat(key string, value float64) *Span {
	if s == nil {
		return s
	}
	s.span.SetAttributes(attribute.Float64(key, value))
	return s
}

// SetStatus records err on the span, or an OK status when err is nil.
func (s *Span) SetStatus(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
		return
	}
	s.span.SetStatus(codes.Ok, "")
}

// StartSpan starts a child span. kind is one of SERVER, CLIENT, PRODUCER, CONSUMER; anything
// else is internal.
func StartSpan(ctx context.Context, name, kind string) (context.Context, *Span) {
	tracer := otel.Tracer(instrumentationName)

	var spanKind trace.SpanKind
	switch kind {
	case "SERVER":
		spanKind = trace.SpanKindServer
	case "CLIENT":
		spanKind = trace.SpanKindClient
	case "PRODUCER":
		spanKind = trace.SpanKindProducer
	case "CONSUMER":
		spanKind = trace.SpanKindConsumer
	default:
		spanKind = trace.SpanKindInternal
	}

	ctx, span := tracer.Start(ctx, name, trace.WithSpanKind(spanKind))
	return ctx, &Span{span: span}
}

// EndSpan sets the status from err and ends the span.
func EndSpan(sp *Span, err error) {
	if sp == nil {
		return
	}
	sp.SetStatus(err)
	sp.span.End()
}
