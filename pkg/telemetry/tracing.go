package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/odvcencio/shadotui/pkg/ui/runtime"

// Common span attribute keys.
var (
	AttrAction    = attribute.Key("shadotui.action")
	AttrFollowUp  = attribute.Key("shadotui.action.follow_up")
	AttrSessionID = attribute.Key("shadotui.session.id")
)

// TracerProvider owns the SDK provider and its output file.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	closer   io.Closer
}

// NewTracerProvider exports spans as JSON to w and installs the provider
// globally. Spans are exported synchronously so nothing is lost on exit.
func NewTracerProvider(serviceName, version string, w io.Writer) (*TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(provider)

	return &TracerProvider{provider: provider}, nil
}

// NewFileTracerProvider appends spans to path, creating parent directories.
func NewFileTracerProvider(serviceName, version, path string) (*TracerProvider, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create trace directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	tp, err := NewTracerProvider(serviceName, version, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	tp.closer = f
	return tp, nil
}

// Shutdown flushes spans and closes the output file.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp == nil {
		return nil
	}
	err := tp.provider.Shutdown(ctx)
	if tp.closer != nil {
		if cerr := tp.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Tracer returns the runtime tracer from the global provider. Without a
// provider installed spans are no-ops.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartSpan starts a new span with the given name.
func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, spanName, opts...)
}
