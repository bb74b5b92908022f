package tracing

import (
	"context"
	"fmt"
	"os"

	"github.com/aws-observability/aws-otel-go/exporters/xrayudp"
	"go.opentelemetry.io/contrib/propagators/aws/xray"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/trace"
)

const (
	ExporterXRay   = "xray"
	ExporterStdout = "stdout"
	ExporterNone   = "none"
)

// InitTracer installs a global tracer provider exporting spans the given
// way. The provider must be shut down to flush pending spans.
func InitTracer(ctx context.Context, exporter string) (*trace.TracerProvider, error) {
	switch exporter {
	case ExporterXRay:
		return InitOtelXrayTracer(ctx)
	case ExporterStdout:
		return InitStdoutTracer()
	case ExporterNone, "":
		tp := trace.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return tp, nil
	}

	return nil, fmt.Errorf("unsupported tracing exporter %q", exporter)
}

// InitOtelXrayTracer sends spans to the local X-Ray daemon over UDP.
func InitOtelXrayTracer(ctx context.Context) (*trace.TracerProvider, error) {
	udpExporter, err := xrayudp.NewSpanExporter(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not initialize xray exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithSpanProcessor(trace.NewSimpleSpanProcessor(udpExporter)),
		trace.WithIDGenerator(xray.NewIDGenerator()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(xray.Propagator{})

	return tp, nil
}

// InitStdoutTracer writes spans to stderr, for running locally.
func InitStdoutTracer() (*trace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
	if err != nil {
		return nil, fmt.Errorf("could not initialize stdout exporter: %w", err)
	}

	tp := trace.NewTracerProvider(trace.WithBatcher(exporter))

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp, nil
}
