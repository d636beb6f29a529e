package telemetry

import "go.opentelemetry.io/otel/trace"

// NewOTelTracerFromProvider creates an OTelTracer bound to tp instead of the global provider.
func NewOTelTracerFromProvider(tp trace.TracerProvider, name string) *OTelTracer {
	return &OTelTracer{tracer: tp.Tracer(name)}
}
