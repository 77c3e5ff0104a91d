package telemetry

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracerUsesInstalledProvider(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	Install(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	_, span := Tracer("test").Start(context.Background(), "unit")
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	if got := spans[0].InstrumentationScope().Name; got != "isogrid/test" {
		t.Errorf("Scope name = %q, want %q", got, "isogrid/test")
	}
}

func TestInstallNoopRecordsNothing(t *testing.T) {
	InstallNoop()
	_, span := Tracer("test").Start(context.Background(), "ignored")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Error("No-op span should not carry a valid span context")
	}
}

func TestResourceAttributes(t *testing.T) {
	res, err := Resource(context.Background())
	if err != nil {
		t.Fatalf("Resource failed: %v", err)
	}

	found := false
	for _, kv := range res.Attributes() {
		if string(kv.Key) == "service.name" && kv.Value.AsString() == serviceName {
			found = true
		}
	}
	if !found {
		t.Error("Resource missing service.name attribute")
	}
}
