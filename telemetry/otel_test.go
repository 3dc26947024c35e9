package telemetry

import (
	"context"
	"errors"
	"testing"
)

func TestNewOTelProviderRejectsEmptyServiceName(t *testing.T) {
	if _, err := NewOTelProvider(""); err == nil {
		t.Fatal("expected an error for an empty service name")
	}
}

func TestOTelProviderStartSpanAndRecordMetric(t *testing.T) {
	provider, err := NewOTelProvider("ai-council-test")
	if err != nil {
		t.Fatalf("unexpected error building provider: %v", err)
	}
	defer provider.Shutdown(context.Background())

	ctx, span := provider.StartSpan(context.Background(), "test.span")
	if ctx == nil {
		t.Fatal("expected a non-nil context")
	}
	span.SetAttribute("request_id", "abc-123")
	span.SetAttribute("subtask_count", 3)
	span.RecordError(errors.New("boom"))
	span.End()

	provider.RecordMetric("orchestrator.request_duration_seconds", 1.5, map[string]string{"execution_mode": "balanced"})
	provider.RecordMetric("orchestrator.request_failures_total", 1, map[string]string{"stage": "task_creation_failed"})
}

func TestOTelProviderShutdownIsIdempotent(t *testing.T) {
	provider, err := NewOTelProvider("ai-council-test")
	if err != nil {
		t.Fatalf("unexpected error building provider: %v", err)
	}
	if err := provider.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
	if err := provider.Shutdown(context.Background()); err != nil {
		t.Fatalf("expected idempotent shutdown, got: %v", err)
	}
}

func TestOTelProviderStartSpanAfterShutdownReturnsNoOp(t *testing.T) {
	provider, err := NewOTelProvider("ai-council-test")
	if err != nil {
		t.Fatalf("unexpected error building provider: %v", err)
	}
	if err := provider.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}

	_, span := provider.StartSpan(context.Background(), "post-shutdown")
	// Must not panic even though the underlying tracer provider is closed.
	span.SetAttribute("k", "v")
	span.End()
}
