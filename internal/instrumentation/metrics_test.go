package instrumentation

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// mockMeterProvider creates a simple meter for testing
func mockMeterProvider() metric.Meter {
	provider := sdkmetric.NewMeterProvider()
	return provider.Meter("test")
}

func TestNewMetrics(t *testing.T) {
	meter := mockMeterProvider()
	metrics, err := NewMetrics(meter, false)
	if err != nil {
		t.Fatalf("expected no error creating metrics, got %v", err)
	}
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil")
	}

	if metrics.httpRequestsTotal == nil {
		t.Error("expected httpRequestsTotal to be initialized")
	}
	if metrics.httpRequestDuration == nil {
		t.Error("expected httpRequestDuration to be initialized")
	}
	if metrics.parseTotal == nil {
		t.Error("expected parseTotal to be initialized")
	}
	if metrics.parseDuration == nil {
		t.Error("expected parseDuration to be initialized")
	}
	if metrics.policyDecisionsTotal == nil {
		t.Error("expected policyDecisionsTotal to be initialized")
	}

	if metrics.detailedLabels != false {
		t.Error("expected detailedLabels to be false")
	}
}

func TestNewMetrics_DetailedLabels(t *testing.T) {
	metrics, err := NewMetrics(mockMeterProvider(), true)
	if err != nil {
		t.Fatalf("expected no error creating metrics, got %v", err)
	}
	if !metrics.detailedLabels {
		t.Error("expected detailedLabels to be true")
	}
}

func TestMetrics_RecordParse(t *testing.T) {
	ctx := context.Background()
	metrics, err := NewMetrics(mockMeterProvider(), true)
	if err != nil {
		t.Fatalf("expected no error creating metrics, got %v", err)
	}

	// Should not panic for any combination of labels.
	metrics.RecordParse(ctx, "get", true, "pod", "default", StatusSuccess, 50*time.Microsecond)
	metrics.RecordParse(ctx, "frobnicate", false, "", "", StatusInvalid, 10*time.Microsecond)
	metrics.RecordParse(ctx, "", false, "", "", StatusError, 0)
}

func TestMetrics_RecordPolicyDecision(t *testing.T) {
	ctx := context.Background()
	metrics, err := NewMetrics(mockMeterProvider(), false)
	if err != nil {
		t.Fatalf("expected no error creating metrics, got %v", err)
	}

	metrics.RecordPolicyDecision(ctx, "delete", true, DecisionDenied)
	metrics.RecordPolicyDecision(ctx, "get", true, DecisionAllowed)
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	ctx := context.Background()
	metrics, err := NewMetrics(mockMeterProvider(), false)
	if err != nil {
		t.Fatalf("expected no error creating metrics, got %v", err)
	}

	metrics.RecordHTTPRequest(ctx, "POST", "/mcp", 200, 15*time.Millisecond)
	metrics.RecordHTTPRequest(ctx, "GET", "/healthz", 503, time.Millisecond)
}

func TestMetrics_UninitializedIsNoop(t *testing.T) {
	ctx := context.Background()
	metrics := &Metrics{}

	// Zero-value recorder must be safe to call.
	metrics.RecordParse(ctx, "get", true, "pod", "default", StatusSuccess, time.Millisecond)
	metrics.RecordPolicyDecision(ctx, "get", true, DecisionAllowed)
	metrics.RecordHTTPRequest(ctx, "GET", "/", 200, time.Millisecond)
}
